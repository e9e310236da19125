package config

import (
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Config is loaded from the environment (after an optional .env file).
type Config struct {
	Port         string `envconfig:"PORT" default:"8080"`
	Env          string `envconfig:"APP_ENV" default:"development"`
	DataDir      string `envconfig:"DATA_DIR" default:"data"`
	DatabasePath string `envconfig:"DATABASE_PATH"`
	// Migrations switches from gorm AutoMigrate to SQL files under ./migrations.
	Migrations bool `envconfig:"MIGRATIONS"`
	Seed       bool `envconfig:"DB_SEED"`
	// LegacyImport points at a key-value export of the old mobile app; the
	// file is imported into the database exactly once.
	LegacyImport string `envconfig:"LEGACY_IMPORT"`
}

// Load reads configuration from the environment with sensible defaults.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, errors.Wrap(err, "process env config")
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = filepath.Join(cfg.DataDir, "woodwork.db")
	}
	return cfg, nil
}

// ExportDir is where invoice export artifacts are written.
func (c Config) ExportDir() string { return filepath.Join(c.DataDir, "exports") }

// LogoDir is where uploaded logo files are stored.
func (c Config) LogoDir() string { return filepath.Join(c.DataDir, "logo") }
