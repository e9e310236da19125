package db

import (
	"os"
	"path/filepath"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	// The following blank imports register the sqlite3 driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/woodworkpro/woodwork-server/internal/config"
	"github.com/woodworkpro/woodwork-server/internal/models"
)

// ConnectAndMigrate opens the sqlite database and brings the schema up to
// date. With MIGRATIONS=1 the SQL files under ./migrations run via
// golang-migrate; otherwise gorm AutoMigrate is used (dev convenience).
func ConnectAndMigrate(cfg config.Config) (*gorm.DB, error) {
	if cfg.DatabasePath == "" {
		return nil, errors.New("DATABASE_PATH is empty, check the environment configuration")
	}
	if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "create data dir")
		}
	}

	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	var db *gorm.DB
	var err error
	for i := 0; i < 3; i++ {
		db, err = gorm.Open(sqlite.Open(cfg.DatabasePath), gormCfg)
		if err == nil {
			break
		}
		log.WithError(err).Warn("retrying DB connection")
		time.Sleep(time.Second)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database after retries")
	}

	// Basic connectivity test
	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, errors.Wrap(pingErr, "db ping failed")
	}

	log.WithField("path", cfg.DatabasePath).Info("database opened")

	if cfg.Migrations {
		if err := runSQLMigrations(cfg.DatabasePath); err != nil {
			return nil, errors.Wrap(err, "sql migrations failed")
		}
	} else {
		modelsToMigrate := []interface{}{
			&models.Customer{}, &models.PriceTemplate{}, &models.Job{}, &models.Door{}, &models.BrandingSettings{},
		}
		for _, m := range modelsToMigrate {
			if migErr := db.AutoMigrate(m); migErr != nil {
				return nil, errors.Wrapf(migErr, "automigrate %T", m)
			}
		}
	}

	// sanity check: ensure required core tables exist
	for _, table := range []string{"customers", "price_templates", "jobs", "doors", "branding_settings"} {
		if !db.Migrator().HasTable(table) {
			return nil, errors.New("missing table after migration: " + table)
		}
	}

	if cfg.Seed {
		seed(db)
	}
	return db, nil
}

// seed installs a couple of starter price templates when none exist yet.
func seed(db *gorm.DB) {
	baseTemplates := []models.PriceTemplate{
		{Name: "Standard", Door: 300, Beading: 100, Frame: 50, Paling: 50, Polish: 100},
		{Name: "Deluxe", Door: 450, Beading: 150, Frame: 80, Paling: 80, Polish: 150},
	}
	for _, t := range baseTemplates {
		var existing models.PriceTemplate
		if err := db.Where("name = ?", t.Name).First(&existing).Error; err == gorm.ErrRecordNotFound {
			db.Create(&t)
		}
	}
}

// runSQLMigrations executes migrations in ./migrations using the golang-migrate file source.
func runSQLMigrations(dbPath string) error {
	m, err := migrate.New("file://migrations", "sqlite3://"+dbPath)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
