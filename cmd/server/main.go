package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/woodworkpro/woodwork-server/internal/config"
	"github.com/woodworkpro/woodwork-server/internal/db"
	"github.com/woodworkpro/woodwork-server/internal/server"
	"github.com/woodworkpro/woodwork-server/internal/store"
)

// simple request logging middleware
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}

var migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")

func main() {
	flag.Parse()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if cfg.Env == "production" {
		log.SetFormatter(&log.JSONFormatter{})
	}

	dbConn, err := db.ConnectAndMigrate(cfg)
	if err != nil {
		log.Fatalf("database setup failed: %v", err)
	}
	if *migrateOnlyFlag {
		log.Info("migrations completed; exiting as requested")
		return
	}

	if cfg.LegacyImport != "" {
		if err := db.ImportLegacy(dbConn, cfg.LegacyImport); err != nil {
			log.Fatalf("legacy import failed: %v", err)
		}
	}

	st, err := store.New(dbConn)
	if err != nil {
		log.Fatalf("store load failed: %v", err)
	}

	log.WithFields(log.Fields{"env": cfg.Env, "port": cfg.Port}).Info("starting server")
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: withLogging(server.New(st, cfg))}

	go func() {
		log.Infof("server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("error during shutdown: %v", err)
	}
	log.Info("server gracefully stopped")
}
