// Package main implements the entry point for the tasklist API server,
// which persists personal tasks in an embedded SQLite database and
// consults a HuggingFace zero-shot model to suggest task priorities.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/mkowalczyk/tasklist-api/internal/config"
	"github.com/mkowalczyk/tasklist-api/internal/platform/logger"
	"github.com/mkowalczyk/tasklist-api/internal/platform/sqlite"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// run loads configuration, wires the application, and serves HTTP until
// a shutdown signal arrives.
func run() error {
	ctx := context.Background()

	// A .env file is optional; real environments set variables directly.
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded environment from .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_path", cfg.Database.Path,
		"inference_disabled", cfg.Inference.Disabled,
		"credential_present", cfg.Inference.APIToken != "")

	db, err := sqlite.Open(ctx, cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if err := sqlite.Migrate(ctx, db); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			appLogger.Error("failed to close database", "error", closeErr)
		}
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	appLogger.Info("database ready", "path", cfg.Database.Path)

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			appLogger.Error("failed to close database", "error", closeErr)
		}
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.startHTTPServer(ctx, app.setupRouter())
}
