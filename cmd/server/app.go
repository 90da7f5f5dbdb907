package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/mkowalczyk/tasklist-api/internal/advisor"
	"github.com/mkowalczyk/tasklist-api/internal/config"
	"github.com/mkowalczyk/tasklist-api/internal/platform/huggingface"
	"github.com/mkowalczyk/tasklist-api/internal/platform/sqlite"
	"github.com/mkowalczyk/tasklist-api/internal/service"
	"github.com/mkowalczyk/tasklist-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	taskStore store.TaskStore

	// Service interfaces
	advisor     service.Advisor
	taskService service.TaskService
}

// newApplication creates a new application instance with all dependencies initialized.
// It accepts core dependencies like configuration, logger, and database connection that
// must be established before application initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	app.taskStore = sqlite.NewSQLiteTaskStore(db, logger)

	// The remote classifier is optional: when inference is disabled the
	// advisor runs heuristic-only. A missing API token is NOT a reason
	// to skip the remote path; the endpoint accepts unauthenticated
	// calls and any failure falls back to the heuristic anyway.
	var classifier advisor.Classifier
	if !cfg.Inference.Disabled {
		hf, err := huggingface.NewClassifier(
			logger.With("component", "hf_client"),
			cfg.Inference,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize classifier: %w", err)
		}
		classifier = hf
		logger.Info("remote priority classifier initialized",
			"model_url", cfg.Inference.ModelURL,
			"authenticated", cfg.Inference.APIToken != "")
	} else {
		logger.Info("remote inference disabled, using heuristic only")
	}

	app.advisor = advisor.NewPriorityAdvisor(logger, classifier)
	app.taskService = service.NewTaskService(logger, app.taskStore, app.advisor)

	return app, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", "error", err)
		}
	}
}
