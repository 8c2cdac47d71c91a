package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/flashdeck/flashdeck-api/internal/config"
	"github.com/flashdeck/flashdeck-api/internal/generation"
	"github.com/flashdeck/flashdeck-api/internal/platform/gemini"
	"github.com/flashdeck/flashdeck-api/internal/platform/postgres"
	"github.com/flashdeck/flashdeck-api/internal/quiz"
	"github.com/flashdeck/flashdeck-api/internal/store"
)

// application holds the shared application dependencies so wiring and
// cleanup live in one place.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	setStore  store.SetStore
	generator generation.DistractorGenerator
	builder   *quiz.Builder
}

// newApplication creates the application with all dependencies initialized.
// Configuration, logging, and the database connection are established by the
// caller before this runs.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	app.setStore = postgres.NewPostgresSetStore(db, logger)

	generator, err := gemini.NewGeminiGenerator(
		ctx,
		logger.With(slog.String("component", "distractor_generator")),
		cfg.LLM,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize distractor generator: %w", err)
	}
	app.generator = generator
	logger.Info("distractor generator initialized", slog.String("model", cfg.LLM.ModelName))

	// nil RandSource means a time-seeded shuffle; tests inject their own.
	app.builder = quiz.NewBuilder(
		app.setStore,
		app.generator,
		nil,
		logger.With(slog.String("component", "quiz_builder")),
	)

	logger.Info("application initialized")
	return app, nil
}

// Run starts the HTTP server and blocks until shutdown.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases application resources during shutdown.
func (app *application) cleanup() {
	closeDatabase(app.db, app.logger)
	app.logger.Info("application shutdown completed")
}
