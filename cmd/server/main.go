// Package main implements the entry point for the flashdeck API server,
// which stores flashcard sets and generates multiple-choice quizzes with
// LLM-produced wrong answers.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/flashdeck/flashdeck-api/internal/config"
	"github.com/flashdeck/flashdeck-api/internal/platform/logger"
	"github.com/joho/godotenv"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"run a migration command (up, down, status, version) and exit")
	flag.Parse()

	if err := run(*migrateCmd); err != nil {
		log.Fatalf("flashdeck-api: %v", err)
	}
}

// run wires the application together: config, logging, database,
// migrations, then the HTTP server. Kept separate from main so it can
// return errors instead of exiting.
func run(migrateCmd string) error {
	// A local .env is a development convenience; absence is not an error.
	if err := godotenv.Load(); err == nil {
		log.Println("loaded environment from .env")
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
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))
	if cfg.Database.URL != "" {
		appLogger.Debug("database configuration", slog.Bool("url_present", true))
	}
	if cfg.LLM.GeminiAPIKey != "" {
		appLogger.Debug("llm configuration", slog.Bool("api_key_present", true))
	}

	ctx := context.Background()

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	// Explicit migration command: run it and exit without serving.
	if migrateCmd != "" {
		defer closeDatabase(db, appLogger)
		return runMigrationCommand(db, migrateCmd, appLogger)
	}

	if err := migrateUp(db, appLogger); err != nil {
		closeDatabase(db, appLogger)
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	app, err := newApplication(ctx, cfg, appLogger, db)
	if err != nil {
		closeDatabase(db, appLogger)
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
