// Package main implements the entry point for the Taskwall server,
// which exposes the task board HTTP API backed by PostgreSQL or an
// in-memory store.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/taskwall/taskwall/internal/config"
	"github.com/taskwall/taskwall/internal/platform/logger"
)

// main wires configuration, logging, storage and the HTTP server
// together, then hands control to the application until shutdown.
func main() {
	migrateCmd := flag.String("migrate", "", "run a migration command (up|down|status) and exit")
	flag.Parse()

	cfg, appLogger, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if *migrateCmd != "" {
		if err := handleMigrations(cfg, appLogger, *migrateCmd); err != nil {
			appLogger.Error("Migration command failed", "command", *migrateCmd, "error", err)
			os.Exit(1)
		}
		return
	}

	ctx := context.Background()
	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		appLogger.Error("Server error", "error", err)
		os.Exit(1)
	}
}

// initializeApp loads configuration and sets up structured logging.
// Returns the loaded config, the application logger, and any
// initialization error.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_driver", cfg.Database.Driver,
		"cache_enabled", cfg.Cache.Enabled)

	return cfg, appLogger, nil
}
