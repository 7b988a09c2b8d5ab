package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
	"github.com/taskwall/taskwall/internal/config"
	"github.com/taskwall/taskwall/internal/platform/postgres"
)

// gooseLogger adapts slog to the goose.Logger interface so migration
// output lands in the structured log stream.
type gooseLogger struct {
	logger *slog.Logger
}

func (l *gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

func (l *gooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// configureGoose points goose at the embedded migration files and routes
// its output through the application logger.
func configureGoose(logger *slog.Logger) error {
	goose.SetBaseFS(postgres.Migrations)
	goose.SetLogger(&gooseLogger{logger: logger})
	goose.SetTableName("schema_migrations")
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return nil
}

// runMigrationCommand executes a single migration command against an
// open database connection.
func runMigrationCommand(db *sql.DB, command string, logger *slog.Logger) error {
	if err := configureGoose(logger); err != nil {
		return err
	}

	switch command {
	case "up":
		if err := goose.Up(db, postgres.MigrationsDir); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
	case "down":
		if err := goose.Down(db, postgres.MigrationsDir); err != nil {
			return fmt.Errorf("failed to roll back migration: %w", err)
		}
	case "status":
		if err := goose.Status(db, postgres.MigrationsDir); err != nil {
			return fmt.Errorf("failed to report migration status: %w", err)
		}
	default:
		return fmt.Errorf("unknown migration command: %q (want up, down or status)", command)
	}

	return nil
}

// runStartupMigrations brings the schema up to date when the server
// starts with database.migrate enabled.
func runStartupMigrations(db *sql.DB, logger *slog.Logger) error {
	logger.Info("Applying database migrations")
	return runMigrationCommand(db, "up", logger)
}

// handleMigrations handles the execution of database migrations.
// It's called from main() when the -migrate flag is set: it connects to
// the configured database, executes the command, and returns.
func handleMigrations(cfg *config.Config, logger *slog.Logger, command string) error {
	if cfg.Database.Driver != "postgres" {
		return fmt.Errorf("migrations require the postgres driver, got %q", cfg.Database.Driver)
	}

	db, err := setupAppDatabase(context.Background(), cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Error closing database connection", "error", err)
		}
	}()

	logger.Info("Executing migration command", "command", command)
	return runMigrationCommand(db, command, logger)
}
