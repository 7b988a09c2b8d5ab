// Package testdb wires integration tests to a disposable PostgreSQL
// database. The suite truncates tables at will, so the configured database
// must never be a shared or production one.
package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/pressly/goose/v3"

	"github.com/taskwall/taskwall/internal/platform/postgres"
)

// URL returns the integration database URL from the environment.
// TASKWALL_TEST_DATABASE_URL wins over the bare DATABASE_URL.
func URL() (string, bool) {
	for _, key := range []string{"TASKWALL_TEST_DATABASE_URL", "DATABASE_URL"} {
		if url := os.Getenv(key); url != "" {
			return url, true
		}
	}
	return "", false
}

// Open connects to the integration database and brings the schema up to
// date. Intended for TestMain, which has no *testing.T to fail through.
func Open() (*sql.DB, error) {
	url, ok := URL()
	if !ok {
		return nil, fmt.Errorf(
			"no integration database configured: set TASKWALL_TEST_DATABASE_URL or DATABASE_URL")
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// migrate applies the embedded migrations with goose. Output is silenced
// so test logs stay readable.
func migrate(db *sql.DB) error {
	goose.SetBaseFS(postgres.Migrations)
	goose.SetLogger(goose.NopLogger())
	goose.SetTableName("schema_migrations")
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(db, postgres.MigrationsDir); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// Reset empties every table and restarts the id sequences so each test
// begins from a blank board. The migration-time seed columns are removed
// along with everything else.
func Reset(t *testing.T, db *sql.DB) {
	t.Helper()

	_, err := db.Exec(`TRUNCATE tasks, columns, todos, users RESTART IDENTITY CASCADE`)
	if err != nil {
		t.Fatalf("failed to reset database: %v", err)
	}
}
