package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/taskwall/taskwall/internal/cache"
	"github.com/taskwall/taskwall/internal/config"
	"github.com/taskwall/taskwall/internal/memstore"
	"github.com/taskwall/taskwall/internal/platform/postgres"
	"github.com/taskwall/taskwall/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB       // nil when running on the in-memory store
	redis  *redis.Client // nil unless the todo cache is enabled

	// Stores (using interfaces for proper abstraction)
	todoStore   store.TodoStore
	userStore   store.UserStore
	columnStore store.ColumnStore
	taskStore   store.TaskStore
}

// newApplication creates a new application instance with all dependencies
// initialized. The store backend is selected by the configured database
// driver: "postgres" connects and optionally migrates on startup,
// "memory" serves everything from process memory.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	switch cfg.Database.Driver {
	case "postgres":
		db, err := setupAppDatabase(ctx, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to set up database: %w", err)
		}
		app.db = db

		if cfg.Database.Migrate {
			if err := runStartupMigrations(db, logger); err != nil {
				return nil, fmt.Errorf("failed to run migrations: %w", err)
			}
		}

		app.todoStore = postgres.NewPostgresTodoStore(db, logger)
		app.userStore = postgres.NewPostgresUserStore(db, logger)
		app.columnStore = postgres.NewPostgresColumnStore(db, logger)
		app.taskStore = postgres.NewPostgresTaskStore(db, logger)

	case "memory":
		mem := memstore.New()
		app.todoStore = mem.Todos()
		app.userStore = mem.Users()
		app.columnStore = mem.Columns()
		app.taskStore = mem.Tasks()
		logger.Info("Using in-memory store, data will not survive restarts")

	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Database.Driver)
	}

	if cfg.Cache.Enabled {
		app.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
		app.todoStore = cache.NewCachedTodoStore(
			app.todoStore,
			cache.NewRedisTodoCache(app.redis, ttl),
			logger,
		)
		logger.Info("Todo cache enabled",
			"redis_addr", cfg.Cache.RedisAddr,
			"ttl_seconds", cfg.Cache.TTLSeconds)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters
// problems while shutting down.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("Error closing redis client", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
