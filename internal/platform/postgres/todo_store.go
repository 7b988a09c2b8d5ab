package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taskwall/taskwall/internal/domain"
	"github.com/taskwall/taskwall/internal/platform/logger"
	"github.com/taskwall/taskwall/internal/store"
)

// PostgresTodoStore implements the store.TodoStore interface using a
// PostgreSQL database as the storage backend. Todos carry no ordering, so
// every operation is a single statement and needs no explicit transaction.
type PostgresTodoStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresTodoStore creates a new PostgreSQL implementation of the
// TodoStore interface. If logger is nil, a default logger will be used.
func NewPostgresTodoStore(db *sql.DB, logger *slog.Logger) *PostgresTodoStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTodoStore{
		db:     db,
		logger: logger.With(slog.String("component", "todo_store")),
	}
}

// Ensure PostgresTodoStore implements store.TodoStore.
var _ store.TodoStore = (*PostgresTodoStore)(nil)

// Create implements store.TodoStore.Create. New todos start incomplete.
func (s *PostgresTodoStore) Create(ctx context.Context, in store.CreateTodo) (*domain.Todo, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	probe := domain.Todo{Title: in.Title, Description: in.Description}
	if err := probe.Validate(); err != nil {
		log.Warn("todo validation failed during create",
			slog.String("error", err.Error()))
		return nil, err
	}

	query := `
		INSERT INTO todos (title, description)
		VALUES ($1, $2)
		RETURNING id, title, description, completed, created_at, updated_at
	`
	var created domain.Todo
	err := s.db.QueryRowContext(ctx, query, in.Title, in.Description).
		Scan(&created.ID, &created.Title, &created.Description,
			&created.Completed, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		err = MapError(err)
		log.Error("failed to create todo",
			slog.String("error", err.Error()),
			slog.String("title", in.Title))
		return nil, err
	}

	log.Info("todo created", slog.Int64("todo_id", created.ID))
	return &created, nil
}

// List implements store.TodoStore.List, returning todos newest first.
func (s *PostgresTodoStore) List(ctx context.Context) ([]*domain.Todo, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, description, completed, created_at, updated_at
		FROM todos
		ORDER BY id DESC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query todos", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	todos := []*domain.Todo{}
	for rows.Next() {
		var t domain.Todo
		err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			log.Error("failed to scan todo row", slog.String("error", err.Error()))
			return nil, err
		}
		todos = append(todos, &t)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}
	return todos, nil
}

// GetByID implements store.TodoStore.GetByID.
// Returns store.ErrTodoNotFound if the todo does not exist.
func (s *PostgresTodoStore) GetByID(ctx context.Context, id int64) (*domain.Todo, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, description, completed, created_at, updated_at
		FROM todos
		WHERE id = $1
	`
	var t domain.Todo
	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("todo not found", slog.Int64("todo_id", id))
			return nil, store.ErrTodoNotFound
		}
		log.Error("failed to get todo by ID",
			slog.String("error", err.Error()),
			slog.Int64("todo_id", id))
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}
	return &t, nil
}

// Update implements store.TodoStore.Update. Unset fields keep their stored
// values; COALESCE folds the nil arguments away in a single statement.
func (s *PostgresTodoStore) Update(ctx context.Context, id int64, in store.UpdateTodo) (*domain.Todo, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if in.Title == nil && in.Description == nil && in.Completed == nil {
		return s.GetByID(ctx, id)
	}
	probe := domain.Todo{Title: "probe"}
	if in.Title != nil {
		probe.Title = *in.Title
	}
	if in.Description != nil {
		probe.Description = *in.Description
	}
	if err := probe.Validate(); err != nil {
		log.Warn("todo validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("todo_id", id))
		return nil, err
	}

	query := `
		UPDATE todos
		SET title = COALESCE($1, title),
		    description = COALESCE($2, description),
		    completed = COALESCE($3, completed),
		    updated_at = NOW()
		WHERE id = $4
		RETURNING id, title, description, completed, created_at, updated_at
	`
	var updated domain.Todo
	err := s.db.QueryRowContext(ctx, query, in.Title, in.Description, in.Completed, id).
		Scan(&updated.ID, &updated.Title, &updated.Description,
			&updated.Completed, &updated.CreatedAt, &updated.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("todo not found for update", slog.Int64("todo_id", id))
			return nil, store.ErrTodoNotFound
		}
		err = MapError(err)
		log.Error("failed to update todo",
			slog.String("error", err.Error()),
			slog.Int64("todo_id", id))
		return nil, err
	}

	log.Info("todo updated", slog.Int64("todo_id", updated.ID))
	return &updated, nil
}

// Delete implements store.TodoStore.Delete.
// Returns store.ErrTodoNotFound if the todo does not exist.
func (s *PostgresTodoStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		err = MapError(err)
		log.Error("failed to delete todo",
			slog.String("error", err.Error()),
			slog.Int64("todo_id", id))
		return err
	}
	if err := CheckRowsAffected(result, store.ErrTodoNotFound); err != nil {
		if store.IsNotFound(err) {
			log.Debug("todo not found for delete", slog.Int64("todo_id", id))
		}
		return err
	}

	log.Info("todo deleted", slog.Int64("todo_id", id))
	return nil
}

// SetCompleted implements store.TodoStore.SetCompleted. Marking a todo with
// its current state is still a write and refreshes updated_at.
func (s *PostgresTodoStore) SetCompleted(ctx context.Context, id int64, completed bool) (*domain.Todo, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE todos
		SET completed = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, title, description, completed, created_at, updated_at
	`
	var updated domain.Todo
	err := s.db.QueryRowContext(ctx, query, completed, id).
		Scan(&updated.ID, &updated.Title, &updated.Description,
			&updated.Completed, &updated.CreatedAt, &updated.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("todo not found for completion change", slog.Int64("todo_id", id))
			return nil, store.ErrTodoNotFound
		}
		err = MapError(err)
		log.Error("failed to change todo completion",
			slog.String("error", err.Error()),
			slog.Int64("todo_id", id),
			slog.Bool("completed", completed))
		return nil, err
	}

	log.Info("todo completion changed",
		slog.Int64("todo_id", updated.ID),
		slog.Bool("completed", updated.Completed))
	return &updated, nil
}
