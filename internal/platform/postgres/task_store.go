package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taskwall/taskwall/internal/domain"
	"github.com/taskwall/taskwall/internal/order"
	"github.com/taskwall/taskwall/internal/platform/logger"
	"github.com/taskwall/taskwall/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface using a
// PostgreSQL database as the storage backend. Operations that shift
// siblings pre-read the task to learn its column, take that container's
// advisory lock, then re-read under the lock before mutating; a task that
// changed columns in the window rolls the transaction back instead of
// shifting a stale container.
type PostgresTaskStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db *sql.DB, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore.
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// getTask retrieves one task through q, which may be a connection pool or an
// open transaction.
func getTask(ctx context.Context, q store.DBTX, id int64) (*domain.Task, error) {
	query := `
		SELECT id, title, description, column_id, "order", created_at
		FROM tasks
		WHERE id = $1
	`
	var t domain.Task
	err := q.QueryRowContext(ctx, query, id).
		Scan(&t.ID, &t.Title, &t.Description, &t.ColumnID, &t.Order, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return &t, nil
}

// Create implements store.TaskStore.Create. The new task lands at the
// requested position of its column (clamped) or at the tail when no position
// is given; later siblings shift up inside the same transaction.
// Returns store.ErrInvalidEntity if the column does not exist.
func (s *PostgresTaskStore) Create(ctx context.Context, in store.CreateTask) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	probe := domain.Task{Title: in.Title, Description: in.Description, ColumnID: in.ColumnID}
	if err := probe.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()))
		return nil, err
	}

	var created domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := lockTasks(ctx, tx, in.ColumnID); err != nil {
			return err
		}

		container := taskContainer{q: tx, columnID: in.ColumnID}
		var at int
		var err error
		if in.Order == nil {
			at, err = order.Append(ctx, container)
		} else {
			at, err = order.InsertAt(ctx, container, *in.Order)
		}
		if err != nil {
			return err
		}

		query := `
			INSERT INTO tasks (title, description, column_id, "order")
			VALUES ($1, $2, $3, $4)
			RETURNING id, title, description, column_id, "order", created_at
		`
		err = tx.QueryRowContext(ctx, query, in.Title, in.Description, in.ColumnID, at).
			Scan(&created.ID, &created.Title, &created.Description,
				&created.ColumnID, &created.Order, &created.CreatedAt)
		if err != nil && IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: column with ID %d not found", store.ErrInvalidEntity, in.ColumnID)
		}
		return err
	})
	if err != nil {
		err = MapError(err)
		if errors.Is(err, store.ErrInvalidEntity) {
			log.Warn("task creation referenced missing column",
				slog.Int64("column_id", in.ColumnID))
		} else {
			log.Error("failed to create task",
				slog.String("error", err.Error()),
				slog.String("title", in.Title),
				slog.Int64("column_id", in.ColumnID))
		}
		return nil, err
	}

	log.Info("task created",
		slog.Int64("task_id", created.ID),
		slog.Int64("column_id", created.ColumnID),
		slog.Int("order", created.Order))
	return &created, nil
}

// List implements store.TaskStore.List, returning every task on the board
// ordered by column, then position.
func (s *PostgresTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, description, column_id, "order", created_at
		FROM tasks
		ORDER BY column_id, "order"
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query tasks", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	return scanTasks(rows, log)
}

// ListByColumn implements store.TaskStore.ListByColumn.
// Returns store.ErrColumnNotFound if the column does not exist.
func (s *PostgresTaskStore) ListByColumn(ctx context.Context, columnID int64) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := getColumn(ctx, s.db, columnID); err != nil {
		if store.IsNotFound(err) {
			log.Debug("column not found for task listing",
				slog.Int64("column_id", columnID))
		} else {
			log.Error("failed to check column for task listing",
				slog.String("error", err.Error()),
				slog.Int64("column_id", columnID))
		}
		return nil, err
	}

	query := `
		SELECT id, title, description, column_id, "order", created_at
		FROM tasks
		WHERE column_id = $1
		ORDER BY "order"
	`
	rows, err := s.db.QueryContext(ctx, query, columnID)
	if err != nil {
		log.Error("failed to query tasks by column",
			slog.String("error", err.Error()),
			slog.Int64("column_id", columnID))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	return scanTasks(rows, log)
}

// scanTasks drains rows into a slice, returning an empty slice rather than
// nil when there are no tasks.
func scanTasks(rows *sql.Rows, log *slog.Logger) ([]*domain.Task, error) {
	tasks := []*domain.Task{}
	for rows.Next() {
		var t domain.Task
		err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.ColumnID, &t.Order, &t.CreatedAt)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, err
		}
		tasks = append(tasks, &t)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}
	return tasks, nil
}

// GetByID implements store.TaskStore.GetByID.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	t, err := getTask(ctx, s.db, id)
	if err != nil {
		if store.IsNotFound(err) {
			log.Debug("task not found", slog.Int64("task_id", id))
		} else {
			log.Error("failed to get task by ID",
				slog.String("error", err.Error()),
				slog.Int64("task_id", id))
		}
		return nil, err
	}
	return t, nil
}

// Update implements store.TaskStore.Update. Field changes are plain writes;
// an order change repositions the task within its current column inside the
// same transaction.
func (s *PostgresTaskStore) Update(ctx context.Context, id int64, in store.UpdateTask) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if in.Title == nil && in.Description == nil && in.Order == nil {
		return s.GetByID(ctx, id)
	}
	if in.Title != nil || in.Description != nil {
		probe := domain.Task{Title: "probe", ColumnID: 1}
		if in.Title != nil {
			probe.Title = *in.Title
		}
		if in.Description != nil {
			probe.Description = *in.Description
		}
		if err := probe.Validate(); err != nil {
			log.Warn("task validation failed during update",
				slog.String("error", err.Error()),
				slog.Int64("task_id", id))
			return nil, err
		}
	}

	var updated domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		cur, err := getTask(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := lockTasks(ctx, tx, cur.ColumnID); err != nil {
			return err
		}
		t, err := taskForUpdate(ctx, tx, id, cur.ColumnID)
		if err != nil {
			return err
		}

		title := t.Title
		if in.Title != nil {
			title = *in.Title
		}
		description := t.Description
		if in.Description != nil {
			description = *in.Description
		}
		at := t.Order
		if in.Order != nil {
			at, err = order.Reposition(ctx, taskContainer{q: tx, columnID: t.ColumnID}, t.Order, *in.Order)
			if err != nil {
				return err
			}
		}

		query := `
			UPDATE tasks
			SET title = $1, description = $2, "order" = $3
			WHERE id = $4
			RETURNING id, title, description, column_id, "order", created_at
		`
		return tx.QueryRowContext(ctx, query, title, description, at, id).
			Scan(&updated.ID, &updated.Title, &updated.Description,
				&updated.ColumnID, &updated.Order, &updated.CreatedAt)
	})
	if err != nil {
		err = MapError(err)
		if store.IsNotFound(err) {
			log.Debug("task not found for update", slog.Int64("task_id", id))
		} else {
			log.Error("failed to update task",
				slog.String("error", err.Error()),
				slog.Int64("task_id", id))
		}
		return nil, err
	}

	log.Info("task updated",
		slog.Int64("task_id", updated.ID),
		slog.Int("order", updated.Order))
	return &updated, nil
}

// Delete implements store.TaskStore.Delete. The gap in the task's column
// closes inside the same transaction.
func (s *PostgresTaskStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		cur, err := getTask(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := lockTasks(ctx, tx, cur.ColumnID); err != nil {
			return err
		}
		t, err := taskForUpdate(ctx, tx, id, cur.ColumnID)
		if err != nil {
			return err
		}

		var removed int
		err = tx.QueryRowContext(ctx, `DELETE FROM tasks WHERE id = $1 RETURNING "order"`, id).
			Scan(&removed)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return store.ErrTaskNotFound
			}
			return fmt.Errorf("failed to delete task: %w", err)
		}

		return order.Remove(ctx, taskContainer{q: tx, columnID: t.ColumnID}, removed)
	})
	if err != nil {
		err = MapError(err)
		if store.IsNotFound(err) {
			log.Debug("task not found for delete", slog.Int64("task_id", id))
		} else {
			log.Error("failed to delete task",
				slog.String("error", err.Error()),
				slog.Int64("task_id", id))
		}
		return err
	}

	log.Info("task deleted", slog.Int64("task_id", id))
	return nil
}

// Reorder implements store.TaskStore.Reorder. Only the siblings between the
// old and new position shift; a request for the current position writes
// nothing.
func (s *PostgresTaskStore) Reorder(ctx context.Context, id int64, newOrder int) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var moved domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		cur, err := getTask(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := lockTasks(ctx, tx, cur.ColumnID); err != nil {
			return err
		}
		t, err := taskForUpdate(ctx, tx, id, cur.ColumnID)
		if err != nil {
			return err
		}

		at, err := order.Reposition(ctx, taskContainer{q: tx, columnID: t.ColumnID}, t.Order, newOrder)
		if err != nil {
			return err
		}
		if at == t.Order {
			moved = *t
			return nil
		}

		query := `
			UPDATE tasks
			SET "order" = $1
			WHERE id = $2
			RETURNING id, title, description, column_id, "order", created_at
		`
		return tx.QueryRowContext(ctx, query, at, id).
			Scan(&moved.ID, &moved.Title, &moved.Description,
				&moved.ColumnID, &moved.Order, &moved.CreatedAt)
	})
	if err != nil {
		err = MapError(err)
		if store.IsNotFound(err) {
			log.Debug("task not found for reorder", slog.Int64("task_id", id))
		} else {
			log.Error("failed to reorder task",
				slog.String("error", err.Error()),
				slog.Int64("task_id", id),
				slog.Int("new_order", newOrder))
		}
		return nil, err
	}

	log.Info("task reordered",
		slog.Int64("task_id", moved.ID),
		slog.Int("order", moved.Order))
	return &moved, nil
}

// Move implements store.TaskStore.Move: open a slot in the target column at
// newOrder, rewrite the task's column and position, close the gap in the
// source column, all in one transaction holding both containers' locks.
// Moving within the current column degrades to a reposition.
// Returns store.ErrInvalidEntity if the target column does not exist.
func (s *PostgresTaskStore) Move(ctx context.Context, id int64, targetColumnID int64, newOrder int) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if targetColumnID <= 0 {
		log.Warn("task move validation failed",
			slog.Int64("task_id", id),
			slog.Int64("target_column_id", targetColumnID))
		return nil, domain.ErrInvalidColumnRef
	}

	var moved domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		cur, err := getTask(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := lockTaskPair(ctx, tx, cur.ColumnID, targetColumnID); err != nil {
			return err
		}
		t, err := taskForUpdate(ctx, tx, id, cur.ColumnID, targetColumnID)
		if err != nil {
			return err
		}

		// Already in the target column: reposition instead of moving.
		if t.ColumnID == targetColumnID {
			at, err := order.Reposition(ctx, taskContainer{q: tx, columnID: t.ColumnID}, t.Order, newOrder)
			if err != nil {
				return err
			}
			if at == t.Order {
				moved = *t
				return nil
			}
			query := `
				UPDATE tasks
				SET "order" = $1
				WHERE id = $2
				RETURNING id, title, description, column_id, "order", created_at
			`
			return tx.QueryRowContext(ctx, query, at, id).
				Scan(&moved.ID, &moved.Title, &moved.Description,
					&moved.ColumnID, &moved.Order, &moved.CreatedAt)
		}

		target := taskContainer{q: tx, columnID: targetColumnID}
		at, err := order.InsertAt(ctx, target, newOrder)
		if err != nil {
			return err
		}

		query := `
			UPDATE tasks
			SET column_id = $1, "order" = $2
			WHERE id = $3
			RETURNING id, title, description, column_id, "order", created_at
		`
		err = tx.QueryRowContext(ctx, query, targetColumnID, at, id).
			Scan(&moved.ID, &moved.Title, &moved.Description,
				&moved.ColumnID, &moved.Order, &moved.CreatedAt)
		if err != nil {
			if IsForeignKeyViolation(err) {
				return fmt.Errorf("%w: column with ID %d not found", store.ErrInvalidEntity, targetColumnID)
			}
			return err
		}

		return order.Remove(ctx, taskContainer{q: tx, columnID: t.ColumnID}, t.Order)
	})
	if err != nil {
		err = MapError(err)
		switch {
		case store.IsNotFound(err):
			log.Debug("task not found for move", slog.Int64("task_id", id))
		case errors.Is(err, store.ErrInvalidEntity):
			log.Warn("task move referenced missing column",
				slog.Int64("task_id", id),
				slog.Int64("target_column_id", targetColumnID))
		default:
			log.Error("failed to move task",
				slog.String("error", err.Error()),
				slog.Int64("task_id", id),
				slog.Int64("target_column_id", targetColumnID),
				slog.Int("new_order", newOrder))
		}
		return nil, err
	}

	log.Info("task moved",
		slog.Int64("task_id", moved.ID),
		slog.Int64("column_id", moved.ColumnID),
		slog.Int("order", moved.Order))
	return &moved, nil
}
