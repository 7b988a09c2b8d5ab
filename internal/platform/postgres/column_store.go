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

// PostgresColumnStore implements the store.ColumnStore interface using a
// PostgreSQL database as the storage backend. Every order-changing
// operation runs inside a transaction that holds the board's advisory lock,
// keeping column positions dense under concurrency.
type PostgresColumnStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresColumnStore creates a new PostgreSQL implementation of the
// ColumnStore interface. If logger is nil, a default logger will be used.
func NewPostgresColumnStore(db *sql.DB, logger *slog.Logger) *PostgresColumnStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresColumnStore{
		db:     db,
		logger: logger.With(slog.String("component", "column_store")),
	}
}

// Ensure PostgresColumnStore implements store.ColumnStore.
var _ store.ColumnStore = (*PostgresColumnStore)(nil)

// getColumn retrieves one column through q, which may be a connection pool
// or an open transaction.
func getColumn(ctx context.Context, q store.DBTX, id int64) (*domain.Column, error) {
	query := `
		SELECT id, title, "order", created_at
		FROM columns
		WHERE id = $1
	`
	var c domain.Column
	err := q.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Title, &c.Order, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrColumnNotFound
		}
		return nil, fmt.Errorf("failed to get column: %w", err)
	}
	return &c, nil
}

// Create implements store.ColumnStore.Create. The new column lands at the
// requested position (clamped to the board) or at the tail when no position
// is given; later columns shift up inside the same transaction.
func (s *PostgresColumnStore) Create(ctx context.Context, in store.CreateColumn) (*domain.Column, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	probe := domain.Column{Title: in.Title}
	if err := probe.Validate(); err != nil {
		log.Warn("column validation failed during create",
			slog.String("error", err.Error()))
		return nil, err
	}

	var created domain.Column
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := lockBoard(ctx, tx); err != nil {
			return err
		}

		board := boardContainer{q: tx}
		var at int
		var err error
		if in.Order == nil {
			at, err = order.Append(ctx, board)
		} else {
			at, err = order.InsertAt(ctx, board, *in.Order)
		}
		if err != nil {
			return err
		}

		query := `
			INSERT INTO columns (title, "order")
			VALUES ($1, $2)
			RETURNING id, title, "order", created_at
		`
		return tx.QueryRowContext(ctx, query, in.Title, at).
			Scan(&created.ID, &created.Title, &created.Order, &created.CreatedAt)
	})
	if err != nil {
		err = MapError(err)
		log.Error("failed to create column",
			slog.String("error", err.Error()),
			slog.String("title", in.Title))
		return nil, err
	}

	log.Info("column created",
		slog.Int64("column_id", created.ID),
		slog.Int("order", created.Order))
	return &created, nil
}

// List implements store.ColumnStore.List, returning all columns in board
// order.
func (s *PostgresColumnStore) List(ctx context.Context) ([]*domain.Column, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, "order", created_at
		FROM columns
		ORDER BY "order"
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query columns", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	columns := []*domain.Column{}
	for rows.Next() {
		var c domain.Column
		if err := rows.Scan(&c.ID, &c.Title, &c.Order, &c.CreatedAt); err != nil {
			log.Error("failed to scan column row", slog.String("error", err.Error()))
			return nil, err
		}
		columns = append(columns, &c)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	return columns, nil
}

// GetByID implements store.ColumnStore.GetByID.
// Returns store.ErrColumnNotFound if the column does not exist.
func (s *PostgresColumnStore) GetByID(ctx context.Context, id int64) (*domain.Column, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	c, err := getColumn(ctx, s.db, id)
	if err != nil {
		if store.IsNotFound(err) {
			log.Debug("column not found", slog.Int64("column_id", id))
		} else {
			log.Error("failed to get column by ID",
				slog.String("error", err.Error()),
				slog.Int64("column_id", id))
		}
		return nil, err
	}
	return c, nil
}

// Update implements store.ColumnStore.Update. Title changes are plain
// writes; an order change repositions the column exactly as Reorder does,
// inside the same transaction.
func (s *PostgresColumnStore) Update(ctx context.Context, id int64, in store.UpdateColumn) (*domain.Column, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if in.Title == nil && in.Order == nil {
		return s.GetByID(ctx, id)
	}
	if in.Title != nil {
		probe := domain.Column{Title: *in.Title}
		if err := probe.Validate(); err != nil {
			log.Warn("column validation failed during update",
				slog.String("error", err.Error()),
				slog.Int64("column_id", id))
			return nil, err
		}
	}

	var updated domain.Column
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := lockBoard(ctx, tx); err != nil {
			return err
		}

		cur, err := getColumn(ctx, tx, id)
		if err != nil {
			return err
		}

		title := cur.Title
		if in.Title != nil {
			title = *in.Title
		}
		at := cur.Order
		if in.Order != nil {
			at, err = order.Reposition(ctx, boardContainer{q: tx}, cur.Order, *in.Order)
			if err != nil {
				return err
			}
		}

		query := `
			UPDATE columns
			SET title = $1, "order" = $2
			WHERE id = $3
			RETURNING id, title, "order", created_at
		`
		return tx.QueryRowContext(ctx, query, title, at, id).
			Scan(&updated.ID, &updated.Title, &updated.Order, &updated.CreatedAt)
	})
	if err != nil {
		err = MapError(err)
		if store.IsNotFound(err) {
			log.Debug("column not found for update", slog.Int64("column_id", id))
		} else {
			log.Error("failed to update column",
				slog.String("error", err.Error()),
				slog.Int64("column_id", id))
		}
		return nil, err
	}

	log.Info("column updated",
		slog.Int64("column_id", updated.ID),
		slog.Int("order", updated.Order))
	return &updated, nil
}

// Delete implements store.ColumnStore.Delete. The schema cascade removes the
// column's tasks; the gap in the board closes inside the same transaction.
func (s *PostgresColumnStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := lockBoard(ctx, tx); err != nil {
			return err
		}

		var removed int
		err := tx.QueryRowContext(ctx, `DELETE FROM columns WHERE id = $1 RETURNING "order"`, id).
			Scan(&removed)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return store.ErrColumnNotFound
			}
			return fmt.Errorf("failed to delete column: %w", err)
		}

		return order.Remove(ctx, boardContainer{q: tx}, removed)
	})
	if err != nil {
		err = MapError(err)
		if store.IsNotFound(err) {
			log.Debug("column not found for delete", slog.Int64("column_id", id))
		} else {
			log.Error("failed to delete column",
				slog.String("error", err.Error()),
				slog.Int64("column_id", id))
		}
		return err
	}

	log.Info("column deleted", slog.Int64("column_id", id))
	return nil
}

// Reorder implements store.ColumnStore.Reorder. Only the columns between the
// old and new position shift; a request for the current position (or any
// request in a one-column board) writes nothing.
func (s *PostgresColumnStore) Reorder(ctx context.Context, id int64, newOrder int) (*domain.Column, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var moved domain.Column
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := lockBoard(ctx, tx); err != nil {
			return err
		}

		cur, err := getColumn(ctx, tx, id)
		if err != nil {
			return err
		}

		at, err := order.Reposition(ctx, boardContainer{q: tx}, cur.Order, newOrder)
		if err != nil {
			return err
		}
		if at == cur.Order {
			moved = *cur
			return nil
		}

		query := `
			UPDATE columns
			SET "order" = $1
			WHERE id = $2
			RETURNING id, title, "order", created_at
		`
		return tx.QueryRowContext(ctx, query, at, id).
			Scan(&moved.ID, &moved.Title, &moved.Order, &moved.CreatedAt)
	})
	if err != nil {
		err = MapError(err)
		if store.IsNotFound(err) {
			log.Debug("column not found for reorder", slog.Int64("column_id", id))
		} else {
			log.Error("failed to reorder column",
				slog.String("error", err.Error()),
				slog.Int64("column_id", id),
				slog.Int("new_order", newOrder))
		}
		return nil, err
	}

	log.Info("column reordered",
		slog.Int64("column_id", moved.ID),
		slog.Int("order", moved.Order))
	return &moved, nil
}
