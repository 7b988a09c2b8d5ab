package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/taskwall/taskwall/internal/domain"
	"github.com/taskwall/taskwall/internal/store"
)

// Advisory lock namespaces. Each ordered container maps to one
// (class, key) pair: the board's columns share a single well-known key,
// and every column's task list uses the column id. Transactions that shift
// siblings take the container's pg_advisory_xact_lock first, so concurrent
// mutations of the same container queue while different containers proceed
// in parallel. The locks release automatically at commit or rollback.
const (
	boardLockClass = 1
	tasksLockClass = 2

	boardLockKey = 0
)

// lockBoard serializes mutations of the columns container.
func lockBoard(ctx context.Context, q store.DBTX) error {
	if _, err := q.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, boardLockClass, boardLockKey); err != nil {
		return fmt.Errorf("failed to lock board container: %w", err)
	}
	return nil
}

// lockTasks serializes mutations of one column's task container.
func lockTasks(ctx context.Context, q store.DBTX, columnID int64) error {
	if _, err := q.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, tasksLockClass, int32(columnID)); err != nil {
		return fmt.Errorf("failed to lock task container %d: %w", columnID, err)
	}
	return nil
}

// lockTaskPair serializes a cross-column move. Both containers are locked in
// ascending column-id order, so two movers touching the same pair cannot
// deadlock.
func lockTaskPair(ctx context.Context, q store.DBTX, a, b int64) error {
	if a > b {
		a, b = b, a
	}
	if err := lockTasks(ctx, q, a); err != nil {
		return err
	}
	if a == b {
		return nil
	}
	return lockTasks(ctx, q, b)
}

// boardContainer adapts the columns table to order.Container.
type boardContainer struct {
	q store.DBTX
}

func (c boardContainer) Size(ctx context.Context) (int, error) {
	var n int
	if err := c.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM columns`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count columns: %w", err)
	}
	return n, nil
}

func (c boardContainer) ShiftRange(ctx context.Context, lo, hi, delta int) error {
	query := `
		UPDATE columns
		SET "order" = "order" + $1
		WHERE "order" BETWEEN $2 AND $3
	`
	if _, err := c.q.ExecContext(ctx, query, delta, lo, hi); err != nil {
		return fmt.Errorf("failed to shift columns: %w", err)
	}
	return nil
}

// taskContainer adapts one column's slice of the tasks table to
// order.Container.
type taskContainer struct {
	q        store.DBTX
	columnID int64
}

func (c taskContainer) Size(ctx context.Context) (int, error) {
	var n int
	if err := c.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks WHERE column_id = $1`, c.columnID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count tasks of column %d: %w", c.columnID, err)
	}
	return n, nil
}

func (c taskContainer) ShiftRange(ctx context.Context, lo, hi, delta int) error {
	query := `
		UPDATE tasks
		SET "order" = "order" + $1
		WHERE column_id = $2 AND "order" BETWEEN $3 AND $4
	`
	if _, err := c.q.ExecContext(ctx, query, delta, c.columnID, lo, hi); err != nil {
		return fmt.Errorf("failed to shift tasks of column %d: %w", c.columnID, err)
	}
	return nil
}

// errConcurrentMove reports that a task changed columns between the
// unlocked read that chose the advisory locks and the re-read under them.
// The transaction must not shift the stale container; callers roll back.
var errConcurrentMove = fmt.Errorf("%w: task moved concurrently", store.ErrTransactionFailed)

// taskForUpdate re-reads a task under the container locks and verifies it
// still lives in one of the locked columns.
func taskForUpdate(ctx context.Context, tx *sql.Tx, id int64, lockedColumns ...int64) (*domain.Task, error) {
	t, err := getTask(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	for _, col := range lockedColumns {
		if t.ColumnID == col {
			return t, nil
		}
	}
	return nil, errConcurrentMove
}
