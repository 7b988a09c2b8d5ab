package store

import (
	"context"

	"github.com/taskwall/taskwall/internal/domain"
)

// CreateTask carries the fields for TaskStore.Create.
type CreateTask struct {
	Title       string
	Description string
	ColumnID    int64
	// Order is the requested position within the column. Nil appends at the
	// tail; anything past the tail is clamped to it.
	Order *int
}

// UpdateTask carries the fields for TaskStore.Update. Nil fields are left
// unchanged. The column is not updatable here; moving between columns goes
// through Move.
type UpdateTask struct {
	Title       *string
	Description *string
	Order       *int
}

// TaskStore defines the interface for task persistence. Implementations
// must keep every column's tasks dense: orders are exactly 0..M-1 at rest,
// and every mutation that shifts siblings runs atomically with the entity
// write.
type TaskStore interface {
	// Create inserts a new task at the requested position of its column,
	// shifting later tasks up by one.
	// Returns ErrInvalidEntity if the column does not exist.
	Create(ctx context.Context, in CreateTask) (*domain.Task, error)

	// List returns all tasks on the board, ordered by column and position.
	List(ctx context.Context) ([]*domain.Task, error)

	// ListByColumn returns the tasks of one column in position order.
	// Returns ErrColumnNotFound if the column does not exist.
	ListByColumn(ctx context.Context, columnID int64) ([]*domain.Task, error)

	// GetByID retrieves a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// Update applies the non-nil fields of in. An order change repositions
	// the task within its current column.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, id int64, in UpdateTask) (*domain.Task, error)

	// Delete removes a task and closes the gap in its column.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// Reorder moves a task to newOrder within its column (clamped), shifting
	// only the tasks between the old and new position.
	// Returns ErrTaskNotFound if the task does not exist.
	Reorder(ctx context.Context, id int64, newOrder int) (*domain.Task, error)

	// Move transfers a task to targetColumnID at newOrder (clamped to the
	// target), making room in the target and closing the gap in the source
	// within one transaction. Moving within the current column degrades to
	// Reorder.
	// Returns ErrTaskNotFound if the task does not exist and
	// ErrInvalidEntity if the target column does not exist.
	Move(ctx context.Context, id int64, targetColumnID int64, newOrder int) (*domain.Task, error)
}
