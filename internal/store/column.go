package store

import (
	"context"

	"github.com/taskwall/taskwall/internal/domain"
)

// CreateColumn carries the fields for ColumnStore.Create.
type CreateColumn struct {
	Title string
	// Order is the requested board position. Nil appends at the tail;
	// anything past the tail is clamped to it.
	Order *int
}

// UpdateColumn carries the fields for ColumnStore.Update. Nil fields are
// left unchanged.
type UpdateColumn struct {
	Title *string
	Order *int
}

// ColumnStore defines the interface for column persistence. Implementations
// must keep the board dense: column orders are exactly 0..N-1 at rest, and
// every mutation that shifts siblings runs atomically with the entity write.
type ColumnStore interface {
	// Create inserts a new column at the requested position, shifting later
	// columns up by one. Returns validation errors if the data is invalid.
	Create(ctx context.Context, in CreateColumn) (*domain.Column, error)

	// List returns all columns in board order.
	List(ctx context.Context) ([]*domain.Column, error)

	// GetByID retrieves a column by its ID.
	// Returns ErrColumnNotFound if the column does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Column, error)

	// Update applies the non-nil fields of in. An order change goes through
	// the same repositioning path as Reorder.
	// Returns ErrColumnNotFound if the column does not exist.
	Update(ctx context.Context, id int64, in UpdateColumn) (*domain.Column, error)

	// Delete removes a column and, through the schema cascade, its tasks,
	// then closes the gap by shifting later columns down by one.
	// Returns ErrColumnNotFound if the column does not exist.
	Delete(ctx context.Context, id int64) error

	// Reorder moves a column to newOrder (clamped to the board), shifting
	// only the columns between the old and new position.
	// Returns ErrColumnNotFound if the column does not exist.
	Reorder(ctx context.Context, id int64, newOrder int) (*domain.Column, error)
}
