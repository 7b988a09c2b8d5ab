package store

import (
	"context"

	"github.com/taskwall/taskwall/internal/domain"
)

// CreateTodo carries the fields for TodoStore.Create.
type CreateTodo struct {
	Title       string
	Description string
}

// UpdateTodo carries the fields for TodoStore.Update. Nil fields are left
// unchanged.
type UpdateTodo struct {
	Title       *string
	Description *string
	Completed   *bool
}

// TodoStore defines the interface for todo persistence. Todos are not part
// of the board and need no ordering maintenance.
type TodoStore interface {
	// Create inserts a new todo, uncompleted.
	Create(ctx context.Context, in CreateTodo) (*domain.Todo, error)

	// List returns all todos, newest first.
	List(ctx context.Context) ([]*domain.Todo, error)

	// GetByID retrieves a todo by its ID.
	// Returns ErrTodoNotFound if the todo does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Todo, error)

	// Update applies the non-nil fields of in and stamps UpdatedAt.
	// Returns ErrTodoNotFound if the todo does not exist.
	Update(ctx context.Context, id int64, in UpdateTodo) (*domain.Todo, error)

	// Delete removes a todo.
	// Returns ErrTodoNotFound if the todo does not exist.
	Delete(ctx context.Context, id int64) error

	// SetCompleted flips the completion flag and stamps UpdatedAt.
	// Returns ErrTodoNotFound if the todo does not exist.
	SetCompleted(ctx context.Context, id int64, completed bool) (*domain.Todo, error)
}
