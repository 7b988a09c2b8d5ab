package store

import (
	"context"

	"github.com/taskwall/taskwall/internal/domain"
)

// CreateUser carries the fields for UserStore.Create.
type CreateUser struct {
	Name      string
	Email     string
	AvatarURL string
}

// UpdateUser carries the fields for UserStore.Update. Nil fields are left
// unchanged.
type UpdateUser struct {
	Name      *string
	Email     *string
	AvatarURL *string
}

// UserStore defines the interface for user persistence.
type UserStore interface {
	// Create inserts a new user.
	// Returns ErrEmailExists if the email is already registered.
	Create(ctx context.Context, in CreateUser) (*domain.User, error)

	// List returns all users, newest first.
	List(ctx context.Context) ([]*domain.User, error)

	// GetByID retrieves a user by its ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// Update applies the non-nil fields of in.
	// Returns ErrUserNotFound if the user does not exist and ErrEmailExists
	// if the new email is already registered to someone else.
	Update(ctx context.Context, id int64, in UpdateUser) (*domain.User, error)

	// Delete removes a user.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id int64) error
}
