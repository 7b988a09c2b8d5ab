package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. Entity-specific variants below wrap it, so
	// errors.Is(err, ErrNotFound) matches all of them.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate of
	// a unique entity.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity references something that
	// does not exist, such as a task naming an unknown column.
	ErrInvalidEntity = errors.New("invalid entity reference")

	// ErrOrderConflict is returned when a deferred uniqueness check on an
	// order column fires at commit. Two siblings holding the same position
	// past the end of a transaction means the per-container serialization
	// was bypassed; this is an internal fault, never a user error.
	ErrOrderConflict = errors.New("order conflict in container")

	// ErrTransactionFailed is returned when a transaction cannot be started
	// or committed for reasons unrelated to the statements inside it.
	ErrTransactionFailed = errors.New("transaction failed")
)

// Entity-specific variants.
var (
	// ErrColumnNotFound indicates that the requested column does not exist.
	ErrColumnNotFound = fmt.Errorf("%w: column", ErrNotFound)

	// ErrTaskNotFound indicates that the requested task does not exist.
	ErrTaskNotFound = fmt.Errorf("%w: task", ErrNotFound)

	// ErrTodoNotFound indicates that the requested todo does not exist.
	ErrTodoNotFound = fmt.Errorf("%w: todo", ErrNotFound)

	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrEmailExists indicates that a user with the given email already
	// exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)
)

// IsNotFound reports whether err is any kind of "not found" error. The
// entity-specific variants all wrap ErrNotFound, so one check covers them.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicate reports whether err is any kind of "duplicate" error.
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
