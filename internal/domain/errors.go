package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is the root of all domain validation failures. The specific
// errors below wrap it so callers can match the whole family with a single
// errors.Is check.
var ErrValidation = errors.New("validation failed")

var (
	ErrEmptyTitle         = fmt.Errorf("%w: title cannot be empty", ErrValidation)
	ErrTitleTooLong       = fmt.Errorf("%w: title exceeds maximum length", ErrValidation)
	ErrDescriptionTooLong = fmt.Errorf("%w: description exceeds maximum length", ErrValidation)
	ErrNegativeOrder      = fmt.Errorf("%w: order cannot be negative", ErrValidation)
	ErrInvalidColumnRef   = fmt.Errorf("%w: column id must be positive", ErrValidation)
	ErrEmptyName          = fmt.Errorf("%w: name cannot be empty", ErrValidation)
	ErrNameTooLong        = fmt.Errorf("%w: name exceeds maximum length", ErrValidation)
	ErrEmptyEmail         = fmt.Errorf("%w: email cannot be empty", ErrValidation)
	ErrInvalidEmail       = fmt.Errorf("%w: invalid email format", ErrValidation)
	ErrAvatarURLTooLong   = fmt.Errorf("%w: avatar URL exceeds maximum length", ErrValidation)
)
