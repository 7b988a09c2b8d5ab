package domain

import (
	"time"
	"unicode/utf8"
)

// MaxTaskDescriptionLength bounds task descriptions (characters).
const MaxTaskDescriptionLength = 2000

// Task is one card on the board. Tasks of the same column form an ordered
// container keyed by ColumnID: at rest their Order values are exactly 0..M-1.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ColumnID    int64     `json:"column_id"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewTask creates a validated Task. The ID and CreatedAt are assigned by the
// store on persist.
func NewTask(title, description string, columnID int64, order int) (*Task, error) {
	t := &Task{
		Title:       title,
		Description: description,
		ColumnID:    columnID,
		Order:       order,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks the task's fields against the domain rules.
func (t *Task) Validate() error {
	if t.Title == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(t.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if utf8.RuneCountInString(t.Description) > MaxTaskDescriptionLength {
		return ErrDescriptionTooLong
	}
	if t.ColumnID <= 0 {
		return ErrInvalidColumnRef
	}
	if t.Order < 0 {
		return ErrNegativeOrder
	}
	return nil
}
