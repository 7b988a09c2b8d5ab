package domain

import (
	"time"
	"unicode/utf8"
)

// MaxTodoDescriptionLength bounds todo descriptions (characters).
const MaxTodoDescriptionLength = 1000

// Todo is a standalone checklist item. Todos are not part of the board and
// carry no ordering; lists return them newest first.
type Todo struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTodo creates a validated, uncompleted Todo. The ID and timestamps are
// assigned by the store on persist.
func NewTodo(title, description string) (*Todo, error) {
	t := &Todo{
		Title:       title,
		Description: description,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks the todo's fields against the domain rules.
func (t *Todo) Validate() error {
	if t.Title == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(t.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if utf8.RuneCountInString(t.Description) > MaxTodoDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}
