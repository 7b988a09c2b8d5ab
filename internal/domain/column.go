package domain

import (
	"time"
	"unicode/utf8"
)

// MaxTitleLength bounds column, task and todo titles (characters, not bytes).
const MaxTitleLength = 200

// Column is one vertical lane of the board. All columns together form a
// single ordered container: at rest their Order values are exactly 0..N-1
// with no gaps and no duplicates.
type Column struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
}

// NewColumn creates a validated Column. The ID and CreatedAt are assigned by
// the store on persist.
func NewColumn(title string, order int) (*Column, error) {
	c := &Column{
		Title: title,
		Order: order,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the column's fields against the domain rules.
func (c *Column) Validate() error {
	if c.Title == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(c.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if c.Order < 0 {
		return ErrNegativeOrder
	}
	return nil
}
