package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewColumn(t *testing.T) {
	col, err := NewColumn("Backlog", 2)
	require.NoError(t, err)

	assert.Equal(t, "Backlog", col.Title)
	assert.Equal(t, 2, col.Order)
	assert.Zero(t, col.ID, "the store assigns IDs")
}

func TestColumnValidate(t *testing.T) {
	tests := []struct {
		name    string
		column  Column
		wantErr error
	}{
		{
			name:   "valid",
			column: Column{Title: "Backlog"},
		},
		{
			name:    "empty title",
			column:  Column{Title: ""},
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "title too long",
			column:  Column{Title: strings.Repeat("x", MaxTitleLength+1)},
			wantErr: ErrTitleTooLong,
		},
		{
			name:    "negative order",
			column:  Column{Title: "Backlog", Order: -1},
			wantErr: ErrNegativeOrder,
		},
		{
			name:   "zero order is the head slot",
			column: Column{Title: "Backlog", Order: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.column.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}
