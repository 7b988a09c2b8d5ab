package memstore

import (
	"context"
	"sync"

	"github.com/taskwall/taskwall/internal/domain"
	"github.com/taskwall/taskwall/internal/store"
)

// Store holds all board data in memory. One mutex serializes every mutation,
// which is the whole concurrency story: the shift and the entity write of an
// ordering operation happen under a single lock acquisition.
type Store struct {
	mu sync.Mutex

	nextColumnID int64
	nextTaskID   int64
	nextTodoID   int64
	nextUserID   int64

	columns map[int64]*domain.Column
	tasks   map[int64]*domain.Task
	todos   map[int64]*domain.Todo
	users   map[int64]*domain.User
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		columns: make(map[int64]*domain.Column),
		tasks:   make(map[int64]*domain.Task),
		todos:   make(map[int64]*domain.Todo),
		users:   make(map[int64]*domain.User),
	}
}

// Columns returns the store.ColumnStore view of s.
func (s *Store) Columns() store.ColumnStore { return &ColumnStore{s: s} }

// Tasks returns the store.TaskStore view of s.
func (s *Store) Tasks() store.TaskStore { return &TaskStore{s: s} }

// Todos returns the store.TodoStore view of s.
func (s *Store) Todos() store.TodoStore { return &TodoStore{s: s} }

// Users returns the store.UserStore view of s.
func (s *Store) Users() store.UserStore { return &UserStore{s: s} }

// columnContainer adapts the column set to order.Container. Callers must
// hold s.mu.
type columnContainer struct {
	s *Store
}

func (c columnContainer) Size(ctx context.Context) (int, error) {
	return len(c.s.columns), nil
}

func (c columnContainer) ShiftRange(ctx context.Context, lo, hi, delta int) error {
	for _, col := range c.s.columns {
		if col.Order >= lo && col.Order <= hi {
			col.Order += delta
		}
	}
	return nil
}

// taskContainer adapts one column's tasks to order.Container. Callers must
// hold s.mu.
type taskContainer struct {
	s        *Store
	columnID int64
}

func (c taskContainer) Size(ctx context.Context) (int, error) {
	n := 0
	for _, t := range c.s.tasks {
		if t.ColumnID == c.columnID {
			n++
		}
	}
	return n, nil
}

func (c taskContainer) ShiftRange(ctx context.Context, lo, hi, delta int) error {
	for _, t := range c.s.tasks {
		if t.ColumnID == c.columnID && t.Order >= lo && t.Order <= hi {
			t.Order += delta
		}
	}
	return nil
}
