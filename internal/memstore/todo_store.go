package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/taskwall/taskwall/internal/domain"
	"github.com/taskwall/taskwall/internal/store"
)

// TodoStore is the in-memory implementation of store.TodoStore.
type TodoStore struct {
	s *Store
}

var _ store.TodoStore = (*TodoStore)(nil)

// Create implements store.TodoStore.Create.
func (ts *TodoStore) Create(ctx context.Context, in store.CreateTodo) (*domain.Todo, error) {
	probe := domain.Todo{Title: in.Title, Description: in.Description}
	if err := probe.Validate(); err != nil {
		return nil, err
	}

	ts.s.mu.Lock()
	defer ts.s.mu.Unlock()

	now := time.Now().UTC()
	ts.s.nextTodoID++
	t := &domain.Todo{
		ID:          ts.s.nextTodoID,
		Title:       in.Title,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	ts.s.todos[t.ID] = t

	out := *t
	return &out, nil
}

// List implements store.TodoStore.List.
func (ts *TodoStore) List(ctx context.Context) ([]*domain.Todo, error) {
	ts.s.mu.Lock()
	defer ts.s.mu.Unlock()

	todos := []*domain.Todo{}
	for _, t := range ts.s.todos {
		out := *t
		todos = append(todos, &out)
	}
	sort.Slice(todos, func(i, j int) bool { return todos[i].ID > todos[j].ID })
	return todos, nil
}

// GetByID implements store.TodoStore.GetByID.
func (ts *TodoStore) GetByID(ctx context.Context, id int64) (*domain.Todo, error) {
	ts.s.mu.Lock()
	defer ts.s.mu.Unlock()

	t, ok := ts.s.todos[id]
	if !ok {
		return nil, store.ErrTodoNotFound
	}
	out := *t
	return &out, nil
}

// Update implements store.TodoStore.Update.
func (ts *TodoStore) Update(ctx context.Context, id int64, in store.UpdateTodo) (*domain.Todo, error) {
	if in.Title == nil && in.Description == nil && in.Completed == nil {
		return ts.GetByID(ctx, id)
	}
	probe := domain.Todo{Title: "probe"}
	if in.Title != nil {
		probe.Title = *in.Title
	}
	if in.Description != nil {
		probe.Description = *in.Description
	}
	if err := probe.Validate(); err != nil {
		return nil, err
	}

	ts.s.mu.Lock()
	defer ts.s.mu.Unlock()

	t, ok := ts.s.todos[id]
	if !ok {
		return nil, store.ErrTodoNotFound
	}

	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Completed != nil {
		t.Completed = *in.Completed
	}
	t.UpdatedAt = time.Now().UTC()

	out := *t
	return &out, nil
}

// Delete implements store.TodoStore.Delete.
func (ts *TodoStore) Delete(ctx context.Context, id int64) error {
	ts.s.mu.Lock()
	defer ts.s.mu.Unlock()

	if _, ok := ts.s.todos[id]; !ok {
		return store.ErrTodoNotFound
	}
	delete(ts.s.todos, id)
	return nil
}

// SetCompleted implements store.TodoStore.SetCompleted.
func (ts *TodoStore) SetCompleted(ctx context.Context, id int64, completed bool) (*domain.Todo, error) {
	ts.s.mu.Lock()
	defer ts.s.mu.Unlock()

	t, ok := ts.s.todos[id]
	if !ok {
		return nil, store.ErrTodoNotFound
	}
	t.Completed = completed
	t.UpdatedAt = time.Now().UTC()

	out := *t
	return &out, nil
}
