package memstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/taskwall/taskwall/internal/domain"
	"github.com/taskwall/taskwall/internal/order"
	"github.com/taskwall/taskwall/internal/store"
)

// TaskStore is the in-memory implementation of store.TaskStore.
type TaskStore struct {
	s *Store
}

var _ store.TaskStore = (*TaskStore)(nil)

// Create implements store.TaskStore.Create.
func (ts *TaskStore) Create(ctx context.Context, in store.CreateTask) (*domain.Task, error) {
	probe := domain.Task{Title: in.Title, Description: in.Description, ColumnID: in.ColumnID}
	if err := probe.Validate(); err != nil {
		return nil, err
	}

	ts.s.mu.Lock()
	defer ts.s.mu.Unlock()

	if _, ok := ts.s.columns[in.ColumnID]; !ok {
		return nil, fmt.Errorf("%w: column with ID %d not found", store.ErrInvalidEntity, in.ColumnID)
	}

	container := taskContainer{s: ts.s, columnID: in.ColumnID}
	var at int
	var err error
	if in.Order == nil {
		at, err = order.Append(ctx, container)
	} else {
		at, err = order.InsertAt(ctx, container, *in.Order)
	}
	if err != nil {
		return nil, err
	}

	ts.s.nextTaskID++
	t := &domain.Task{
		ID:          ts.s.nextTaskID,
		Title:       in.Title,
		Description: in.Description,
		ColumnID:    in.ColumnID,
		Order:       at,
		CreatedAt:   time.Now().UTC(),
	}
	ts.s.tasks[t.ID] = t

	out := *t
	return &out, nil
}

// List implements store.TaskStore.List.
func (ts *TaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	ts.s.mu.Lock()
	defer ts.s.mu.Unlock()

	tasks := []*domain.Task{}
	for _, t := range ts.s.tasks {
		out := *t
		tasks = append(tasks, &out)
	}
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].ColumnID != tasks[j].ColumnID {
			return tasks[i].ColumnID < tasks[j].ColumnID
		}
		return tasks[i].Order < tasks[j].Order
	})
	return tasks, nil
}

// ListByColumn implements store.TaskStore.ListByColumn.
func (ts *TaskStore) ListByColumn(ctx context.Context, columnID int64) ([]*domain.Task, error) {
	ts.s.mu.Lock()
	defer ts.s.mu.Unlock()

	if _, ok := ts.s.columns[columnID]; !ok {
		return nil, store.ErrColumnNotFound
	}

	tasks := []*domain.Task{}
	for _, t := range ts.s.tasks {
		if t.ColumnID == columnID {
			out := *t
			tasks = append(tasks, &out)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].Order < tasks[j].Order })
	return tasks, nil
}

// GetByID implements store.TaskStore.GetByID.
func (ts *TaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	ts.s.mu.Lock()
	defer ts.s.mu.Unlock()

	t, ok := ts.s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	out := *t
	return &out, nil
}

// Update implements store.TaskStore.Update.
func (ts *TaskStore) Update(ctx context.Context, id int64, in store.UpdateTask) (*domain.Task, error) {
	if in.Title == nil && in.Description == nil && in.Order == nil {
		return ts.GetByID(ctx, id)
	}
	if in.Title != nil || in.Description != nil {
		probe := domain.Task{Title: "probe", ColumnID: 1}
		if in.Title != nil {
			probe.Title = *in.Title
		}
		if in.Description != nil {
			probe.Description = *in.Description
		}
		if err := probe.Validate(); err != nil {
			return nil, err
		}
	}

	ts.s.mu.Lock()
	defer ts.s.mu.Unlock()

	t, ok := ts.s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}

	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Order != nil {
		at, err := order.Reposition(ctx, taskContainer{s: ts.s, columnID: t.ColumnID}, t.Order, *in.Order)
		if err != nil {
			return nil, err
		}
		t.Order = at
	}

	out := *t
	return &out, nil
}

// Delete implements store.TaskStore.Delete.
func (ts *TaskStore) Delete(ctx context.Context, id int64) error {
	ts.s.mu.Lock()
	defer ts.s.mu.Unlock()

	t, ok := ts.s.tasks[id]
	if !ok {
		return store.ErrTaskNotFound
	}

	removed := t.Order
	columnID := t.ColumnID
	delete(ts.s.tasks, id)

	return order.Remove(ctx, taskContainer{s: ts.s, columnID: columnID}, removed)
}

// Reorder implements store.TaskStore.Reorder.
func (ts *TaskStore) Reorder(ctx context.Context, id int64, newOrder int) (*domain.Task, error) {
	ts.s.mu.Lock()
	defer ts.s.mu.Unlock()

	t, ok := ts.s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}

	at, err := order.Reposition(ctx, taskContainer{s: ts.s, columnID: t.ColumnID}, t.Order, newOrder)
	if err != nil {
		return nil, err
	}
	t.Order = at

	out := *t
	return &out, nil
}

// Move implements store.TaskStore.Move: room opens in the target column,
// the task changes membership, the source column closes ranks. A move to
// the task's current column is a reposition.
func (ts *TaskStore) Move(ctx context.Context, id int64, targetColumnID int64, newOrder int) (*domain.Task, error) {
	if targetColumnID <= 0 {
		return nil, domain.ErrInvalidColumnRef
	}

	ts.s.mu.Lock()
	defer ts.s.mu.Unlock()

	t, ok := ts.s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	if _, ok := ts.s.columns[targetColumnID]; !ok {
		return nil, fmt.Errorf("%w: column with ID %d not found", store.ErrInvalidEntity, targetColumnID)
	}

	if t.ColumnID == targetColumnID {
		at, err := order.Reposition(ctx, taskContainer{s: ts.s, columnID: t.ColumnID}, t.Order, newOrder)
		if err != nil {
			return nil, err
		}
		t.Order = at
		out := *t
		return &out, nil
	}

	at, err := order.InsertAt(ctx, taskContainer{s: ts.s, columnID: targetColumnID}, newOrder)
	if err != nil {
		return nil, err
	}
	source := taskContainer{s: ts.s, columnID: t.ColumnID}
	removed := t.Order
	t.ColumnID = targetColumnID
	t.Order = at
	if err := order.Remove(ctx, source, removed); err != nil {
		return nil, err
	}

	out := *t
	return &out, nil
}
