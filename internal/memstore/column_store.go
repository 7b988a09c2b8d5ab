package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/taskwall/taskwall/internal/domain"
	"github.com/taskwall/taskwall/internal/order"
	"github.com/taskwall/taskwall/internal/store"
)

// ColumnStore is the in-memory implementation of store.ColumnStore.
type ColumnStore struct {
	s *Store
}

var _ store.ColumnStore = (*ColumnStore)(nil)

// Create implements store.ColumnStore.Create.
func (cs *ColumnStore) Create(ctx context.Context, in store.CreateColumn) (*domain.Column, error) {
	probe := domain.Column{Title: in.Title}
	if err := probe.Validate(); err != nil {
		return nil, err
	}

	cs.s.mu.Lock()
	defer cs.s.mu.Unlock()

	container := columnContainer{s: cs.s}
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

	cs.s.nextColumnID++
	col := &domain.Column{
		ID:        cs.s.nextColumnID,
		Title:     in.Title,
		Order:     at,
		CreatedAt: time.Now().UTC(),
	}
	cs.s.columns[col.ID] = col

	out := *col
	return &out, nil
}

// List implements store.ColumnStore.List.
func (cs *ColumnStore) List(ctx context.Context) ([]*domain.Column, error) {
	cs.s.mu.Lock()
	defer cs.s.mu.Unlock()

	columns := []*domain.Column{}
	for _, col := range cs.s.columns {
		out := *col
		columns = append(columns, &out)
	}
	sort.Slice(columns, func(i, j int) bool { return columns[i].Order < columns[j].Order })
	return columns, nil
}

// GetByID implements store.ColumnStore.GetByID.
func (cs *ColumnStore) GetByID(ctx context.Context, id int64) (*domain.Column, error) {
	cs.s.mu.Lock()
	defer cs.s.mu.Unlock()

	col, ok := cs.s.columns[id]
	if !ok {
		return nil, store.ErrColumnNotFound
	}
	out := *col
	return &out, nil
}

// Update implements store.ColumnStore.Update.
func (cs *ColumnStore) Update(ctx context.Context, id int64, in store.UpdateColumn) (*domain.Column, error) {
	if in.Title == nil && in.Order == nil {
		return cs.GetByID(ctx, id)
	}
	if in.Title != nil {
		probe := domain.Column{Title: *in.Title}
		if err := probe.Validate(); err != nil {
			return nil, err
		}
	}

	cs.s.mu.Lock()
	defer cs.s.mu.Unlock()

	col, ok := cs.s.columns[id]
	if !ok {
		return nil, store.ErrColumnNotFound
	}

	if in.Title != nil {
		col.Title = *in.Title
	}
	if in.Order != nil {
		at, err := order.Reposition(ctx, columnContainer{s: cs.s}, col.Order, *in.Order)
		if err != nil {
			return nil, err
		}
		col.Order = at
	}

	out := *col
	return &out, nil
}

// Delete implements store.ColumnStore.Delete. Tasks of the column vanish
// with it and the remaining columns close ranks.
func (cs *ColumnStore) Delete(ctx context.Context, id int64) error {
	cs.s.mu.Lock()
	defer cs.s.mu.Unlock()

	col, ok := cs.s.columns[id]
	if !ok {
		return store.ErrColumnNotFound
	}

	for taskID, t := range cs.s.tasks {
		if t.ColumnID == id {
			delete(cs.s.tasks, taskID)
		}
	}
	removed := col.Order
	delete(cs.s.columns, id)

	return order.Remove(ctx, columnContainer{s: cs.s}, removed)
}

// Reorder implements store.ColumnStore.Reorder.
func (cs *ColumnStore) Reorder(ctx context.Context, id int64, newOrder int) (*domain.Column, error) {
	cs.s.mu.Lock()
	defer cs.s.mu.Unlock()

	col, ok := cs.s.columns[id]
	if !ok {
		return nil, store.ErrColumnNotFound
	}

	at, err := order.Reposition(ctx, columnContainer{s: cs.s}, col.Order, newOrder)
	if err != nil {
		return nil, err
	}
	col.Order = at

	out := *col
	return &out, nil
}
