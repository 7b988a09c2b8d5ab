package cache

import (
	"context"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/taskwall/taskwall/internal/domain"
	"github.com/taskwall/taskwall/internal/platform/logger"
	"github.com/taskwall/taskwall/internal/store"
)

// CachedTodoStore decorates a store.TodoStore with a read-through list
// cache. Concurrent List calls collapse into one store read; every write
// invalidates. Cache errors are logged and swallowed so the store remains
// the source of truth.
type CachedTodoStore struct {
	next   store.TodoStore
	cache  TodoCache
	sf     singleflight.Group
	logger *slog.Logger
}

// NewCachedTodoStore wraps next with cache. If logger is nil, a default
// logger will be used.
func NewCachedTodoStore(next store.TodoStore, cache TodoCache, logger *slog.Logger) *CachedTodoStore {
	if next == nil {
		panic("next cannot be nil")
	}
	if cache == nil {
		panic("cache cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedTodoStore{
		next:   next,
		cache:  cache,
		logger: logger.With(slog.String("component", "todo_cache")),
	}
}

var _ store.TodoStore = (*CachedTodoStore)(nil)

// List implements store.TodoStore.List through the cache.
func (s *CachedTodoStore) List(ctx context.Context) ([]*domain.Todo, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	v, err, _ := s.sf.Do(listKey, func() (interface{}, error) {
		cached, err := s.cache.GetList(ctx)
		if err != nil {
			log.Warn("todo cache read failed", slog.String("error", err.Error()))
		} else if cached != nil {
			return cached, nil
		}

		todos, err := s.next.List(ctx)
		if err != nil {
			return nil, err
		}
		if err := s.cache.SetList(ctx, todos); err != nil {
			log.Warn("todo cache write failed", slog.String("error", err.Error()))
		}
		return todos, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]*domain.Todo), nil
}

// GetByID implements store.TodoStore.GetByID. Single reads skip the cache.
func (s *CachedTodoStore) GetByID(ctx context.Context, id int64) (*domain.Todo, error) {
	return s.next.GetByID(ctx, id)
}

// Create implements store.TodoStore.Create and invalidates the list.
func (s *CachedTodoStore) Create(ctx context.Context, in store.CreateTodo) (*domain.Todo, error) {
	created, err := s.next.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return created, nil
}

// Update implements store.TodoStore.Update and invalidates the list.
func (s *CachedTodoStore) Update(ctx context.Context, id int64, in store.UpdateTodo) (*domain.Todo, error) {
	updated, err := s.next.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return updated, nil
}

// Delete implements store.TodoStore.Delete and invalidates the list.
func (s *CachedTodoStore) Delete(ctx context.Context, id int64) error {
	if err := s.next.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// SetCompleted implements store.TodoStore.SetCompleted and invalidates the
// list.
func (s *CachedTodoStore) SetCompleted(ctx context.Context, id int64, completed bool) (*domain.Todo, error) {
	updated, err := s.next.SetCompleted(ctx, id, completed)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return updated, nil
}

func (s *CachedTodoStore) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		log := logger.FromContextOrDefault(ctx, s.logger)
		log.Warn("todo cache invalidation failed", slog.String("error", err.Error()))
	}
}
