package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskwall/taskwall/internal/domain"
)

const listKey = "todo:list"

// TodoCache stores and retrieves the todo list. GetList returns (nil, nil)
// on a miss.
type TodoCache interface {
	GetList(ctx context.Context) ([]*domain.Todo, error)
	SetList(ctx context.Context, todos []*domain.Todo) error
	Invalidate(ctx context.Context) error
}

// RedisTodoCache implements TodoCache over a Redis client, serializing the
// list as JSON under a single key with a TTL.
type RedisTodoCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisTodoCache returns a TodoCache backed by rdb. Entries expire after
// ttl.
func NewRedisTodoCache(rdb *redis.Client, ttl time.Duration) *RedisTodoCache {
	return &RedisTodoCache{rdb: rdb, ttl: ttl}
}

var _ TodoCache = (*RedisTodoCache)(nil)

// GetList returns the cached list, or (nil, nil) when the key is absent.
func (c *RedisTodoCache) GetList(ctx context.Context) ([]*domain.Todo, error) {
	b, err := c.rdb.Get(ctx, listKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var todos []*domain.Todo
	if err := json.Unmarshal(b, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

// SetList stores the list under the cache key.
func (c *RedisTodoCache) SetList(ctx context.Context, todos []*domain.Todo) error {
	b, err := json.Marshal(todos)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, listKey, b, c.ttl).Err()
}

// Invalidate drops the cached list.
func (c *RedisTodoCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, listKey).Err()
}
