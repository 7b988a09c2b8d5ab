// Package cache provides an optional read-through cache for the todo list.
// A Redis-backed TodoCache holds the serialized list; CachedTodoStore wraps
// any store.TodoStore with it, collapsing concurrent list reads through
// singleflight and invalidating on every write. Cache trouble never fails a
// request; the store answers instead.
package cache
