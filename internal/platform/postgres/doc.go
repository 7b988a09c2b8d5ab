// Package postgres provides PostgreSQL-backed implementations of the data
// storage interfaces defined in the internal/store package, plus the error
// mapping from driver errors to the store's sentinel taxonomy and the
// embedded goose migrations for the schema.
//
// Ordering mutations run inside a single transaction that first takes a
// per-container advisory lock, so concurrent shifts on the same sibling set
// queue instead of interleaving.
package postgres
