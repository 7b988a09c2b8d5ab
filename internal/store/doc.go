// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic: HTTP handlers depend on them, and the
// Postgres and in-memory backends implement them. The package also owns
// the shared error taxonomy and the transaction boundary helper.
package store
