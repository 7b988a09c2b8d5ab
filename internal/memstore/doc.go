// Package memstore implements every storage interface of internal/store over
// plain maps guarded by one mutex. It backs the server when the database
// driver is set to "memory" and doubles as the store used by handler tests.
// Ordering semantics are identical to the Postgres implementation: one lock
// scope covers the shift and the entity write, so containers stay dense.
package memstore
