// Package api handles incoming HTTP requests, request validation, and
// response formatting. It acts as an adapter between external clients and
// the store layer, translating HTTP concerns to board operations while the
// stores maintain the dense ordering invariants.
package api
