// Package domain contains the core business entities and validation rules of
// the task board, independent of any persistence or delivery mechanism.
package domain
