// Package config handles configuration loading and validation from files
// and environment variables. It gives the rest of the application type-safe
// access to its settings while keeping the sourcing details in one place.
package config
