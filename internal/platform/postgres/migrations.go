package postgres

import "embed"

// MigrationsDir is the path inside Migrations where the goose SQL files live.
const MigrationsDir = "migrations"

// Migrations holds the embedded goose migration files so the binary can
// migrate any database it can reach without a checkout on disk.
//
//go:embed migrations/*.sql
var Migrations embed.FS
