// Package db wires repository implementations to their backing storage.
package db

import (
	"context"
	"database/sql"

	"fintrack/internal/server/repositories/records"
	"fintrack/internal/server/repositories/users"
)

// RepositoryManager hands out the repositories a storage backend provides.
type RepositoryManager interface {
	Conn() *sql.DB
	RunMigrations(ctx context.Context) error
	Users() users.Repository
	Records() records.Repository
	Close() error
}
