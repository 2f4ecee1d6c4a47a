package db

import (
	"context"
	"database/sql"

	"fintrack/internal/server/repositories/records"
	"fintrack/internal/server/repositories/users"
)

// InMemoryRepositoryManager backs the repositories with process memory.
// Data does not survive a restart.
type InMemoryRepositoryManager struct {
	users   users.Repository
	records records.Repository
}

func (m InMemoryRepositoryManager) Conn() *sql.DB {
	return nil
}

func (m InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m InMemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m InMemoryRepositoryManager) Records() records.Repository {
	return m.records
}

func (m InMemoryRepositoryManager) Close() error {
	return nil
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return InMemoryRepositoryManager{
		users:   users.NewInMemoryRepository(),
		records: records.NewInMemoryRepository(),
	}
}
