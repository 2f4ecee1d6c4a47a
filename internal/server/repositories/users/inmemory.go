package users

import (
	"context"
	"sync"

	"fintrack/internal/common"
	"fintrack/internal/server/models"
)

// InMemoryRepository keeps accounts in a map. Used by tests and by the
// server when no database DSN is configured.
type InMemoryRepository struct {
	mu    sync.RWMutex
	users map[string]models.User // keyed by username
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{users: make(map[string]models.User)}
}

func (r *InMemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Username]; ok {
		return nil, common.ErrorAlreadyExists
	}
	r.users[user.Username] = *user
	return user, nil
}

func (r *InMemoryRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[username]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &user, nil
}
