package records

import (
	"context"
	"sort"
	"sync"

	"fintrack/internal/common"
	"fintrack/internal/models"
)

// InMemoryRepository keeps records in a map. Used by tests and by the server
// when no database DSN is configured.
type InMemoryRepository struct {
	mu      sync.RWMutex
	records map[string]models.Record // keyed by record id
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{records: make(map[string]models.Record)}
}

func (r *InMemoryRepository) ListByUser(ctx context.Context, userID string) ([]models.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []models.Record
	for _, rec := range r.records {
		if rec.UserID == userID {
			result = append(result, rec)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *InMemoryRepository) Get(ctx context.Context, id string) (models.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[id]
	if !ok {
		return models.Record{}, common.ErrorNotFound
	}
	return rec, nil
}

func (r *InMemoryRepository) Create(ctx context.Context, rec models.Record) (models.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[rec.ID]; ok {
		return models.Record{}, common.ErrorAlreadyExists
	}
	r.records[rec.ID] = rec
	return rec, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, rec models.Record) (models.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[rec.ID]; !ok {
		return models.Record{}, common.ErrorNotFound
	}
	r.records[rec.ID] = rec
	return rec, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) (models.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return models.Record{}, common.ErrorNotFound
	}
	delete(r.records, id)
	return rec, nil
}
