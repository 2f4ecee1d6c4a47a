package records

import (
	"context"

	"fintrack/internal/models"
)

type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]models.Record, error)
	Get(ctx context.Context, id string) (models.Record, error)
	Create(ctx context.Context, rec models.Record) (models.Record, error)
	Update(ctx context.Context, rec models.Record) (models.Record, error)
	Delete(ctx context.Context, id string) (models.Record, error)
}
