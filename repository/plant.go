package repository

import (
	"context"
	"time"

	"github.com/plantcare/backend/domain"
)

type PlantFilter struct {
	UserID string
	Limit  int
	Offset int
}

type PlantRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Plant, error)
	List(ctx context.Context, filter PlantFilter) ([]domain.Plant, error)
	Create(ctx context.Context, plant *domain.Plant) (*domain.Plant, error)
	Update(ctx context.Context, plant *domain.Plant) error
	Upsert(ctx context.Context, plant *domain.Plant) error
	Delete(ctx context.Context, id string) error
	// SetLastCare advances the plant's last-care timestamp for one care
	// type without touching the rest of the row.
	SetLastCare(ctx context.Context, id string, careType domain.CareType, when time.Time) error
}
