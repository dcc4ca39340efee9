package repository

import (
	"context"

	"github.com/plantcare/backend/domain"
)

type ReadingFilter struct {
	PlantID string
	Limit   int
	Offset  int
}

type ReadingRepository interface {
	Insert(ctx context.Context, reading *domain.Reading) (*domain.Reading, error)
	List(ctx context.Context, filter ReadingFilter) ([]domain.Reading, error)
}
