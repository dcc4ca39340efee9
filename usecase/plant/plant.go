package plant

import (
	"context"

	"go.uber.org/zap"

	"github.com/plantcare/backend/domain"
	"github.com/plantcare/backend/repository"
	"github.com/plantcare/backend/usecase"
)

type UseCase struct {
	plants repository.PlantRepository
	buffer usecase.OperationBuffer
	logger *zap.Logger
}

func New(plants repository.PlantRepository, buffer usecase.OperationBuffer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		plants: plants,
		buffer: buffer,
		logger: logger,
	}
}

func (uc *UseCase) ListPlants(ctx context.Context, filter repository.PlantFilter) ([]domain.Plant, error) {
	return uc.plants.List(ctx, filter)
}

func (uc *UseCase) GetPlant(ctx context.Context, id string) (*domain.Plant, error) {
	return uc.plants.GetByID(ctx, id)
}

func (uc *UseCase) CreatePlant(ctx context.Context, plant *domain.Plant) (*domain.Plant, error) {
	created, err := uc.plants.Create(ctx, plant)
	if err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationCreate, plant) {
			return plant, nil
		}
		return nil, err
	}
	return created, nil
}

func (uc *UseCase) UpdatePlant(ctx context.Context, plant *domain.Plant) (*domain.Plant, error) {
	if err := uc.plants.Update(ctx, plant); err != nil {
		if err == domain.ErrPlantNotFound {
			return nil, err
		}
		if uc.shouldBuffer(ctx, usecase.OperationUpdate, plant) {
			return plant, nil
		}
		return nil, err
	}
	return plant, nil
}

func (uc *UseCase) DeletePlant(ctx context.Context, id string) error {
	return uc.plants.Delete(ctx, id)
}

func (uc *UseCase) shouldBuffer(ctx context.Context, operation string, plant *domain.Plant) bool {
	if uc.buffer == nil {
		return false
	}
	if err := uc.buffer.BufferPlant(ctx, operation, plant); err != nil {
		uc.logger.Error("failed to buffer plant operation", zap.String("operation", operation), zap.Error(err))
		return false
	}
	uc.logger.Warn("plant operation buffered", zap.String("operation", operation))
	return true
}
