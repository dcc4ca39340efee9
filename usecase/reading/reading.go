package reading

import (
	"context"

	"go.uber.org/zap"

	"github.com/plantcare/backend/domain"
	"github.com/plantcare/backend/repository"
	"github.com/plantcare/backend/usecase"
)

type UseCase struct {
	readings repository.ReadingRepository
	plants   repository.PlantRepository
	buffer   usecase.OperationBuffer
	logger   *zap.Logger
}

func New(readings repository.ReadingRepository, plants repository.PlantRepository, buffer usecase.OperationBuffer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		readings: readings,
		plants:   plants,
		buffer:   buffer,
		logger:   logger,
	}
}

// Record persists an environment reading. When the primary store is
// unreachable the reading is buffered and synced later; a measurement is
// better late than lost.
func (uc *UseCase) Record(ctx context.Context, reading *domain.Reading) (*domain.Reading, error) {
	if reading == nil || reading.PlantID == "" {
		return nil, domain.ErrInvalidPayload
	}

	if _, err := uc.plants.GetByID(ctx, reading.PlantID); err != nil {
		return nil, err
	}

	stored, err := uc.readings.Insert(ctx, reading)
	if err != nil {
		if uc.shouldBuffer(ctx, reading) {
			return reading, nil
		}
		return nil, err
	}
	return stored, nil
}

func (uc *UseCase) ListReadings(ctx context.Context, filter repository.ReadingFilter) ([]domain.Reading, error) {
	return uc.readings.List(ctx, filter)
}

func (uc *UseCase) shouldBuffer(ctx context.Context, reading *domain.Reading) bool {
	if uc.buffer == nil {
		return false
	}
	if err := uc.buffer.BufferReading(ctx, reading); err != nil {
		uc.logger.Error("failed to buffer reading", zap.String("plant_id", reading.PlantID), zap.Error(err))
		return false
	}
	uc.logger.Warn("reading buffered", zap.String("plant_id", reading.PlantID))
	return true
}
