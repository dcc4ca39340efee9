// Package care implements the care-task scheduling engine: an idempotent
// generator that materializes due tasks and a reconciler that applies
// owner actions to them.
package care

import (
	"time"

	"go.uber.org/zap"

	"github.com/plantcare/backend/domain"
	"github.com/plantcare/backend/repository"
)

type UseCase struct {
	plants    repository.PlantRepository
	tasks     repository.CareTaskRepository
	intervals domain.CareIntervals
	logger    *zap.Logger
	now       func() time.Time
}

func New(plants repository.PlantRepository, tasks repository.CareTaskRepository, intervals domain.CareIntervals, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if intervals.WateringDays <= 0 {
		intervals.WateringDays = domain.DefaultWateringDays
	}
	if intervals.FertilizingDays <= 0 {
		intervals.FertilizingDays = domain.DefaultFertilizingDays
	}
	if intervals.PruningDays <= 0 {
		intervals.PruningDays = domain.DefaultPruningDays
	}
	return &UseCase{
		plants:    plants,
		tasks:     tasks,
		intervals: intervals,
		logger:    logger,
		now:       time.Now,
	}
}
