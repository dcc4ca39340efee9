package care

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/plantcare/backend/domain"
)

// EnsureTasks brings the plant's pending tasks up to date and returns
// them. For each care type it computes the next due date from the
// plant's last-care timestamp and creates a pending task when that date
// has arrived, unless one already exists. Safe to call on every page
// load: the repository's conditional insert guarantees at most one
// pending task per (plant, type) no matter how often or how concurrently
// this runs.
func (uc *UseCase) EnsureTasks(ctx context.Context, plantID string) ([]domain.CareTask, error) {
	plant, err := uc.plants.GetByID(ctx, plantID)
	if err != nil {
		return nil, err
	}

	pending, err := uc.tasks.ListPending(ctx, plantID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	byType := uc.collapsePending(pending)
	raced := false

	for _, careType := range domain.CareTypes {
		if _, ok := byType[careType]; ok {
			continue
		}

		lastCare := plant.LastCare(careType)
		dueDate := domain.NextDue(lastCare, uc.intervals.IntervalDays(plant, careType), now)
		if !domain.OnOrBefore(dueDate, now) {
			continue
		}

		task := &domain.CareTask{
			PlantID:      plant.ID,
			UserID:       plant.UserID,
			Type:         careType,
			DueDate:      dueDate,
			LastCareDate: lastCare,
		}

		created, err := uc.tasks.CreatePending(ctx, task)
		if err != nil {
			if errors.Is(err, domain.ErrPendingTaskExists) {
				// A concurrent invocation created it first; pick it up below.
				raced = true
				continue
			}
			// Isolated per type: the remaining types still generate and
			// the next invocation retries this one.
			uc.logger.Error("care task generation failed",
				zap.String("plant_id", plant.ID),
				zap.String("care_type", string(careType)),
				zap.Error(err))
			continue
		}
		byType[careType] = *created
	}

	if raced {
		refreshed, err := uc.tasks.ListPending(ctx, plantID)
		if err != nil {
			return nil, err
		}
		byType = uc.collapsePending(refreshed)
	}

	result := make([]domain.CareTask, 0, len(byType))
	for _, careType := range domain.CareTypes {
		if task, ok := byType[careType]; ok {
			result = append(result, task)
		}
	}
	return result, nil
}

// collapsePending keeps the oldest pending task per care type. The store
// enforces uniqueness, so duplicates only appear if the guard was ever
// bypassed; collapsing on read keeps a single reminder visible even then.
func (uc *UseCase) collapsePending(pending []domain.CareTask) map[domain.CareType]domain.CareTask {
	byType := make(map[domain.CareType]domain.CareTask, len(pending))
	for _, task := range pending {
		if _, ok := byType[task.Type]; ok {
			uc.logger.Warn("duplicate pending care task found",
				zap.String("plant_id", task.PlantID),
				zap.String("care_type", string(task.Type)),
				zap.String("task_id", task.ID))
			continue
		}
		byType[task.Type] = task
	}
	return byType
}
