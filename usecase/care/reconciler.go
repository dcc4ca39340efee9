package care

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/plantcare/backend/domain"
	"github.com/plantcare/backend/repository"
)

// ReconcileResult carries the mutated task together with the plant's
// refreshed pending list, so callers can re-render without a second
// request.
type ReconcileResult struct {
	Task    *domain.CareTask  `json:"task"`
	Pending []domain.CareTask `json:"pending"`
}

// Complete resolves a pending task and advances the plant's last-care
// timestamp for the task's type. The next generation pass computes the
// fresh due date from that timestamp; this method does not schedule
// anything itself.
func (uc *UseCase) Complete(ctx context.Context, taskID string) (*ReconcileResult, error) {
	now := uc.now()

	task, err := uc.tasks.Resolve(ctx, taskID, domain.StatusCompleted, &now)
	if err != nil {
		return nil, err
	}

	if err := uc.plants.SetLastCare(ctx, task.PlantID, task.Type, now); err != nil {
		// Surfaced, not swallowed: the task is resolved but the plant
		// still looks uncared-for, so the next generation pass recreates
		// a task instead of losing the reminder.
		uc.logger.Error("failed to record care on plant",
			zap.String("plant_id", task.PlantID),
			zap.String("care_type", string(task.Type)),
			zap.Error(err))
		return nil, err
	}

	return uc.reconciled(ctx, task), nil
}

// Skip resolves a pending task without recording care. The plant's
// last-care timestamp is untouched on purpose: skipping is not caring,
// and the generator may immediately recreate a task if the plant is
// still due.
func (uc *UseCase) Skip(ctx context.Context, taskID string) (*ReconcileResult, error) {
	task, err := uc.tasks.Resolve(ctx, taskID, domain.StatusSkipped, nil)
	if err != nil {
		return nil, err
	}
	return uc.reconciled(ctx, task), nil
}

// Reschedule moves a pending task's due date. Status and plant are untouched.
func (uc *UseCase) Reschedule(ctx context.Context, taskID string, dueDate time.Time) (*ReconcileResult, error) {
	if dueDate.IsZero() {
		return nil, domain.ErrInvalidPayload
	}
	task, err := uc.tasks.Reschedule(ctx, taskID, dueDate)
	if err != nil {
		return nil, err
	}
	return uc.reconciled(ctx, task), nil
}

// History lists the user's resolved tasks, newest first.
func (uc *UseCase) History(ctx context.Context, filter repository.TaskFilter) ([]domain.CareTask, error) {
	return uc.tasks.ListResolvedByUser(ctx, filter)
}

// Now exposes the engine's clock for presentation-side due classification.
func (uc *UseCase) Now() time.Time {
	return uc.now()
}

// reconciled refreshes the pending list after a mutation. The action
// itself already succeeded, so a refresh failure is logged rather than
// turned into an error.
func (uc *UseCase) reconciled(ctx context.Context, task *domain.CareTask) *ReconcileResult {
	pending, err := uc.EnsureTasks(ctx, task.PlantID)
	if err != nil {
		uc.logger.Warn("failed to refresh pending tasks after reconciliation",
			zap.String("plant_id", task.PlantID),
			zap.Error(err))
		pending = nil
	}
	return &ReconcileResult{Task: task, Pending: pending}
}
