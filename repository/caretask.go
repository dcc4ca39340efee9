package repository

import (
	"context"
	"time"

	"github.com/plantcare/backend/domain"
)

type TaskFilter struct {
	UserID string
	Type   domain.CareType
	Limit  int
	Offset int
}

// CareTaskRepository is the storage collaborator for care tasks. The
// mutating calls carry the engine's concurrency guards: CreatePending is
// a conditional insert that fails with domain.ErrPendingTaskExists when
// a pending task of the same (plant, type) already exists, and
// Resolve/Reschedule are conditional updates gated on pending status.
type CareTaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.CareTask, error)
	ListPending(ctx context.Context, plantID string) ([]domain.CareTask, error)
	ListResolvedByUser(ctx context.Context, filter TaskFilter) ([]domain.CareTask, error)
	CreatePending(ctx context.Context, task *domain.CareTask) (*domain.CareTask, error)
	Resolve(ctx context.Context, id string, status domain.TaskStatus, completedAt *time.Time) (*domain.CareTask, error)
	Reschedule(ctx context.Context, id string, dueDate time.Time) (*domain.CareTask, error)
}
