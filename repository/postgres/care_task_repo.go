package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plantcare/backend/domain"
	"github.com/plantcare/backend/repository"
)

type careTaskRepository struct {
	pool *pgxpool.Pool
}

// NewCareTaskRepository returns a Postgres-backed implementation of CareTaskRepository.
func NewCareTaskRepository(pool *pgxpool.Pool) repository.CareTaskRepository {
	return &careTaskRepository{pool: pool}
}

const taskColumns = `id, plant_id, user_id, care_type, status, due_date, last_care_date, completed_at, created_at, updated_at`

func (r *careTaskRepository) GetByID(ctx context.Context, id string) (*domain.CareTask, error) {
	const query = `
	SELECT ` + taskColumns + `
	FROM care_tasks
	WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	return scanTask(row)
}

func (r *careTaskRepository) ListPending(ctx context.Context, plantID string) ([]domain.CareTask, error) {
	const query = `
	SELECT ` + taskColumns + `
	FROM care_tasks
	WHERE plant_id = $1 AND status = 'pending'
	ORDER BY due_date ASC, created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, plantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTasks(rows)
}

func (r *careTaskRepository) ListResolvedByUser(ctx context.Context, filter repository.TaskFilter) ([]domain.CareTask, error) {
	const query = `
	SELECT ` + taskColumns + `
	FROM care_tasks
	WHERE user_id = $1
	  AND status IN ('completed', 'skipped')
	  AND ($2 = '' OR care_type = $2)
	ORDER BY updated_at DESC
	LIMIT $3 OFFSET $4
	`
	rows, err := r.pool.Query(ctx, query, filter.UserID, string(filter.Type), clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTasks(rows)
}

// CreatePending inserts a pending task unless one already exists for the
// same (plant, type). The WHERE NOT EXISTS makes the check-then-act a
// single statement; the partial unique index in the schema backs it up
// under concurrent inserts.
func (r *careTaskRepository) CreatePending(ctx context.Context, task *domain.CareTask) (*domain.CareTask, error) {
	if task == nil || task.PlantID == "" || !task.Type.IsValid() {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	task.Status = domain.StatusPending

	const query = `
	INSERT INTO care_tasks (id, plant_id, user_id, care_type, status, due_date, last_care_date)
	SELECT $1, $2, $3, $4, 'pending', $5, $6
	WHERE NOT EXISTS (
		SELECT 1 FROM care_tasks
		WHERE plant_id = $2 AND care_type = $4 AND status = 'pending'
	)
	RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.PlantID,
		task.UserID,
		string(task.Type),
		task.DueDate,
		nullTimePtr(task.LastCareDate),
	).Scan(&task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPendingTaskExists
		}
		if isUniqueViolation(err) {
			return nil, domain.ErrPendingTaskExists
		}
		return nil, err
	}

	return task, nil
}

// Resolve transitions a pending task to completed or skipped. The status
// guard lives in the UPDATE itself so a concurrent double-resolve loses
// cleanly instead of double-applying.
func (r *careTaskRepository) Resolve(ctx context.Context, id string, status domain.TaskStatus, completedAt *time.Time) (*domain.CareTask, error) {
	if status != domain.StatusCompleted && status != domain.StatusSkipped {
		return nil, domain.ErrInvalidPayload
	}

	const query = `
	UPDATE care_tasks
	SET status = $2,
		completed_at = $3,
		updated_at = NOW()
	WHERE id = $1 AND status = 'pending'
	RETURNING ` + taskColumns + `
	`

	row := r.pool.QueryRow(ctx, query, id, string(status), nullTimePtr(completedAt))
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return nil, r.classifyMiss(ctx, id)
		}
		return nil, err
	}
	return task, nil
}

func (r *careTaskRepository) Reschedule(ctx context.Context, id string, dueDate time.Time) (*domain.CareTask, error) {
	const query = `
	UPDATE care_tasks
	SET due_date = $2,
		updated_at = NOW()
	WHERE id = $1 AND status = 'pending'
	RETURNING ` + taskColumns + `
	`

	row := r.pool.QueryRow(ctx, query, id, dueDate)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return nil, r.classifyMiss(ctx, id)
		}
		return nil, err
	}
	return task, nil
}

// classifyMiss distinguishes "no such task" from "task exists but is not
// pending" after a guarded update matched zero rows.
func (r *careTaskRepository) classifyMiss(ctx context.Context, id string) error {
	const query = `SELECT status FROM care_tasks WHERE id = $1`
	var status string
	if err := r.pool.QueryRow(ctx, query, id).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTaskNotFound
		}
		return err
	}
	return domain.ErrTaskNotPending
}

func collectTasks(rows pgx.Rows) ([]domain.CareTask, error) {
	var tasks []domain.CareTask
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func scanTask(row interface {
	Scan(dest ...interface{}) error
}) (*domain.CareTask, error) {
	var task domain.CareTask
	var careType, status string

	if err := row.Scan(
		&task.ID,
		&task.PlantID,
		&task.UserID,
		&careType,
		&status,
		&task.DueDate,
		&task.LastCareDate,
		&task.CompletedAt,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	task.Type = domain.CareType(careType)
	task.Status = domain.TaskStatus(status)
	return &task, nil
}
