package care

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/plantcare/backend/domain"
	"github.com/plantcare/backend/repository"
)

// In-memory fakes reproducing the conditional-write contracts of the
// Postgres repositories: at most one pending task per (plant, type) on
// insert, and pending-only guards on resolve/reschedule.

type fakePlantRepo struct {
	plants         map[string]*domain.Plant
	setLastCareErr error
}

func newFakePlantRepo(plants ...*domain.Plant) *fakePlantRepo {
	repo := &fakePlantRepo{plants: make(map[string]*domain.Plant)}
	for _, p := range plants {
		clone := *p
		repo.plants[p.ID] = &clone
	}
	return repo
}

func (f *fakePlantRepo) GetByID(_ context.Context, id string) (*domain.Plant, error) {
	plant, ok := f.plants[id]
	if !ok {
		return nil, domain.ErrPlantNotFound
	}
	clone := *plant
	return &clone, nil
}

func (f *fakePlantRepo) List(_ context.Context, filter repository.PlantFilter) ([]domain.Plant, error) {
	var all []domain.Plant
	for _, p := range f.plants {
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	if filter.Offset >= len(all) {
		return nil, nil
	}
	all = all[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(all) {
		all = all[:filter.Limit]
	}
	return all, nil
}

func (f *fakePlantRepo) Create(_ context.Context, plant *domain.Plant) (*domain.Plant, error) {
	clone := *plant
	f.plants[plant.ID] = &clone
	return plant, nil
}

func (f *fakePlantRepo) Update(_ context.Context, plant *domain.Plant) error {
	if _, ok := f.plants[plant.ID]; !ok {
		return domain.ErrPlantNotFound
	}
	clone := *plant
	f.plants[plant.ID] = &clone
	return nil
}

func (f *fakePlantRepo) Upsert(_ context.Context, plant *domain.Plant) error {
	clone := *plant
	f.plants[plant.ID] = &clone
	return nil
}

func (f *fakePlantRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.plants[id]; !ok {
		return domain.ErrPlantNotFound
	}
	delete(f.plants, id)
	return nil
}

func (f *fakePlantRepo) SetLastCare(_ context.Context, id string, careType domain.CareType, when time.Time) error {
	if f.setLastCareErr != nil {
		return f.setLastCareErr
	}
	plant, ok := f.plants[id]
	if !ok {
		return domain.ErrPlantNotFound
	}
	plant.SetLastCare(careType, when)
	return nil
}

type fakeTaskRepo struct {
	tasks     map[string]*domain.CareTask
	seq       int
	createErr map[domain.CareType]error
	// raceOnCreate simulates a concurrent invocation winning the insert
	// between the generator's read and its write: the winner's task is
	// materialized and the caller's insert is declined.
	raceOnCreate map[domain.CareType]bool
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{
		tasks:        make(map[string]*domain.CareTask),
		createErr:    make(map[domain.CareType]error),
		raceOnCreate: make(map[domain.CareType]bool),
	}
}

func (f *fakeTaskRepo) GetByID(_ context.Context, id string) (*domain.CareTask, error) {
	task, ok := f.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	clone := *task
	return &clone, nil
}

func (f *fakeTaskRepo) ListPending(_ context.Context, plantID string) ([]domain.CareTask, error) {
	var pending []domain.CareTask
	for _, task := range f.tasks {
		if task.PlantID == plantID && task.Status == domain.StatusPending {
			pending = append(pending, *task)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		if !pending[i].DueDate.Equal(pending[j].DueDate) {
			return pending[i].DueDate.Before(pending[j].DueDate)
		}
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	return pending, nil
}

func (f *fakeTaskRepo) ListResolvedByUser(_ context.Context, filter repository.TaskFilter) ([]domain.CareTask, error) {
	var resolved []domain.CareTask
	for _, task := range f.tasks {
		if task.UserID != filter.UserID || task.Status == domain.StatusPending {
			continue
		}
		if filter.Type != "" && task.Type != filter.Type {
			continue
		}
		resolved = append(resolved, *task)
	}
	sort.Slice(resolved, func(i, j int) bool {
		return resolved[i].UpdatedAt.After(resolved[j].UpdatedAt)
	})
	return resolved, nil
}

func (f *fakeTaskRepo) CreatePending(_ context.Context, task *domain.CareTask) (*domain.CareTask, error) {
	if err := f.createErr[task.Type]; err != nil {
		return nil, err
	}
	if f.raceOnCreate[task.Type] {
		f.raceOnCreate[task.Type] = false
		winner := *task
		f.seq++
		winner.ID = fmt.Sprintf("task-%d", f.seq)
		winner.Status = domain.StatusPending
		winner.CreatedAt = time.Now()
		winner.UpdatedAt = winner.CreatedAt
		f.tasks[winner.ID] = &winner
		return nil, domain.ErrPendingTaskExists
	}
	for _, existing := range f.tasks {
		if existing.PlantID == task.PlantID && existing.Type == task.Type && existing.Status == domain.StatusPending {
			return nil, domain.ErrPendingTaskExists
		}
	}
	f.seq++
	clone := *task
	clone.ID = fmt.Sprintf("task-%d", f.seq)
	clone.Status = domain.StatusPending
	clone.CreatedAt = time.Now()
	clone.UpdatedAt = clone.CreatedAt
	f.tasks[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (f *fakeTaskRepo) Resolve(_ context.Context, id string, status domain.TaskStatus, completedAt *time.Time) (*domain.CareTask, error) {
	task, ok := f.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	if task.Status != domain.StatusPending {
		return nil, domain.ErrTaskNotPending
	}
	task.Status = status
	task.CompletedAt = completedAt
	task.UpdatedAt = time.Now()
	clone := *task
	return &clone, nil
}

func (f *fakeTaskRepo) Reschedule(_ context.Context, id string, dueDate time.Time) (*domain.CareTask, error) {
	task, ok := f.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	if task.Status != domain.StatusPending {
		return nil, domain.ErrTaskNotPending
	}
	task.DueDate = dueDate
	task.UpdatedAt = time.Now()
	clone := *task
	return &clone, nil
}

var (
	_ repository.PlantRepository    = (*fakePlantRepo)(nil)
	_ repository.CareTaskRepository = (*fakeTaskRepo)(nil)
)
