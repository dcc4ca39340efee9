package care

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantcare/backend/domain"
	"github.com/plantcare/backend/repository"
)

func seedWateringTask(t *testing.T, uc *UseCase, plantID string) domain.CareTask {
	t.Helper()
	pending, err := uc.EnsureTasks(context.Background(), plantID)
	require.NoError(t, err)
	for _, task := range pending {
		if task.Type == domain.CareWatering {
			return task
		}
	}
	t.Fatalf("no pending watering task for plant %s", plantID)
	return domain.CareTask{}
}

func TestCompleteResetsCycle(t *testing.T) {
	plants := newFakePlantRepo(&domain.Plant{
		ID:             "p1",
		UserID:         "u1",
		Name:           "Basil",
		LastWatered:    daysAgo(3),
		LastFertilized: daysAgo(1),
		LastPruned:     daysAgo(1),
	})
	tasks := newFakeTaskRepo()
	uc := newTestEngine(plants, tasks)

	task := seedWateringTask(t, uc, "p1")

	result, err := uc.Complete(context.Background(), task.ID)
	require.NoError(t, err)
	require.NotNil(t, result.Task)
	assert.Equal(t, domain.StatusCompleted, result.Task.Status)
	require.NotNil(t, result.Task.CompletedAt)
	assert.Equal(t, testNow, *result.Task.CompletedAt)

	plant, err := plants.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	require.NotNil(t, plant.LastWatered)
	assert.Equal(t, testNow, *plant.LastWatered)

	// Freshly watered: the refreshed list holds no watering task, and
	// neither does a later generation pass.
	assert.Empty(t, result.Pending)
	pending, err := uc.EnsureTasks(context.Background(), "p1")
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestSkipDoesNotResetCycle(t *testing.T) {
	plants := newFakePlantRepo(&domain.Plant{
		ID:             "p1",
		UserID:         "u1",
		Name:           "Mint",
		LastWatered:    daysAgo(3),
		LastFertilized: daysAgo(1),
		LastPruned:     daysAgo(1),
	})
	tasks := newFakeTaskRepo()
	uc := newTestEngine(plants, tasks)

	task := seedWateringTask(t, uc, "p1")

	result, err := uc.Skip(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSkipped, result.Task.Status)
	assert.Nil(t, result.Task.CompletedAt)

	plant, err := plants.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, daysAgo(3), plant.LastWatered, "skipping is not caring")

	// The plant is still due, so the refresh immediately regenerated a
	// new pending task.
	require.Len(t, result.Pending, 1)
	assert.Equal(t, domain.CareWatering, result.Pending[0].Type)
	assert.NotEqual(t, task.ID, result.Pending[0].ID)
}

func TestCompleteTwiceIsRejected(t *testing.T) {
	plants := newFakePlantRepo(&domain.Plant{
		ID:             "p1",
		UserID:         "u1",
		Name:           "Aloe",
		LastFertilized: daysAgo(1),
		LastPruned:     daysAgo(1),
	})
	tasks := newFakeTaskRepo()
	uc := newTestEngine(plants, tasks)

	task := seedWateringTask(t, uc, "p1")

	first, err := uc.Complete(context.Background(), task.ID)
	require.NoError(t, err)
	firstCompletedAt := *first.Task.CompletedAt

	_, err = uc.Complete(context.Background(), task.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTaskNotPending)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeConflict))

	stored, err := tasks.GetByID(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, firstCompletedAt, *stored.CompletedAt, "no double-applied side effects")
}

func TestCompleteUnknownTask(t *testing.T) {
	uc := newTestEngine(newFakePlantRepo(), newFakeTaskRepo())

	_, err := uc.Complete(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestCompleteSurfacesPlantUpdateFailure(t *testing.T) {
	plants := newFakePlantRepo(&domain.Plant{
		ID:             "p1",
		UserID:         "u1",
		Name:           "Rose",
		LastFertilized: daysAgo(1),
		LastPruned:     daysAgo(1),
	})
	tasks := newFakeTaskRepo()
	uc := newTestEngine(plants, tasks)

	task := seedWateringTask(t, uc, "p1")

	plants.setLastCareErr = domain.WrapError(domain.ErrCodeInternal, "storage unavailable", nil)
	_, err := uc.Complete(context.Background(), task.ID)
	require.Error(t, err, "a user-intended change must not be silently dropped")

	// Recovery: the last-care date never advanced, so the generator
	// recreates the reminder.
	plants.setLastCareErr = nil
	pending, err := uc.EnsureTasks(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, domain.CareWatering, pending[0].Type)
}

func TestReschedule(t *testing.T) {
	plants := newFakePlantRepo(&domain.Plant{
		ID:             "p1",
		UserID:         "u1",
		Name:           "Orchid",
		LastFertilized: daysAgo(1),
		LastPruned:     daysAgo(1),
	})
	tasks := newFakeTaskRepo()
	uc := newTestEngine(plants, tasks)

	task := seedWateringTask(t, uc, "p1")
	newDue := testNow.AddDate(0, 0, 3)

	result, err := uc.Reschedule(context.Background(), task.ID, newDue)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, result.Task.Status)
	assert.Equal(t, newDue, result.Task.DueDate)

	plant, err := plants.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Nil(t, plant.LastWatered, "rescheduling records no care")

	// The pushed-out task still occupies its (plant, type) slot, so the
	// generator does not create a second one.
	require.Len(t, result.Pending, 1)
	assert.Equal(t, task.ID, result.Pending[0].ID)
}

func TestRescheduleResolvedTask(t *testing.T) {
	plants := newFakePlantRepo(&domain.Plant{
		ID:             "p1",
		UserID:         "u1",
		Name:           "Fig",
		LastFertilized: daysAgo(1),
		LastPruned:     daysAgo(1),
	})
	tasks := newFakeTaskRepo()
	uc := newTestEngine(plants, tasks)

	task := seedWateringTask(t, uc, "p1")
	_, err := uc.Complete(context.Background(), task.ID)
	require.NoError(t, err)

	_, err = uc.Reschedule(context.Background(), task.ID, testNow.AddDate(0, 0, 1))
	assert.ErrorIs(t, err, domain.ErrTaskNotPending)
}

func TestHistory(t *testing.T) {
	plants := newFakePlantRepo(&domain.Plant{ID: "p1", UserID: "u1", Name: "Jade"})
	tasks := newFakeTaskRepo()
	uc := newTestEngine(plants, tasks)

	pending, err := uc.EnsureTasks(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, pending, 3)

	byType := map[domain.CareType]domain.CareTask{}
	for _, task := range pending {
		byType[task.Type] = task
	}
	_, err = uc.Complete(context.Background(), byType[domain.CareWatering].ID)
	require.NoError(t, err)
	_, err = uc.Skip(context.Background(), byType[domain.CareFertilizing].ID)
	require.NoError(t, err)

	history, err := uc.History(context.Background(), repository.TaskFilter{UserID: "u1"})
	require.NoError(t, err)
	assert.Len(t, history, 2, "resolved tasks stay as history; pending ones are excluded")

	watering, err := uc.History(context.Background(), repository.TaskFilter{UserID: "u1", Type: domain.CareWatering})
	require.NoError(t, err)
	require.Len(t, watering, 1)
	assert.Equal(t, domain.CareWatering, watering[0].Type)
}
