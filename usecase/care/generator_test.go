package care

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantcare/backend/domain"
)

var testNow = time.Date(2026, 8, 29, 15, 4, 5, 0, time.UTC)

func newTestEngine(plants *fakePlantRepo, tasks *fakeTaskRepo) *UseCase {
	uc := New(plants, tasks, domain.DefaultIntervals(), nil)
	uc.now = func() time.Time { return testNow }
	return uc
}

func daysAgo(n int) *time.Time {
	t := testNow.AddDate(0, 0, -n)
	return &t
}

func TestEnsureTasksFirstTimePlant(t *testing.T) {
	// A plant with no care history is immediately due for all three
	// care types: an unknown last-care date means due today.
	plants := newFakePlantRepo(&domain.Plant{ID: "p1", UserID: "u1", Name: "Monstera", AcquiredAt: &testNow})
	tasks := newFakeTaskRepo()
	uc := newTestEngine(plants, tasks)

	got, err := uc.EnsureTasks(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, got, 3)

	byType := map[domain.CareType]domain.CareTask{}
	for _, task := range got {
		byType[task.Type] = task
		assert.Equal(t, domain.StatusPending, task.Status)
		assert.Equal(t, domain.DueToday, domain.ClassifyDue(task.DueDate, testNow))
		assert.Nil(t, task.LastCareDate)
	}
	assert.Len(t, byType, 3)
}

func TestEnsureTasksIdempotent(t *testing.T) {
	plants := newFakePlantRepo(&domain.Plant{ID: "p1", UserID: "u1", Name: "Fern"})
	tasks := newFakeTaskRepo()
	uc := newTestEngine(plants, tasks)

	first, err := uc.EnsureTasks(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, first, 3)

	for i := 0; i < 5; i++ {
		again, err := uc.EnsureTasks(context.Background(), "p1")
		require.NoError(t, err)
		require.Len(t, again, 3)
		for j := range first {
			assert.Equal(t, first[j].ID, again[j].ID)
		}
	}

	assert.Len(t, tasks.tasks, 3)
}

func TestEnsureTasksDueDateCorrectness(t *testing.T) {
	tests := []struct {
		name        string
		lastWatered *time.Time
		wantTask    bool
	}{
		{"watered yesterday, interval 2, not due", daysAgo(1), false},
		{"watered two days ago, due", daysAgo(2), true},
		{"watered five days ago, overdue", daysAgo(5), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plants := newFakePlantRepo(&domain.Plant{
				ID:             "p1",
				UserID:         "u1",
				Name:           "Pothos",
				LastWatered:    tt.lastWatered,
				LastFertilized: daysAgo(1),
				LastPruned:     daysAgo(1),
			})
			tasks := newFakeTaskRepo()
			uc := newTestEngine(plants, tasks)

			got, err := uc.EnsureTasks(context.Background(), "p1")
			require.NoError(t, err)

			if !tt.wantTask {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, domain.CareWatering, got[0].Type)
			assert.Equal(t, tt.lastWatered, got[0].LastCareDate)
			assert.Equal(t, tt.lastWatered.AddDate(0, 0, 2), got[0].DueDate)
		})
	}
}

func TestEnsureTasksSameDayLaterTime(t *testing.T) {
	// Due at 23:00 tonight still counts as due now at 15:04: the test is
	// by calendar date, not instant.
	last := testNow.AddDate(0, 0, -2).Add(8 * time.Hour)
	plants := newFakePlantRepo(&domain.Plant{
		ID:             "p1",
		UserID:         "u1",
		Name:           "Calathea",
		LastWatered:    &last,
		LastFertilized: daysAgo(1),
		LastPruned:     daysAgo(1),
	})
	uc := newTestEngine(plants, newFakeTaskRepo())

	got, err := uc.EnsureTasks(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.CareWatering, got[0].Type)
	assert.True(t, got[0].DueDate.After(testNow))
}

func TestEnsureTasksPerPlantWateringInterval(t *testing.T) {
	plants := newFakePlantRepo(&domain.Plant{
		ID:             "p1",
		UserID:         "u1",
		Name:           "Cactus",
		WateringDays:   14,
		LastWatered:    daysAgo(7),
		LastFertilized: daysAgo(1),
		LastPruned:     daysAgo(1),
	})
	uc := newTestEngine(plants, newFakeTaskRepo())

	got, err := uc.EnsureTasks(context.Background(), "p1")
	require.NoError(t, err)
	assert.Empty(t, got, "7 days into a 14-day interval nothing is due")
}

func TestEnsureTasksPartialFailureIsolated(t *testing.T) {
	plants := newFakePlantRepo(&domain.Plant{ID: "p1", UserID: "u1", Name: "Ivy"})
	tasks := newFakeTaskRepo()
	tasks.createErr[domain.CareFertilizing] = domain.WrapError(domain.ErrCodeInternal, "storage unavailable", nil)
	uc := newTestEngine(plants, tasks)

	got, err := uc.EnsureTasks(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, got, 2, "watering and pruning generate despite the fertilizing failure")

	// Storage recovers; the next invocation fills the gap without
	// duplicating the survivors.
	delete(tasks.createErr, domain.CareFertilizing)
	got, err = uc.EnsureTasks(context.Background(), "p1")
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Len(t, tasks.tasks, 3)
}

func TestEnsureTasksLostInsertRace(t *testing.T) {
	plants := newFakePlantRepo(&domain.Plant{
		ID:             "p1",
		UserID:         "u1",
		Name:           "Palm",
		LastFertilized: daysAgo(1),
		LastPruned:     daysAgo(1),
	})
	tasks := newFakeTaskRepo()
	tasks.raceOnCreate[domain.CareWatering] = true
	uc := newTestEngine(plants, tasks)

	got, err := uc.EnsureTasks(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.CareWatering, got[0].Type, "the winner's task is returned, not an error")
	assert.Len(t, tasks.tasks, 1, "losing the race creates nothing extra")
}

func TestEnsureTasksCollapsesDuplicatePending(t *testing.T) {
	// If the insert guard was ever bypassed (degraded storage without
	// conditional writes), reads collapse to one task per type instead
	// of surfacing duplicate reminders.
	plants := newFakePlantRepo(&domain.Plant{
		ID:             "p1",
		UserID:         "u1",
		Name:           "Bonsai",
		LastFertilized: daysAgo(1),
		LastPruned:     daysAgo(1),
	})
	tasks := newFakeTaskRepo()
	older := testNow.Add(-time.Hour)
	tasks.tasks["dup-1"] = &domain.CareTask{
		ID: "dup-1", PlantID: "p1", UserID: "u1", Type: domain.CareWatering,
		Status: domain.StatusPending, DueDate: testNow, CreatedAt: older, UpdatedAt: older,
	}
	tasks.tasks["dup-2"] = &domain.CareTask{
		ID: "dup-2", PlantID: "p1", UserID: "u1", Type: domain.CareWatering,
		Status: domain.StatusPending, DueDate: testNow, CreatedAt: testNow, UpdatedAt: testNow,
	}
	uc := newTestEngine(plants, tasks)

	got, err := uc.EnsureTasks(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "dup-1", got[0].ID, "the oldest pending task wins")
}

func TestEnsureTasksUnknownPlant(t *testing.T) {
	uc := newTestEngine(newFakePlantRepo(), newFakeTaskRepo())

	_, err := uc.EnsureTasks(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrPlantNotFound)
}
