package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextDue(t *testing.T) {
	now := time.Date(2026, 8, 29, 15, 4, 5, 0, time.UTC)

	t.Run("never cared for is due immediately", func(t *testing.T) {
		assert.Equal(t, now, NextDue(nil, 2, now))
	})

	t.Run("adds interval days to last care date", func(t *testing.T) {
		last := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
		assert.Equal(t, time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC), NextDue(&last, 2, now))
	})

	t.Run("crosses month boundaries", func(t *testing.T) {
		last := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC), NextDue(&last, 30, now))
	})
}

func TestOnOrBefore(t *testing.T) {
	ref := time.Date(2026, 8, 29, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		due  time.Time
		want bool
	}{
		{"same day later hour still due", time.Date(2026, 8, 29, 23, 30, 0, 0, time.UTC), true},
		{"same instant", ref, true},
		{"previous day", time.Date(2026, 8, 28, 23, 59, 0, 0, time.UTC), true},
		{"next day", time.Date(2026, 8, 30, 0, 0, 1, 0, time.UTC), false},
		{"previous month later day-of-month", time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC), true},
		{"previous year later month", time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), true},
		{"next year earlier month", time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OnOrBefore(tt.due, ref))
		})
	}
}

func TestClassifyDue(t *testing.T) {
	ref := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, DueToday, ClassifyDue(time.Date(2026, 8, 29, 23, 0, 0, 0, time.UTC), ref))
	assert.Equal(t, DueOverdue, ClassifyDue(time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC), ref))
	assert.Equal(t, DueUpcoming, ClassifyDue(time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), ref))
}

func TestIntervalDays(t *testing.T) {
	intervals := DefaultIntervals()

	t.Run("defaults", func(t *testing.T) {
		assert.Equal(t, 2, intervals.IntervalDays(&Plant{}, CareWatering))
		assert.Equal(t, 30, intervals.IntervalDays(&Plant{}, CareFertilizing))
		assert.Equal(t, 90, intervals.IntervalDays(&Plant{}, CarePruning))
	})

	t.Run("per-plant watering override", func(t *testing.T) {
		plant := &Plant{WateringDays: 7}
		assert.Equal(t, 7, intervals.IntervalDays(plant, CareWatering))
		assert.Equal(t, 30, intervals.IntervalDays(plant, CareFertilizing))
	})

	t.Run("nil plant falls back", func(t *testing.T) {
		assert.Equal(t, 2, intervals.IntervalDays(nil, CareWatering))
	})
}

func TestPlantLastCare(t *testing.T) {
	watered := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)
	plant := &Plant{LastWatered: &watered}

	assert.Equal(t, &watered, plant.LastCare(CareWatering))
	assert.Nil(t, plant.LastCare(CareFertilizing))

	now := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	plant.SetLastCare(CarePruning, now)
	assert.Equal(t, &now, plant.LastCare(CarePruning))
}
