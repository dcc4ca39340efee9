package domain

import "time"

// Default care intervals in days. Watering is overridable per plant;
// all three are overridable through configuration.
const (
	DefaultWateringDays    = 2
	DefaultFertilizingDays = 30
	DefaultPruningDays     = 90
)

// CareIntervals holds the effective interval policy for one generation pass.
type CareIntervals struct {
	WateringDays    int
	FertilizingDays int
	PruningDays     int
}

// DefaultIntervals returns the stock interval policy.
func DefaultIntervals() CareIntervals {
	return CareIntervals{
		WateringDays:    DefaultWateringDays,
		FertilizingDays: DefaultFertilizingDays,
		PruningDays:     DefaultPruningDays,
	}
}

// IntervalDays resolves the interval for a care type against a plant's
// overrides. Only watering carries a per-plant override today.
func (c CareIntervals) IntervalDays(plant *Plant, careType CareType) int {
	switch careType {
	case CareWatering:
		if plant != nil && plant.WateringDays > 0 {
			return plant.WateringDays
		}
		return c.WateringDays
	case CareFertilizing:
		return c.FertilizingDays
	case CarePruning:
		return c.PruningDays
	}
	return 0
}

// NextDue computes when the next care action of a type becomes due.
// A plant that was never cared for is due immediately.
func NextDue(lastCare *time.Time, intervalDays int, now time.Time) time.Time {
	if lastCare == nil {
		return now
	}
	return lastCare.AddDate(0, 0, intervalDays)
}

// OnOrBefore reports whether due falls on the same calendar day as ref
// or earlier. Comparison is by date, not instant, so a task due "today"
// qualifies regardless of time of day.
func OnOrBefore(due, ref time.Time) bool {
	dy, dm, dd := due.Date()
	ry, rm, rd := ref.Date()
	if dy != ry {
		return dy < ry
	}
	if dm != rm {
		return dm < rm
	}
	return dd <= rd
}

// DueStatus is the presentation classification of a task's due date.
type DueStatus string

const (
	DueOverdue  DueStatus = "overdue"
	DueToday    DueStatus = "due"
	DueUpcoming DueStatus = "upcoming"
)

// ClassifyDue buckets a due date relative to the reference day. Used for
// display only; generation is gated by OnOrBefore.
func ClassifyDue(due, ref time.Time) DueStatus {
	dy, dm, dd := due.Date()
	ry, rm, rd := ref.Date()
	switch {
	case dy == ry && dm == rm && dd == rd:
		return DueToday
	case OnOrBefore(due, ref):
		return DueOverdue
	default:
		return DueUpcoming
	}
}
