package domain

import "time"

// Plant represents a user-owned household plant and its care record.
type Plant struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	Name           string     `json:"name"`
	Species        string     `json:"species,omitempty"`
	AcquiredAt     *time.Time `json:"acquired_at,omitempty"`
	WateringDays   int        `json:"watering_days,omitempty"`
	LastWatered    *time.Time `json:"last_watered,omitempty"`
	LastFertilized *time.Time `json:"last_fertilized,omitempty"`
	LastPruned     *time.Time `json:"last_pruned,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// LastCare returns the recorded timestamp of the most recent care action
// of the given type, or nil when the plant has never received it.
func (p *Plant) LastCare(careType CareType) *time.Time {
	if p == nil {
		return nil
	}
	switch careType {
	case CareWatering:
		return p.LastWatered
	case CareFertilizing:
		return p.LastFertilized
	case CarePruning:
		return p.LastPruned
	}
	return nil
}

// SetLastCare records a completed care action of the given type.
func (p *Plant) SetLastCare(careType CareType, when time.Time) {
	if p == nil {
		return
	}
	switch careType {
	case CareWatering:
		p.LastWatered = &when
	case CareFertilizing:
		p.LastFertilized = &when
	case CarePruning:
		p.LastPruned = &when
	}
}
