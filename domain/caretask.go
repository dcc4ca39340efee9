package domain

import "time"

// CareType identifies a kind of plant care.
type CareType string

const (
	CareWatering    CareType = "watering"
	CareFertilizing CareType = "fertilizing"
	CarePruning     CareType = "pruning"
)

// CareTypes lists all care types in generation order.
var CareTypes = []CareType{CareWatering, CareFertilizing, CarePruning}

// IsValid reports whether the care type is one of the known kinds.
func (t CareType) IsValid() bool {
	switch t {
	case CareWatering, CareFertilizing, CarePruning:
		return true
	}
	return false
}

// TaskStatus is the lifecycle state of a care task.
type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusCompleted TaskStatus = "completed"
	StatusSkipped   TaskStatus = "skipped"
)

// CareTask represents one pending or resolved unit of care for a plant.
// Resolved tasks are never deleted; they form the care history.
type CareTask struct {
	ID           string     `json:"id"`
	PlantID      string     `json:"plant_id"`
	UserID       string     `json:"user_id"`
	Type         CareType   `json:"type"`
	Status       TaskStatus `json:"status"`
	DueDate      time.Time  `json:"due_date"`
	LastCareDate *time.Time `json:"last_care_date,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (t *CareTask) IsPending() bool {
	return t != nil && t.Status == StatusPending
}

func (t *CareTask) IsResolved() bool {
	return t != nil && (t.Status == StatusCompleted || t.Status == StatusSkipped)
}
