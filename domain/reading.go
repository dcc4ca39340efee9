package domain

import "time"

// Reading is one environment measurement captured for a plant.
type Reading struct {
	ID          string    `json:"id"`
	PlantID     string    `json:"plant_id"`
	UserID      string    `json:"user_id"`
	Temperature float64   `json:"temperature,omitempty"`
	Humidity    float64   `json:"humidity,omitempty"`
	Light       float64   `json:"light,omitempty"`
	RecordedAt  time.Time `json:"recorded_at"`
	CreatedAt   time.Time `json:"created_at"`
}
