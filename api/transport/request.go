package transport

type PlantRequest struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Species      string `json:"species"`
	AcquiredAt   string `json:"acquired_at"`
	WateringDays int    `json:"watering_days"`
	Notes        string `json:"notes"`
}

type RescheduleRequest struct {
	DueDate string `json:"due_date"`
}

type ReadingRequest struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Light       float64 `json:"light"`
	RecordedAt  string  `json:"recorded_at"`
}

type AuthLoginRequest struct {
	UserID string `json:"user_id"`
	TTL    int    `json:"ttl_seconds"`
}

type RefreshRequest struct {
	SessionID string `json:"session_id"`
	TTL       int    `json:"ttl_seconds"`
}
