package transport

import (
	"encoding/json"
	"time"

	"github.com/plantcare/backend/domain"
)

// Envelope is the standard API response wrapper used for both success and error payloads.
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Error  interface{} `json:"error,omitempty"`
	Meta   interface{} `json:"meta,omitempty"`
}

// NewSuccess returns a success envelope.
func NewSuccess(data interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "success",
		Data:   data,
		Meta:   meta,
	}
}

// NewError returns an error envelope with optional metadata.
func NewError(code string, err interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "error",
		Code:   code,
		Error:  err,
		Meta:   meta,
	}
}

// TaskView decorates a care task with its presentation due status
// (overdue/due/upcoming). The status is derived, never stored.
type TaskView struct {
	domain.CareTask
	DueStatus domain.DueStatus `json:"due_status"`
}

// NewTaskViews classifies each task's due date against the reference time.
func NewTaskViews(tasks []domain.CareTask, ref time.Time) []TaskView {
	views := make([]TaskView, 0, len(tasks))
	for _, task := range tasks {
		views = append(views, TaskView{
			CareTask:  task,
			DueStatus: domain.ClassifyDue(task.DueDate, ref),
		})
	}
	return views
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}
