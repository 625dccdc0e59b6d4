package notification

import (
	"time"

	"timesheet-assistant/internal/model"
	"timesheet-assistant/internal/submission"
)

// Notification is one delivery outcome waiting to be picked up by a client.
type Notification struct {
	DeliveryID string            `json:"delivery_id"`
	Sink       string            `json:"sink,omitempty"`
	Status     submission.Status `json:"status"`
	Attempts   int               `json:"attempts"`
	Message    string            `json:"message"`
	Error      string            `json:"error,omitempty"`
	Entry      model.TimeEntry   `json:"time_entry"`
	CreatedAt  time.Time         `json:"created_at"`
}
