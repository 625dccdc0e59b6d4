package submission

import (
	"context"
	"time"

	"timesheet-assistant/internal/model"
)

// Payload is the JSON document posted to the delivery endpoint.
type Payload struct {
	UserID    string          `json:"user_id"`
	UserName  string          `json:"user_name"`
	UserEmail string          `json:"user_email"`
	Timestamp time.Time       `json:"timestamp"`
	TimeEntry model.TimeEntry `json:"time_entry"`
}

// NewPayload builds the payload for actor, stamped with the send time.
func NewPayload(entry model.TimeEntry, actor model.Actor, sentAt time.Time) Payload {
	return Payload{
		UserID:    actor.ID,
		UserName:  actor.Name,
		UserEmail: actor.Email,
		Timestamp: sentAt,
		TimeEntry: entry,
	}
}

// PingPayload is the body of a connectivity test.
type PingPayload struct {
	Test      bool      `json:"test"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// Sink is one destination for delivered entries.
type Sink interface {
	Name() string
	Send(ctx context.Context, deliveryID string, p Payload) error
}

// Pinger is implemented by sinks that accept a connectivity test.
type Pinger interface {
	Ping(ctx context.Context, deliveryID string, p PingPayload) error
}

// Status is the final result of a delivery.
type Status string

const (
	StatusSkipped   Status = "skipped"
	StatusDelivered Status = "delivered"
	StatusFailed    Status = "failed"
)

// Outcome reports what happened to one delivery.
type Outcome struct {
	DeliveryID string
	Sink       string
	Status     Status
	Attempts   int
	Err        error
}

// Notifier receives the outcome of an asynchronous delivery.
type Notifier interface {
	Notify(ctx context.Context, sc model.Scope, entry model.TimeEntry, out Outcome)
}

// Deliverer sends an entry and reports the outcome.
type Deliverer interface {
	Deliver(ctx context.Context, entry model.TimeEntry, actor model.Actor) Outcome
}

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
