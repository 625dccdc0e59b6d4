package submission

import (
	"context"
	"fmt"

	"timesheet-assistant/internal/dialogue"
	"timesheet-assistant/pkg/gcalendar"
)

// deliveryIDProperty tags mirrored events so a retried delivery is written once.
const deliveryIDProperty = "delivery_id"

// EventCreator is the part of the calendar client the mirror sink needs.
type EventCreator interface {
	CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error)
	FindEventByProperty(ctx context.Context, calendarID, key, value string) (*gcalendar.Event, error)
}

// CalendarSink mirrors delivered entries as calendar events spanning the
// reported work.
type CalendarSink struct {
	client     EventCreator
	calendarID string
	timezone   string
}

// NewCalendarSink creates a mirror sink writing to calendarID.
func NewCalendarSink(client EventCreator, calendarID, timezone string) *CalendarSink {
	return &CalendarSink{client: client, calendarID: calendarID, timezone: timezone}
}

// Name implements Sink.
func (c *CalendarSink) Name() string {
	return "calendar"
}

// Send implements Sink. An event already tagged with deliveryID counts as
// delivered, so an attempt that timed out after the insert is not duplicated.
func (c *CalendarSink) Send(ctx context.Context, deliveryID string, p Payload) error {
	existing, err := c.client.FindEventByProperty(ctx, c.calendarID, deliveryIDProperty, deliveryID)
	if err != nil {
		return &TransportError{Sink: c.Name(), Err: err}
	}
	if existing != nil {
		return nil
	}

	e := p.TimeEntry
	_, err = c.client.CreateEvent(ctx, gcalendar.CreateEventRequest{
		CalendarID:        c.calendarID,
		Summary:           e.TaskDescription,
		Description:       fmt.Sprintf("%s\n\nLogged for %s (%s)", dialogue.Summary(e), p.UserName, deliveryID),
		StartTime:         e.StartTime,
		EndTime:           e.EndTime(),
		Timezone:          c.timezone,
		PrivateProperties: map[string]string{deliveryIDProperty: deliveryID},
	})
	if err != nil {
		return &TransportError{Sink: c.Name(), Err: err}
	}
	return nil
}
