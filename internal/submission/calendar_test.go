package submission

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"timesheet-assistant/pkg/gcalendar"
)

type mockCalendar struct {
	req      gcalendar.CreateEventRequest
	err      error
	findErr  error
	existing map[string]bool
	creates  int
}

func (m *mockCalendar) FindEventByProperty(ctx context.Context, calendarID, key, value string) (*gcalendar.Event, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	if m.existing[value] {
		return &gcalendar.Event{ID: "evt-" + value}, nil
	}
	return nil, nil
}

func (m *mockCalendar) CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error) {
	m.req = req
	m.creates++
	if m.err != nil {
		return nil, m.err
	}
	return &gcalendar.Event{ID: "evt"}, nil
}

func TestCalendarSink_Send(t *testing.T) {
	cal := &mockCalendar{}
	sink := NewCalendarSink(cal, "work", "UTC")
	e := testEntry()

	if err := sink.Send(context.Background(), "d-9", NewPayload(e, testActor, fixedNow)); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if cal.req.CalendarID != "work" || cal.req.Summary != "Drafting" {
		t.Errorf("request = %+v", cal.req)
	}
	if !cal.req.StartTime.Equal(e.StartTime) || cal.req.EndTime.Sub(cal.req.StartTime) != time.Hour {
		t.Errorf("event span %v - %v", cal.req.StartTime, cal.req.EndTime)
	}
	if !strings.Contains(cal.req.Description, "d-9") {
		t.Errorf("description = %q", cal.req.Description)
	}
	if cal.req.PrivateProperties["delivery_id"] != "d-9" {
		t.Errorf("properties = %v", cal.req.PrivateProperties)
	}
}

func TestCalendarSink_SkipsExistingEvent(t *testing.T) {
	cal := &mockCalendar{existing: map[string]bool{"d-9": true}}
	sink := NewCalendarSink(cal, "work", "UTC")

	if err := sink.Send(context.Background(), "d-9", NewPayload(testEntry(), testActor, fixedNow)); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if cal.creates != 0 {
		t.Errorf("creates = %d, want 0", cal.creates)
	}
}

func TestCalendarSink_LookupErrorIsTransport(t *testing.T) {
	cal := &mockCalendar{findErr: errors.New("timeout")}
	sink := NewCalendarSink(cal, "work", "UTC")

	err := sink.Send(context.Background(), "d-1", NewPayload(testEntry(), testActor, fixedNow))
	if !errors.Is(err, ErrDeliveryTransport) || cal.creates != 0 {
		t.Errorf("err = %v creates = %d", err, cal.creates)
	}
}

func TestCalendarSink_ErrorIsTransport(t *testing.T) {
	sink := NewCalendarSink(&mockCalendar{err: errors.New("quota")}, "", "")

	err := sink.Send(context.Background(), "d", NewPayload(testEntry(), testActor, fixedNow))
	if !errors.Is(err, ErrDeliveryTransport) {
		t.Errorf("err = %v", err)
	}
}
