package notification

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"timesheet-assistant/internal/conversation"
	"timesheet-assistant/internal/model"
	"timesheet-assistant/internal/submission"
	pkgLog "timesheet-assistant/pkg/log"
)

var alice = model.Scope{UserID: "u-1", Username: "alice"}

func TestInboxNotifyAndDrain(t *testing.T) {
	in := NewInbox(pkgLog.NewNop(), 0, 0)
	ctx := context.Background()
	entry := model.TimeEntry{TaskDescription: "review", DurationMinutes: 30}

	in.Notify(ctx, alice, entry, submission.Outcome{DeliveryID: "d-1", Status: submission.StatusDelivered, Attempts: 1})
	in.Notify(ctx, alice, entry, submission.Outcome{
		DeliveryID: "d-2",
		Status:     submission.StatusFailed,
		Attempts:   3,
		Err:        errors.New("status 500"),
	})

	got := in.Drain(alice.UserID)
	if len(got) != 2 {
		t.Fatalf("Drain() returned %d notifications, want 2", len(got))
	}
	if got[0].DeliveryID != "d-1" || got[0].Message != conversation.SavedNotice || got[0].Error != "" {
		t.Errorf("first = %+v", got[0])
	}
	if got[1].Message != conversation.FailedNotice || got[1].Error != "status 500" || got[1].Attempts != 3 {
		t.Errorf("second = %+v", got[1])
	}

	if again := in.Drain(alice.UserID); len(again) != 0 {
		t.Errorf("second Drain() = %v, want empty", again)
	}
}

func TestInboxIgnoresAnonymous(t *testing.T) {
	in := NewInbox(pkgLog.NewNop(), 0, 0)
	in.Notify(context.Background(), model.Scope{}, model.TimeEntry{}, submission.Outcome{Status: submission.StatusDelivered})
	if got := in.Drain(""); len(got) != 0 {
		t.Errorf("Drain(\"\") = %v", got)
	}
}

func TestInboxBoundsPerUser(t *testing.T) {
	in := NewInbox(pkgLog.NewNop(), 0, time.Minute)
	for i := 0; i < DefaultPerUser+5; i++ {
		in.Notify(context.Background(), alice, model.TimeEntry{}, submission.Outcome{
			DeliveryID: fmt.Sprintf("d-%d", i),
			Status:     submission.StatusSkipped,
		})
	}
	got := in.Drain(alice.UserID)
	if len(got) != DefaultPerUser {
		t.Fatalf("len = %d, want %d", len(got), DefaultPerUser)
	}
	if got[0].DeliveryID != "d-5" {
		t.Errorf("oldest kept = %s, want d-5", got[0].DeliveryID)
	}
}

type countingNotifier struct{ calls int }

func (c *countingNotifier) Notify(context.Context, model.Scope, model.TimeEntry, submission.Outcome) {
	c.calls++
}

func TestFanout(t *testing.T) {
	a, b := &countingNotifier{}, &countingNotifier{}
	Fanout{a, nil, b}.Notify(context.Background(), alice, model.TimeEntry{}, submission.Outcome{})
	if a.calls != 1 || b.calls != 1 {
		t.Errorf("calls = %d, %d", a.calls, b.calls)
	}
}
