package usecase

import (
	"context"
	"errors"
	"testing"

	"timesheet-assistant/internal/conversation"
	"timesheet-assistant/internal/dialogue"
	"timesheet-assistant/internal/model"
)

func TestHandleMessage_GuidedBillableSubmits(t *testing.T) {
	env := newTestEnv(t)
	env.start(t, "s1", conversation.ModeGuided)

	r := env.say(t, "s1",
		"Drafted the share purchase agreement",
		"Drafted the share purchase agreement",
		"2h30m",
		"Billable",
		"Acme Corp",
		"Litigation",
		"Like it/Good at it",
		"Neutral",
		"Keep doing it",
	)
	if r.Step != dialogue.StepConfirmation || r.Prompt.Kind != dialogue.KindConfirmation {
		t.Fatalf("before confirm: step=%s kind=%s", r.Step, r.Prompt.Kind)
	}

	r = env.say(t, "s1", "Yes, save it")

	if r.Step != dialogue.StepGreeting || r.Prompt.Text != dialogue.PromptGreeting {
		t.Errorf("after confirm: step=%s prompt=%q", r.Step, r.Prompt.Text)
	}
	if r.Notice != dialogue.PromptSaving {
		t.Errorf("notice = %q", r.Notice)
	}
	if len(env.dispatcher.entries) != 1 {
		t.Fatalf("dispatched %d entries", len(env.dispatcher.entries))
	}
	got := env.dispatcher.entries[0]
	want := model.TimeEntry{
		TaskDescription: "Drafted the share purchase agreement",
		DurationMinutes: 150,
		StartTime:       testNow,
		WorkType:        model.WorkTypeBillable,
		MatterName:      "Acme Corp",
		CostCentreName:  "Litigation",
		EnjoymentLevel:  "Like it/Good at it",
		EnergyImpact:    "Neutral",
		TaskGoal:        "Keep doing it",
	}
	if got != want {
		t.Errorf("dispatched\n %+v\nwant\n %+v", got, want)
	}
	if env.dispatcher.scopes[0] != alice {
		t.Errorf("scope = %+v", env.dispatcher.scopes[0])
	}

	s, err := env.uc.GetSession(context.Background(), alice, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if s.LastEntry == nil || *s.LastEntry != want {
		t.Errorf("LastEntry = %+v", s.LastEntry)
	}
	if s.State.Step != dialogue.StepGreeting || s.State.Entry != (model.TimeEntry{}) {
		t.Errorf("state not reset: %+v", s.State)
	}
}

func TestHandleMessage_SaveFailureDoesNotDeliver(t *testing.T) {
	env := newTestEnv(t)
	env.start(t, "s1", conversation.ModeGuided)
	env.say(t, "s1",
		"Gym session", "Gym session", "1h", "Personal",
		"Love it/Great at it", "Energizing", "Keep doing it",
	)

	env.repo.failSave = errors.New("disk full")
	_, err := env.uc.HandleMessage(context.Background(), alice, conversation.MessageInput{SessionID: "s1", Text: "Yes"})
	if err == nil {
		t.Fatal("HandleMessage() error = nil with failing storage")
	}
	if n := len(env.dispatcher.entries); n != 0 {
		t.Fatalf("dispatched %d entries before the session was saved", n)
	}

	env.repo.failSave = nil
	env.say(t, "s1", "Yes")
	if n := len(env.dispatcher.entries); n != 1 {
		t.Errorf("dispatched %d entries after confirming again, want 1", n)
	}
}

func TestHandleMessage_DeclineDiscardsDraft(t *testing.T) {
	env := newTestEnv(t)
	env.start(t, "s2", conversation.ModeGuided)

	r := env.say(t, "s2", "Gym", "Gym", "1h", "personal", "Love it/Great at it", "Gave me energy", "Keep doing it", "No, let me start over")

	if r.Step != dialogue.StepGreeting || r.Prompt.Text != dialogue.PromptStartOver {
		t.Errorf("reply = %+v", r)
	}
	if len(env.dispatcher.entries) != 0 {
		t.Error("declined entry was dispatched")
	}
}

func TestHandleMessage_ZeroDurationReturnsToTimeStep(t *testing.T) {
	env := newTestEnv(t)
	env.start(t, "s3", conversation.ModeGuided)

	r := env.say(t, "s3", "Emails", "Emails", "0h0m", "personal", "Like it/Good at it", "Neutral", "Delegate to AI", "yes")

	if r.Step != dialogue.StepTime {
		t.Fatalf("step = %s, want time", r.Step)
	}
	if len(r.Missing) != 1 || r.Missing[0] != "duration_minutes" {
		t.Errorf("missing = %v", r.Missing)
	}
	if len(env.dispatcher.entries) != 0 {
		t.Error("invalid entry was dispatched")
	}

	s, _ := env.uc.GetSession(context.Background(), alice, "s3")
	if s.State.Entry.TaskGoal != "Delegate to AI" || s.State.Entry.TaskDescription != "Emails" {
		t.Errorf("collected fields lost: %+v", s.State.Entry)
	}

	r = env.say(t, "s3", "20m")
	if r.Step != dialogue.StepWorkType {
		t.Errorf("after fixing duration step = %s", r.Step)
	}
}

func TestHandleMessage_BlankRepeatsPrompt(t *testing.T) {
	env := newTestEnv(t)
	env.start(t, "s4", conversation.ModeGuided)
	env.say(t, "s4", "Research", "Research", "45m")

	r := env.say(t, "s4", "   ")

	if r.Step != dialogue.StepWorkType || r.Prompt.Text != dialogue.PromptWorkType {
		t.Errorf("reply = %+v", r)
	}
}

func TestHandleMessage_Errors(t *testing.T) {
	env := newTestEnv(t)
	env.start(t, "s5", conversation.ModeGuided)
	ctx := context.Background()

	_, err := env.uc.HandleMessage(ctx, alice, conversation.MessageInput{SessionID: "missing", Text: "hi"})
	if !errors.Is(err, conversation.ErrSessionNotFound) {
		t.Errorf("unknown session error = %v", err)
	}

	bob := model.Scope{UserID: "bob"}
	_, err = env.uc.HandleMessage(ctx, bob, conversation.MessageInput{SessionID: "s5", Text: "hi"})
	if !errors.Is(err, conversation.ErrSessionForbidden) {
		t.Errorf("foreign session error = %v", err)
	}
}
