package usecase

import (
	"context"
	"errors"
	"strings"

	"timesheet-assistant/internal/conversation"
	"timesheet-assistant/internal/dialogue"
	"timesheet-assistant/internal/model"
	"timesheet-assistant/internal/validator"
)

// HandleMessage advances a guided session by one answer. Open sessions are
// routed to the chat flow.
func (uc *implUseCase) HandleMessage(ctx context.Context, sc model.Scope, input conversation.MessageInput) (conversation.Reply, error) {
	unlock := uc.locks.lock(input.SessionID)
	defer unlock()

	s, err := uc.load(ctx, sc, input.SessionID)
	if err != nil {
		return conversation.Reply{}, err
	}
	if s.Mode == conversation.ModeOpen {
		return uc.chat(ctx, sc, s, input.Text)
	}
	return uc.guided(ctx, sc, s, input.Text)
}

func (uc *implUseCase) guided(ctx context.Context, sc model.Scope, s *conversation.Session, text string) (conversation.Reply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return reply(s, uc.pending(ctx, s)), nil
	}

	opts := uc.opts(ctx)
	uc.appendTurn(s, model.RoleUser, text)
	res := dialogue.Transition(s.State, text, dialogue.Env{Now: uc.now(), Options: opts})

	out := conversation.Reply{}
	var confirmed *model.TimeEntry
	if res.Done() {
		entry, err := validator.Validate(res.State.Entry)
		var missing *validator.MissingFieldsError
		switch {
		case errors.As(err, &missing):
			// Go back to the first gap; everything collected so far is kept.
			step, ok := dialogue.StepForField(missing.Fields[0])
			if !ok {
				step = dialogue.StepGreeting
			}
			res = dialogue.Resume(res.State.Entry, step, opts)
			out.Notice = conversation.MissingNotice
			out.Missing = missing.Fields
			uc.l.Infof(ctx, "conversation.usecase.HandleMessage: session=%s missing=%v", s.ID, missing.Fields)
		case err != nil:
			return conversation.Reply{}, err
		default:
			confirmed = &entry
			s.LastEntry = confirmed
			s.Transcript = s.Transcript[:0]
			out.Submitted = s.LastEntry
			out.Notice = res.Prompt.Text
			res = dialogue.Start()
		}
	}

	s.State = res.State
	uc.appendTurn(s, model.RoleAssistant, strings.TrimSpace(out.Notice+"\n\n"+res.Prompt.Text))
	if err := uc.save(ctx, s); err != nil {
		return conversation.Reply{}, err
	}
	// Only a persisted confirmation is delivered, so a failed save cannot
	// lead to the same entry being sent twice.
	if confirmed != nil {
		uc.submit(ctx, sc, s, *confirmed)
	}

	r := reply(s, res.Prompt)
	r.Notice = out.Notice
	r.Missing = out.Missing
	r.Submitted = out.Submitted
	return r, nil
}
