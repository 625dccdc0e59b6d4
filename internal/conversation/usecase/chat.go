package usecase

import (
	"context"
	"strings"

	"timesheet-assistant/internal/conversation"
	"timesheet-assistant/internal/dialogue"
	"timesheet-assistant/internal/extractor"
	"timesheet-assistant/internal/model"
	"timesheet-assistant/internal/validator"
)

// Chat applies one utterance to an open-ended session.
func (uc *implUseCase) Chat(ctx context.Context, sc model.Scope, input conversation.MessageInput) (conversation.Reply, error) {
	unlock := uc.locks.lock(input.SessionID)
	defer unlock()

	s, err := uc.load(ctx, sc, input.SessionID)
	if err != nil {
		return conversation.Reply{}, err
	}
	if s.Mode != conversation.ModeOpen {
		return conversation.Reply{}, conversation.ErrWrongMode
	}
	return uc.chat(ctx, sc, s, input.Text)
}

// chat records the user turn, asks the generator for a reply and, the first
// time the transcript signals completion, extracts and submits the entry.
// After submission the transcript is cleared and Concluded stays set until
// the next user turn opens a new draft.
func (uc *implUseCase) chat(ctx context.Context, sc model.Scope, s *conversation.Session, text string) (conversation.Reply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return reply(s, uc.pending(ctx, s)), nil
	}

	s.Concluded = false
	uc.appendTurn(s, model.RoleUser, text)

	answer := conversation.GeneratorFailed
	if uc.generator != nil {
		generated, err := uc.generator.Generate(ctx, s.Transcript)
		if err != nil {
			uc.l.Warnf(ctx, "conversation.usecase.Chat: session=%s generator failed: %v", s.ID, err)
		} else if strings.TrimSpace(generated) != "" {
			answer = generated
			uc.appendTurn(s, model.RoleAssistant, answer)
		}
	} else {
		uc.l.Warnf(ctx, "conversation.usecase.Chat: session=%s has no text generator configured", s.ID)
	}

	r := reply(s, dialogue.Prompt{Text: answer, Kind: dialogue.KindText})
	var confirmed *model.TimeEntry

	if !s.Concluded && extractor.IsComplete(s.Transcript) {
		x := extractor.Extract(s.Transcript)
		uc.l.Debugf(ctx, "conversation.usecase.Chat: session=%s defaulted=%v", s.ID, x.Misses)

		entry, err := validator.Validate(x.Entry(uc.now()))
		if err != nil {
			// Extraction fills every field, so this only happens for
			// impossible values such as a zero duration.
			uc.l.Warnf(ctx, "conversation.usecase.Chat: session=%s extracted entry invalid: %v", s.ID, err)
			r.Notice = conversation.MissingNotice
			r.Missing = missingFields(err)
		} else {
			confirmed = &entry
			s.LastEntry = confirmed
			r.Submitted = s.LastEntry
			r.Notice = dialogue.PromptSaving
			s.Transcript = nil
			s.Concluded = true
		}
	}

	if err := uc.save(ctx, s); err != nil {
		return conversation.Reply{}, err
	}
	if confirmed != nil {
		uc.submit(ctx, sc, s, *confirmed)
	}
	return r, nil
}
