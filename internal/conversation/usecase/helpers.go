package usecase

import (
	"context"
	"errors"
	"fmt"

	"timesheet-assistant/internal/conversation"
	"timesheet-assistant/internal/conversation/repository"
	"timesheet-assistant/internal/dialogue"
	"timesheet-assistant/internal/model"
)

// load fetches a session and checks that sc may use it.
func (uc *implUseCase) load(ctx context.Context, sc model.Scope, id string) (*conversation.Session, error) {
	s, err := uc.repo.Load(ctx, id)
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
		return nil, conversation.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	if s.Owner.UserID != "" && sc.UserID != "" && s.Owner.UserID != sc.UserID {
		return nil, conversation.ErrSessionForbidden
	}
	return s, nil
}

func (uc *implUseCase) save(ctx context.Context, s *conversation.Session) error {
	s.UpdatedAt = uc.now()
	if err := uc.repo.Save(ctx, *s); err != nil {
		return fmt.Errorf("save session %s: %w", s.ID, err)
	}
	return nil
}

func (uc *implUseCase) opts(ctx context.Context) dialogue.Options {
	if uc.options == nil {
		return dialogue.Options{}
	}
	return uc.options.Options(ctx)
}

func (uc *implUseCase) appendTurn(s *conversation.Session, role model.Role, text string) {
	s.Transcript = append(s.Transcript, model.Turn{Role: role, Content: text, At: uc.now()})
}

// greeting is the opening prompt for a session's mode.
func greeting(mode conversation.Mode) dialogue.Prompt {
	if mode == conversation.ModeOpen {
		return dialogue.Prompt{Text: conversation.OpenGreeting, Kind: dialogue.KindText}
	}
	return dialogue.Start().Prompt
}

// pending repeats the question a session is waiting on.
func (uc *implUseCase) pending(ctx context.Context, s *conversation.Session) dialogue.Prompt {
	if s.Mode == conversation.ModeOpen {
		for i := len(s.Transcript) - 1; i >= 0; i-- {
			if s.Transcript[i].Role == model.RoleAssistant {
				return dialogue.Prompt{Text: s.Transcript[i].Content, Kind: dialogue.KindText}
			}
		}
		return greeting(s.Mode)
	}
	return dialogue.PromptFor(s.State.Step, s.State.Entry, uc.opts(ctx))
}

func reply(s *conversation.Session, p dialogue.Prompt) conversation.Reply {
	return conversation.Reply{
		SessionID: s.ID,
		Mode:      s.Mode,
		Step:      s.State.Step,
		Prompt:    p,
	}
}

// submit hands a validated entry to delivery. Callers record it as
// LastEntry and persist the session first.
func (uc *implUseCase) submit(ctx context.Context, sc model.Scope, s *conversation.Session, entry model.TimeEntry) {
	if uc.dispatcher == nil {
		uc.l.Warnf(ctx, "conversation.usecase: no dispatcher, entry for session %s not delivered", s.ID)
		return
	}
	uc.dispatcher.Dispatch(ctx, sc, entry)
}
