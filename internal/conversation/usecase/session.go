package usecase

import (
	"context"
	"errors"

	"timesheet-assistant/internal/conversation"
	"timesheet-assistant/internal/conversation/repository"
	"timesheet-assistant/internal/dialogue"
	"timesheet-assistant/internal/model"
)

// Start opens a session. Starting an existing ID resets its draft but keeps
// the last confirmed entry so it can still be retried.
func (uc *implUseCase) Start(ctx context.Context, sc model.Scope, input conversation.StartInput) (conversation.Reply, error) {
	mode := input.Mode
	if mode == "" {
		mode = conversation.ModeGuided
	}
	if !mode.Valid() {
		return conversation.Reply{}, conversation.ErrInvalidMode
	}

	id := input.SessionID
	if id == "" {
		id = uc.newID()
	}
	if err := repository.ValidateID(id); err != nil {
		return conversation.Reply{}, err
	}

	unlock := uc.locks.lock(id)
	defer unlock()

	s := &conversation.Session{ID: id, CreatedAt: uc.now()}
	prev, err := uc.load(ctx, sc, id)
	switch {
	case err == nil:
		s.CreatedAt = prev.CreatedAt
		s.LastEntry = prev.LastEntry
	case errors.Is(err, conversation.ErrSessionNotFound):
	default:
		return conversation.Reply{}, err
	}

	s.Mode = mode
	s.Owner = sc
	s.State = dialogue.Start().State
	p := greeting(mode)
	uc.appendTurn(s, model.RoleAssistant, p.Text)

	if err := uc.save(ctx, s); err != nil {
		return conversation.Reply{}, err
	}
	uc.l.Infof(ctx, "conversation.usecase.Start: session=%s user=%s mode=%s", s.ID, sc.UserID, mode)
	return reply(s, p), nil
}

// Restart drops the current draft. An unknown session is started in guided
// mode so transports can always offer a way back.
func (uc *implUseCase) Restart(ctx context.Context, sc model.Scope, sessionID string) (conversation.Reply, error) {
	unlock := uc.locks.lock(sessionID)
	s, err := uc.load(ctx, sc, sessionID)
	if errors.Is(err, conversation.ErrSessionNotFound) {
		unlock()
		return uc.Start(ctx, sc, conversation.StartInput{SessionID: sessionID})
	}
	defer unlock()
	if err != nil {
		return conversation.Reply{}, err
	}

	s.State = dialogue.Start().State
	s.Transcript = nil
	s.Concluded = false
	p := greeting(s.Mode)
	uc.appendTurn(s, model.RoleAssistant, p.Text)

	if err := uc.save(ctx, s); err != nil {
		return conversation.Reply{}, err
	}
	uc.l.Infof(ctx, "conversation.usecase.Restart: session=%s", s.ID)
	return reply(s, p), nil
}

func (uc *implUseCase) GetSession(ctx context.Context, sc model.Scope, sessionID string) (conversation.Session, error) {
	s, err := uc.load(ctx, sc, sessionID)
	if err != nil {
		return conversation.Session{}, err
	}
	return *s, nil
}
