package usecase

import (
	"context"

	"timesheet-assistant/internal/conversation"
	"timesheet-assistant/internal/model"
)

// RetryDelivery dispatches the session's last confirmed entry again. The
// draft in progress is left untouched.
func (uc *implUseCase) RetryDelivery(ctx context.Context, sc model.Scope, sessionID string) (conversation.Reply, error) {
	unlock := uc.locks.lock(sessionID)
	defer unlock()

	s, err := uc.load(ctx, sc, sessionID)
	if err != nil {
		return conversation.Reply{}, err
	}
	if s.LastEntry == nil {
		return conversation.Reply{}, conversation.ErrNothingToRetry
	}

	uc.submit(ctx, sc, s, *s.LastEntry)
	uc.l.Infof(ctx, "conversation.usecase.RetryDelivery: session=%s", s.ID)

	r := reply(s, uc.pending(ctx, s))
	r.Notice = conversation.RetryNotice
	r.Submitted = s.LastEntry
	return r, nil
}
