package usecase

import (
	"time"

	"github.com/google/uuid"

	"timesheet-assistant/internal/conversation"
	"timesheet-assistant/internal/conversation/repository"
	pkgLog "timesheet-assistant/pkg/log"
)

type implUseCase struct {
	l          pkgLog.Logger
	repo       repository.SessionRepository
	options    conversation.OptionSource
	generator  conversation.Generator
	dispatcher conversation.Dispatcher
	pinger     conversation.Pinger
	locks      *sessionLocks
	now        func() time.Time
	newID      func() string
}

// Deps are the collaborators of the conversation use case. Generator may be
// nil when no text-generation provider is configured.
type Deps struct {
	Repo       repository.SessionRepository
	Options    conversation.OptionSource
	Generator  conversation.Generator
	Dispatcher conversation.Dispatcher
	Pinger     conversation.Pinger
	Now        func() time.Time
}

// New creates a new conversation UseCase instance.
func New(l pkgLog.Logger, deps Deps) conversation.UseCase {
	now := deps.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &implUseCase{
		l:          l,
		repo:       deps.Repo,
		options:    deps.Options,
		generator:  deps.Generator,
		dispatcher: deps.Dispatcher,
		pinger:     deps.Pinger,
		locks:      newSessionLocks(),
		now:        now,
		newID:      uuid.NewString,
	}
}
