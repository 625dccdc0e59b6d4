package conversation

import (
	"context"

	"timesheet-assistant/internal/dialogue"
	"timesheet-assistant/internal/model"
	"timesheet-assistant/internal/submission"
)

// UseCase defines the business logic interface for the conversation domain.
type UseCase interface {
	// Start opens a new session, or resets one with the same ID.
	Start(ctx context.Context, sc model.Scope, input StartInput) (Reply, error)

	// HandleMessage applies one utterance. Guided sessions advance the
	// question sequence; open sessions go through Chat.
	HandleMessage(ctx context.Context, sc model.Scope, input MessageInput) (Reply, error)

	// Chat applies one utterance to an open-ended session.
	Chat(ctx context.Context, sc model.Scope, input MessageInput) (Reply, error)

	// Restart discards the current draft and greets again.
	Restart(ctx context.Context, sc model.Scope, sessionID string) (Reply, error)

	// RetryDelivery re-sends the last confirmed entry of the session.
	RetryDelivery(ctx context.Context, sc model.Scope, sessionID string) (Reply, error)

	GetSession(ctx context.Context, sc model.Scope, sessionID string) (Session, error)

	// Extract runs the extractor and validator over a transcript without
	// touching any session.
	Extract(ctx context.Context, input ExtractInput) (ExtractOutput, error)

	// TestDelivery sends a single connectivity ping to the delivery endpoint.
	TestDelivery(ctx context.Context) (submission.Outcome, error)
}

// Generator is the text-generation collaborator used by open-ended mode.
type Generator interface {
	Generate(ctx context.Context, history []model.Turn) (string, error)
}

// OptionSource supplies the lists shown in classification prompts.
type OptionSource interface {
	Options(ctx context.Context) dialogue.Options
}

// Dispatcher hands a confirmed entry to delivery without waiting.
type Dispatcher interface {
	Dispatch(ctx context.Context, sc model.Scope, entry model.TimeEntry)
}

// Pinger sends a delivery connectivity test.
type Pinger interface {
	Ping(ctx context.Context) (submission.Outcome, error)
}
