package http

import (
	"timesheet-assistant/internal/conversation"
	"timesheet-assistant/internal/notification"
	pkgLog "timesheet-assistant/pkg/log"
)

// Inbox hands out the delivery notifications waiting for a user.
type Inbox interface {
	Drain(userID string) []notification.Notification
}

type handler struct {
	l     pkgLog.Logger
	uc    conversation.UseCase
	inbox Inbox
}

// New creates a new HTTP handler for the conversation domain.
func New(l pkgLog.Logger, uc conversation.UseCase, inbox Inbox) *handler {
	return &handler{
		l:     l,
		uc:    uc,
		inbox: inbox,
	}
}
