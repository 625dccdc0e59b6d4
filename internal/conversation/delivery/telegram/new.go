package telegram

import (
	"context"
	"sync"

	"github.com/gin-gonic/gin"

	"timesheet-assistant/internal/conversation"
	pkgLog "timesheet-assistant/pkg/log"
)

// Messenger is the part of the Telegram bot client the transport needs.
type Messenger interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	SendOptions(ctx context.Context, chatID int64, text string, options []string) error
	DownloadFile(ctx context.Context, fileID string) ([]byte, error)
}

// Transcriber turns a voice note into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}

// Handler is the interface for the Telegram delivery handler. Wait blocks
// until updates accepted by HandleWebhook have been processed.
type Handler interface {
	HandleWebhook(c *gin.Context)
	Wait()
}

type handler struct {
	l           pkgLog.Logger
	uc          conversation.UseCase
	bot         Messenger
	transcriber Transcriber
	wg          sync.WaitGroup
}

// New creates a new Telegram delivery handler. transcriber may be nil, in
// which case voice notes are declined.
func New(l pkgLog.Logger, uc conversation.UseCase, bot Messenger, transcriber Transcriber) *handler {
	return &handler{
		l:           l,
		uc:          uc,
		bot:         bot,
		transcriber: transcriber,
	}
}

// Wait blocks until every in-flight update has been processed.
func (h *handler) Wait() {
	h.wg.Wait()
}
