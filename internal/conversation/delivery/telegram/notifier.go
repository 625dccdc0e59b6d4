package telegram

import (
	"context"

	"timesheet-assistant/internal/conversation"
	"timesheet-assistant/internal/model"
	"timesheet-assistant/internal/submission"
	pkgLog "timesheet-assistant/pkg/log"
)

// Sender sends a plain message to a chat.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// Notifier tells a Telegram user how the delivery of their entry went.
type Notifier struct {
	l   pkgLog.Logger
	bot Sender
}

func NewNotifier(l pkgLog.Logger, bot Sender) *Notifier {
	return &Notifier{l: l, bot: bot}
}

// Notify implements submission.Notifier. Scopes without a chat are ignored.
func (n *Notifier) Notify(ctx context.Context, sc model.Scope, entry model.TimeEntry, out submission.Outcome) {
	if sc.ChatID == 0 {
		return
	}
	if err := n.bot.SendMessage(ctx, sc.ChatID, conversation.NoticeFor(out.Status)); err != nil {
		n.l.Warnf(ctx, "telegram.Notifier.Notify: chat=%d delivery=%s: %v", sc.ChatID, out.DeliveryID, err)
	}
}
