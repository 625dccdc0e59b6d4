package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"timesheet-assistant/internal/conversation"
	"timesheet-assistant/internal/model"
	pkgLog "timesheet-assistant/pkg/log"
	pkgResponse "timesheet-assistant/pkg/response"
	pkgTelegram "timesheet-assistant/pkg/telegram"
)

// HandleWebhook acknowledges the update with 200 at once and processes it in
// the background. Telegram redelivers updates that are not acknowledged within
// a few seconds, and text generation can take longer than that.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	if update.Message == nil || update.Message.Chat == nil {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	msg := update.Message
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		bgCtx := context.WithoutCancel(ctx)
		if err := h.processMessage(bgCtx, msg); err != nil {
			h.l.Errorf(bgCtx, "telegram handler: processMessage failed: %v", err)
			_ = h.bot.SendMessage(bgCtx, msg.Chat.ID, ErrorText)
		}
	}()

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

// processMessage handles a single Telegram message.
func (h *handler) processMessage(ctx context.Context, msg *pkgTelegram.Message) error {
	sc := scopeOf(msg)
	sessionID := sessionIDOf(msg)
	ctx = context.WithValue(ctx, pkgLog.SessionIDKey, sessionID)

	text := strings.TrimSpace(msg.Text)
	if text == "" && msg.Voice != nil {
		transcribed, ok := h.transcribe(ctx, msg)
		if !ok {
			return nil
		}
		text = transcribed
	}
	if text == "" {
		return nil
	}

	var (
		reply conversation.Reply
		err   error
	)
	switch command(text) {
	case cmdStart:
		reply, err = h.uc.Start(ctx, sc, conversation.StartInput{SessionID: sessionID, Mode: conversation.ModeGuided})
	case cmdChat:
		reply, err = h.uc.Start(ctx, sc, conversation.StartInput{SessionID: sessionID, Mode: conversation.ModeOpen})
	case cmdRestart:
		reply, err = h.uc.Restart(ctx, sc, sessionID)
	case cmdRetry:
		reply, err = h.uc.RetryDelivery(ctx, sc, sessionID)
	case cmdHelp:
		return h.bot.SendMessage(ctx, msg.Chat.ID, HelpText)
	default:
		reply, err = h.message(ctx, sc, sessionID, text)
	}
	if err != nil {
		return h.replyError(ctx, msg.Chat.ID, err)
	}

	if command(text) == cmdStart {
		if err := h.bot.SendMessage(ctx, msg.Chat.ID, WelcomeText); err != nil {
			return err
		}
	}
	return h.send(ctx, msg.Chat.ID, reply)
}

// message routes free text to the session, opening a guided one on first contact.
func (h *handler) message(ctx context.Context, sc model.Scope, sessionID, text string) (conversation.Reply, error) {
	in := conversation.MessageInput{SessionID: sessionID, Text: text}
	reply, err := h.uc.HandleMessage(ctx, sc, in)
	if !errors.Is(err, conversation.ErrSessionNotFound) {
		return reply, err
	}

	if _, err := h.uc.Start(ctx, sc, conversation.StartInput{SessionID: sessionID, Mode: conversation.ModeGuided}); err != nil {
		return conversation.Reply{}, err
	}
	return h.uc.HandleMessage(ctx, sc, in)
}

func (h *handler) transcribe(ctx context.Context, msg *pkgTelegram.Message) (string, bool) {
	if h.transcriber == nil {
		_ = h.bot.SendMessage(ctx, msg.Chat.ID, NoVoiceText)
		return "", false
	}

	audio, err := h.bot.DownloadFile(ctx, msg.Voice.FileID)
	if err == nil {
		var text string
		text, err = h.transcriber.Transcribe(ctx, audio, "voice.ogg")
		if err == nil && strings.TrimSpace(text) != "" {
			h.l.Debugf(ctx, "telegram handler: transcribed %ds voice note", msg.Voice.Duration)
			return text, true
		}
	}

	h.l.Warnf(ctx, "telegram handler: voice note failed: %v", err)
	_ = h.bot.SendMessage(ctx, msg.Chat.ID, VoiceFailedText)
	return "", false
}

// send writes the notice, if any, and then the prompt with its options.
func (h *handler) send(ctx context.Context, chatID int64, r conversation.Reply) error {
	if r.Notice != "" {
		if err := h.bot.SendMessage(ctx, chatID, r.Notice); err != nil {
			return err
		}
	}
	if r.Prompt.Text == "" {
		return nil
	}
	return h.bot.SendOptions(ctx, chatID, r.Prompt.Text, r.Prompt.Options)
}

func (h *handler) replyError(ctx context.Context, chatID int64, err error) error {
	var text string
	switch {
	case errors.Is(err, conversation.ErrNothingToRetry):
		text = NothingToRetry
	case errors.Is(err, conversation.ErrSessionForbidden):
		text = ForbiddenText
	case errors.Is(err, conversation.ErrWrongMode):
		text = WrongModeText
	default:
		return err
	}
	return h.bot.SendMessage(ctx, chatID, text)
}

// command returns the bot command of text without any @botname suffix, or "".
func command(text string) string {
	if !strings.HasPrefix(text, "/") {
		return ""
	}
	cmd := strings.Fields(text)[0]
	if i := strings.IndexByte(cmd, '@'); i > 0 {
		cmd = cmd[:i]
	}
	return strings.ToLower(cmd)
}

func scopeOf(msg *pkgTelegram.Message) model.Scope {
	sc := model.Scope{
		UserID: fmt.Sprintf("telegram_%d", msg.Chat.ID),
		ChatID: msg.Chat.ID,
	}
	if msg.From != nil {
		sc.UserID = fmt.Sprintf("telegram_%d", msg.From.ID)
		sc.Username = msg.From.DisplayName()
	}
	if sc.Username == "" {
		sc.Username = sc.UserID
	}
	return sc
}

// sessionIDOf keys private chats by chat and group chats by chat and sender.
func sessionIDOf(msg *pkgTelegram.Message) string {
	if msg.Chat.Type != "private" && msg.From != nil {
		return fmt.Sprintf("telegram_%d_%d", msg.Chat.ID, msg.From.ID)
	}
	return fmt.Sprintf("telegram_%d", msg.Chat.ID)
}
