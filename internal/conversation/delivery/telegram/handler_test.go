package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"timesheet-assistant/internal/conversation"
	"timesheet-assistant/internal/dialogue"
	"timesheet-assistant/internal/middleware"
	"timesheet-assistant/internal/model"
	"timesheet-assistant/internal/submission"
	pkgLog "timesheet-assistant/pkg/log"
	pkgTelegram "timesheet-assistant/pkg/telegram"
)

type sent struct {
	ChatID  int64
	Text    string
	Options []string
}

// tgServer captures every sendMessage and serves one voice file.
type tgServer struct {
	*httptest.Server
	mu   sync.Mutex
	sent []sent
}

func newTGServer(t *testing.T) *tgServer {
	t.Helper()
	s := &tgServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			var req pkgTelegram.SendMessageRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			var opts []string
			if req.ReplyMarkup != nil {
				for _, row := range req.ReplyMarkup.Keyboard {
					for _, b := range row {
						opts = append(opts, b.Text)
					}
				}
			}
			s.mu.Lock()
			s.sent = append(s.sent, sent{ChatID: req.ChatID, Text: req.Text, Options: opts})
			s.mu.Unlock()
			w.Write([]byte(`{"ok": true}`))
		case strings.HasSuffix(r.URL.Path, "/getFile"):
			w.Write([]byte(`{"ok": true, "result": {"file_id": "v1", "file_path": "voice/v1.oga"}}`))
		case r.URL.Path == "/file/voice/v1.oga":
			w.Write([]byte("OggS"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *tgServer) messages() []sent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sent(nil), s.sent...)
}

func (s *tgServer) texts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.sent))
	for _, m := range s.sent {
		out = append(out, m.Text)
	}
	return out
}

type call struct {
	Method    string
	Scope     model.Scope
	SessionID string
	Text      string
	Mode      conversation.Mode
}

type mockUseCase struct {
	mu      sync.Mutex
	calls   []call
	reply   conversation.Reply
	msgErrs []error
	err     error
	// gate, when set, holds HandleMessage until it is closed.
	gate chan struct{}
}

func (m *mockUseCase) record(c call) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, c)
}

func (m *mockUseCase) Start(ctx context.Context, sc model.Scope, in conversation.StartInput) (conversation.Reply, error) {
	m.record(call{Method: "Start", Scope: sc, SessionID: in.SessionID, Mode: in.Mode})
	return m.reply, m.err
}

func (m *mockUseCase) HandleMessage(ctx context.Context, sc model.Scope, in conversation.MessageInput) (conversation.Reply, error) {
	if m.gate != nil {
		<-m.gate
	}
	m.record(call{Method: "HandleMessage", Scope: sc, SessionID: in.SessionID, Text: in.Text})
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.msgErrs) > 0 {
		err := m.msgErrs[0]
		m.msgErrs = m.msgErrs[1:]
		return conversation.Reply{}, err
	}
	return m.reply, m.err
}

func (m *mockUseCase) Chat(ctx context.Context, sc model.Scope, in conversation.MessageInput) (conversation.Reply, error) {
	m.record(call{Method: "Chat", Scope: sc, SessionID: in.SessionID, Text: in.Text})
	return m.reply, m.err
}

func (m *mockUseCase) Restart(ctx context.Context, sc model.Scope, id string) (conversation.Reply, error) {
	m.record(call{Method: "Restart", Scope: sc, SessionID: id})
	return m.reply, m.err
}

func (m *mockUseCase) RetryDelivery(ctx context.Context, sc model.Scope, id string) (conversation.Reply, error) {
	m.record(call{Method: "RetryDelivery", Scope: sc, SessionID: id})
	return m.reply, m.err
}

func (m *mockUseCase) GetSession(ctx context.Context, sc model.Scope, id string) (conversation.Session, error) {
	return conversation.Session{}, m.err
}

func (m *mockUseCase) Extract(ctx context.Context, in conversation.ExtractInput) (conversation.ExtractOutput, error) {
	return conversation.ExtractOutput{}, m.err
}

func (m *mockUseCase) TestDelivery(ctx context.Context) (submission.Outcome, error) {
	return submission.Outcome{}, m.err
}

type mockTranscriber struct {
	text  string
	err   error
	audio []byte
}

func (m *mockTranscriber) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	m.audio = audio
	return m.text, m.err
}

func setup(t *testing.T, uc *mockUseCase, tr Transcriber) (*gin.Engine, *handler, *tgServer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := newTGServer(t)
	bot := pkgTelegram.NewBot("test-token")
	bot.SetAPIURL(srv.URL)

	h := New(pkgLog.NewNop(), uc, bot, tr)
	r := gin.New()
	RegisterRoutes(r, h, middleware.New(pkgLog.NewNop(), middleware.Config{TelegramSecret: "s3cret"}))
	return r, h, srv
}

func post(r *gin.Engine, body string, secret string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, WebhookPath, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set(middleware.HeaderTelegramSecret, secret)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func update(text string) string {
	return `{"update_id": 1, "message": {"message_id": 10, "from": {"id": 42, "first_name": "Ada", "last_name": "Lovelace"}, "chat": {"id": 7, "type": "private"}, "text": ` + quote(text) + `}}`
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func guidedReply() conversation.Reply {
	return conversation.Reply{
		SessionID: "telegram_7",
		Mode:      conversation.ModeGuided,
		Prompt:    dialogue.Prompt{Text: "Which matter?", Options: []string{"Alpha", "Beta"}},
	}
}

var _ Handler = (*handler)(nil)

func TestWait_DrainsAcceptedUpdates(t *testing.T) {
	uc := &mockUseCase{reply: guidedReply(), gate: make(chan struct{})}
	r, h, srv := setup(t, uc, nil)

	if w := post(r, update("Reviewed the lease"), "s3cret"); w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	done := make(chan struct{})
	go func() {
		h.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Wait() returned while an update was still being processed")
	case <-time.After(50 * time.Millisecond):
	}

	close(uc.gate)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait() did not return after processing finished")
	}

	if len(uc.calls) != 1 || uc.calls[0].Method != "HandleMessage" {
		t.Errorf("calls = %+v", uc.calls)
	}
	if texts := srv.texts(); len(texts) == 0 || texts[len(texts)-1] != "Which matter?" {
		t.Errorf("sent = %v", texts)
	}
}

func TestHandleWebhook_Acknowledges(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		secret     string
		wantStatus int
		wantCalls  int
	}{
		{"accepted", update("hello"), "s3cret", http.StatusOK, 1},
		{"ignored without message", `{"update_id": 1}`, "s3cret", http.StatusOK, 0},
		{"bad json", `{`, "s3cret", http.StatusBadRequest, 0},
		{"missing secret", update("hello"), "", http.StatusUnauthorized, 0},
		{"wrong secret", update("hello"), "nope", http.StatusUnauthorized, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{reply: guidedReply()}
			r, h, _ := setup(t, uc, nil)

			w := post(r, tt.body, tt.secret)
			h.Wait()

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if len(uc.calls) != tt.wantCalls {
				t.Errorf("use case calls = %d, want %d", len(uc.calls), tt.wantCalls)
			}
		})
	}
}

func TestProcessMessage_Commands(t *testing.T) {
	tests := []struct {
		text       string
		wantMethod string
		wantMode   conversation.Mode
	}{
		{"/start", "Start", conversation.ModeGuided},
		{"/chat", "Start", conversation.ModeOpen},
		{"/restart", "Restart", ""},
		{"/retry@timesheet_bot", "RetryDelivery", ""},
		{"I worked on the report", "HandleMessage", ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			uc := &mockUseCase{reply: guidedReply()}
			r, h, srv := setup(t, uc, nil)

			post(r, update(tt.text), "s3cret")
			h.Wait()

			if len(uc.calls) != 1 {
				t.Fatalf("calls = %+v", uc.calls)
			}
			c := uc.calls[0]
			if c.Method != tt.wantMethod || c.Mode != tt.wantMode {
				t.Errorf("call = %+v, want %s %q", c, tt.wantMethod, tt.wantMode)
			}
			if c.SessionID != "telegram_7" {
				t.Errorf("session = %q", c.SessionID)
			}
			if c.Scope.UserID != "telegram_42" || c.Scope.Username != "Ada Lovelace" || c.Scope.ChatID != 7 {
				t.Errorf("scope = %+v", c.Scope)
			}

			texts := srv.texts()
			if len(texts) == 0 || texts[len(texts)-1] != "Which matter?" {
				t.Fatalf("sent = %v", texts)
			}
			msgs := srv.messages()
			last := msgs[len(msgs)-1]
			if len(last.Options) != 2 {
				t.Errorf("options = %v", last.Options)
			}
		})
	}
}

func TestProcessMessage_StartSendsWelcome(t *testing.T) {
	uc := &mockUseCase{reply: guidedReply()}
	r, h, srv := setup(t, uc, nil)

	post(r, update("/start"), "s3cret")
	h.Wait()

	texts := srv.texts()
	if len(texts) != 2 || texts[0] != WelcomeText {
		t.Errorf("sent = %v", texts)
	}
}

func TestProcessMessage_Help(t *testing.T) {
	uc := &mockUseCase{}
	r, h, srv := setup(t, uc, nil)

	post(r, update("/help"), "s3cret")
	h.Wait()

	if len(uc.calls) != 0 {
		t.Errorf("calls = %+v", uc.calls)
	}
	if texts := srv.texts(); len(texts) != 1 || texts[0] != HelpText {
		t.Errorf("sent = %v", texts)
	}
}

func TestProcessMessage_NoticeBeforePrompt(t *testing.T) {
	reply := guidedReply()
	reply.Notice = "Saving your entry..."
	uc := &mockUseCase{reply: reply}
	r, h, srv := setup(t, uc, nil)

	post(r, update("yes"), "s3cret")
	h.Wait()

	texts := srv.texts()
	if len(texts) != 2 || texts[0] != "Saving your entry..." || texts[1] != "Which matter?" {
		t.Errorf("sent = %v", texts)
	}
}

func TestProcessMessage_UnknownSessionStartsGuided(t *testing.T) {
	uc := &mockUseCase{reply: guidedReply(), msgErrs: []error{conversation.ErrSessionNotFound}}
	r, h, _ := setup(t, uc, nil)

	post(r, update("2 hours on docs"), "s3cret")
	h.Wait()

	var methods []string
	for _, c := range uc.calls {
		methods = append(methods, c.Method)
	}
	if strings.Join(methods, ",") != "HandleMessage,Start,HandleMessage" {
		t.Errorf("methods = %v", methods)
	}
	if uc.calls[1].Mode != conversation.ModeGuided {
		t.Errorf("mode = %q", uc.calls[1].Mode)
	}
}

func TestProcessMessage_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nothing to retry", conversation.ErrNothingToRetry, NothingToRetry},
		{"forbidden", conversation.ErrSessionForbidden, ForbiddenText},
		{"wrong mode", conversation.ErrWrongMode, WrongModeText},
		{"unexpected", errors.New("disk full"), ErrorText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{err: tt.err}
			r, h, srv := setup(t, uc, nil)

			post(r, update("/retry"), "s3cret")
			h.Wait()

			if texts := srv.texts(); len(texts) != 1 || texts[0] != tt.want {
				t.Errorf("sent = %v", texts)
			}
		})
	}
}

func TestProcessMessage_Voice(t *testing.T) {
	voice := `{"update_id": 2, "message": {"message_id": 11, "from": {"id": 42, "first_name": "Ada"}, "chat": {"id": 7, "type": "private"}, "voice": {"file_id": "v1", "duration": 3}}}`

	t.Run("transcribed", func(t *testing.T) {
		uc := &mockUseCase{reply: guidedReply()}
		tr := &mockTranscriber{text: "three hours on the audit"}
		r, h, _ := setup(t, uc, tr)

		post(r, voice, "s3cret")
		h.Wait()

		if string(tr.audio) != "OggS" {
			t.Errorf("audio = %q", tr.audio)
		}
		if len(uc.calls) != 1 || uc.calls[0].Text != "three hours on the audit" {
			t.Errorf("calls = %+v", uc.calls)
		}
	})

	t.Run("transcription fails", func(t *testing.T) {
		uc := &mockUseCase{reply: guidedReply()}
		r, h, srv := setup(t, uc, &mockTranscriber{err: errors.New("boom")})

		post(r, voice, "s3cret")
		h.Wait()

		if len(uc.calls) != 0 {
			t.Errorf("calls = %+v", uc.calls)
		}
		if texts := srv.texts(); len(texts) != 1 || texts[0] != VoiceFailedText {
			t.Errorf("sent = %v", texts)
		}
	})

	t.Run("no transcriber", func(t *testing.T) {
		uc := &mockUseCase{}
		r, h, srv := setup(t, uc, nil)

		post(r, voice, "s3cret")
		h.Wait()

		if texts := srv.texts(); len(texts) != 1 || texts[0] != NoVoiceText {
			t.Errorf("sent = %v", texts)
		}
	})
}

func TestSessionIDOf(t *testing.T) {
	from := &pkgTelegram.User{ID: 42}
	private := &pkgTelegram.Message{From: from, Chat: &pkgTelegram.Chat{ID: 7, Type: "private"}}
	group := &pkgTelegram.Message{From: from, Chat: &pkgTelegram.Chat{ID: -100, Type: "group"}}

	if got := sessionIDOf(private); got != "telegram_7" {
		t.Errorf("private = %q", got)
	}
	if got := sessionIDOf(group); got != "telegram_-100_42" {
		t.Errorf("group = %q", got)
	}
}

func TestNotifier(t *testing.T) {
	srv := newTGServer(t)
	bot := pkgTelegram.NewBot("test-token")
	bot.SetAPIURL(srv.URL)
	n := NewNotifier(pkgLog.NewNop(), bot)

	ctx := context.Background()
	n.Notify(ctx, model.Scope{UserID: "u1"}, model.TimeEntry{}, submission.Outcome{Status: submission.StatusDelivered})
	n.Notify(ctx, model.Scope{UserID: "telegram_42", ChatID: 7}, model.TimeEntry{}, submission.Outcome{Status: submission.StatusFailed})

	texts := srv.texts()
	if len(texts) != 1 || texts[0] != conversation.NoticeFor(submission.StatusFailed) {
		t.Fatalf("sent = %v", texts)
	}
	if got := srv.messages()[0].ChatID; got != 7 {
		t.Errorf("chat = %d", got)
	}
}
