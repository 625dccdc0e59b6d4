package telegram_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"timesheet-assistant/pkg/telegram"
)

func TestBot(t *testing.T) {
	var lastSend telegram.SendMessageRequest
	var lastWebhook telegram.SetWebhookRequest

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		switch {
		case strings.HasSuffix(path, "/setWebhook"):
			json.NewDecoder(r.Body).Decode(&lastWebhook)
			if lastWebhook.URL == "cause_error" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"ok": false, "description": "invalid url"}`))
				return
			}
			if lastWebhook.URL == "cause_500" {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Write([]byte(`{"ok": true, "description": "webhook set"}`))

		case strings.HasSuffix(path, "/sendMessage"):
			lastSend = telegram.SendMessageRequest{}
			json.NewDecoder(r.Body).Decode(&lastSend)
			if lastSend.Text == "cause_error" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"ok": false, "description": "invalid text"}`))
				return
			}
			w.Write([]byte(`{"ok": true}`))

		case strings.HasSuffix(path, "/getFile"):
			var req map[string]string
			json.NewDecoder(r.Body).Decode(&req)
			if req["file_id"] == "missing" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"ok": false, "description": "file not found"}`))
				return
			}
			w.Write([]byte(`{"ok": true, "result": {"file_id": "v1", "file_path": "voice/file_1.oga"}}`))

		case path == "/file/voice/file_1.oga":
			w.Write([]byte("OggS-audio"))

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	bot := telegram.NewBot("test-token")
	bot.SetAPIURL(ts.URL)
	ctx := context.Background()

	t.Run("SetWebhook Success", func(t *testing.T) {
		if err := bot.SetWebhook(ctx, "https://example.com/webhook", "s3cret"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if lastWebhook.SecretToken != "s3cret" {
			t.Errorf("secret_token = %q", lastWebhook.SecretToken)
		}
	})

	t.Run("SetWebhook API Failed", func(t *testing.T) {
		err := bot.SetWebhook(ctx, "cause_error", "")
		if err == nil || !strings.Contains(err.Error(), "invalid url") {
			t.Fatalf("expected api failure error, got: %v", err)
		}
	})

	t.Run("SetWebhook HTTP Failed", func(t *testing.T) {
		if err := bot.SetWebhook(ctx, "cause_500", ""); err == nil {
			t.Fatalf("expected http error")
		}
	})

	t.Run("SendMessage Success", func(t *testing.T) {
		if err := bot.SendMessage(ctx, 12345, "hello"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if lastSend.ChatID != 12345 || lastSend.ReplyMarkup == nil || !lastSend.ReplyMarkup.RemoveKeyboard {
			t.Errorf("request = %+v", lastSend)
		}
	})

	t.Run("SendMessage API Failed", func(t *testing.T) {
		err := bot.SendMessage(ctx, 12345, "cause_error")
		if err == nil || !strings.Contains(err.Error(), "invalid text") {
			t.Fatalf("expected error, got: %v", err)
		}
	})

	t.Run("SendOptions builds keyboard", func(t *testing.T) {
		if err := bot.SendOptions(ctx, 1, "Pick one", []string{"Billable", "Personal"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		m := lastSend.ReplyMarkup
		if m == nil || len(m.Keyboard) != 2 || m.Keyboard[1][0].Text != "Personal" || !m.OneTimeKeyboard {
			t.Errorf("markup = %+v", m)
		}
	})

	t.Run("DownloadFile", func(t *testing.T) {
		data, err := bot.DownloadFile(ctx, "v1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != "OggS-audio" {
			t.Errorf("data = %q", data)
		}
	})

	t.Run("DownloadFile missing", func(t *testing.T) {
		if _, err := bot.DownloadFile(ctx, "missing"); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestUserDisplayName(t *testing.T) {
	tests := []struct {
		user *telegram.User
		want string
	}{
		{nil, ""},
		{&telegram.User{FirstName: "Ada", LastName: "Lovelace"}, "Ada Lovelace"},
		{&telegram.User{Username: "ada"}, "ada"},
	}
	for _, tt := range tests {
		if got := tt.user.DisplayName(); got != tt.want {
			t.Errorf("DisplayName() = %q, want %q", got, tt.want)
		}
	}
}
