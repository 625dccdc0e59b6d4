package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"timesheet-assistant/config"
	"timesheet-assistant/internal/conversation"
	"timesheet-assistant/internal/dialogue"
	"timesheet-assistant/internal/model"
	"timesheet-assistant/pkg/log"
)

func testApp(deliveryURL string) *app {
	return &app{
		cfg: &config.Config{
			Delivery: config.DeliveryConfig{
				URL:            deliveryURL,
				Enabled:        deliveryURL != "",
				RetryAttempts:  1,
				InitialDelay:   time.Millisecond,
				MaxDelay:       time.Millisecond,
				AttemptTimeout: time.Second,
			},
		},
		logger: log.NewNop(),
	}
}

func run(t *testing.T, a *app, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(a)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseTranscript(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		isJSON bool
		want   []model.Turn
	}{
		{
			name:  "prefixed lines",
			input: "user: I reviewed contracts\nassistant: How long?\nuser: 2 hours",
			want: []model.Turn{
				{Role: model.RoleUser, Content: "I reviewed contracts"},
				{Role: model.RoleAssistant, Content: "How long?"},
				{Role: model.RoleUser, Content: "2 hours"},
			},
		},
		{
			name:  "continuation lines",
			input: "Assistant: Summary:\n- Task: Audit\nUser: yes",
			want: []model.Turn{
				{Role: model.RoleAssistant, Content: "Summary:\n- Task: Audit"},
				{Role: model.RoleUser, Content: "yes"},
			},
		},
		{
			name:  "leading text is the user",
			input: "worked on the audit for an hour",
			want:  []model.Turn{{Role: model.RoleUser, Content: "worked on the audit for an hour"}},
		},
		{
			name:   "json",
			input:  `[{"role":"user","content":"45 minutes of email"}]`,
			isJSON: true,
			want:   []model.Turn{{Role: model.RoleUser, Content: "45 minutes of email"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTranscript(strings.NewReader(tt.input), tt.isJSON)
			if err != nil {
				t.Fatalf("parseTranscript() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parseTranscript() = %+v, want %+v", got, tt.want)
			}
			for i := range got {
				if got[i].Role != tt.want[i].Role || got[i].Content != tt.want[i].Content {
					t.Errorf("turn %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPickOption(t *testing.T) {
	opts := []string{"Alpha", "Beta"}
	tests := map[string]string{"1": "Alpha", "2": "Beta", "3": "3", "0": "0", "Gamma": "Gamma"}
	for in, want := range tests {
		if got := pickOption(in, opts); got != want {
			t.Errorf("pickOption(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestExtractCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat.txt")
	if err := os.WriteFile(path, []byte("user: I spent 2 hours on the audit\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, testApp(""), "", "extract", path)
	if err != nil {
		t.Fatalf("extract error = %v", err)
	}

	var res conversation.ExtractOutput
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if res.Entry.DurationMinutes != 120 {
		t.Errorf("duration = %d, want 120", res.Entry.DurationMinutes)
	}
	if res.Complete {
		t.Error("complete = true without a confirmation")
	}
}

func TestExtractCmd_MissingFile(t *testing.T) {
	if _, err := run(t, testApp(""), "", "extract", filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("extract error = nil for a missing file")
	}
}

func TestPingCmd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	out, err := run(t, testApp(srv.URL), "", "ping")
	if err != nil {
		t.Fatalf("ping error = %v", err)
	}
	if !strings.Contains(out, "webhook: delivered") {
		t.Errorf("output = %q", out)
	}
}

func TestPingCmd_NotConfigured(t *testing.T) {
	if _, err := run(t, testApp(""), "", "ping"); err == nil {
		t.Error("ping error = nil without a delivery URL")
	}
}

func TestChatCmd(t *testing.T) {
	out, err := run(t, testApp(""), "/retry\n/quit\n", "chat")
	if err != nil {
		t.Fatalf("chat error = %v", err)
	}
	if !strings.Contains(out, dialogue.PromptGreeting) {
		t.Errorf("missing greeting in %q", out)
	}
	if !strings.Contains(out, "Nothing to resend yet.") {
		t.Errorf("missing retry notice in %q", out)
	}
}
