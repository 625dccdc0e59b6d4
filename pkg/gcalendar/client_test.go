package gcalendar_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"timesheet-assistant/pkg/gcalendar"
)

type rewriteTransport struct {
	Transport http.RoundTripper
	Host      string
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = "http"
	req.URL.Host = t.Host
	return t.Transport.RoundTrip(req)
}

const installedCreds = `{
	"installed": {
		"client_id": "test-client-id.apps.googleusercontent.com",
		"project_id": "test-project",
		"auth_uri": "https://accounts.google.com/o/oauth2/auth",
		"token_uri": "https://oauth2.googleapis.com/token",
		"client_secret": "test-secret",
		"redirect_uris": ["http://localhost"]
	}
}`

func newTestClient(t *testing.T, h http.HandlerFunc) *gcalendar.Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	httpClient := ts.Client()
	httpClient.Transport = &rewriteTransport{
		Transport: httpClient.Transport,
		Host:      strings.TrimPrefix(ts.URL, "http://"),
	}
	client, err := gcalendar.NewClientFromHTTP(context.Background(), httpClient)
	if err != nil {
		t.Fatalf("unexpected error creating client: %v", err)
	}
	return client
}

func TestNewClientFromCredentials(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	tokenPath := filepath.Join(dir, "token.json")

	t.Run("broken credentials", func(t *testing.T) {
		if _, err := gcalendar.NewClientFromCredentialsJSON(ctx, []byte(`{"broken":true}`), tokenPath); err == nil {
			t.Error("expected decoding failure")
		}
	})

	t.Run("installed app without token", func(t *testing.T) {
		if _, err := gcalendar.NewClientFromCredentialsJSON(ctx, []byte(installedCreds), tokenPath); err == nil {
			t.Error("expected missing token failure")
		}
	})

	t.Run("installed app with saved token", func(t *testing.T) {
		tok := &oauth2.Token{AccessToken: "dummy", TokenType: "Bearer", Expiry: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}
		if err := gcalendar.SaveToken(tokenPath, tok); err != nil {
			t.Fatalf("SaveToken() error = %v", err)
		}
		if _, err := gcalendar.NewClientFromCredentialsJSON(ctx, []byte(installedCreds), tokenPath); err != nil {
			t.Fatalf("expected parsing to succeed: %v", err)
		}
	})

	t.Run("installed app with bad token", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		os.WriteFile(bad, []byte(`{"broken": true`), 0o600)
		if _, err := gcalendar.NewClientFromCredentialsJSON(ctx, []byte(installedCreds), bad); err == nil {
			t.Fatal("expected parsing to fail on bad token")
		}
	})

	t.Run("from file", func(t *testing.T) {
		if _, err := gcalendar.NewClientFromCredentialsFile(ctx, filepath.Join(dir, "missing.json"), tokenPath); err == nil {
			t.Error("expected reading file error")
		}
	})
}

func TestOAuthHelpers(t *testing.T) {
	cfg, err := gcalendar.OAuthConfigFromJSON([]byte(installedCreds))
	if err != nil {
		t.Fatalf("OAuthConfigFromJSON() error = %v", err)
	}
	url := gcalendar.AuthCodeURL(cfg)
	if !strings.Contains(url, "access_type=offline") || !strings.Contains(url, "test-client-id") {
		t.Errorf("AuthCodeURL() = %s", url)
	}

	path := filepath.Join(t.TempDir(), "tok.json")
	if err := gcalendar.SaveToken(path, &oauth2.Token{AccessToken: "abc"}); err != nil {
		t.Fatalf("SaveToken() error = %v", err)
	}
	tok, err := gcalendar.LoadToken(path)
	if err != nil || tok.AccessToken != "abc" {
		t.Errorf("LoadToken() = %v, %v", tok, err)
	}
}

func TestCreateEvent(t *testing.T) {
	var body string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/calendar/v3/calendars/primary/events" && r.Method == http.MethodPost {
			raw, _ := io.ReadAll(r.Body)
			body = string(raw)
			w.Write([]byte(`{"id": "event-123", "htmlLink": "https://calendar.google.com/event-uri", "status": "confirmed"}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	event, err := client.CreateEvent(context.Background(), gcalendar.CreateEventRequest{
		Summary:           "Drafting",
		Description:       "Desc",
		StartTime:         time.Now(),
		EndTime:           time.Now().Add(time.Hour),
		PrivateProperties: map[string]string{"delivery_id": "d-1"},
	})
	if err != nil {
		t.Fatalf("failed to create event: %v", err)
	}
	if event.ID != "event-123" || event.HtmlLink != "https://calendar.google.com/event-uri" {
		t.Errorf("unexpected event: %+v", event)
	}
	if !strings.Contains(body, `"delivery_id":"d-1"`) {
		t.Errorf("extended properties missing from body %s", body)
	}
}

func TestCreateEventError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	_, err := client.CreateEvent(context.Background(), gcalendar.CreateEventRequest{
		StartTime: time.Now(),
		EndTime:   time.Now().Add(time.Hour),
	})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestFindEventByProperty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/calendar/v3/calendars/work/events" || r.Method != http.MethodGet {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.URL.Query().Get("privateExtendedProperty") == "delivery_id=d-1" {
			w.Write([]byte(`{"items": [{"id": "event-1", "summary": "Drafting",
				"start": {"dateTime": "2024-06-03T09:00:00Z"}, "end": {"dateTime": "2024-06-03T10:00:00Z"}}]}`))
			return
		}
		w.Write([]byte(`{"items": []}`))
	})

	ev, err := client.FindEventByProperty(context.Background(), "work", "delivery_id", "d-1")
	if err != nil {
		t.Fatalf("FindEventByProperty() error = %v", err)
	}
	if ev == nil || ev.ID != "event-1" || ev.EndTime.Sub(ev.StartTime) != time.Hour {
		t.Errorf("event = %+v", ev)
	}

	ev, err = client.FindEventByProperty(context.Background(), "work", "delivery_id", "d-2")
	if err != nil || ev != nil {
		t.Errorf("missing event = %+v, %v", ev, err)
	}
}
