package submission

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"timesheet-assistant/pkg/log"
)

func TestWebhookSink_Send(t *testing.T) {
	var gotAuth, gotID, gotType string
	var got Payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotID = r.Header.Get(HeaderDeliveryID)
		gotType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	sink := NewWebhookSink(srv.URL, "secret", srv.Client())
	p := NewPayload(testEntry(), testActor, fixedNow)

	if err := sink.Send(context.Background(), "d-1", p); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if gotAuth != "Bearer secret" || gotID != "d-1" || gotType != "application/json" {
		t.Errorf("headers auth=%q id=%q type=%q", gotAuth, gotID, gotType)
	}
	if !reflect.DeepEqual(got, p) {
		t.Errorf("body = %+v, want %+v", got, p)
	}
}

func TestWebhookSink_NoAPIKeyNoAuthHeader(t *testing.T) {
	var hadAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadAuth = r.Header["Authorization"]
	}))
	defer srv.Close()

	if err := NewWebhookSink(srv.URL, "", srv.Client()).Send(context.Background(), "d", Payload{}); err != nil {
		t.Fatal(err)
	}
	if hadAuth {
		t.Error("Authorization header sent without an API key")
	}
}

func TestWebhookSink_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, "missing matter")
	}))

	err := NewWebhookSink(srv.URL, "", srv.Client()).Send(context.Background(), "d", Payload{})
	var re *RejectedError
	if !errors.As(err, &re) || re.StatusCode != http.StatusUnprocessableEntity || re.Body != "missing matter" {
		t.Errorf("err = %v, want RejectedError 422", err)
	}

	srv.Close()
	err = NewWebhookSink(srv.URL, "", srv.Client()).Send(context.Background(), "d", Payload{})
	if !errors.Is(err, ErrDeliveryTransport) {
		t.Errorf("err = %v, want ErrDeliveryTransport", err)
	}
}

func TestService_PingWebhook(t *testing.T) {
	var hits int32
	var got PingPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc, err := NewService(NewWebhookSink(srv.URL, "k", srv.Client()), Config{Policy: DefaultPolicy()}, log.NewNop(),
		WithClock(func() time.Time { return fixedNow }))
	if err != nil {
		t.Fatal(err)
	}

	out, err := svc.Ping(context.Background())

	if !errors.Is(err, ErrDeliveryRejected) || out.Status != StatusFailed {
		t.Errorf("Ping() = %+v, %v", out, err)
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("ping hit the endpoint %d times, want a single attempt", n)
	}
	if !got.Test || got.Message != PingMessage || !got.Timestamp.Equal(fixedNow) {
		t.Errorf("ping body = %+v", got)
	}
}
