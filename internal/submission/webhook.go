package submission

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// HeaderDeliveryID carries the delivery's idempotency key.
	HeaderDeliveryID = "X-Delivery-ID"

	maxErrorBody = 512
)

// WebhookSink posts payloads as JSON to a configured URL.
type WebhookSink struct {
	url    string
	apiKey string
	client *http.Client
}

// NewWebhookSink creates a sink for url. A nil client gets a default one.
func NewWebhookSink(url, apiKey string, client *http.Client) *WebhookSink {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &WebhookSink{url: url, apiKey: apiKey, client: client}
}

// Name implements Sink.
func (w *WebhookSink) Name() string {
	return "webhook"
}

// Send implements Sink.
func (w *WebhookSink) Send(ctx context.Context, deliveryID string, p Payload) error {
	return w.post(ctx, deliveryID, p)
}

// Ping implements Pinger.
func (w *WebhookSink) Ping(ctx context.Context, deliveryID string, p PingPayload) error {
	return w.post(ctx, deliveryID, p)
}

func (w *WebhookSink) post(ctx context.Context, deliveryID string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(data))
	if err != nil {
		return &TransportError{Sink: w.Name(), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderDeliveryID, deliveryID)
	if w.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+w.apiKey)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return &TransportError{Sink: w.Name(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &RejectedError{Sink: w.Name(), StatusCode: resp.StatusCode, Body: string(msg)}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
