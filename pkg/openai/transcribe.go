package openai

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
)

// Transcribe converts recorded speech to text with /audio/transcriptions.
func (c *Client) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	if len(audio) == 0 {
		return "", fmt.Errorf("openai transcribe: empty audio")
	}
	if filename == "" {
		filename = "voice.ogg"
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("model", c.transcriptionModel); err != nil {
		return "", fmt.Errorf("openai transcribe: %w", err)
	}
	if err := w.WriteField("response_format", "json"); err != nil {
		return "", fmt.Errorf("openai transcribe: %w", err)
	}
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("openai transcribe: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", fmt.Errorf("openai transcribe: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("openai transcribe: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/transcriptions", &buf)
	if err != nil {
		return "", fmt.Errorf("openai transcribe: %w", err)
	}
	httpReq.Header.Set("Content-Type", w.FormDataContentType())

	var result TranscriptionResponse
	if err := c.do(httpReq, &result); err != nil {
		return "", fmt.Errorf("openai transcribe: %w", err)
	}
	return strings.TrimSpace(result.Text), nil
}
