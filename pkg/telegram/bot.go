package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultAPIBase = "https://api.telegram.org"
	defaultTimeout = 30 * time.Second

	// MaxVoiceBytes bounds downloaded voice notes.
	MaxVoiceBytes = 20 << 20
)

// Bot is the Telegram Bot API client.
type Bot struct {
	token      string
	apiURL     string
	fileURL    string
	httpClient *http.Client
}

// NewBot creates a new Telegram Bot client with the given token.
func NewBot(token string) *Bot {
	return &Bot{
		token:      token,
		apiURL:     fmt.Sprintf("%s/bot%s", defaultAPIBase, token),
		fileURL:    fmt.Sprintf("%s/file/bot%s", defaultAPIBase, token),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// SetAPIURL points the client at another server, typically an httptest
// server. File downloads go to <url>/file.
func (b *Bot) SetAPIURL(url string) {
	url = strings.TrimRight(url, "/")
	b.apiURL = url
	b.fileURL = url + "/file"
}

// SetWebhook registers the webhook URL with Telegram. A non-empty secret is
// echoed back by Telegram in the X-Telegram-Bot-Api-Secret-Token header.
func (b *Bot) SetWebhook(ctx context.Context, webhookURL, secret string) error {
	payload := SetWebhookRequest{
		URL:            webhookURL,
		SecretToken:    secret,
		AllowedUpdates: []string{"message"},
	}
	if err := b.call(ctx, "setWebhook", payload, nil); err != nil {
		return fmt.Errorf("telegram setWebhook: %w", err)
	}
	return nil
}

// SendMessage sends a plain text message to a Telegram chat.
func (b *Bot) SendMessage(ctx context.Context, chatID int64, text string) error {
	return b.Send(ctx, SendMessageRequest{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: &ReplyMarkup{RemoveKeyboard: true},
	})
}

// SendOptions sends text with a one-time reply keyboard, one option per row.
func (b *Bot) SendOptions(ctx context.Context, chatID int64, text string, options []string) error {
	if len(options) == 0 {
		return b.SendMessage(ctx, chatID, text)
	}
	rows := make([][]KeyboardButton, 0, len(options))
	for _, o := range options {
		rows = append(rows, []KeyboardButton{{Text: o}})
	}
	return b.Send(ctx, SendMessageRequest{
		ChatID: chatID,
		Text:   text,
		ReplyMarkup: &ReplyMarkup{
			Keyboard:        rows,
			OneTimeKeyboard: true,
			ResizeKeyboard:  true,
		},
	})
}

// Send posts a prepared sendMessage request.
func (b *Bot) Send(ctx context.Context, req SendMessageRequest) error {
	if err := b.call(ctx, "sendMessage", req, nil); err != nil {
		return fmt.Errorf("telegram sendMessage: %w", err)
	}
	return nil
}

// GetFile resolves a file id to a downloadable path.
func (b *Bot) GetFile(ctx context.Context, fileID string) (File, error) {
	var f File
	if err := b.call(ctx, "getFile", map[string]string{"file_id": fileID}, &f); err != nil {
		return File{}, fmt.Errorf("telegram getFile: %w", err)
	}
	if f.FilePath == "" {
		return File{}, fmt.Errorf("telegram getFile: empty file path for %s", fileID)
	}
	return f, nil
}

// DownloadFile fetches the content of a file id, up to MaxVoiceBytes.
func (b *Bot) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	f, err := b.GetFile(ctx, fileID)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s", b.fileURL, f.FilePath), nil)
	if err != nil {
		return nil, fmt.Errorf("telegram download: %w", err)
	}
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("telegram download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("telegram download: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxVoiceBytes+1))
	if err != nil {
		return nil, fmt.Errorf("telegram download: %w", err)
	}
	if len(data) > MaxVoiceBytes {
		return nil, fmt.Errorf("telegram download: file exceeds %d bytes", MaxVoiceBytes)
	}
	return data, nil
}

// call posts payload to a Bot API method and decodes the result into out when non-nil.
func (b *Bot) call(ctx context.Context, method string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/%s", b.apiURL, method), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(raw, &apiResp); err != nil {
		return fmt.Errorf("API error %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if !apiResp.OK {
		return fmt.Errorf("API error %d: %s", resp.StatusCode, apiResp.Description)
	}
	if out != nil && len(apiResp.Result) > 0 {
		if err := json.Unmarshal(apiResp.Result, out); err != nil {
			return fmt.Errorf("decode result: %w", err)
		}
	}
	return nil
}
