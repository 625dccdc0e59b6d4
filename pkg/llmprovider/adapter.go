package llmprovider

import (
	"context"

	"timesheet-assistant/pkg/openai"
)

// ChatClient is the chat-completion half of pkg/openai.
type ChatClient interface {
	ChatCompletion(ctx context.Context, req *openai.ChatRequest) (*openai.ChatResponse, error)
	Model() string
}

// OpenAIAdapter adapts pkg/openai, or any OpenAI-compatible server, to Provider.
type OpenAIAdapter struct {
	name   string
	client ChatClient
}

// NewOpenAIAdapter creates a new adapter reported under name.
func NewOpenAIAdapter(name string, client ChatClient) *OpenAIAdapter {
	return &OpenAIAdapter{name: name, client: client}
}

// GenerateContent implements Provider interface
func (a *OpenAIAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || len(req.Messages) == 0 {
		return nil, ErrInvalidRequest
	}

	chatReq := &openai.ChatRequest{
		Messages:    make([]openai.ChatMessage, 0, len(req.Messages)+1),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.SystemInstruction != nil {
		if text := req.SystemInstruction.Text(); text != "" {
			chatReq.Messages = append(chatReq.Messages, openai.ChatMessage{Role: RoleSystem, Content: text})
		}
	}
	for _, m := range req.Messages {
		chatReq.Messages = append(chatReq.Messages, openai.ChatMessage{Role: m.Role, Content: m.Text()})
	}

	resp, err := a.client.ChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, &ProviderError{Provider: a.name, Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &ProviderError{Provider: a.name, Err: ErrEmptyResponse}
	}

	return &Response{
		Content: Message{
			Role:  RoleAssistant,
			Parts: []Part{{Text: resp.Choices[0].Message.Content}},
		},
		ProviderName: a.name,
		ModelName:    resp.Model,
		Usage: &Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// Name returns provider name
func (a *OpenAIAdapter) Name() string {
	return a.name
}

// Model returns model name
func (a *OpenAIAdapter) Model() string {
	return a.client.Model()
}
