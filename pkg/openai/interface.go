package openai

import "context"

// IOpenAI is the subset of the OpenAI API the assistant uses.
type IOpenAI interface {
	ChatCompletion(ctx context.Context, req *ChatRequest) (*ChatResponse, error)
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
	Model() string
}
