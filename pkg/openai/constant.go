package openai

import "time"

const (
	// DefaultBaseURL is the OpenAI API endpoint. Any OpenAI-compatible server works.
	DefaultBaseURL = "https://api.openai.com/v1"

	DefaultModel              = "gpt-4o-mini"
	DefaultTranscriptionModel = "whisper-1"
	DefaultTimeout            = 60 * time.Second
)
