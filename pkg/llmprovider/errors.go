package llmprovider

import (
	"errors"
	"fmt"

	"timesheet-assistant/pkg/openai"
)

var (
	// ErrAllProvidersFailed is returned when no provider in the chain produced a reply.
	ErrAllProvidersFailed = errors.New("all providers failed")

	// ErrNoProvidersConfigured is returned when the chain is empty.
	ErrNoProvidersConfigured = errors.New("no providers configured")

	// ErrInvalidRequest rejects a request without messages.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrProviderTimeout is returned when the total timeout ends the chain.
	ErrProviderTimeout = errors.New("provider timeout")

	// ErrEmptyResponse marks a completion with no choices.
	ErrEmptyResponse = errors.New("empty response")
)

// ProviderError ties an error to the provider that returned it.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// retryable reports whether the same provider should be asked again.
// Malformed requests and client errors such as a bad API key fail the same
// way every time, so the manager moves on to the next provider instead.
func retryable(err error) bool {
	if errors.Is(err, ErrInvalidRequest) {
		return false
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Temporary()
	}
	return true
}
