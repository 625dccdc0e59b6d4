package submission

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured marks a sink with no endpoint. Delivery is skipped.
	ErrNotConfigured = errors.New("delivery endpoint not configured")

	// ErrDeliveryTransport is matched by every TransportError.
	ErrDeliveryTransport = errors.New("delivery transport failure")

	// ErrDeliveryRejected is matched by every RejectedError.
	ErrDeliveryRejected = errors.New("delivery rejected by endpoint")

	// ErrInvalidPolicy reports an unusable retry policy.
	ErrInvalidPolicy = errors.New("invalid retry policy")
)

// TransportError wraps a failure to reach the endpoint at all.
type TransportError struct {
	Sink string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Sink, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrDeliveryTransport, e.Err}
}

// RejectedError is returned when the endpoint answers with a non-2xx status.
type RejectedError struct {
	Sink       string
	StatusCode int
	Body       string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Sink, e.StatusCode, e.Body)
}

func (e *RejectedError) Unwrap() error {
	return ErrDeliveryRejected
}
