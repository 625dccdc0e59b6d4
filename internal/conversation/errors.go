package conversation

import "errors"

// Domain-specific errors for the conversation package.
var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionForbidden = errors.New("session belongs to another user")
	ErrInvalidMode      = errors.New("invalid conversation mode")
	ErrWrongMode        = errors.New("session is not in open-ended mode")
	ErrNothingToRetry   = errors.New("no confirmed entry to retry")
	ErrEmptyTranscript  = errors.New("transcript is empty")
)
