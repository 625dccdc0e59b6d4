package repository

import (
	"context"
	"errors"
	"regexp"

	"timesheet-assistant/internal/conversation"
)

var (
	// ErrNotFound is returned by Load and Delete for unknown session IDs.
	ErrNotFound = errors.New("session snapshot not found")
	// ErrInvalidID rejects IDs that are unsafe as file names or keys.
	ErrInvalidID = errors.New("invalid session id")
)

// SessionRepository stores whole session snapshots. Save replaces any
// previous snapshot atomically; readers never observe a partial write.
type SessionRepository interface {
	Save(ctx context.Context, s conversation.Session) error
	Load(ctx context.Context, id string) (*conversation.Session, error)
	Delete(ctx context.Context, id string) error
}

var validID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// ValidateID reports ErrInvalidID for IDs outside [A-Za-z0-9_-]{1,128}.
func ValidateID(id string) error {
	if !validID.MatchString(id) {
		return ErrInvalidID
	}
	return nil
}
