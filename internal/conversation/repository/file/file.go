// Package file stores session snapshots as one JSON document per session.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"timesheet-assistant/internal/conversation"
	"timesheet-assistant/internal/conversation/repository"
)

type implRepository struct {
	dir string
}

// New creates a repository rooted at dir, creating it if needed.
func New(dir string) (repository.SessionRepository, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &implRepository{dir: dir}, nil
}

func (r *implRepository) path(id string) string {
	return filepath.Join(r.dir, id+".json")
}

// Save writes the snapshot to a temp file in the same directory, syncs it
// and renames it over the previous one.
func (r *implRepository) Save(ctx context.Context, s conversation.Session) error {
	if err := repository.ValidateID(s.ID); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	tmp, err := os.CreateTemp(r.dir, s.ID+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, r.path(s.ID)); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

func (r *implRepository) Load(ctx context.Context, id string) (*conversation.Session, error) {
	if err := repository.ValidateID(id); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(r.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var s conversation.Session
	if err := json.Unmarshal(data, &s); err != nil {
		// Keep the unreadable snapshot for inspection; the caller starts over.
		backup := r.path(id) + ".corrupt"
		_ = os.Rename(r.path(id), backup)
		return nil, fmt.Errorf("corrupt session %s (moved to %s): %w", id, backup, err)
	}
	return &s, nil
}

func (r *implRepository) Delete(ctx context.Context, id string) error {
	if err := repository.ValidateID(id); err != nil {
		return err
	}
	err := os.Remove(r.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return repository.ErrNotFound
	}
	return err
}
