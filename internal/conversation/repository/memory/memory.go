// Package memory keeps session snapshots in an expiring LRU. Given a backing
// repository it acts as a read-through cache in front of it.
package memory

import (
	"context"
	"errors"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"timesheet-assistant/internal/conversation"
	"timesheet-assistant/internal/conversation/repository"
	"timesheet-assistant/internal/model"
)

type implRepository struct {
	cache *expirable.LRU[string, conversation.Session]
	next  repository.SessionRepository
}

// New creates an LRU of size entries that expire after ttl. next may be nil,
// in which case sessions only live in memory.
func New(size int, ttl time.Duration, next repository.SessionRepository) repository.SessionRepository {
	return &implRepository{
		cache: expirable.NewLRU[string, conversation.Session](size, nil, ttl),
		next:  next,
	}
}

func (r *implRepository) Save(ctx context.Context, s conversation.Session) error {
	if err := repository.ValidateID(s.ID); err != nil {
		return err
	}
	if r.next != nil {
		if err := r.next.Save(ctx, s); err != nil {
			r.cache.Remove(s.ID)
			return err
		}
	}
	r.cache.Add(s.ID, clone(s))
	return nil
}

func (r *implRepository) Load(ctx context.Context, id string) (*conversation.Session, error) {
	if s, ok := r.cache.Get(id); ok {
		c := clone(s)
		return &c, nil
	}
	if r.next == nil {
		return nil, repository.ErrNotFound
	}
	s, err := r.next.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	r.cache.Add(id, clone(*s))
	return s, nil
}

func (r *implRepository) Delete(ctx context.Context, id string) error {
	present := r.cache.Remove(id)
	if r.next == nil {
		if !present {
			return repository.ErrNotFound
		}
		return nil
	}
	err := r.next.Delete(ctx, id)
	if present && errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	return err
}

// clone copies the slices and pointers of a session so cached snapshots
// cannot be changed through a caller's copy.
func clone(s conversation.Session) conversation.Session {
	if s.Transcript != nil {
		s.Transcript = append([]model.Turn(nil), s.Transcript...)
	}
	if s.LastEntry != nil {
		e := *s.LastEntry
		s.LastEntry = &e
	}
	return s
}
