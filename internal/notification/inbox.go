package notification

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"timesheet-assistant/internal/conversation"
	"timesheet-assistant/internal/model"
	"timesheet-assistant/internal/submission"
	pkgLog "timesheet-assistant/pkg/log"
)

const (
	// DefaultPerUser bounds how many undrained notifications a user keeps.
	DefaultPerUser = 20
	defaultUsers   = 1000
	defaultTTL     = time.Hour
)

// Inbox keeps delivery outcomes per user until an HTTP client drains them.
type Inbox struct {
	l       pkgLog.Logger
	mu      sync.Mutex
	cache   *expirable.LRU[string, []Notification]
	perUser int
	now     func() time.Time
}

// NewInbox creates an inbox for up to users distinct users. Zero values pick defaults.
func NewInbox(l pkgLog.Logger, users int, ttl time.Duration) *Inbox {
	if users <= 0 {
		users = defaultUsers
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Inbox{
		l:       l,
		cache:   expirable.NewLRU[string, []Notification](users, nil, ttl),
		perUser: DefaultPerUser,
		now:     time.Now,
	}
}

// Notify implements submission.Notifier.
func (in *Inbox) Notify(ctx context.Context, sc model.Scope, entry model.TimeEntry, out submission.Outcome) {
	if sc.UserID == "" {
		return
	}

	n := Notification{
		DeliveryID: out.DeliveryID,
		Sink:       out.Sink,
		Status:     out.Status,
		Attempts:   out.Attempts,
		Message:    conversation.NoticeFor(out.Status),
		Entry:      entry,
		CreatedAt:  in.now(),
	}
	if out.Err != nil && out.Status == submission.StatusFailed {
		n.Error = out.Err.Error()
	}

	in.mu.Lock()
	defer in.mu.Unlock()

	list, _ := in.cache.Get(sc.UserID)
	list = append(list, n)
	if len(list) > in.perUser {
		list = list[len(list)-in.perUser:]
	}
	in.cache.Add(sc.UserID, list)

	in.l.Debugf(ctx, "notification.Inbox.Notify: user=%s delivery=%s status=%s", sc.UserID, n.DeliveryID, n.Status)
}

// Drain returns and forgets the pending notifications of a user, oldest first.
func (in *Inbox) Drain(userID string) []Notification {
	in.mu.Lock()
	defer in.mu.Unlock()

	list, ok := in.cache.Get(userID)
	if !ok {
		return []Notification{}
	}
	in.cache.Remove(userID)
	return list
}
