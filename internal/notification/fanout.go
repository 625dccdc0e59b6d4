package notification

import (
	"context"

	"timesheet-assistant/internal/model"
	"timesheet-assistant/internal/submission"
)

// Fanout forwards every outcome to each notifier in order.
type Fanout []submission.Notifier

// Notify implements submission.Notifier.
func (f Fanout) Notify(ctx context.Context, sc model.Scope, entry model.TimeEntry, out submission.Outcome) {
	for _, n := range f {
		if n != nil {
			n.Notify(ctx, sc, entry, out)
		}
	}
}
