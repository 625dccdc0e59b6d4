package submission

import (
	"context"
	"sync"

	"timesheet-assistant/internal/model"
	"timesheet-assistant/pkg/log"
)

// Dispatcher runs deliveries in the background so the conversation never
// waits for an endpoint. The primary outcome goes to the notifier; mirror
// outcomes are only logged.
type Dispatcher struct {
	primary  Deliverer
	mirrors  []Deliverer
	notifier Notifier
	logger   log.Logger
	wg       sync.WaitGroup
}

// NewDispatcher creates a Dispatcher. notifier may be nil.
func NewDispatcher(primary Deliverer, notifier Notifier, logger log.Logger, mirrors ...Deliverer) *Dispatcher {
	return &Dispatcher{
		primary:  primary,
		mirrors:  mirrors,
		notifier: notifier,
		logger:   logger,
	}
}

// Dispatch starts delivery of entry and returns immediately. The work is
// detached from ctx cancellation but keeps its values for logging.
func (d *Dispatcher) Dispatch(ctx context.Context, sc model.Scope, entry model.TimeEntry) {
	bg := context.WithoutCancel(ctx)
	actor := sc.Actor()

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		out := d.primary.Deliver(bg, entry, actor)
		if d.notifier != nil {
			d.notifier.Notify(bg, sc, entry, out)
		}
	}()

	for _, m := range d.mirrors {
		d.wg.Add(1)
		go func(m Deliverer) {
			defer d.wg.Done()
			out := m.Deliver(bg, entry, actor)
			if out.Status == StatusFailed {
				d.logger.Warnf(bg, "submission.Dispatcher: mirror %s failed: %v", out.Sink, out.Err)
			}
		}(m)
	}
}

// Wait blocks until every dispatched delivery has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
