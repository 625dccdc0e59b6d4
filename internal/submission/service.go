// Package submission delivers confirmed time entries to external sinks with
// bounded retries and exponential backoff.
package submission

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"timesheet-assistant/internal/model"
	"timesheet-assistant/pkg/log"
)

// PingMessage is sent in the body of a connectivity test.
const PingMessage = "This is a test webhook from the timesheet assistant"

// Config tunes a Service.
type Config struct {
	Policy         Policy
	AttemptTimeout time.Duration
}

// Service delivers entries to a single sink. A nil sink means no endpoint is
// configured and every delivery is skipped.
type Service struct {
	sink   Sink
	cfg    Config
	logger log.Logger
	sleep  Sleeper
	now    func() time.Time
	newID  func() string
}

// Option customizes a Service.
type Option func(*Service)

// WithSleeper replaces the backoff wait.
func WithSleeper(s Sleeper) Option {
	return func(svc *Service) { svc.sleep = s }
}

// WithClock replaces the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(svc *Service) { svc.now = now }
}

// NewService creates a Service. AttemptTimeout is clamped to
// MaxAttemptTimeout.
func NewService(sink Sink, cfg Config, logger log.Logger, opts ...Option) (*Service, error) {
	if err := cfg.Policy.Validate(); err != nil {
		return nil, err
	}
	if cfg.AttemptTimeout <= 0 || cfg.AttemptTimeout > MaxAttemptTimeout {
		cfg.AttemptTimeout = MaxAttemptTimeout
	}
	svc := &Service{
		sink:   sink,
		cfg:    cfg,
		logger: logger,
		sleep:  sleepContext,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Configured reports whether the service has a sink.
func (s *Service) Configured() bool {
	return s.sink != nil
}

// Deliver sends entry for actor, retrying transport failures and rejections
// until the policy's attempts are exhausted. It blocks until the outcome is
// known; callers that must not wait use a Dispatcher.
func (s *Service) Deliver(ctx context.Context, entry model.TimeEntry, actor model.Actor) Outcome {
	out := Outcome{DeliveryID: s.newID()}
	if s.sink == nil {
		s.logger.Infof(ctx, "submission.Service.Deliver: %v, skipping delivery %s", ErrNotConfigured, out.DeliveryID)
		out.Status = StatusSkipped
		out.Err = ErrNotConfigured
		return out
	}
	out.Sink = s.sink.Name()

	a := newAttempt(s.cfg.Policy)
	for !a.done() {
		if a.state == StateBackoff {
			delay := s.cfg.Policy.Delay(a.count)
			s.logger.Warnf(ctx, "submission.Service.Deliver: %s attempt %d failed: %v, retrying in %s",
				out.Sink, a.count, a.lastErr, delay)
			if err := s.sleep(ctx, delay); err != nil {
				a.abort(err)
				break
			}
		}

		a.begin()
		payload := NewPayload(entry, actor, s.now())
		a.finish(s.send(ctx, out.DeliveryID, payload))
	}

	out.Attempts = a.count
	out.Err = a.lastErr
	if a.state == StateDelivered {
		out.Status = StatusDelivered
		s.logger.Infof(ctx, "submission.Service.Deliver: delivered %s to %s after %d attempt(s)",
			out.DeliveryID, out.Sink, out.Attempts)
		return out
	}

	out.Status = StatusFailed
	s.logger.Errorf(ctx, "submission.Service.Deliver: giving up on %s to %s after %d attempt(s): %v",
		out.DeliveryID, out.Sink, out.Attempts, out.Err)
	return out
}

func (s *Service) send(ctx context.Context, id string, p Payload) error {
	actx, cancel := context.WithTimeout(ctx, s.cfg.AttemptTimeout)
	defer cancel()
	return s.sink.Send(actx, id, p)
}

// Ping sends a single connectivity test to the sink, without retries.
func (s *Service) Ping(ctx context.Context) (Outcome, error) {
	out := Outcome{DeliveryID: s.newID(), Attempts: 1}
	if s.sink == nil {
		out.Status = StatusSkipped
		out.Attempts = 0
		return out, ErrNotConfigured
	}
	out.Sink = s.sink.Name()
	p, ok := s.sink.(Pinger)
	if !ok {
		out.Status = StatusSkipped
		out.Attempts = 0
		return out, fmt.Errorf("%w: %s does not accept test pings", ErrNotConfigured, out.Sink)
	}

	actx, cancel := context.WithTimeout(ctx, s.cfg.AttemptTimeout)
	defer cancel()
	err := p.Ping(actx, out.DeliveryID, PingPayload{
		Test:      true,
		Timestamp: s.now(),
		Message:   PingMessage,
	})
	if err != nil {
		out.Status = StatusFailed
		out.Err = err
		s.logger.Warnf(ctx, "submission.Service.Ping: %s: %v", out.Sink, err)
		return out, err
	}
	out.Status = StatusDelivered
	return out, nil
}
