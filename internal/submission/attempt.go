package submission

// AttemptState is a step of the delivery state machine:
// idle -> in_flight -> {delivered | backoff -> in_flight | failed}.
type AttemptState string

const (
	StateIdle      AttemptState = "idle"
	StateInFlight  AttemptState = "in_flight"
	StateBackoff   AttemptState = "backoff"
	StateDelivered AttemptState = "delivered"
	StateFailed    AttemptState = "failed"
)

// attempt tracks one delivery through the state machine.
type attempt struct {
	policy  Policy
	state   AttemptState
	count   int
	lastErr error
}

func newAttempt(p Policy) *attempt {
	return &attempt{policy: p, state: StateIdle}
}

// begin moves idle or backoff to in_flight.
func (a *attempt) begin() {
	a.count++
	a.state = StateInFlight
}

// finish records the result of an in_flight send and returns the next state.
func (a *attempt) finish(err error) AttemptState {
	if err == nil {
		a.lastErr = nil
		a.state = StateDelivered
		return a.state
	}
	a.lastErr = err
	if a.count >= a.policy.MaxAttempts {
		a.state = StateFailed
	} else {
		a.state = StateBackoff
	}
	return a.state
}

// abort ends the machine early, e.g. when the caller's context is done.
func (a *attempt) abort(err error) {
	if a.lastErr == nil {
		a.lastErr = err
	}
	a.state = StateFailed
}

func (a *attempt) done() bool {
	return a.state == StateDelivered || a.state == StateFailed
}
