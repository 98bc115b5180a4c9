// Package retry drives repeated attempts of an operation with exponential backoff
// until it succeeds, fails permanently or exhausts its budget.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/fivetwenty-io/gmaps/internal/constants"
	"github.com/fivetwenty-io/gmaps/pkg/gmaps"
)

// Static errors for err113 compliance.
var (
	ErrAborted = errors.New("request execution aborted")
)

// State is the position of an execution in the retry state machine.
type State int

// States. Every execution starts in StateAttempting and ends in StateSucceeded or
// StateFailed.
const (
	StateAttempting State = iota
	StateBackingOff
	StateSucceeded
	StateFailed
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case StateAttempting:
		return "attempting"
	case StateBackingOff:
		return "backing_off"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Policy bounds an execution.
type Policy struct {
	// MaxAttempts is the total number of attempts, the first included.
	MaxAttempts int
	// InitialInterval is the delay after the first failed attempt.
	InitialInterval time.Duration
	// MaxInterval caps every delay, suggested ones included.
	MaxInterval time.Duration
	// Multiplier is the growth factor between successive delays.
	Multiplier float64
	// Jitter is the fraction of each delay that is randomized downwards.
	Jitter float64
	// MaxElapsed is the ceiling on total wall time. Zero means no ceiling.
	MaxElapsed time.Duration
}

// DefaultPolicy returns the policy used when nothing is configured.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:     constants.DefaultRetryMax + 1,
		InitialInterval: constants.DefaultRetryWaitMin,
		MaxInterval:     constants.DefaultRetryWaitMax,
		Multiplier:      constants.DefaultRetryMultiplier,
		Jitter:          constants.DefaultRetryJitter,
		MaxElapsed:      constants.DefaultRetryMaxElapsed,
	}
}

func (p Policy) normalized() Policy {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}

	if p.Multiplier < 1 {
		p.Multiplier = 1
	}

	if p.MaxInterval < p.InitialInterval {
		p.MaxInterval = p.InitialInterval
	}

	p.Jitter = math.Max(0, math.Min(1, p.Jitter))

	return p
}

// Delay returns the backoff after the given failed attempt (1-based). random is a
// value in [0, 1) choosing the point in the jitter range [d*(1-Jitter), d]. A positive
// suggested delay replaces the computed one; both are capped at MaxInterval.
func (p Policy) Delay(attempt int, suggested time.Duration, random float64) time.Duration {
	p = p.normalized()

	if suggested > 0 {
		return min(suggested, p.MaxInterval)
	}

	base := float64(p.InitialInterval) * math.Pow(p.Multiplier, float64(attempt-1))
	if base > float64(p.MaxInterval) || math.IsInf(base, 1) {
		base = float64(p.MaxInterval)
	}

	return time.Duration(base * (1 - p.Jitter*random))
}

// Event describes one finished attempt and the state the execution moves to.
type Event struct {
	Attempt int
	// State is StateSucceeded, StateBackingOff or StateFailed.
	State State
	// Err is the attempt's failure, nil on success.
	Err error
	// Delay is the backoff before the next attempt when State is StateBackingOff.
	Delay time.Duration
	// Elapsed is the time since the execution started.
	Elapsed time.Duration
}

// Observer receives an Event for every attempt, before the engine acts on it.
type Observer func(Event)

// Operation is one attempt. It returns nil on success, a *gmaps.Error for a
// classified failure, and any other error to end the execution immediately.
type Operation func(ctx context.Context, attempt int) error

// Engine runs operations under a policy. It holds no per-execution state and may be
// shared between goroutines.
type Engine struct {
	policy   Policy
	observer Observer
	random   func() float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithObserver sets the attempt observer.
func WithObserver(observer Observer) Option {
	return func(e *Engine) {
		e.observer = observer
	}
}

// WithRandom replaces the jitter source.
func WithRandom(random func() float64) Option {
	return func(e *Engine) {
		e.random = random
	}
}

// New creates an engine.
func New(policy Policy, opts ...Option) *Engine {
	e := &Engine{
		policy: policy.normalized(),
		random: rand.Float64,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Policy returns the engine's normalized policy.
func (e *Engine) Policy() Policy {
	return e.policy
}

// Run executes op until it succeeds, fails permanently or the budget runs out. The
// terminal *gmaps.Error carries the number of attempts made. If ctx is done the
// context error is returned wrapped in ErrAborted and no further attempt is made.
func (e *Engine) Run(ctx context.Context, op Operation) error {
	return e.RunWithObserver(ctx, op, nil)
}

// RunWithObserver is Run with an additional observer for this execution only.
func (e *Engine) RunWithObserver(ctx context.Context, op Operation, observer Observer) error {
	start := time.Now()

	emit := func(event Event) {
		event.Elapsed = time.Since(start)

		if e.observer != nil {
			e.observer(event)
		}

		if observer != nil {
			observer(event)
		}
	}

	for attempt := 1; ; attempt++ {
		err := op(ctx, attempt)
		if err == nil {
			emit(Event{Attempt: attempt, State: StateSucceeded})

			return nil
		}

		if ctx.Err() != nil {
			emit(Event{Attempt: attempt, State: StateFailed, Err: err})

			return aborted(ctx, attempt)
		}

		classified, ok := gmaps.AsError(err)
		if !ok {
			emit(Event{Attempt: attempt, State: StateFailed, Err: err})

			return err
		}

		delay, retry := e.next(classified, attempt, time.Since(start))
		if !retry {
			classified.Attempts = attempt
			emit(Event{Attempt: attempt, State: StateFailed, Err: classified})

			return classified
		}

		emit(Event{Attempt: attempt, State: StateBackingOff, Err: classified, Delay: delay})

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()

			return aborted(ctx, attempt)
		case <-timer.C:
		}
	}
}

// next decides whether a failed attempt is retried and after what delay.
func (e *Engine) next(classified *gmaps.Error, attempt int, elapsed time.Duration) (time.Duration, bool) {
	if classified.Kind != gmaps.KindTransient || attempt >= e.policy.MaxAttempts {
		return 0, false
	}

	delay := e.policy.Delay(attempt, classified.RetryAfter, e.random())
	if e.policy.MaxElapsed > 0 && elapsed+delay > e.policy.MaxElapsed {
		return 0, false
	}

	return delay, true
}

func aborted(ctx context.Context, attempts int) error {
	return fmt.Errorf("%w after %d attempt(s): %w", ErrAborted, attempts, ctx.Err())
}
