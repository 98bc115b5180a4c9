package retry_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/gmaps/internal/retry"
	"github.com/fivetwenty-io/gmaps/pkg/gmaps"
)

var (
	errServerError = errors.New("500 Internal Server Error")
	errBadRequest  = errors.New("400 Bad Request")
	errUnexpected  = errors.New("unexpected")
)

func fastPolicy(maxAttempts int) retry.Policy {
	return retry.Policy{
		MaxAttempts:     maxAttempts,
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
		Multiplier:      2,
		Jitter:          0.5,
		MaxElapsed:      time.Minute,
	}
}

type recorder struct {
	mu     sync.Mutex
	events []retry.Event
}

func (r *recorder) observe(event retry.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, event)
}

func (r *recorder) states() []retry.State {
	r.mu.Lock()
	defer r.mu.Unlock()

	states := make([]retry.State, 0, len(r.events))
	for _, event := range r.events {
		states = append(states, event.State)
	}

	return states
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestEngine_Run(t *testing.T) {
	t.Parallel()

	t.Run("succeeds after transient failures", func(t *testing.T) {
		t.Parallel()

		rec := &recorder{}
		engine := retry.New(fastPolicy(5), retry.WithObserver(rec.observe))

		calls := 0
		err := engine.Run(context.Background(), func(ctx context.Context, attempt int) error {
			calls++
			assert.Equal(t, calls, attempt)

			if attempt <= 3 {
				return gmaps.Transient(errServerError, 0)
			}

			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 4, calls)
		assert.Equal(t, []retry.State{
			retry.StateBackingOff,
			retry.StateBackingOff,
			retry.StateBackingOff,
			retry.StateSucceeded,
		}, rec.states())
	})

	t.Run("permanent failure ends after one attempt", func(t *testing.T) {
		t.Parallel()

		rec := &recorder{}
		engine := retry.New(fastPolicy(5), retry.WithObserver(rec.observe))

		calls := 0
		err := engine.Run(context.Background(), func(ctx context.Context, attempt int) error {
			calls++

			return gmaps.Permanent(errBadRequest)
		})
		require.Error(t, err)
		assert.Equal(t, 1, calls)
		assert.True(t, gmaps.IsPermanent(err))
		require.ErrorIs(t, err, errBadRequest)

		classified, ok := gmaps.AsError(err)
		require.True(t, ok)
		assert.Equal(t, 1, classified.Attempts)
		assert.Equal(t, []retry.State{retry.StateFailed}, rec.states())
	})

	t.Run("attempt budget is respected", func(t *testing.T) {
		t.Parallel()

		engine := retry.New(fastPolicy(3))

		calls := 0
		err := engine.Run(context.Background(), func(ctx context.Context, attempt int) error {
			calls++

			return gmaps.Transient(errServerError, 0)
		})
		require.Error(t, err)
		assert.Equal(t, 3, calls)
		assert.True(t, gmaps.IsTransient(err))
		require.ErrorIs(t, err, errServerError)
		assert.Contains(t, err.Error(), "after 3 attempt(s)")
	})

	t.Run("elapsed budget is respected", func(t *testing.T) {
		t.Parallel()

		policy := fastPolicy(10)
		policy.InitialInterval = time.Second
		policy.MaxInterval = time.Second
		policy.MaxElapsed = 100 * time.Millisecond

		engine := retry.New(policy)

		calls := 0
		started := time.Now()
		err := engine.Run(context.Background(), func(ctx context.Context, attempt int) error {
			calls++

			return gmaps.Transient(errServerError, 0)
		})
		require.Error(t, err)
		assert.Equal(t, 1, calls)
		assert.True(t, gmaps.IsTransient(err))
		assert.Less(t, time.Since(started), time.Second)
	})

	t.Run("cancellation during backoff stops immediately", func(t *testing.T) {
		t.Parallel()

		policy := fastPolicy(5)
		policy.InitialInterval = time.Hour
		policy.MaxInterval = time.Hour
		policy.MaxElapsed = 0

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		engine := retry.New(policy, retry.WithObserver(func(event retry.Event) {
			if event.State == retry.StateBackingOff {
				cancel()
			}
		}))

		calls := 0
		err := engine.Run(ctx, func(ctx context.Context, attempt int) error {
			calls++

			return gmaps.Transient(errServerError, 0)
		})
		require.Error(t, err)
		assert.Equal(t, 1, calls)
		require.ErrorIs(t, err, context.Canceled)
		require.ErrorIs(t, err, retry.ErrAborted)
	})

	t.Run("cancellation during an attempt returns the context error", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		engine := retry.New(fastPolicy(5))

		calls := 0
		err := engine.Run(ctx, func(ctx context.Context, attempt int) error {
			calls++
			cancel()

			return gmaps.Transient(ctx.Err(), 0)
		})
		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})

	t.Run("unclassified error is terminal", func(t *testing.T) {
		t.Parallel()

		engine := retry.New(fastPolicy(5))

		calls := 0
		err := engine.Run(context.Background(), func(ctx context.Context, attempt int) error {
			calls++

			return errUnexpected
		})
		require.ErrorIs(t, err, errUnexpected)
		assert.Equal(t, 1, calls)
	})

	t.Run("suggested delay replaces computed delay", func(t *testing.T) {
		t.Parallel()

		policy := fastPolicy(2)
		policy.InitialInterval = time.Hour
		policy.MaxInterval = time.Hour

		rec := &recorder{}
		engine := retry.New(policy)

		err := engine.RunWithObserver(context.Background(), func(ctx context.Context, attempt int) error {
			if attempt == 1 {
				return gmaps.Transient(errServerError, 10*time.Millisecond)
			}

			return nil
		}, rec.observe)
		require.NoError(t, err)
		require.Len(t, rec.events, 2)
		assert.Equal(t, 10*time.Millisecond, rec.events[0].Delay)
	})
}

func TestPolicy_Delay(t *testing.T) {
	t.Parallel()

	policy := retry.Policy{
		MaxAttempts:     10,
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     time.Second,
		Multiplier:      2,
		Jitter:          0.5,
	}

	t.Run("grows exponentially without jitter draw", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 100*time.Millisecond, policy.Delay(1, 0, 0))
		assert.Equal(t, 200*time.Millisecond, policy.Delay(2, 0, 0))
		assert.Equal(t, 400*time.Millisecond, policy.Delay(3, 0, 0))
		assert.Equal(t, 800*time.Millisecond, policy.Delay(4, 0, 0))
	})

	t.Run("is capped at max interval", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, time.Second, policy.Delay(5, 0, 0))
		assert.Equal(t, time.Second, policy.Delay(1000, 0, 0))
	})

	t.Run("jitter only shortens the delay", func(t *testing.T) {
		t.Parallel()

		for attempt := 1; attempt <= 8; attempt++ {
			full := policy.Delay(attempt, 0, 0)

			for _, random := range []float64{0, 0.25, 0.5, 0.999} {
				delay := policy.Delay(attempt, 0, random)
				assert.LessOrEqual(t, delay, full)
				assert.GreaterOrEqual(t, delay, full/2)
			}
		}
	})

	t.Run("suggested delay is capped", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 300*time.Millisecond, policy.Delay(1, 300*time.Millisecond, 0.9))
		assert.Equal(t, time.Second, policy.Delay(1, time.Minute, 0))
	})
}

func TestNew_NormalizesPolicy(t *testing.T) {
	t.Parallel()

	engine := retry.New(retry.Policy{MaxAttempts: 0, Multiplier: 0.1, Jitter: 3})

	policy := engine.Policy()
	assert.Equal(t, 1, policy.MaxAttempts)
	assert.InDelta(t, 1.0, policy.Multiplier, 1e-9)
	assert.InDelta(t, 1.0, policy.Jitter, 1e-9)
}

func TestState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "attempting", retry.StateAttempting.String())
	assert.Equal(t, "backing_off", retry.StateBackingOff.String())
	assert.Equal(t, "succeeded", retry.StateSucceeded.String())
	assert.Equal(t, "failed", retry.StateFailed.String())
}
