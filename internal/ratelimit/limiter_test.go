package ratelimit_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/gmaps/internal/ratelimit"
	"github.com/fivetwenty-io/gmaps/pkg/gmaps"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		limits  map[gmaps.Category]gmaps.RateLimit
		wantErr bool
	}{
		{name: "nil limits", limits: nil},
		{name: "valid", limits: map[gmaps.Category]gmaps.RateLimit{gmaps.CategoryAll: {Requests: 10, Per: time.Second}}},
		{name: "zero requests", limits: map[gmaps.Category]gmaps.RateLimit{gmaps.CategoryAll: {Requests: 0, Per: time.Second}}, wantErr: true},
		{name: "zero period", limits: map[gmaps.Category]gmaps.RateLimit{gmaps.CategoryRoads: {Requests: 1}}, wantErr: true},
		{name: "negative burst", limits: map[gmaps.Category]gmaps.RateLimit{gmaps.CategoryRoads: {Requests: 1, Per: time.Second, Burst: -1}}, wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			limiter, err := ratelimit.New(testCase.limits)
			if testCase.wantErr {
				require.ErrorIs(t, err, gmaps.ErrInvalidRateLimit)
				assert.Nil(t, limiter)

				return
			}

			require.NoError(t, err)
			assert.NotNil(t, limiter)
		})
	}
}

func TestLimiter_Unlimited(t *testing.T) {
	t.Parallel()

	limiter, err := ratelimit.New(nil)
	require.NoError(t, err)

	for range 1000 {
		waited, err := limiter.Acquire(context.Background(), gmaps.CategoryRoads)
		require.NoError(t, err)
		assert.Zero(t, waited)
	}

	assert.False(t, limiter.Limited(gmaps.CategoryAll))
}

func TestLimiter_ImplicitAll(t *testing.T) {
	t.Parallel()

	limiter, err := ratelimit.New(map[gmaps.Category]gmaps.RateLimit{
		gmaps.CategoryAll: {Requests: 1, Per: time.Hour},
	})
	require.NoError(t, err)

	_, err = limiter.Acquire(context.Background(), gmaps.CategoryRoads)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = limiter.Acquire(ctx, gmaps.CategoryGeocoding)
	require.ErrorIs(t, err, ratelimit.ErrWaitAborted)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLimiter_CategoriesAreIndependent(t *testing.T) {
	t.Parallel()

	limiter, err := ratelimit.New(map[gmaps.Category]gmaps.RateLimit{
		gmaps.CategoryRoads: {Requests: 1, Per: time.Hour},
	})
	require.NoError(t, err)

	_, err = limiter.Acquire(context.Background(), gmaps.CategoryRoads)
	require.NoError(t, err)

	waited, err := limiter.Acquire(context.Background(), gmaps.CategoryGeocoding)
	require.NoError(t, err)
	assert.Zero(t, waited)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = limiter.Acquire(ctx, gmaps.CategoryRoads)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLimiter_CancelRestoresBudget(t *testing.T) {
	t.Parallel()

	limiter, err := ratelimit.New(map[gmaps.Category]gmaps.RateLimit{
		gmaps.CategoryAll:   {Requests: 2, Per: time.Hour},
		gmaps.CategoryRoads: {Requests: 5, Per: time.Hour},
	})
	require.NoError(t, err)

	for range 2 {
		_, err = limiter.Acquire(context.Background(), gmaps.CategoryRoads)
		require.NoError(t, err)
	}

	roadsBefore, ok := limiter.Tokens(gmaps.CategoryRoads)
	require.True(t, ok)
	assert.InDelta(t, 3.0, roadsBefore, 0.01)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = limiter.Acquire(ctx, gmaps.CategoryRoads)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	all, ok := limiter.Tokens(gmaps.CategoryAll)
	require.True(t, ok)
	assert.InDelta(t, 0.0, all, 0.01)

	roads, ok := limiter.Tokens(gmaps.CategoryRoads)
	require.True(t, ok)
	assert.InDelta(t, 3.0, roads, 0.01)
}

func TestLimiter_CancelWithQueuedCallerNeverOvershoots(t *testing.T) {
	t.Parallel()

	limiter, err := ratelimit.New(map[gmaps.Category]gmaps.RateLimit{
		gmaps.CategoryAll: {Requests: 1, Per: 100 * time.Millisecond, Burst: 1},
	})
	require.NoError(t, err)

	_, err = limiter.Acquire(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	cancelled := make(chan error, 1)

	go func() {
		_, acquireErr := limiter.Acquire(ctx)
		cancelled <- acquireErr
	}()

	time.Sleep(10 * time.Millisecond)

	start := time.Now()

	_, err = limiter.Acquire(context.Background())
	require.NoError(t, err)
	require.ErrorIs(t, <-cancelled, context.DeadlineExceeded)

	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
}

func TestLimiter_CancelledBeforeAcquire(t *testing.T) {
	t.Parallel()

	limiter, err := ratelimit.New(map[gmaps.Category]gmaps.RateLimit{
		gmaps.CategoryAll: {Requests: 1, Per: time.Hour},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = limiter.Acquire(ctx)
	require.ErrorIs(t, err, context.Canceled)

	tokens, ok := limiter.Tokens(gmaps.CategoryAll)
	require.True(t, ok)
	assert.InDelta(t, 1.0, tokens, 0.01)
}

func TestLimiter_ConcurrentCallersAreThrottled(t *testing.T) {
	t.Parallel()

	limiter, err := ratelimit.New(map[gmaps.Category]gmaps.RateLimit{
		gmaps.CategoryAll: {Requests: 5, Per: 100 * time.Millisecond, Burst: 5},
	})
	require.NoError(t, err)

	const callers = 10

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		waits   []time.Duration
		started = time.Now()
	)

	for range callers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			waited, err := limiter.Acquire(context.Background(), gmaps.CategoryElevation)
			assert.NoError(t, err)

			mu.Lock()
			waits = append(waits, waited)
			mu.Unlock()
		}()
	}

	wg.Wait()

	assert.Len(t, waits, callers)
	assert.GreaterOrEqual(t, time.Since(started), 80*time.Millisecond)

	immediate := 0

	for _, waited := range waits {
		if waited == 0 {
			immediate++
		}
	}

	assert.Equal(t, 5, immediate)
}
