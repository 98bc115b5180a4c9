// Package ratelimit throttles outbound calls against per-category token buckets.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/fivetwenty-io/gmaps/pkg/gmaps"
)

// Static errors for err113 compliance.
var (
	ErrWaitAborted = errors.New("rate limit wait aborted")
)

// Limiter holds one token bucket per configured category. A call is charged against
// CategoryAll and every category it names; categories without a bucket are unlimited.
//
// Reservations across buckets are taken under one lock, so a call either debits all
// of its buckets or none, and callers are served in the order they arrived.
type Limiter struct {
	mu      sync.Mutex
	buckets map[gmaps.Category]*rate.Limiter
}

// New creates a limiter from per-category budgets.
func New(limits map[gmaps.Category]gmaps.RateLimit) (*Limiter, error) {
	l := &Limiter{
		buckets: make(map[gmaps.Category]*rate.Limiter, len(limits)),
	}

	for category, limit := range limits {
		if limit.Requests <= 0 || limit.Per <= 0 || limit.Burst < 0 {
			return nil, fmt.Errorf("%w: %s: %d per %s", gmaps.ErrInvalidRateLimit, category, limit.Requests, limit.Per)
		}

		burst := limit.Burst
		if burst == 0 {
			burst = limit.Requests
		}

		l.buckets[category] = rate.NewLimiter(rate.Limit(float64(limit.Requests)/limit.Per.Seconds()), burst)
	}

	return l, nil
}

// Acquire blocks until CategoryAll and every named category have budget, then
// debits one call from each and returns how long it waited. If ctx is done first
// the reservations are cancelled and the context error is returned. A bucket gets
// its token back only when no later caller has reserved behind the cancelled one;
// otherwise the slot stays spent until the next refill, so budgets are never
// exceeded but a cancelled wait can delay later callers by one refill interval.
func (l *Limiter) Acquire(ctx context.Context, categories ...gmaps.Category) (time.Duration, error) {
	err := ctx.Err()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWaitAborted, err)
	}

	reservedAt, reservations, delay := l.reserve(gmaps.NormalizeCategories(categories))
	if delay <= 0 {
		return 0, nil
	}

	timer := time.NewTimer(delay)

	select {
	case <-ctx.Done():
		timer.Stop()

		// Cancelling at the reservation time also refunds buckets that had budget
		// immediately. Reservations queued after ours keep their place.
		for _, reservation := range reservations {
			reservation.CancelAt(reservedAt)
		}

		return time.Since(reservedAt), fmt.Errorf("%w: %w", ErrWaitAborted, ctx.Err())
	case <-timer.C:
		return delay, nil
	}
}

func (l *Limiter) reserve(categories []gmaps.Category) (time.Time, []*rate.Reservation, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	reservations := make([]*rate.Reservation, 0, len(categories))

	var delay time.Duration

	for _, category := range categories {
		bucket, ok := l.buckets[category]
		if !ok {
			continue
		}

		reservation := bucket.ReserveN(now, 1)
		reservations = append(reservations, reservation)
		delay = max(delay, reservation.DelayFrom(now))
	}

	return now, reservations, delay
}

// Limited reports whether the category has a bucket.
func (l *Limiter) Limited(category gmaps.Category) bool {
	_, ok := l.buckets[category]

	return ok
}

// Tokens returns the budget currently available in a category. Unlimited
// categories report false.
func (l *Limiter) Tokens(category gmaps.Category) (float64, bool) {
	bucket, ok := l.buckets[category]
	if !ok {
		return 0, false
	}

	return bucket.Tokens(), true
}
