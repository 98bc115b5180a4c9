package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/gmaps/internal/metrics"
	"github.com/fivetwenty-io/gmaps/pkg/gmaps"
)

func TestCollector(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	collector := metrics.New(reg)
	require.NotNil(t, collector)

	collector.ObserveAttempt("nearest_roads", gmaps.AttemptRetryable, 20*time.Millisecond)
	collector.ObserveAttempt("nearest_roads", gmaps.AttemptRetryable, 20*time.Millisecond)
	collector.ObserveAttempt("nearest_roads", gmaps.AttemptSucceeded, 10*time.Millisecond)
	collector.ObserveRequest("nearest_roads", metrics.ResultSuccess)
	collector.ObserveRateLimitWait([]gmaps.Category{gmaps.CategoryAll, gmaps.CategoryRoads}, time.Millisecond)

	assert.InDelta(t, 2.0, testutil.ToFloat64(collector.AttemptsTotal.WithLabelValues("nearest_roads", "retryable")), 1e-9)
	assert.InDelta(t, 1.0, testutil.ToFloat64(collector.AttemptsTotal.WithLabelValues("nearest_roads", "success")), 1e-9)
	assert.InDelta(t, 1.0, testutil.ToFloat64(collector.RequestsTotal.WithLabelValues("nearest_roads", "success")), 1e-9)
	assert.Equal(t, 1, testutil.CollectAndCount(collector.AttemptDuration))
	assert.Equal(t, 2, testutil.CollectAndCount(collector.RateLimitWait))

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, family := range families {
		names = append(names, family.GetName())
	}

	assert.ElementsMatch(t, []string{
		"gmaps_attempts_total",
		"gmaps_attempt_duration_seconds",
		"gmaps_requests_total",
		"gmaps_rate_limit_wait_seconds",
	}, names)
}

func TestCollector_Nil(t *testing.T) {
	t.Parallel()

	collector := metrics.New(nil)
	assert.Nil(t, collector)

	assert.NotPanics(t, func() {
		collector.ObserveAttempt("elevation", gmaps.AttemptTerminal, time.Second)
		collector.ObserveRequest("elevation", metrics.ResultPermanent)
		collector.ObserveRateLimitWait([]gmaps.Category{gmaps.CategoryAll}, time.Second)
	})
}

func TestNew_DuplicateRegistrationPanics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	metrics.New(reg)

	assert.Panics(t, func() {
		metrics.New(reg)
	})
}
