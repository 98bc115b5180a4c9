// Package metrics exports Prometheus metrics for request executions.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/fivetwenty-io/gmaps/internal/constants"
	"github.com/fivetwenty-io/gmaps/pkg/gmaps"
)

// Request results.
const (
	ResultSuccess   = "success"
	ResultTransient = "transient"
	ResultPermanent = "permanent"
	ResultAborted   = "aborted"
)

// Collector records attempt, request and rate-limit metrics. A nil *Collector is
// valid and records nothing.
type Collector struct {
	// AttemptsTotal tracks attempts per service and outcome
	AttemptsTotal *prometheus.CounterVec
	// AttemptDuration tracks the latency of single attempts
	AttemptDuration *prometheus.HistogramVec
	// RequestsTotal tracks finished executions per service and result
	RequestsTotal *prometheus.CounterVec
	// RateLimitWait tracks time spent waiting for rate-limit budget
	RateLimitWait *prometheus.HistogramVec
}

// New registers the collector's metrics on reg. It returns nil when reg is nil.
func New(reg prometheus.Registerer) *Collector {
	if reg == nil {
		return nil
	}

	factory := promauto.With(reg)

	return &Collector{
		AttemptsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: constants.MetricsNamespace,
				Name:      "attempts_total",
				Help:      "Total number of HTTP attempts",
			},
			[]string{"service", "outcome"},
		),
		AttemptDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: constants.MetricsNamespace,
				Name:      "attempt_duration_seconds",
				Help:      "HTTP attempt latency in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"service"},
		),
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: constants.MetricsNamespace,
				Name:      "requests_total",
				Help:      "Total number of request executions by final result",
			},
			[]string{"service", "result"},
		),
		RateLimitWait: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: constants.MetricsNamespace,
				Name:      "rate_limit_wait_seconds",
				Help:      "Time spent waiting for rate-limit budget in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"category"},
		),
	}
}

// ObserveAttempt records one attempt.
func (c *Collector) ObserveAttempt(service string, outcome gmaps.AttemptOutcome, duration time.Duration) {
	if c == nil {
		return
	}

	c.AttemptsTotal.WithLabelValues(service, string(outcome)).Inc()
	c.AttemptDuration.WithLabelValues(service).Observe(duration.Seconds())
}

// ObserveRequest records the final result of an execution.
func (c *Collector) ObserveRequest(service, result string) {
	if c == nil {
		return
	}

	c.RequestsTotal.WithLabelValues(service, result).Inc()
}

// ObserveRateLimitWait records a wait for budget, charged to each category.
func (c *Collector) ObserveRateLimitWait(categories []gmaps.Category, waited time.Duration) {
	if c == nil {
		return
	}

	for _, category := range categories {
		c.RateLimitWait.WithLabelValues(string(category)).Observe(waited.Seconds())
	}
}
