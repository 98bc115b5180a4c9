package gmaps

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// RateLimit is the permitted call allowance of one category: Requests calls per Per,
// with bursts of up to Burst calls. A zero Burst defaults to Requests.
type RateLimit struct {
	Requests int           `json:"requests" yaml:"requests"`
	Per      time.Duration `json:"per"      yaml:"per"`
	Burst    int           `json:"burst"    yaml:"burst"`
}

// EventsConfig configures publishing of attempt events to NATS.
type EventsConfig struct {
	// URL of the NATS server, e.g. "nats://127.0.0.1:4222". Empty disables publishing.
	URL string
	// Subject prefix; events are published on "<Subject>.<service>".
	Subject string
}

// Config represents client configuration for building a gmaps.Client.
//
// # Retries
//
// Transient failures (connection errors, HTTP 5xx, HTTP 429) are retried with
// exponential backoff and jitter. RetryMax bounds the number of retries after the
// first attempt and RetryMaxElapsed bounds the total time spent; whichever is hit
// first ends the execution. A zero value selects the default; a negative RetryMax
// disables retries.
//
// # Rate limiting
//
// RateLimits maps categories to budgets. CategoryAll is charged for every request
// in addition to the request's own category. Categories missing from the map are
// unlimited. A nil map selects the default budget for CategoryAll only.
type Config struct {
	// APIKey is sent as the "key" query parameter of every request.
	APIKey string

	// MapsBaseURL overrides the base URL of the maps web services
	// (directions, geocoding, elevation, time zone).
	MapsBaseURL string
	// RoadsBaseURL overrides the base URL of the Roads API.
	RoadsBaseURL string

	// HTTPTimeout bounds a single attempt. Context deadlines bound the whole execution.
	HTTPTimeout time.Duration

	// RetryMax: maximum number of retries after the first attempt.
	RetryMax int
	// RetryWaitMin: first backoff interval.
	RetryWaitMin time.Duration
	// RetryWaitMax: upper bound of any single backoff interval.
	RetryWaitMax time.Duration
	// RetryMaxElapsed: ceiling on the total time spent attempting and backing off.
	RetryMaxElapsed time.Duration
	// RetryJitter: fraction in [0, 1] of each backoff interval that is randomized.
	RetryJitter float64

	// RateLimits: per-category call budgets.
	RateLimits map[Category]RateLimit

	// Debug: enables verbose HTTP request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger.
	Logger Logger

	// OnAttempt is called for every attempt, before the retry decision is acted on.
	OnAttempt func(AttemptEvent)
	// MetricsRegisterer: when set, request metrics are registered on it.
	MetricsRegisterer prometheus.Registerer
	// Events: optional NATS publishing of attempt events.
	Events *EventsConfig
}

// AttemptOutcome describes what happened to one attempt.
type AttemptOutcome string

// Attempt outcomes.
const (
	AttemptSucceeded AttemptOutcome = "success"
	AttemptRetryable AttemptOutcome = "retryable"
	AttemptTerminal  AttemptOutcome = "terminal"
)

// AttemptEvent describes one attempt of a request execution.
type AttemptEvent struct {
	RequestID  string         `json:"request_id"`
	Service    string         `json:"service"`
	Categories []Category     `json:"categories"`
	Attempt    int            `json:"attempt"`
	Outcome    AttemptOutcome `json:"outcome"`
	StatusCode int            `json:"status_code,omitempty"`
	Error      string         `json:"error,omitempty"`
	// Delay is the backoff before the next attempt; zero unless the outcome is retryable.
	Delay    time.Duration `json:"delay,omitempty"`
	Duration time.Duration `json:"duration"`
	Time     time.Time     `json:"time"`
}
