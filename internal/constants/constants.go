package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// Service endpoints.
const (
	// DefaultMapsBaseURL serves directions, geocoding, elevation and time zone.
	DefaultMapsBaseURL = "https://maps.googleapis.com"

	// DefaultRoadsBaseURL serves the Roads API.
	DefaultRoadsBaseURL = "https://roads.googleapis.com"

	// APIKeyParam is the query parameter carrying the API key.
	APIKeyParam = "key"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for a single attempt.
	DefaultHTTPTimeout = 30 * time.Second
)

// Retry limits.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 5

	// DefaultRetryWaitMin is the first backoff interval.
	DefaultRetryWaitMin = 500 * time.Millisecond

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second

	// DefaultRetryMaxElapsed caps the time spent on one request across attempts.
	DefaultRetryMaxElapsed = 2 * time.Minute

	// DefaultRetryMultiplier is the growth factor of successive backoff intervals.
	DefaultRetryMultiplier = 1.5

	// DefaultRetryJitter is the randomized fraction of each backoff interval.
	DefaultRetryJitter = 0.5

	// MaxErrorBodyBytes limits how much of an error response body is kept.
	MaxErrorBodyBytes = 4096
)

// Rate limits.
const (
	// DefaultRequestsPerSecond is the default budget of CategoryAll.
	DefaultRequestsPerSecond = 50
)

// Events.
const (
	// DefaultEventsSubject is the subject prefix for attempt events.
	DefaultEventsSubject = "gmaps.attempts"

	// EventsClientName identifies the client to the NATS server.
	EventsClientName = "gmaps"

	// EventsMaxReconnects bounds reconnect attempts to the NATS server.
	EventsMaxReconnects = 10

	// EventsReconnectWait is the delay between reconnect attempts.
	EventsReconnectWait = 2 * time.Second
)

// Metrics.
const (
	// MetricsNamespace prefixes every exported metric.
	MetricsNamespace = "gmaps"
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"

	// JSONIndentSize is the number of spaces for JSON indentation.
	JSONIndentSize = 2
)
