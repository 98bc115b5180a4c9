package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/fivetwenty-io/gmaps/internal/constants"
	"github.com/fivetwenty-io/gmaps/internal/events"
	"github.com/fivetwenty-io/gmaps/internal/http"
	"github.com/fivetwenty-io/gmaps/internal/metrics"
	"github.com/fivetwenty-io/gmaps/internal/ratelimit"
	"github.com/fivetwenty-io/gmaps/internal/retry"
	"github.com/fivetwenty-io/gmaps/pkg/gmaps"
)

// Client implements the gmaps.Client and gmaps.Executor interfaces.
type Client struct {
	httpClient *http.Client
	limiter    *ratelimit.Limiter
	engine     *retry.Engine
	metrics    *metrics.Collector
	emitter    *events.Emitter
	logger     gmaps.Logger
	onAttempt  func(gmaps.AttemptEvent)

	apiKey   string
	baseURLs map[gmaps.Host]string
}

// Option configures a Client beyond what gmaps.Config covers.
type Option func(*Client)

// WithEventPublisher publishes attempt events through an existing publisher instead
// of dialing the server named in the config.
func WithEventPublisher(publisher events.Publisher, subject string) Option {
	return func(c *Client) {
		c.emitter = events.New(publisher, subject, c.logger)
	}
}

// WithRandom replaces the backoff jitter source.
func WithRandom(random func() float64) Option {
	return func(c *Client) {
		c.engine = retry.New(c.engine.Policy(), retry.WithRandom(random))
	}
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *gmaps.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	return httpOpts
}

// createRetryPolicy builds the retry policy from config, filling in defaults.
func createRetryPolicy(config *gmaps.Config) retry.Policy {
	policy := retry.DefaultPolicy()

	switch {
	case config.RetryMax < 0:
		policy.MaxAttempts = 1
	case config.RetryMax > 0:
		policy.MaxAttempts = config.RetryMax + 1
	}

	if config.RetryWaitMin > 0 {
		policy.InitialInterval = config.RetryWaitMin
	}

	if config.RetryWaitMax > 0 {
		policy.MaxInterval = config.RetryWaitMax
	}

	if config.RetryMaxElapsed > 0 {
		policy.MaxElapsed = config.RetryMaxElapsed
	}

	switch {
	case config.RetryJitter < 0:
		policy.Jitter = 0
	case config.RetryJitter > 0:
		policy.Jitter = config.RetryJitter
	}

	return policy
}

// createRateLimits returns the configured budgets, or the default CategoryAll budget
// when none are configured.
func createRateLimits(config *gmaps.Config) map[gmaps.Category]gmaps.RateLimit {
	if config.RateLimits != nil {
		return config.RateLimits
	}

	return map[gmaps.Category]gmaps.RateLimit{
		gmaps.CategoryAll: {Requests: constants.DefaultRequestsPerSecond, Per: time.Second},
	}
}

// New creates a client from config. If config.Events names a server, the
// connection is established here and released by Close.
func New(config *gmaps.Config, opts ...Option) (*Client, error) {
	if config == nil {
		return nil, gmaps.ErrConfigRequired
	}

	limiter, err := ratelimit.New(createRateLimits(config))
	if err != nil {
		return nil, fmt.Errorf("creating rate limiter: %w", err)
	}

	logger := config.Logger
	if logger == nil {
		logger = noopLogger{}
	}

	client := &Client{
		httpClient: http.NewClient(createHTTPClientOptions(config)...),
		limiter:    limiter,
		engine:     retry.New(createRetryPolicy(config)),
		metrics:    metrics.New(config.MetricsRegisterer),
		logger:     logger,
		onAttempt:  config.OnAttempt,
		apiKey:     config.APIKey,
		baseURLs: map[gmaps.Host]string{
			gmaps.HostMaps:  baseURL(config.MapsBaseURL, constants.DefaultMapsBaseURL),
			gmaps.HostRoads: baseURL(config.RoadsBaseURL, constants.DefaultRoadsBaseURL),
		},
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.emitter == nil && config.Events != nil && config.Events.URL != "" {
		client.emitter, err = events.Connect(config.Events, logger)
		if err != nil {
			return nil, err
		}
	}

	return client, nil
}

func baseURL(configured, fallback string) string {
	if configured == "" {
		return fallback
	}

	return strings.TrimSuffix(configured, "/")
}

// NearestRoads implements gmaps.Client.NearestRoads.
func (c *Client) NearestRoads(points ...gmaps.LatLng) *gmaps.NearestRoadsRequest {
	return gmaps.NewNearestRoadsRequest(c, points...)
}

// SnapToRoads implements gmaps.Client.SnapToRoads.
func (c *Client) SnapToRoads(path ...gmaps.LatLng) *gmaps.SnapToRoadsRequest {
	return gmaps.NewSnapToRoadsRequest(c, path...)
}

// Directions implements gmaps.Client.Directions.
func (c *Client) Directions(origin, destination string) *gmaps.DirectionsRequest {
	return gmaps.NewDirectionsRequest(c, origin, destination)
}

// Geocode implements gmaps.Client.Geocode.
func (c *Client) Geocode() *gmaps.GeocodingRequest {
	return gmaps.NewGeocodingRequest(c)
}

// ReverseGeocode implements gmaps.Client.ReverseGeocode.
func (c *Client) ReverseGeocode(location gmaps.LatLng) *gmaps.ReverseGeocodingRequest {
	return gmaps.NewReverseGeocodingRequest(c, location)
}

// Elevation implements gmaps.Client.Elevation.
func (c *Client) Elevation(locations ...gmaps.LatLng) *gmaps.ElevationRequest {
	return gmaps.NewElevationRequest(c, locations...)
}

// TimeZone implements gmaps.Client.TimeZone.
func (c *Client) TimeZone(location gmaps.LatLng, at time.Time) *gmaps.TimeZoneRequest {
	return gmaps.NewTimeZoneRequest(c, location, at)
}

// Limiter returns the client's rate limiter.
func (c *Client) Limiter() *ratelimit.Limiter {
	return c.limiter
}

// Close releases the events connection, if any.
func (c *Client) Close() error {
	if c.emitter == nil {
		return nil
	}

	return c.emitter.Close()
}

// noopLogger discards everything.
type noopLogger struct{}

func (noopLogger) Debug(string, map[string]interface{}) {}
func (noopLogger) Info(string, map[string]interface{})  {}
func (noopLogger) Warn(string, map[string]interface{})  {}
func (noopLogger) Error(string, map[string]interface{}) {}
