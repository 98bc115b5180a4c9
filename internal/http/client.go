// Package http executes single HTTP GET attempts. It never retries: retry decisions
// belong to the caller.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/gmaps/internal/constants"
)

// Static errors for err113 compliance.
var (
	ErrReadingBody = errors.New("reading response body")
)

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Client performs one HTTP GET per call.
type Client struct {
	client  *retryablehttp.Client
	logger  Logger
	debug   bool
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithTimeout bounds a single attempt.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client. The client is copied, so the
// caller's value is never modified; its transport is shared.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		copied := *httpClient
		c.client.HTTPClient = &copied
	}
}

// NewClient creates a new single-attempt HTTP client.
func NewClient(opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.CheckRetry = neverRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil

	c := &Client{
		client:  retryClient,
		timeout: constants.DefaultHTTPTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.timeout > 0 && c.client.HTTPClient.Timeout == 0 {
		c.client.HTTPClient.Timeout = c.timeout
	}

	if c.logger != nil && c.debug {
		c.client.Logger = &leveledLogger{logger: c.logger}
		c.client.RequestLogHook = c.logRequest
		c.client.ResponseLogHook = c.logResponse
	}

	return c
}

// Get performs exactly one GET of rawURL. Cancelling ctx aborts the call.
func (c *Client) Get(ctx context.Context, rawURL string) *Outcome {
	start := time.Now()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return &Outcome{
			Kind:     OutcomeInvalidRequest,
			Err:      err,
			Duration: time.Since(start),
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}

		return &Outcome{
			Kind:     OutcomeTransportFailure,
			Err:      err,
			Duration: time.Since(start),
		}
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	outcome := &Outcome{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		outcome.Kind = OutcomeSuccess

		outcome.Body, err = io.ReadAll(resp.Body)
		if err != nil {
			outcome.Err = fmt.Errorf("%w: %w", ErrReadingBody, err)
		}
	} else {
		outcome.Kind = OutcomeHTTPFailure
		outcome.Body, _ = io.ReadAll(io.LimitReader(resp.Body, constants.MaxErrorBodyBytes))
	}

	outcome.Duration = time.Since(start)

	return outcome
}

func (c *Client) logRequest(_ retryablehttp.Logger, req *http.Request, _ int) {
	c.logger.Debug("HTTP Request", map[string]interface{}{
		"method": req.Method,
		"url":    RedactURL(req.URL.String()),
	})
}

func (c *Client) logResponse(_ retryablehttp.Logger, resp *http.Response) {
	c.logger.Debug("HTTP Response", map[string]interface{}{
		"status_code": resp.StatusCode,
		"url":         RedactURL(resp.Request.URL.String()),
	})
}

// neverRetry leaves every retry decision to the caller.
func neverRetry(ctx context.Context, _ *http.Response, _ error) (bool, error) {
	return false, nil
}

// RedactURL hides the API key of a URL so it can be logged.
func RedactURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "<unparseable URL>"
	}

	query := parsed.Query()
	if query.Has(constants.APIKeyParam) {
		query.Set(constants.APIKeyParam, "REDACTED")
		parsed.RawQuery = query.Encode()
	}

	return parsed.String()
}

// leveledLogger adapts Logger to retryablehttp.LeveledLogger.
type leveledLogger struct {
	logger Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, fields(keysAndValues))
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, fields(keysAndValues))
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, fields(keysAndValues))
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, fields(keysAndValues))
}

func fields(keysAndValues []interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key := fmt.Sprint(keysAndValues[i])
		value := keysAndValues[i+1]

		if key == "url" {
			value = RedactURL(fmt.Sprint(value))
		}

		out[key] = value
	}

	return out
}
