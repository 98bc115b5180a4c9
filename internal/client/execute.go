package client

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/fivetwenty-io/gmaps/internal/classify"
	"github.com/fivetwenty-io/gmaps/internal/constants"
	"github.com/fivetwenty-io/gmaps/internal/http"
	"github.com/fivetwenty-io/gmaps/internal/metrics"
	"github.com/fivetwenty-io/gmaps/internal/retry"
	"github.com/fivetwenty-io/gmaps/pkg/gmaps"
)

// execution carries the state of one request across its attempts.
type execution struct {
	requestID  string
	service    gmaps.Service
	categories []gmaps.Category
	url        string

	// last attempt
	statusCode int
	duration   time.Duration
}

// Execute implements gmaps.Executor. Every attempt acquires rate-limit budget, sends
// one GET and classifies the outcome; transient failures are retried under the
// client's policy.
func (c *Client) Execute(ctx context.Context, req *gmaps.Request, out gmaps.Enveloped) error {
	encoded, built := req.Query().Encoded()
	if !built {
		return gmaps.ErrQueryNotBuilt
	}

	service := req.Service()
	exec := &execution{
		requestID:  uuid.NewString(),
		service:    service,
		categories: service.Categories(),
		url:        c.requestURL(service, encoded),
	}

	err := c.engine.RunWithObserver(ctx, func(ctx context.Context, _ int) error {
		return c.attempt(ctx, exec, out)
	}, func(event retry.Event) {
		c.observe(exec, event)
	})

	c.metrics.ObserveRequest(service.Name, result(err))

	return err
}

func (c *Client) attempt(ctx context.Context, exec *execution, out gmaps.Enveloped) error {
	exec.statusCode = 0
	exec.duration = 0

	waited, err := c.limiter.Acquire(ctx, exec.categories...)
	if waited > 0 {
		c.metrics.ObserveRateLimitWait(exec.categories, waited)
	}

	if err != nil {
		return err
	}

	outcome := c.httpClient.Get(ctx, exec.url)
	exec.statusCode = outcome.StatusCode
	exec.duration = outcome.Duration

	classified := classify.Classify(outcome, out)
	if classified != nil {
		return classified
	}

	return nil
}

// requestURL joins base URL, path, the built query and the API key.
func (c *Client) requestURL(service gmaps.Service, encoded string) string {
	target := c.baseURLs[service.Host] + service.Path

	query := encoded
	if c.apiKey != "" {
		if query != "" {
			query += "&"
		}

		query += constants.APIKeyParam + "=" + url.QueryEscape(c.apiKey)
	}

	if query == "" {
		return target
	}

	return target + "?" + query
}

func result(err error) string {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, retry.ErrAborted):
		return metrics.ResultAborted
	case gmaps.IsTransient(err):
		return metrics.ResultTransient
	default:
		return metrics.ResultPermanent
	}
}

// redactedURL is the request URL safe for logging.
func (e *execution) redactedURL() string {
	return http.RedactURL(e.url)
}
