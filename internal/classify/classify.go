// Package classify turns the raw outcome of one HTTP attempt into success, a
// transient failure or a permanent failure.
package classify

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	gmapshttp "github.com/fivetwenty-io/gmaps/internal/http"
	"github.com/fivetwenty-io/gmaps/pkg/gmaps"
)

// Classify inspects an attempt outcome. On success the payload is decoded into out
// and nil is returned; otherwise the returned error says whether retrying can help.
//
// A 2xx response whose payload embeds a service error is a permanent failure even
// when the rest of the payload decoded cleanly.
func Classify(outcome *gmapshttp.Outcome, out gmaps.Enveloped) *gmaps.Error {
	switch outcome.Kind {
	case gmapshttp.OutcomeInvalidRequest:
		return gmaps.Permanent(fmt.Errorf("%w: %w", gmaps.ErrInvalidRequest, outcome.Err))

	case gmapshttp.OutcomeTransportFailure:
		return gmaps.Transient(fmt.Errorf("%w: %w", gmaps.ErrTransport, outcome.Err), 0)

	case gmapshttp.OutcomeSuccess:
		return classifySuccess(outcome, out)

	case gmapshttp.OutcomeHTTPFailure:
		return classifyStatus(outcome)

	default:
		return gmaps.Permanent(fmt.Errorf("%w: unknown outcome %d", gmaps.ErrInvalidRequest, outcome.Kind))
	}
}

func classifySuccess(outcome *gmapshttp.Outcome, out gmaps.Enveloped) *gmaps.Error {
	if outcome.Err != nil {
		return withStatus(gmaps.Permanent(fmt.Errorf("%w: %w", gmaps.ErrUnreadableBody, outcome.Err)), outcome)
	}

	err := json.Unmarshal(outcome.Body, out)
	if err != nil {
		return withStatus(gmaps.Permanent(fmt.Errorf("%w: %w", gmaps.ErrMalformedPayload, err)), outcome)
	}

	serviceErr := out.ServiceError()
	if serviceErr != nil {
		classified := gmaps.Permanent(fmt.Errorf("%w: %w", gmaps.ErrServiceReported, serviceErr))
		classified.Service = serviceErr

		return withStatus(classified, outcome)
	}

	return nil
}

func classifyStatus(outcome *gmapshttp.Outcome) *gmaps.Error {
	cause := fmt.Errorf("%w: %d %s", gmaps.ErrUnsuccessfulStatus, outcome.StatusCode, http.StatusText(outcome.StatusCode))

	var classified *gmaps.Error
	if Retryable(outcome.StatusCode) {
		classified = gmaps.Transient(cause, RetryAfter(outcome.Header, time.Now()))
	} else {
		classified = gmaps.Permanent(cause)
	}

	classified.Service = embeddedError(outcome.Body)

	return withStatus(classified, outcome)
}

// Retryable reports whether a non-2xx status is worth retrying: server errors and
// explicit throttling.
func Retryable(statusCode int) bool {
	if statusCode == http.StatusTooManyRequests {
		return true
	}

	return statusCode >= http.StatusInternalServerError && statusCode <= maxServerErrorStatus
}

// maxServerErrorStatus is the last status code of the 5xx class.
const maxServerErrorStatus = 599

// RetryAfter parses a Retry-After header given either as seconds or as an HTTP date
// relative to now. It returns zero when the header is absent, invalid or in the past.
func RetryAfter(header http.Header, now time.Time) time.Duration {
	if header == nil {
		return 0
	}

	value := strings.TrimSpace(header.Get("Retry-After"))
	if value == "" {
		return 0
	}

	seconds, err := strconv.Atoi(value)
	if err == nil {
		if seconds < 0 {
			return 0
		}

		return time.Duration(seconds) * time.Second
	}

	at, err := http.ParseTime(value)
	if err != nil {
		return 0
	}

	delay := at.Sub(now)
	if delay < 0 {
		return 0
	}

	return delay
}

// errorProbe decodes either error shape from a failed response body.
type errorProbe struct {
	gmaps.ErrorEnvelope
	gmaps.StatusEnvelope
}

// embeddedError extracts the service's own error description from a non-2xx body,
// if the body carries one.
func embeddedError(body []byte) *gmaps.ServiceError {
	if len(body) == 0 {
		return nil
	}

	var probe errorProbe

	err := json.Unmarshal(body, &probe)
	if err != nil {
		return nil
	}

	serviceErr := probe.ErrorEnvelope.ServiceError()
	if serviceErr != nil {
		return serviceErr
	}

	return probe.StatusEnvelope.ServiceError()
}

func withStatus(classified *gmaps.Error, outcome *gmapshttp.Outcome) *gmaps.Error {
	classified.StatusCode = outcome.StatusCode

	return classified
}
