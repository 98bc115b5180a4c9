package client

import (
	"time"

	"github.com/fivetwenty-io/gmaps/internal/retry"
	"github.com/fivetwenty-io/gmaps/pkg/gmaps"
)

// observe fans one finished attempt out to logs, metrics, events and the caller's
// hook.
func (c *Client) observe(exec *execution, event retry.Event) {
	attempt := gmaps.AttemptEvent{
		RequestID:  exec.requestID,
		Service:    exec.service.Name,
		Categories: exec.categories,
		Attempt:    event.Attempt,
		Outcome:    attemptOutcome(event.State),
		StatusCode: exec.statusCode,
		Delay:      event.Delay,
		Duration:   exec.duration,
		Time:       time.Now().UTC(),
	}

	if event.Err != nil {
		attempt.Error = event.Err.Error()
	}

	c.log(exec, attempt)
	c.metrics.ObserveAttempt(attempt.Service, attempt.Outcome, attempt.Duration)

	if c.emitter != nil {
		c.emitter.Emit(attempt)
	}

	if c.onAttempt != nil {
		c.onAttempt(attempt)
	}
}

func (c *Client) log(exec *execution, attempt gmaps.AttemptEvent) {
	fields := map[string]interface{}{
		"request_id": attempt.RequestID,
		"service":    attempt.Service,
		"attempt":    attempt.Attempt,
		"url":        exec.redactedURL(),
	}

	if attempt.StatusCode != 0 {
		fields["status_code"] = attempt.StatusCode
	}

	if attempt.Error != "" {
		fields["error"] = attempt.Error
	}

	switch attempt.Outcome {
	case gmaps.AttemptSucceeded:
		fields["duration"] = attempt.Duration.String()
		c.logger.Debug("Request succeeded", fields)
	case gmaps.AttemptRetryable:
		fields["retry_in"] = attempt.Delay.String()
		c.logger.Warn("Request attempt failed, retrying", fields)
	case gmaps.AttemptTerminal:
		c.logger.Error("Request failed", fields)
	}
}

func attemptOutcome(state retry.State) gmaps.AttemptOutcome {
	switch state {
	case retry.StateSucceeded:
		return gmaps.AttemptSucceeded
	case retry.StateBackingOff:
		return gmaps.AttemptRetryable
	default:
		return gmaps.AttemptTerminal
	}
}
