package http

import (
	"net/http"
	"time"
)

// OutcomeKind identifies the variant of an Outcome.
type OutcomeKind int

const (
	// OutcomeSuccess is a 2xx response. Err is set if the body could not be read.
	OutcomeSuccess OutcomeKind = iota + 1
	// OutcomeHTTPFailure is a response with a non-2xx status.
	OutcomeHTTPFailure
	// OutcomeTransportFailure means no response arrived; Err holds the cause.
	OutcomeTransportFailure
	// OutcomeInvalidRequest means the request could not be constructed; Err holds the cause.
	OutcomeInvalidRequest
)

// String returns the name of the kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeHTTPFailure:
		return "http_failure"
	case OutcomeTransportFailure:
		return "transport_failure"
	case OutcomeInvalidRequest:
		return "invalid_request"
	default:
		return "unknown"
	}
}

// Outcome is the raw result of one HTTP attempt.
type Outcome struct {
	Kind       OutcomeKind
	StatusCode int
	Header     http.Header
	Body       []byte
	Err        error
	Duration   time.Duration
}

// Successful reports whether a response with a 2xx status arrived.
func (o *Outcome) Successful() bool {
	return o.Kind == OutcomeSuccess
}
