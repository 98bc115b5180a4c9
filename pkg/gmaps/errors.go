package gmaps

import (
	"errors"
	"fmt"
	"time"
)

// Static errors for err113 compliance.
var (
	ErrQueryNotBuilt          = errors.New("query string has not been built")
	ErrConflictingParameters  = errors.New("mutually exclusive parameters are both set")
	ErrMalformedPayload       = errors.New("malformed response payload")
	ErrUnreadableBody         = errors.New("response body could not be read")
	ErrUnsuccessfulStatus     = errors.New("unsuccessful HTTP status")
	ErrTransport              = errors.New("HTTP transport failure")
	ErrInvalidRequest         = errors.New("HTTP request could not be constructed")
	ErrServiceReported        = errors.New("service reported an error")
	ErrConfigRequired         = errors.New("config is required")
	ErrAPIKeyRequired         = errors.New("API key is required")
	ErrInvalidRateLimit       = errors.New("rate limit must allow at least one request")
	ErrMissingParameter       = errors.New("required parameter is not set")
	ErrUnknownCategory        = errors.New("unknown API category")
	ErrEventsConnectionFailed = errors.New("connecting to events server failed")
)

// Kind tags a classified failure as worth retrying or not.
type Kind int

const (
	// KindTransient marks failures presumed to resolve on retry: connection drops,
	// server errors and explicit throttling.
	KindTransient Kind = iota + 1
	// KindPermanent marks failures retrying cannot fix.
	KindPermanent
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindTransient:
		return "transient"
	case KindPermanent:
		return "permanent"
	default:
		return "unknown"
	}
}

// ServiceError is the error object a service embeds in an otherwise successful
// HTTP response.
type ServiceError struct {
	Code    int    `json:"code,omitempty"    yaml:"code,omitempty"`
	Status  string `json:"status"            yaml:"status"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Message == "" {
		return e.Status
	}

	return fmt.Sprintf("%s: %s", e.Status, e.Message)
}

// Error is the terminal error of a request execution. It is created by the response
// classifier for a failed attempt and returned to the caller once the retry engine
// gives up. A KindTransient error returned to a caller means the retry budget ran out.
type Error struct {
	Kind Kind
	// StatusCode is the HTTP status of the attempt, zero when no response arrived.
	StatusCode int
	// Service is the service-reported error, if the response embedded one.
	Service *ServiceError
	// Cause is the underlying failure.
	Cause error
	// RetryAfter is the delay the service suggested before retrying, zero if none.
	RetryAfter time.Duration
	// Attempts is the number of attempts made before the error became terminal.
	Attempts int
}

// Transient creates a retryable classified error.
func Transient(cause error, retryAfter time.Duration) *Error {
	return &Error{Kind: KindTransient, Cause: cause, RetryAfter: retryAfter}
}

// Permanent creates a non-retryable classified error.
func Permanent(cause error) *Error {
	return &Error{Kind: KindPermanent, Cause: cause}
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s failure", e.Kind)
	if e.Attempts > 0 {
		msg = fmt.Sprintf("%s after %d attempt(s)", msg, e.Attempts)
	}

	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}

	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Temporary reports whether the failure was transient.
func (e *Error) Temporary() bool {
	return e.Kind == KindTransient
}

// AsError extracts an *Error from the chain.
func AsError(err error) (*Error, bool) {
	var classified *Error
	if errors.As(err, &classified) {
		return classified, true
	}

	return nil, false
}

// IsQueryNotBuilt checks if the error is the query-not-built contract violation.
func IsQueryNotBuilt(err error) bool {
	return errors.Is(err, ErrQueryNotBuilt)
}

// IsTransient checks if the error is a classified transient failure.
func IsTransient(err error) bool {
	classified, ok := AsError(err)

	return ok && classified.Kind == KindTransient
}

// IsPermanent checks if the error is a classified permanent failure.
func IsPermanent(err error) bool {
	classified, ok := AsError(err)

	return ok && classified.Kind == KindPermanent
}

// IsServiceStatus checks if the service reported the given status token,
// e.g. "INVALID_ARGUMENT" or "REQUEST_DENIED".
func IsServiceStatus(err error, status string) bool {
	classified, ok := AsError(err)
	if !ok || classified.Service == nil {
		return false
	}

	return classified.Service.Status == status
}
