package gmaps

// Enveloped is implemented by every response payload. ServiceError returns the
// error object the service embedded in the response, or nil. An embedded error
// takes precedence over the rest of the payload, even when the payload decoded
// cleanly.
type Enveloped interface {
	ServiceError() *ServiceError
}

// ErrorObject is the error shape of the Roads API:
//
//	{"error": {"code": 400, "message": "...", "status": "INVALID_ARGUMENT"}}
type ErrorObject struct {
	Code    int    `json:"code"    yaml:"code"`
	Message string `json:"message" yaml:"message"`
	Status  string `json:"status"  yaml:"status"`
}

// ErrorEnvelope is embedded by responses that report failures as an error object.
type ErrorEnvelope struct {
	Error *ErrorObject `json:"error,omitempty" yaml:"error,omitempty"`
}

// ServiceError implements Enveloped.
func (e *ErrorEnvelope) ServiceError() *ServiceError {
	if e.Error == nil {
		return nil
	}

	return &ServiceError{
		Code:    e.Error.Code,
		Status:  e.Error.Status,
		Message: e.Error.Message,
	}
}

// Web service status tokens.
const (
	StatusOK                   = "OK"
	StatusZeroResults          = "ZERO_RESULTS"
	StatusNotFound             = "NOT_FOUND"
	StatusInvalidRequest       = "INVALID_REQUEST"
	StatusInvalidArgument      = "INVALID_ARGUMENT"
	StatusOverQueryLimit       = "OVER_QUERY_LIMIT"
	StatusOverDailyLimit       = "OVER_DAILY_LIMIT"
	StatusRequestDenied        = "REQUEST_DENIED"
	StatusUnknownError         = "UNKNOWN_ERROR"
	StatusMaxWaypointsExceeded = "MAX_WAYPOINTS_EXCEEDED"
)

// StatusEnvelope is embedded by responses that report failures through a top-level
// status token and an optional error message:
//
//	{"status": "REQUEST_DENIED", "error_message": "..."}
type StatusEnvelope struct {
	Status       string `json:"status"                  yaml:"status"`
	ErrorMessage string `json:"error_message,omitempty" yaml:"error_message,omitempty"`
}

// ServiceError implements Enveloped. Any status other than OK and ZERO_RESULTS is an
// embedded error; so is a non-empty error message.
func (e *StatusEnvelope) ServiceError() *ServiceError {
	switch {
	case e.ErrorMessage != "":
	case e.Status == "", e.Status == StatusOK, e.Status == StatusZeroResults:
		return nil
	}

	return &ServiceError{
		Status:  e.Status,
		Message: e.ErrorMessage,
	}
}
