package constants

import "errors"

// Configuration errors.
var (
	ErrNoAPIKey          = errors.New("no API key configured, use 'gmaps config set api_key <key>' or set GMAPS_API_KEY")
	ErrUnknownConfigKey  = errors.New("unknown configuration key")
	ErrInvalidRateLimit  = errors.New("invalid rate limit, expected <requests>/<duration>, e.g. 10/1s")
	ErrUnsupportedFormat = errors.New("unsupported output format")
)

// Argument errors.
var (
	ErrInvalidCoordinate = errors.New("invalid coordinate, expected <lat>,<lng>")
	ErrInvalidTime       = errors.New("invalid time, expected RFC3339 or unix seconds")
	ErrNoPoints          = errors.New("at least one point is required")
)
