package gmaps

import (
	"context"
	"time"
)

// ServiceTimeZone is the time zone web service.
var ServiceTimeZone = Service{Name: "time_zone", Host: HostMaps, Path: "/maps/api/timezone/json", Category: CategoryTimeZone}

// Time zone parameters.
const (
	ParamLocation  = "location"
	ParamTimestamp = "timestamp"
)

// TimeZoneResponse is the response of the time zone service. Offsets are in seconds.
type TimeZoneResponse struct {
	StatusEnvelope

	DstOffset    int    `json:"dstOffset"    yaml:"dst_offset"`
	RawOffset    int    `json:"rawOffset"    yaml:"raw_offset"`
	TimeZoneID   string `json:"timeZoneId"   yaml:"time_zone_id"`
	TimeZoneName string `json:"timeZoneName" yaml:"time_zone_name"`
}

// Offset returns the total offset from UTC at the requested time.
func (r *TimeZoneResponse) Offset() time.Duration {
	return time.Duration(r.DstOffset+r.RawOffset) * time.Second
}

// TimeZoneRequest looks up the time zone of a location at a point in time.
type TimeZoneRequest struct {
	request *Request
}

// NewTimeZoneRequest creates a time zone request.
func NewTimeZoneRequest(executor Executor, location LatLng, at time.Time) *TimeZoneRequest {
	r := &TimeZoneRequest{request: NewRequest(executor, ServiceTimeZone)}
	r.request.Query().
		Require(ParamLocation, ParamTimestamp).
		Set(ParamLocation, location.String()).
		Set(ParamTimestamp, unixSeconds(at))

	return r
}

// WithLanguage sets the language of the time zone name.
func (r *TimeZoneRequest) WithLanguage(language string) *TimeZoneRequest {
	setNonEmpty(r.request.Query(), ParamLanguage, language)

	return r
}

// Request returns the underlying request.
func (r *TimeZoneRequest) Request() *Request { return r.request }

// Build assembles the query string.
func (r *TimeZoneRequest) Build() error { return r.request.Build() }

// Get sends the built request.
func (r *TimeZoneRequest) Get(ctx context.Context) (*TimeZoneResponse, error) {
	return get[TimeZoneResponse](ctx, r.request)
}

// Execute builds and sends the request.
func (r *TimeZoneRequest) Execute(ctx context.Context) (*TimeZoneResponse, error) {
	return execute[TimeZoneResponse](ctx, r.request)
}
