package gmaps

import (
	"context"
	"io"
	"time"
)

// Host selects which base URL a service is served from.
type Host int

// Hosts.
const (
	HostMaps Host = iota
	HostRoads
)

// Service describes one endpoint of the mapping web service.
type Service struct {
	// Name identifies the service in logs, metrics and events.
	Name string
	// Host selects the base URL.
	Host Host
	// Path is appended to the base URL.
	Path string
	// Category is the rate-limit budget charged in addition to CategoryAll.
	Category Category
}

// Categories returns the budgets a request to the service is charged against.
func (s Service) Categories() []Category {
	return NormalizeCategories([]Category{s.Category})
}

// Executor runs a request through rate limiting, retries and response
// classification, decoding a successful payload into out.
type Executor interface {
	Execute(ctx context.Context, req *Request, out Enveloped) error
}

// Request is a query bound to a service and the executor that will run it. It is
// owned by the caller until executed and is not safe for concurrent use.
type Request struct {
	service  Service
	query    *Query
	executor Executor
}

// NewRequest creates a request for the service with an empty query.
func NewRequest(executor Executor, service Service) *Request {
	return &Request{
		service:  service,
		query:    NewQuery(),
		executor: executor,
	}
}

// Service returns the service the request targets.
func (r *Request) Service() Service {
	return r.service
}

// Query returns the request's query.
func (r *Request) Query() *Query {
	return r.query
}

// Build assembles the query string.
func (r *Request) Build() error {
	return r.query.Build()
}

// Get executes the request and decodes the payload into out. The query must have
// been built; otherwise ErrQueryNotBuilt is returned and nothing is sent.
func (r *Request) Get(ctx context.Context, out Enveloped) error {
	return r.executor.Execute(ctx, r, out)
}

// Client creates requests for each supported service.
type Client interface {
	NearestRoads(points ...LatLng) *NearestRoadsRequest
	SnapToRoads(path ...LatLng) *SnapToRoadsRequest
	Directions(origin, destination string) *DirectionsRequest
	Geocode() *GeocodingRequest
	ReverseGeocode(location LatLng) *ReverseGeocodingRequest
	Elevation(locations ...LatLng) *ElevationRequest
	TimeZone(location LatLng, at time.Time) *TimeZoneRequest

	io.Closer
}
