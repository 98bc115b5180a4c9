package gmaps

import "context"

// ServiceElevation is the elevation web service.
var ServiceElevation = Service{Name: "elevation", Host: HostMaps, Path: "/maps/api/elevation/json", Category: CategoryElevation}

// ParamLocations lists the points to sample.
const ParamLocations = "locations"

// ElevationResponse is the response of the elevation service.
type ElevationResponse struct {
	StatusEnvelope

	Results []ElevationResult `json:"results" yaml:"results"`
}

// ElevationResult is the elevation at one location, in meters.
type ElevationResult struct {
	Elevation  float64   `json:"elevation"  yaml:"elevation"`
	Location   WebLatLng `json:"location"   yaml:"location"`
	Resolution float64   `json:"resolution" yaml:"resolution"`
}

// ElevationRequest samples the elevation at a set of locations.
type ElevationRequest struct {
	request *Request
}

// NewElevationRequest creates an elevation request.
func NewElevationRequest(executor Executor, locations ...LatLng) *ElevationRequest {
	r := &ElevationRequest{request: NewRequest(executor, ServiceElevation)}
	r.request.Query().Require(ParamLocations)

	return r.WithLocations(locations...)
}

// WithLocations replaces the locations to sample.
func (r *ElevationRequest) WithLocations(locations ...LatLng) *ElevationRequest {
	setPoints(r.request.Query(), ParamLocations, locations)

	return r
}

// Request returns the underlying request.
func (r *ElevationRequest) Request() *Request { return r.request }

// Build assembles the query string.
func (r *ElevationRequest) Build() error { return r.request.Build() }

// Get sends the built request.
func (r *ElevationRequest) Get(ctx context.Context) (*ElevationResponse, error) {
	return get[ElevationResponse](ctx, r.request)
}

// Execute builds and sends the request.
func (r *ElevationRequest) Execute(ctx context.Context) (*ElevationResponse, error) {
	return execute[ElevationResponse](ctx, r.request)
}
