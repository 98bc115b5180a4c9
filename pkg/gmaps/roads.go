package gmaps

import (
	"context"
	"strconv"
)

// Roads API services.
var (
	ServiceNearestRoads = Service{Name: "nearest_roads", Host: HostRoads, Path: "/v1/nearestRoads", Category: CategoryRoads}
	ServiceSnapToRoads  = Service{Name: "snap_to_roads", Host: HostRoads, Path: "/v1/snapToRoads", Category: CategoryRoads}
)

// Roads API parameters.
const (
	ParamPoints      = "points"
	ParamPath        = "path"
	ParamInterpolate = "interpolate"
)

// SnappedPoint is a point snapped to the most likely road segment.
type SnappedPoint struct {
	Location      LatLng `json:"location"                yaml:"location"`
	OriginalIndex *int   `json:"originalIndex,omitempty" yaml:"original_index,omitempty"`
	PlaceID       string `json:"placeId"                 yaml:"place_id"`
}

// NearestRoadsResponse is the response of the nearest roads service.
type NearestRoadsResponse struct {
	ErrorEnvelope

	SnappedPoints []SnappedPoint `json:"snappedPoints" yaml:"snapped_points"`
}

// SnapToRoadsResponse is the response of the snap to roads service.
type SnapToRoadsResponse struct {
	ErrorEnvelope

	SnappedPoints  []SnappedPoint `json:"snappedPoints"            yaml:"snapped_points"`
	WarningMessage string         `json:"warningMessage,omitempty" yaml:"warning_message,omitempty"`
}

// NearestRoadsRequest finds the road segment nearest to each point.
type NearestRoadsRequest struct {
	request *Request
}

// NewNearestRoadsRequest creates a nearest roads request. At least one point is
// required before the request can be built.
func NewNearestRoadsRequest(executor Executor, points ...LatLng) *NearestRoadsRequest {
	r := &NearestRoadsRequest{request: NewRequest(executor, ServiceNearestRoads)}
	r.request.Query().Require(ParamPoints)

	return r.WithPoints(points...)
}

// WithPoints replaces the points to snap. An empty list unsets them.
func (r *NearestRoadsRequest) WithPoints(points ...LatLng) *NearestRoadsRequest {
	setPoints(r.request.Query(), ParamPoints, points)

	return r
}

// Request returns the underlying request.
func (r *NearestRoadsRequest) Request() *Request { return r.request }

// Build assembles the query string.
func (r *NearestRoadsRequest) Build() error { return r.request.Build() }

// Get sends the built request.
func (r *NearestRoadsRequest) Get(ctx context.Context) (*NearestRoadsResponse, error) {
	return get[NearestRoadsResponse](ctx, r.request)
}

// Execute builds and sends the request.
func (r *NearestRoadsRequest) Execute(ctx context.Context) (*NearestRoadsResponse, error) {
	return execute[NearestRoadsResponse](ctx, r.request)
}

// SnapToRoadsRequest snaps a GPS trace to the roads it most likely travelled.
type SnapToRoadsRequest struct {
	request *Request
}

// NewSnapToRoadsRequest creates a snap to roads request.
func NewSnapToRoadsRequest(executor Executor, path ...LatLng) *SnapToRoadsRequest {
	r := &SnapToRoadsRequest{request: NewRequest(executor, ServiceSnapToRoads)}
	r.request.Query().Require(ParamPath)

	return r.WithPath(path...)
}

// WithPath replaces the trace to snap.
func (r *SnapToRoadsRequest) WithPath(path ...LatLng) *SnapToRoadsRequest {
	setPoints(r.request.Query(), ParamPath, path)

	return r
}

// WithInterpolate asks for additional points that follow the road geometry.
func (r *SnapToRoadsRequest) WithInterpolate(interpolate bool) *SnapToRoadsRequest {
	r.request.Query().Set(ParamInterpolate, strconv.FormatBool(interpolate))

	return r
}

// Request returns the underlying request.
func (r *SnapToRoadsRequest) Request() *Request { return r.request }

// Build assembles the query string.
func (r *SnapToRoadsRequest) Build() error { return r.request.Build() }

// Get sends the built request.
func (r *SnapToRoadsRequest) Get(ctx context.Context) (*SnapToRoadsResponse, error) {
	return get[SnapToRoadsResponse](ctx, r.request)
}

// Execute builds and sends the request.
func (r *SnapToRoadsRequest) Execute(ctx context.Context) (*SnapToRoadsResponse, error) {
	return execute[SnapToRoadsResponse](ctx, r.request)
}

func setPoints(query *Query, name string, points []LatLng) {
	if len(points) == 0 {
		query.Unset(name)

		return
	}

	query.Set(name, joinPoints(points))
}

// get sends a built request and decodes its payload into a new T.
func get[T any, P interface {
	*T
	Enveloped
}](ctx context.Context, request *Request) (*T, error) {
	var out T

	err := request.Get(ctx, P(&out))
	if err != nil {
		return nil, err
	}

	return &out, nil
}

// execute builds the request's query and sends it.
func execute[T any, P interface {
	*T
	Enveloped
}](ctx context.Context, request *Request) (*T, error) {
	err := request.Build()
	if err != nil {
		return nil, err
	}

	return get[T, P](ctx, request)
}
