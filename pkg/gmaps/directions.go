package gmaps

import (
	"context"
	"strconv"
	"strings"
	"time"
)

// ServiceDirections is the directions web service.
var ServiceDirections = Service{Name: "directions", Host: HostMaps, Path: "/maps/api/directions/json", Category: CategoryDirections}

// Directions parameters.
const (
	ParamOrigin        = "origin"
	ParamDestination   = "destination"
	ParamArrivalTime   = "arrival_time"
	ParamDepartureTime = "departure_time"
	ParamMode          = "mode"
	ParamRegion        = "region"
	ParamLanguage      = "language"
	ParamUnits         = "units"
	ParamAlternatives  = "alternatives"
	ParamWaypoints     = "waypoints"
	ParamAvoid         = "avoid"
)

// departureNow is the departure_time token for the current time.
const departureNow = "now"

// DirectionsResponse is the response of the directions service.
type DirectionsResponse struct {
	StatusEnvelope

	GeocodedWaypoints []GeocodedWaypoint `json:"geocoded_waypoints" yaml:"geocoded_waypoints"`
	Routes            []Route            `json:"routes"             yaml:"routes"`
	AvailableModes    []TravelMode       `json:"available_travel_modes,omitempty" yaml:"available_travel_modes,omitempty"`
}

// GeocodedWaypoint is the geocoding result of an origin, destination or waypoint.
type GeocodedWaypoint struct {
	GeocoderStatus string   `json:"geocoder_status" yaml:"geocoder_status"`
	PlaceID        string   `json:"place_id"        yaml:"place_id"`
	Types          []string `json:"types"           yaml:"types"`
}

// Route is one route between origin and destination.
type Route struct {
	Summary       string   `json:"summary"        yaml:"summary"`
	Legs          []Leg    `json:"legs"           yaml:"legs"`
	Warnings      []string `json:"warnings"       yaml:"warnings"`
	Copyrights    string   `json:"copyrights"     yaml:"copyrights"`
	Bounds        Bounds   `json:"bounds"         yaml:"bounds"`
	WaypointOrder []int    `json:"waypoint_order" yaml:"waypoint_order"`
}

// Leg is the part of a route between two consecutive stops.
type Leg struct {
	StartAddress  string     `json:"start_address"            yaml:"start_address"`
	EndAddress    string     `json:"end_address"              yaml:"end_address"`
	StartLocation WebLatLng  `json:"start_location"           yaml:"start_location"`
	EndLocation   WebLatLng  `json:"end_location"             yaml:"end_location"`
	Distance      TextValue  `json:"distance"                 yaml:"distance"`
	Duration      TextValue  `json:"duration"                 yaml:"duration"`
	ArrivalTime   *TimeValue `json:"arrival_time,omitempty"   yaml:"arrival_time,omitempty"`
	DepartureTime *TimeValue `json:"departure_time,omitempty" yaml:"departure_time,omitempty"`
}

// TimeValue is a transit time with its time zone and rendering.
type TimeValue struct {
	Text     string `json:"text"      yaml:"text"`
	TimeZone string `json:"time_zone" yaml:"time_zone"`
	Value    int64  `json:"value"     yaml:"value"`
}

// DirectionsRequest computes directions between two locations.
//
// Arrival time and departure time are mutually exclusive. Setting both is not
// resolved by precedence: Build fails with ErrConflictingParameters.
type DirectionsRequest struct {
	request *Request
}

// NewDirectionsRequest creates a directions request. Origin and destination are an
// address, a "lat,lng" pair or a "place_id:..." reference.
func NewDirectionsRequest(executor Executor, origin, destination string) *DirectionsRequest {
	r := &DirectionsRequest{request: NewRequest(executor, ServiceDirections)}
	r.request.Query().
		Require(ParamOrigin, ParamDestination).
		Exclusive(ParamArrivalTime, ParamDepartureTime)

	setNonEmpty(r.request.Query(), ParamOrigin, origin)
	setNonEmpty(r.request.Query(), ParamDestination, destination)

	return r
}

// WithArrivalTime specifies the desired time of arrival for transit directions.
func (r *DirectionsRequest) WithArrivalTime(arrival time.Time) *DirectionsRequest {
	r.request.Query().Set(ParamArrivalTime, unixSeconds(arrival))

	return r
}

// WithDepartureTime specifies the desired time of departure.
func (r *DirectionsRequest) WithDepartureTime(departure time.Time) *DirectionsRequest {
	r.request.Query().Set(ParamDepartureTime, unixSeconds(departure))

	return r
}

// WithDepartureNow departs at the time the service receives the request.
func (r *DirectionsRequest) WithDepartureNow() *DirectionsRequest {
	r.request.Query().Set(ParamDepartureTime, departureNow)

	return r
}

// WithoutArrivalTime clears the arrival time.
func (r *DirectionsRequest) WithoutArrivalTime() *DirectionsRequest {
	r.request.Query().Unset(ParamArrivalTime)

	return r
}

// WithoutDepartureTime clears the departure time.
func (r *DirectionsRequest) WithoutDepartureTime() *DirectionsRequest {
	r.request.Query().Unset(ParamDepartureTime)

	return r
}

// WithTravelMode sets the mode of transport.
func (r *DirectionsRequest) WithTravelMode(mode TravelMode) *DirectionsRequest {
	r.request.Query().Set(ParamMode, string(mode))

	return r
}

// WithRegion biases results towards a ccTLD region code, e.g. "ca".
func (r *DirectionsRequest) WithRegion(region string) *DirectionsRequest {
	setNonEmpty(r.request.Query(), ParamRegion, region)

	return r
}

// WithLanguage sets the language of returned text.
func (r *DirectionsRequest) WithLanguage(language string) *DirectionsRequest {
	setNonEmpty(r.request.Query(), ParamLanguage, language)

	return r
}

// WithUnits sets the unit system of rendered distances.
func (r *DirectionsRequest) WithUnits(units Units) *DirectionsRequest {
	r.request.Query().Set(ParamUnits, string(units))

	return r
}

// WithAlternatives asks for more than one route when available.
func (r *DirectionsRequest) WithAlternatives(alternatives bool) *DirectionsRequest {
	r.request.Query().Set(ParamAlternatives, strconv.FormatBool(alternatives))

	return r
}

// WithWaypoints routes through the given intermediate locations.
func (r *DirectionsRequest) WithWaypoints(waypoints ...string) *DirectionsRequest {
	if len(waypoints) == 0 {
		r.request.Query().Unset(ParamWaypoints)

		return r
	}

	r.request.Query().Set(ParamWaypoints, strings.Join(waypoints, "|"))

	return r
}

// WithAvoid excludes route features.
func (r *DirectionsRequest) WithAvoid(features ...Avoid) *DirectionsRequest {
	if len(features) == 0 {
		r.request.Query().Unset(ParamAvoid)

		return r
	}

	parts := make([]string, len(features))
	for i, feature := range features {
		parts[i] = string(feature)
	}

	r.request.Query().Set(ParamAvoid, strings.Join(parts, "|"))

	return r
}

// Request returns the underlying request.
func (r *DirectionsRequest) Request() *Request { return r.request }

// Build assembles the query string.
func (r *DirectionsRequest) Build() error { return r.request.Build() }

// Get sends the built request.
func (r *DirectionsRequest) Get(ctx context.Context) (*DirectionsResponse, error) {
	return get[DirectionsResponse](ctx, r.request)
}

// Execute builds and sends the request.
func (r *DirectionsRequest) Execute(ctx context.Context) (*DirectionsResponse, error) {
	return execute[DirectionsResponse](ctx, r.request)
}

func setNonEmpty(query *Query, name, value string) {
	if value == "" {
		query.Unset(name)

		return
	}

	query.Set(name, value)
}
