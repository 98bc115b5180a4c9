package gmaps

import (
	"context"
	"sort"
	"strings"
)

// ServiceGeocoding is the geocoding web service, used for both forward and reverse
// lookups.
var ServiceGeocoding = Service{Name: "geocoding", Host: HostMaps, Path: "/maps/api/geocode/json", Category: CategoryGeocoding}

// Geocoding parameters.
const (
	ParamAddress    = "address"
	ParamComponents = "components"
	ParamBounds     = "bounds"
	ParamLatLng     = "latlng"
	ParamPlaceID    = "place_id"
	ParamResultType = "result_type"
)

// GeocodeResponse is the response of the geocoding service.
type GeocodeResponse struct {
	StatusEnvelope

	Results []GeocodeResult `json:"results" yaml:"results"`
}

// GeocodeResult is one geocoded place.
type GeocodeResult struct {
	FormattedAddress  string             `json:"formatted_address"  yaml:"formatted_address"`
	PlaceID           string             `json:"place_id"           yaml:"place_id"`
	Types             []string           `json:"types"              yaml:"types"`
	Geometry          Geometry           `json:"geometry"           yaml:"geometry"`
	AddressComponents []AddressComponent `json:"address_components" yaml:"address_components"`
	PartialMatch      bool               `json:"partial_match,omitempty" yaml:"partial_match,omitempty"`
}

// Geometry locates a geocoded place.
type Geometry struct {
	Location     WebLatLng `json:"location"      yaml:"location"`
	LocationType string    `json:"location_type" yaml:"location_type"`
	Viewport     Bounds    `json:"viewport"      yaml:"viewport"`
}

// AddressComponent is one part of a structured address.
type AddressComponent struct {
	LongName  string   `json:"long_name"  yaml:"long_name"`
	ShortName string   `json:"short_name" yaml:"short_name"`
	Types     []string `json:"types"      yaml:"types"`
}

// GeocodingRequest looks up the coordinates of an address.
//
// An address, components or both must be set. The address and a place ID are
// mutually exclusive.
type GeocodingRequest struct {
	request    *Request
	components map[string]string
}

// NewGeocodingRequest creates a forward geocoding request.
func NewGeocodingRequest(executor Executor) *GeocodingRequest {
	r := &GeocodingRequest{
		request:    NewRequest(executor, ServiceGeocoding),
		components: make(map[string]string),
	}
	r.request.Query().Exclusive(ParamAddress, ParamPlaceID)

	return r
}

// WithAddress sets the street address to geocode.
func (r *GeocodingRequest) WithAddress(address string) *GeocodingRequest {
	setNonEmpty(r.request.Query(), ParamAddress, address)

	return r
}

// WithPlaceID geocodes a place ID instead of an address.
func (r *GeocodingRequest) WithPlaceID(placeID string) *GeocodingRequest {
	setNonEmpty(r.request.Query(), ParamPlaceID, placeID)

	return r
}

// WithComponent restricts results to a component filter, e.g. ("country", "CA").
func (r *GeocodingRequest) WithComponent(component, value string) *GeocodingRequest {
	r.components[component] = value

	filters := make([]string, 0, len(r.components))
	for name, v := range r.components {
		filters = append(filters, name+":"+v)
	}

	sort.Strings(filters)
	r.request.Query().Set(ParamComponents, strings.Join(filters, "|"))

	return r
}

// WithBounds biases results towards a viewport.
func (r *GeocodingRequest) WithBounds(bounds Bounds) *GeocodingRequest {
	r.request.Query().Set(ParamBounds, bounds.String())

	return r
}

// WithRegion biases results towards a ccTLD region code.
func (r *GeocodingRequest) WithRegion(region string) *GeocodingRequest {
	setNonEmpty(r.request.Query(), ParamRegion, region)

	return r
}

// WithLanguage sets the language of returned text.
func (r *GeocodingRequest) WithLanguage(language string) *GeocodingRequest {
	setNonEmpty(r.request.Query(), ParamLanguage, language)

	return r
}

// Request returns the underlying request.
func (r *GeocodingRequest) Request() *Request { return r.request }

// Build assembles the query string. A request with neither an address, a place ID
// nor components is rejected with ErrMissingParameter.
func (r *GeocodingRequest) Build() error {
	query := r.request.Query()
	if !query.Has(ParamAddress) && !query.Has(ParamPlaceID) && !query.Has(ParamComponents) {
		return missingParameter(ParamAddress)
	}

	return r.request.Build()
}

// Get sends the built request.
func (r *GeocodingRequest) Get(ctx context.Context) (*GeocodeResponse, error) {
	return get[GeocodeResponse](ctx, r.request)
}

// Execute builds and sends the request.
func (r *GeocodingRequest) Execute(ctx context.Context) (*GeocodeResponse, error) {
	err := r.Build()
	if err != nil {
		return nil, err
	}

	return r.Get(ctx)
}

// ReverseGeocodingRequest looks up the addresses at a coordinate.
type ReverseGeocodingRequest struct {
	request *Request
}

// NewReverseGeocodingRequest creates a reverse geocoding request.
func NewReverseGeocodingRequest(executor Executor, location LatLng) *ReverseGeocodingRequest {
	r := &ReverseGeocodingRequest{request: NewRequest(executor, ServiceGeocoding)}
	r.request.Query().Require(ParamLatLng).Set(ParamLatLng, location.String())

	return r
}

// WithResultTypes restricts results to the given address types.
func (r *ReverseGeocodingRequest) WithResultTypes(types ...string) *ReverseGeocodingRequest {
	if len(types) == 0 {
		r.request.Query().Unset(ParamResultType)

		return r
	}

	r.request.Query().Set(ParamResultType, strings.Join(types, "|"))

	return r
}

// WithLanguage sets the language of returned text.
func (r *ReverseGeocodingRequest) WithLanguage(language string) *ReverseGeocodingRequest {
	setNonEmpty(r.request.Query(), ParamLanguage, language)

	return r
}

// Request returns the underlying request.
func (r *ReverseGeocodingRequest) Request() *Request { return r.request }

// Build assembles the query string.
func (r *ReverseGeocodingRequest) Build() error { return r.request.Build() }

// Get sends the built request.
func (r *ReverseGeocodingRequest) Get(ctx context.Context) (*GeocodeResponse, error) {
	return get[GeocodeResponse](ctx, r.request)
}

// Execute builds and sends the request.
func (r *ReverseGeocodingRequest) Execute(ctx context.Context) (*GeocodeResponse, error) {
	return execute[GeocodeResponse](ctx, r.request)
}
