package gmaps

import (
	"strconv"
	"strings"
	"time"
)

// LatLng is a WGS84 coordinate.
type LatLng struct {
	Lat float64 `json:"latitude"  yaml:"latitude"`
	Lng float64 `json:"longitude" yaml:"longitude"`
}

// String formats the coordinate as "lat,lng".
func (l LatLng) String() string {
	return strconv.FormatFloat(l.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(l.Lng, 'f', -1, 64)
}

// WebLatLng is the "lat"/"lng" coordinate shape used by the web services.
type WebLatLng struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// LatLng converts the coordinate.
func (l WebLatLng) LatLng() LatLng {
	return LatLng{Lat: l.Lat, Lng: l.Lng}
}

// Bounds is a viewport rectangle.
type Bounds struct {
	Northeast WebLatLng `json:"northeast" yaml:"northeast"`
	Southwest WebLatLng `json:"southwest" yaml:"southwest"`
}

// String formats the bounds as "sw_lat,sw_lng|ne_lat,ne_lng".
func (b Bounds) String() string {
	return b.Southwest.LatLng().String() + "|" + b.Northeast.LatLng().String()
}

// joinPoints formats points as "lat,lng|lat,lng".
func joinPoints(points []LatLng) string {
	parts := make([]string, len(points))
	for i, point := range points {
		parts[i] = point.String()
	}

	return strings.Join(parts, "|")
}

// unixSeconds formats a time as seconds since the epoch.
func unixSeconds(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}

// TextValue is a measured quantity with its human readable rendering.
type TextValue struct {
	Text  string  `json:"text"  yaml:"text"`
	Value float64 `json:"value" yaml:"value"`
}

// TravelMode selects the mode of transport for directions.
type TravelMode string

// Travel modes.
const (
	TravelModeDriving   TravelMode = "driving"
	TravelModeWalking   TravelMode = "walking"
	TravelModeBicycling TravelMode = "bicycling"
	TravelModeTransit   TravelMode = "transit"
)

// Units selects the unit system of rendered distances.
type Units string

// Unit systems.
const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

// Avoid names a route feature to avoid.
type Avoid string

// Route features.
const (
	AvoidTolls    Avoid = "tolls"
	AvoidHighways Avoid = "highways"
	AvoidFerries  Avoid = "ferries"
	AvoidIndoor   Avoid = "indoor"
)
