package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fivetwenty-io/gmaps/internal/constants"
	"github.com/fivetwenty-io/gmaps/pkg/gmaps"
)

const (
	latitudeLimit  = 90
	longitudeLimit = 180
)

// parseLatLng parses a "lat,lng" argument.
func parseLatLng(value string) (gmaps.LatLng, error) {
	lat, lng, found := strings.Cut(strings.TrimSpace(value), ",")
	if !found {
		return gmaps.LatLng{}, fmt.Errorf("%w: %q", constants.ErrInvalidCoordinate, value)
	}

	latitude, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil || latitude < -latitudeLimit || latitude > latitudeLimit {
		return gmaps.LatLng{}, fmt.Errorf("%w: %q", constants.ErrInvalidCoordinate, value)
	}

	longitude, err := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if err != nil || longitude < -longitudeLimit || longitude > longitudeLimit {
		return gmaps.LatLng{}, fmt.Errorf("%w: %q", constants.ErrInvalidCoordinate, value)
	}

	return gmaps.LatLng{Lat: latitude, Lng: longitude}, nil
}

// parseLatLngs parses each argument as a coordinate. A single argument may also hold
// several coordinates separated by "|".
func parseLatLngs(args []string) ([]gmaps.LatLng, error) {
	var points []gmaps.LatLng

	for _, arg := range args {
		for _, part := range strings.Split(arg, "|") {
			if strings.TrimSpace(part) == "" {
				continue
			}

			point, err := parseLatLng(part)
			if err != nil {
				return nil, err
			}

			points = append(points, point)
		}
	}

	if len(points) == 0 {
		return nil, constants.ErrNoPoints
	}

	return points, nil
}

// parseTime accepts RFC3339, unix seconds or "now". The empty string is "now".
func parseTime(value string, now time.Time) (time.Time, error) {
	switch value = strings.TrimSpace(value); value {
	case "", "now":
		return now, nil
	}

	parsed, err := time.Parse(time.RFC3339, value)
	if err == nil {
		return parsed, nil
	}

	seconds, err := strconv.ParseInt(value, 10, 64)
	if err == nil {
		return time.Unix(seconds, 0).UTC(), nil
	}

	return time.Time{}, fmt.Errorf("%w: %q", constants.ErrInvalidTime, value)
}

// parseRateLimit parses "<requests>/<duration>", optionally followed by ":<burst>",
// e.g. "10/1s" or "100/1m:20".
func parseRateLimit(value string) (gmaps.RateLimit, error) {
	rate, burstText, hasBurst := strings.Cut(strings.TrimSpace(value), ":")

	requestsText, perText, found := strings.Cut(rate, "/")
	if !found {
		return gmaps.RateLimit{}, fmt.Errorf("%w: %q", constants.ErrInvalidRateLimit, value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(requestsText))
	if err != nil || requests <= 0 {
		return gmaps.RateLimit{}, fmt.Errorf("%w: %q", constants.ErrInvalidRateLimit, value)
	}

	per, err := time.ParseDuration(strings.TrimSpace(perText))
	if err != nil || per <= 0 {
		return gmaps.RateLimit{}, fmt.Errorf("%w: %q", constants.ErrInvalidRateLimit, value)
	}

	limit := gmaps.RateLimit{Requests: requests, Per: per}

	if hasBurst {
		limit.Burst, err = strconv.Atoi(strings.TrimSpace(burstText))
		if err != nil || limit.Burst < 0 {
			return gmaps.RateLimit{}, fmt.Errorf("%w: %q", constants.ErrInvalidRateLimit, value)
		}
	}

	return limit, nil
}

// parseRateLimits parses "category=limit" entries.
func parseRateLimits(entries map[string]string) (map[gmaps.Category]gmaps.RateLimit, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	limits := make(map[gmaps.Category]gmaps.RateLimit, len(entries))

	for name, value := range entries {
		category, err := gmaps.ParseCategory(name)
		if err != nil {
			return nil, err
		}

		limit, err := parseRateLimit(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", category, err)
		}

		limits[category] = limit
	}

	return limits, nil
}
