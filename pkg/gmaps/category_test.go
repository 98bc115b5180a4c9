package gmaps_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/gmaps/pkg/gmaps"
)

func TestParseCategory(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]gmaps.Category{
		"all":        gmaps.CategoryAll,
		"Roads":      gmaps.CategoryRoads,
		" time-zone": gmaps.CategoryTimeZone,
		"TIME_ZONE":  gmaps.CategoryTimeZone,
	} {
		got, err := gmaps.ParseCategory(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := gmaps.ParseCategory("places")
	require.ErrorIs(t, err, gmaps.ErrUnknownCategory)
}

func TestNormalizeCategories(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []gmaps.Category{gmaps.CategoryAll}, gmaps.NormalizeCategories(nil))
	assert.Equal(t,
		[]gmaps.Category{gmaps.CategoryAll, gmaps.CategoryGeocoding, gmaps.CategoryRoads},
		gmaps.NormalizeCategories([]gmaps.Category{gmaps.CategoryRoads, gmaps.CategoryAll, gmaps.CategoryGeocoding, gmaps.CategoryRoads}),
	)
}

func TestService_Categories(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		service gmaps.Service
		want    gmaps.Category
	}{
		"nearest roads": {service: gmaps.ServiceNearestRoads, want: gmaps.CategoryRoads},
		"snap to roads": {service: gmaps.ServiceSnapToRoads, want: gmaps.CategoryRoads},
		"directions":    {service: gmaps.ServiceDirections, want: gmaps.CategoryDirections},
		"geocoding":     {service: gmaps.ServiceGeocoding, want: gmaps.CategoryGeocoding},
		"elevation":     {service: gmaps.ServiceElevation, want: gmaps.CategoryElevation},
		"time zone":     {service: gmaps.ServiceTimeZone, want: gmaps.CategoryTimeZone},
	}

	for name, tt := range tests {
		assert.Equal(t, []gmaps.Category{gmaps.CategoryAll, tt.want}, tt.service.Categories(), name)
	}
}
