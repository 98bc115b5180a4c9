package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/gmaps/pkg/gmaps"
)

// NewGeocodeCommand creates the geocode command.
func NewGeocodeCommand() *cobra.Command {
	var (
		placeID    string
		components []string
		region     string
		language   string
	)

	cmd := &cobra.Command{
		Use:   "geocode [ADDRESS]",
		Short: "Look up the coordinates of an address",
		Long: `Look up the coordinates of an address, a place ID or a set of component filters,
e.g. --component country:CA --component postal_code:M5V.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			request := client.Geocode().
				WithPlaceID(placeID).
				WithRegion(region).
				WithLanguage(language)

			if len(args) > 0 {
				request.WithAddress(args[0])
			}

			err = applyComponents(request, components)
			if err != nil {
				return err
			}

			response, err := request.Execute(commandContext(cmd))
			if err != nil {
				return fmt.Errorf("failed to geocode: %w", err)
			}

			return outputResult(response, geocodeHeader, geocodeRows(response.Results))
		},
	}

	cmd.Flags().StringVar(&placeID, "place-id", "", "geocode a place ID instead of an address")
	cmd.Flags().StringSliceVar(&components, "component", nil, "component filter as name:value (repeatable)")
	cmd.Flags().StringVar(&region, "region", "", "region bias as a ccTLD code")
	cmd.Flags().StringVar(&language, "language", "", "language of returned text")

	cmd.AddCommand(newReverseGeocodeCommand())

	return cmd
}

func newReverseGeocodeCommand() *cobra.Command {
	var (
		resultTypes []string
		language    string
	)

	cmd := &cobra.Command{
		Use:   "reverse LAT,LNG",
		Short: "Look up the addresses at a coordinate",
		Long:  "Look up the addresses at a coordinate using reverse geocoding",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			location, err := parseLatLng(args[0])
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			response, err := client.ReverseGeocode(location).
				WithResultTypes(resultTypes...).
				WithLanguage(language).
				Execute(commandContext(cmd))
			if err != nil {
				return fmt.Errorf("failed to reverse geocode: %w", err)
			}

			return outputResult(response, geocodeHeader, geocodeRows(response.Results))
		},
	}

	cmd.Flags().StringSliceVar(&resultTypes, "result-type", nil, "restrict results to an address type (repeatable)")
	cmd.Flags().StringVar(&language, "language", "", "language of returned text")

	return cmd
}

func applyComponents(request *gmaps.GeocodingRequest, components []string) error {
	for _, component := range components {
		name, value, found := strings.Cut(component, ":")
		if !found || name == "" || value == "" {
			return fmt.Errorf("%w: %q", ErrInvalidComponent, component)
		}

		request.WithComponent(name, value)
	}

	return nil
}

var geocodeHeader = []string{"Address", "Latitude", "Longitude", "Location Type", "Place ID"}

func geocodeRows(results []gmaps.GeocodeResult) [][]string {
	rows := make([][]string, 0, len(results))

	for _, result := range results {
		rows = append(rows, []string{
			result.FormattedAddress,
			formatFloat(result.Geometry.Location.Lat),
			formatFloat(result.Geometry.Location.Lng),
			result.Geometry.LocationType,
			result.PlaceID,
		})
	}

	return rows
}
