package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/gmaps/pkg/gmaps"
)

// NewElevationCommand creates the elevation command.
func NewElevationCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "elevation LAT,LNG...",
		Short: "Get the elevation of locations",
		Long:  "Get the elevation in meters at each location",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			locations, err := parseLatLngs(args)
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			response, err := client.Elevation(locations...).Execute(commandContext(cmd))
			if err != nil {
				return fmt.Errorf("failed to get elevation: %w", err)
			}

			return outputResult(response, elevationHeader, elevationRows(response.Results))
		},
	}
}

var elevationHeader = []string{"Latitude", "Longitude", "Elevation (m)", "Resolution (m)"}

func elevationRows(results []gmaps.ElevationResult) [][]string {
	rows := make([][]string, 0, len(results))

	for _, result := range results {
		rows = append(rows, []string{
			formatFloat(result.Location.Lat),
			formatFloat(result.Location.Lng),
			fmt.Sprintf("%.2f", result.Elevation),
			fmt.Sprintf("%.2f", result.Resolution),
		})
	}

	return rows
}
