package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/gmaps/pkg/gmaps"
)

// NewNearestRoadsCommand creates the nearest-roads command.
func NewNearestRoadsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "nearest-roads LAT,LNG...",
		Short: "Find the nearest road segments",
		Long:  "Find the road segment nearest to each point using the Roads API",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			points, err := parseLatLngs(args)
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			response, err := client.NearestRoads(points...).Execute(commandContext(cmd))
			if err != nil {
				return fmt.Errorf("failed to find nearest roads: %w", err)
			}

			return outputResult(response, snappedHeader, snappedRows(response.SnappedPoints))
		},
	}
}

// NewSnapToRoadsCommand creates the snap-to-roads command.
func NewSnapToRoadsCommand() *cobra.Command {
	var interpolate bool

	cmd := &cobra.Command{
		Use:   "snap-to-roads LAT,LNG...",
		Short: "Snap a GPS trace to roads",
		Long:  "Snap a path of GPS points to the roads it most likely travelled",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := parseLatLngs(args)
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			response, err := client.SnapToRoads(path...).
				WithInterpolate(interpolate).
				Execute(commandContext(cmd))
			if err != nil {
				return fmt.Errorf("failed to snap to roads: %w", err)
			}

			return outputResult(response, snappedHeader, snappedRows(response.SnappedPoints))
		},
	}

	cmd.Flags().BoolVar(&interpolate, "interpolate", false, "interpolate points along the road geometry")

	return cmd
}

var snappedHeader = []string{"Index", "Latitude", "Longitude", "Place ID"}

func snappedRows(points []gmaps.SnappedPoint) [][]string {
	rows := make([][]string, 0, len(points))

	for _, point := range points {
		index := "-"
		if point.OriginalIndex != nil {
			index = strconv.Itoa(*point.OriginalIndex)
		}

		rows = append(rows, []string{
			index,
			formatFloat(point.Location.Lat),
			formatFloat(point.Location.Lng),
			point.PlaceID,
		})
	}

	return rows
}

// commandContext returns the command's context, falling back to Background when
// the command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}
