package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/gmaps/pkg/gmaps"
)

type directionsOptions struct {
	mode         string
	arrival      string
	departure    string
	region       string
	language     string
	units        string
	alternatives bool
	waypoints    []string
	avoid        []string
}

// NewDirectionsCommand creates the directions command.
func NewDirectionsCommand() *cobra.Command {
	opts := &directionsOptions{}

	cmd := &cobra.Command{
		Use:   "directions ORIGIN DESTINATION",
		Short: "Get directions between two locations",
		Long: `Get directions between two locations. Origin and destination may be an address,
a "lat,lng" pair or "place_id:<id>". Arrival and departure times are mutually exclusive.`,
		Args: cobra.ExactArgs(2), //nolint:mnd // ORIGIN and DESTINATION
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			request, err := buildDirectionsRequest(client.Directions(args[0], args[1]), opts, time.Now())
			if err != nil {
				return err
			}

			response, err := request.Execute(commandContext(cmd))
			if err != nil {
				return fmt.Errorf("failed to get directions: %w", err)
			}

			return outputResult(response, directionsHeader, directionsRows(response.Routes))
		},
	}

	cmd.Flags().StringVarP(&opts.mode, "mode", "m", "", "travel mode (driving, walking, bicycling, transit)")
	cmd.Flags().StringVar(&opts.arrival, "arrival-time", "", "arrival time (RFC3339 or unix seconds)")
	cmd.Flags().StringVar(&opts.departure, "departure-time", "", "departure time (RFC3339, unix seconds or now)")
	cmd.Flags().StringVar(&opts.region, "region", "", "region bias as a ccTLD code")
	cmd.Flags().StringVar(&opts.language, "language", "", "language of returned text")
	cmd.Flags().StringVar(&opts.units, "units", "", "unit system (metric, imperial)")
	cmd.Flags().BoolVar(&opts.alternatives, "alternatives", false, "return alternative routes")
	cmd.Flags().StringSliceVar(&opts.waypoints, "waypoint", nil, "intermediate waypoint (repeatable)")
	cmd.Flags().StringSliceVar(&opts.avoid, "avoid", nil, "features to avoid (tolls, highways, ferries, indoor)")

	return cmd
}

// buildDirectionsRequest applies the command options. Both times are passed through
// so that conflicting flags surface as a build error.
func buildDirectionsRequest(request *gmaps.DirectionsRequest, opts *directionsOptions, now time.Time) (*gmaps.DirectionsRequest, error) {
	if opts.mode != "" {
		request.WithTravelMode(gmaps.TravelMode(opts.mode))
	}

	if opts.units != "" {
		request.WithUnits(gmaps.Units(opts.units))
	}

	if opts.arrival != "" {
		arrival, err := parseTime(opts.arrival, now)
		if err != nil {
			return nil, err
		}

		request.WithArrivalTime(arrival)
	}

	switch opts.departure {
	case "":
	case "now":
		request.WithDepartureNow()
	default:
		departure, err := parseTime(opts.departure, now)
		if err != nil {
			return nil, err
		}

		request.WithDepartureTime(departure)
	}

	avoid := make([]gmaps.Avoid, len(opts.avoid))
	for i, feature := range opts.avoid {
		avoid[i] = gmaps.Avoid(feature)
	}

	request.
		WithRegion(opts.region).
		WithLanguage(opts.language).
		WithWaypoints(opts.waypoints...).
		WithAvoid(avoid...)

	if opts.alternatives {
		request.WithAlternatives(true)
	}

	return request, nil
}

var directionsHeader = []string{"Route", "Summary", "From", "To", "Distance", "Duration"}

func directionsRows(routes []gmaps.Route) [][]string {
	var rows [][]string

	for i, route := range routes {
		for _, leg := range route.Legs {
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				route.Summary,
				leg.StartAddress,
				leg.EndAddress,
				leg.Distance.Text,
				leg.Duration.Text,
			})
		}
	}

	return rows
}
