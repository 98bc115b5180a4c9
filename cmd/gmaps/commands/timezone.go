package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/gmaps/pkg/gmaps"
)

// NewTimeZoneCommand creates the timezone command.
func NewTimeZoneCommand() *cobra.Command {
	var (
		at       string
		language string
	)

	cmd := &cobra.Command{
		Use:   "timezone LAT,LNG",
		Short: "Get the time zone of a location",
		Long:  "Get the time zone of a location at a point in time (default now)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			location, err := parseLatLng(args[0])
			if err != nil {
				return err
			}

			timestamp, err := parseTime(at, time.Now())
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			response, err := client.TimeZone(location, timestamp).
				WithLanguage(language).
				Execute(commandContext(cmd))
			if err != nil {
				return fmt.Errorf("failed to get time zone: %w", err)
			}

			return outputResult(response, timeZoneHeader, timeZoneRows(response))
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "point in time (RFC3339, unix seconds or now)")
	cmd.Flags().StringVar(&language, "language", "", "language of the time zone name")

	return cmd
}

var timeZoneHeader = []string{"Time Zone ID", "Name", "UTC Offset"}

func timeZoneRows(response *gmaps.TimeZoneResponse) [][]string {
	if response.TimeZoneID == "" {
		return nil
	}

	return [][]string{{
		response.TimeZoneID,
		response.TimeZoneName,
		response.Offset().String(),
	}}
}
