package cmd

import (
	"fmt"
	"time"

	"itinctl/pkg/itinerary"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Directly export an itinerary to a GeoJSON or ICS file",
	Long:  `Plan an itinerary and write it to a file without printing the map, as GeoJSON (route and markers) or as an ICS calendar event.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		modeFlag, _ := cmd.Flags().GetString("mode")
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")
		startFlag, _ := cmd.Flags().GetString("start")

		if format != "geojson" && format != "ics" {
			return fmt.Errorf("unknown format %q (use geojson or ics)", format)
		}

		start := time.Now()
		if startFlag != "" {
			parsed, err := time.ParseInLocation("2006-01-02 15:04", startFlag, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --start, expected \"YYYY-MM-DD HH:MM\": %w", err)
			}
			start = parsed
		}

		if output == "" {
			output = "itinerary." + format
		}

		s, cleanup, err := newSession(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		mode := s.DefaultMode()
		if modeFlag != "" {
			mode = itinerary.Mode(modeFlag)
		}

		result, err := planOnce(cmd, s, from, to, mode)
		if err != nil {
			return fmt.Errorf("failed to plan itinerary: %w", err)
		}

		if format == "geojson" {
			return writeGeoJSON(s, output)
		}
		return writeICS(result, mode, start, output)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("from", "f", "", "Departure address")
	exportCmd.Flags().StringP("to", "t", "", "Destination address")
	exportCmd.Flags().StringP("mode", "m", "", "Travel mode (optimal, transport, voiture, velo, pieton)")
	exportCmd.Flags().String("format", "geojson", "Output format: geojson or ics")
	exportCmd.Flags().StringP("output", "o", "", "Output file path (default itinerary.<format>)")
	exportCmd.Flags().String("start", "", "Departure time for ICS export, \"YYYY-MM-DD HH:MM\" (default now)")
	exportCmd.MarkFlagRequired("from")
	exportCmd.MarkFlagRequired("to")
}
