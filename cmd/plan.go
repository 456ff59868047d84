package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"itinctl/pkg/apperror"
	"itinctl/pkg/exporter"
	"itinctl/pkg/itinerary"
	"itinctl/pkg/tui"

	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan one itinerary and print it",
	Long:  `Plan an itinerary between two places without the interactive menu, optionally exporting it as GeoJSON or ICS.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		modeFlag, _ := cmd.Flags().GetString("mode")
		geojsonPath, _ := cmd.Flags().GetString("geojson")
		icsPath, _ := cmd.Flags().GetString("ics")

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
		fmt.Println(s.Screen.Draw())
		if err != nil {
			return err
		}

		if geojsonPath != "" {
			if err := writeGeoJSON(s, geojsonPath); err != nil {
				return err
			}
		}
		if icsPath != "" {
			if err := writeICS(result, mode, time.Now(), icsPath); err != nil {
				return err
			}
		}
		return nil
	},
}

// planOnce submits a single request behind the spinner and returns the backend result.
func planOnce(cmd *cobra.Command, s *tui.Session, from, to string, mode itinerary.Mode) (*itinerary.Result, error) {
	if err := tui.Submit(cmd.Context(), s, from, to, mode); err != nil {
		if _, ok := apperror.KindOf(err); ok {
			// Already on screen; keep the exit message user-facing
			return nil, errors.New(apperror.UserMessage(err))
		}
		return nil, err
	}
	return s.LastResult(), nil
}

func writeGeoJSON(s *tui.Session, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := exporter.GenerateGeoJSON(s.Surface.Snapshot(), file); err != nil {
		return fmt.Errorf("failed to generate GeoJSON: %w", err)
	}

	fmt.Printf("Successfully exported the map to %s\n", path)
	return nil
}

func writeICS(result *itinerary.Result, mode itinerary.Mode, start time.Time, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := exporter.GenerateICS(exporter.TripEvent{Result: result, Mode: mode, Start: start}, file); err != nil {
		return fmt.Errorf("failed to generate ICS: %w", err)
	}

	fmt.Printf("Successfully exported the trip to %s\n", path)
	return nil
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().StringP("from", "f", "", "Departure address")
	planCmd.Flags().StringP("to", "t", "", "Destination address")
	planCmd.Flags().StringP("mode", "m", "", "Travel mode (optimal, transport, voiture, velo, pieton)")
	planCmd.Flags().String("geojson", "", "Also write the drawn map to this GeoJSON file")
	planCmd.Flags().String("ics", "", "Also write the trip to this ICS file, departing now")
	planCmd.MarkFlagRequired("from")
	planCmd.MarkFlagRequired("to")
}
