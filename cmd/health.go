package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"itinctl/pkg/health"
	"itinctl/pkg/tui"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check whether the itinerary backend is online",
	Long:  `Probe the backend liveness endpoint once, or keep polling it on the configured interval with --watch.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		watch, _ := cmd.Flags().GetBool("watch")

		s, cleanup, err := newSession(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		if !watch {
			var status health.Status
			_ = spinner.New().
				Title(fmt.Sprintf("Checking %s...", s.Client.BaseURL())).
				Action(func() {
					status = s.Monitor.Probe(cmd.Context())
				}).
				Run()

			fmt.Printf("%s  %s\n", s.Screen.StatusLine(), s.Client.BaseURL())
			if status != health.Online {
				return fmt.Errorf("backend is offline")
			}
			return nil
		}

		addr, _ := cmd.Flags().GetString("metrics-addr")
		serveMetrics(s, addr)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		return watchHealth(ctx, s)
	},
}

// watchHealth runs the monitor and prints a line whenever the indicator changes.
func watchHealth(ctx context.Context, s *tui.Session) error {
	fmt.Printf("Watching %s every %s (Ctrl+C to stop)\n", s.Client.BaseURL(), s.Config.HealthInterval)

	s.StartHealth(ctx)

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	var last time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			checked := s.Monitor.LastChecked()
			if checked.Equal(last) {
				continue
			}
			last = checked
			fmt.Printf("[%s] %s\n", checked.Local().Format("15:04:05"), s.Screen.StatusLine())
		}
	}
}

func init() {
	rootCmd.AddCommand(healthCmd)
	healthCmd.Flags().BoolP("watch", "w", false, "Keep polling the backend")
	healthCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address while watching (e.g. :9090)")
}
