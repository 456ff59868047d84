package cmd

import (
	"itinctl/pkg/tui"

	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Launch the interactive TUI",
	Long:  `Launch the Text User Interface to plan trips, watch the backend status and edit settings interactively.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, cleanup, err := newSession(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		addr, _ := cmd.Flags().GetString("metrics-addr")
		serveMetrics(s, addr)

		return tui.RunTUI(cmd.Context(), s)
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
	interactiveCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
}
