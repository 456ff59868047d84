package cmd

import (
	"fmt"
	"strings"

	"itinctl/pkg/config"
	"itinctl/pkg/tui"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage itinctl configuration",
	Long:  "View or edit your local configuration settings (backend URL, default travel mode, accent color).",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		setBackend, _ := cmd.Flags().GetString("set-backend")
		setMode, _ := cmd.Flags().GetString("set-mode")
		setColor, _ := cmd.Flags().GetString("set-color")
		show, _ := cmd.Flags().GetBool("show")

		if show {
			fmt.Print(tui.DescribeConfig(cfg))
			return nil
		}

		if setBackend == "" && setMode == "" && setColor == "" {
			// If no flags are given, launch the interactive TUI flow
			return tui.RunConfigTUI()
		}

		if setBackend != "" {
			cfg.BackendURL = strings.TrimRight(setBackend, "/")
		}
		if setMode != "" {
			cfg.DefaultMode = setMode
		}
		if setColor != "" {
			cfg.AccentColor = setColor
		}

		if err := config.Validate(cfg); err != nil {
			return err
		}
		if err := config.Save(cfg); err != nil {
			return err
		}

		fmt.Println("✅ Configuration saved")
		fmt.Print(tui.DescribeConfig(cfg))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().String("set-backend", "", "Set the itinerary backend URL")
	configCmd.Flags().String("set-mode", "", "Set the default travel mode (optimal, transport, voiture, velo, pieton)")
	configCmd.Flags().String("set-color", "", "Set the accent color (ANSI number or #RRGGBB)")
	configCmd.Flags().Bool("show", false, "Print the current configuration")
}
