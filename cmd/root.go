package cmd

import (
	"context"
	"fmt"
	"os"

	"itinctl/pkg/config"
	"itinctl/pkg/logger"
	"itinctl/pkg/metrics"
	"itinctl/pkg/tui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "itinctl",
	Short: "A CLI and TUI for planning urban itineraries",
	Long: `itinctl plans trips against an itinerary backend and shows the route,
trip stats, recommendations and nearby buses on a terminal map.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error); overrides the config")
	rootCmd.PersistentFlags().String("backend", "", "Backend URL; overrides the config")
}

// loadConfig reads the saved config and applies the persistent flag overrides
func loadConfig(cmd *cobra.Command) (*config.AppConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	if backend, _ := cmd.Flags().GetString("backend"); backend != "" {
		if err := config.ValidateBackendURL(backend); err != nil {
			return nil, err
		}
		cfg.BackendURL = backend
	}
	return cfg, nil
}

// newSession builds the logger and every component for a command run.
// The returned cleanup flushes the logger.
func newSession(cmd *cobra.Command) (*tui.Session, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	path := cfg.LogFile
	if path == "" {
		if path, err = logger.DefaultPath(); err != nil {
			return nil, nil, err
		}
	}

	log, err := logger.New(cfg.LogLevel, path)
	if err != nil {
		return nil, nil, err
	}
	log = log.With(zap.String("command", cmd.Name()))

	s, err := tui.NewSession(cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, nil, err
	}

	return s, func() { _ = log.Sync() }, nil
}

// serveMetrics starts the Prometheus listener when addr is set
func serveMetrics(s *tui.Session, addr string) {
	if addr == "" {
		return
	}
	errc := metrics.Serve(addr)
	go func() {
		if err := <-errc; err != nil {
			s.Logger.Error("metrics listener stopped", zap.String("addr", addr), zap.Error(err))
		}
	}()
	s.Logger.Info("serving metrics", zap.String("addr", addr))
}
