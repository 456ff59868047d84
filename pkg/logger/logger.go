package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultPath returns ~/.cache/itinctl/itinctl.log (or the OS equivalent).
// Logs go to a file so they never tear through the TUI.
func DefaultPath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("could not find user cache directory: %w", err)
	}
	dir := filepath.Join(cacheDir, "itinctl")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("could not create log directory: %w", err)
	}
	return filepath.Join(dir, "itinctl.log"), nil
}

// New builds a zap logger writing to path ("stderr" and "stdout" are accepted).
// Unknown levels fall back to info.
func New(level, path string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	if path == "" {
		path = "stderr"
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{path},
		ErrorOutputPaths: []string{"stderr"},
	}

	if level == "debug" {
		config.Development = true
		config.Encoding = "console"
		config.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		if path == "stderr" || path == "stdout" {
			config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
	}

	return config.Build()
}
