package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

var validate = validator.New()

// Defaults
const (
	DefaultBackendURL     = "http://localhost:5001"
	DefaultMode           = "optimal"
	DefaultAccentColor    = "33"
	DefaultLogLevel       = "info"
	DefaultRequestTimeout = 30 * time.Second
	DefaultHealthInterval = 30 * time.Second
	DefaultErrorHideDelay = 5 * time.Second
)

// AppConfig holds all user-defined persistent settings
type AppConfig struct {
	BackendURL     string        `json:"backend_url" mapstructure:"backend_url" validate:"required,http_url"`
	DefaultMode    string        `json:"default_mode" mapstructure:"default_mode" validate:"oneof=optimal transport voiture velo pieton"`
	AccentColor    string        `json:"accent_color" mapstructure:"accent_color" validate:"hexcolor|number"`
	LogLevel       string        `json:"log_level" mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFile        string        `json:"log_file,omitempty" mapstructure:"log_file"`
	RequestTimeout time.Duration `json:"request_timeout" mapstructure:"request_timeout"`
	HealthInterval time.Duration `json:"health_interval" mapstructure:"health_interval"`
	ErrorHideDelay time.Duration `json:"error_hide_delay" mapstructure:"error_hide_delay"`
}

// getConfigPath returns the absolute path to ~/.itinctl.json
func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".itinctl.json"), nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("json")
	v.SetEnvPrefix("ITINCTL")
	v.AutomaticEnv()

	v.SetDefault("backend_url", DefaultBackendURL)
	v.SetDefault("default_mode", DefaultMode)
	v.SetDefault("accent_color", DefaultAccentColor)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_file", "")
	v.SetDefault("request_timeout", DefaultRequestTimeout)
	v.SetDefault("health_interval", DefaultHealthInterval)
	v.SetDefault("error_hide_delay", DefaultErrorHideDelay)
	return v
}

// Load reads the application configuration from disk, applying defaults and
// ITINCTL_* environment overrides. A missing file yields the defaults.
func Load() (*AppConfig, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	v := newViper()

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the settings a user can change from the CLI.
func Validate(cfg *AppConfig) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ValidateBackendURL accepts absolute http(s) URLs
func ValidateBackendURL(raw string) error {
	if err := validate.Var(raw, "required,http_url"); err != nil {
		return fmt.Errorf("%q is not an http(s) URL", raw)
	}
	return nil
}

// ValidateAccentColor accepts an ANSI color number or a hex code like #2563EB
func ValidateAccentColor(raw string) error {
	if err := validate.Var(raw, "required,hexcolor|number"); err != nil {
		return fmt.Errorf("%q is neither an ANSI color number nor a hex code", raw)
	}
	return nil
}

// Save writes the application configuration back to disk.
func Save(cfg *AppConfig) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
