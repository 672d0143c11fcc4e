// Package config loads the tool configuration from config files and
// environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Configuration represents the montage CLI tool configuration
type Configuration struct {
	DatabasePath string `koanf:"database_path" validate:"required"`

	// Alert windows, in days before the scheduled installation. Each window
	// must be tighter than the previous one.
	AlertWarningDays  int `koanf:"alert_warning_days" validate:"min=1"`
	AlertErrorDays    int `koanf:"alert_error_days" validate:"min=1"`
	AlertCriticalDays int `koanf:"alert_critical_days" validate:"min=1"`

	// DefaultInstallerID is prefilled on new montages when set.
	DefaultInstallerID string `koanf:"default_installer_id"`

	NoColor bool `koanf:"no_color"`
}

// GetDefaults returns the default configuration values keyed by config name.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"database_path":       "~/.montage/montage.db",
		"alert_warning_days":  10,
		"alert_error_days":    5,
		"alert_critical_days": 2,
	}
}

// Load loads configuration from global, local, and environment sources.
// Priority: Environment variables > Local config > Global config > Defaults
func Load(localConfigPath string) (*Configuration, error) {
	k := koanf.New(".")

	defaults := GetDefaults()
	for key, value := range defaults {
		k.Set(key, value)
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		globalPath := filepath.Join(homeDir, ".montage", "config.json")
		if _, err := os.Stat(globalPath); err == nil {
			if err := k.Load(file.Provider(globalPath), json.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load global config: %w", err)
			}
		}
	}

	if localConfigPath != "" {
		if _, err := os.Stat(localConfigPath); err == nil {
			if err := k.Load(file.Provider(localConfigPath), json.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load local config: %w", err)
			}
		}
	}

	k.Load(env.Provider("MONTAGE_", ".", envTransform), nil)

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.AlertErrorDays >= cfg.AlertWarningDays || cfg.AlertCriticalDays >= cfg.AlertErrorDays {
		return nil, fmt.Errorf("alert windows must tighten: warning > error > critical (got %d/%d/%d)",
			cfg.AlertWarningDays, cfg.AlertErrorDays, cfg.AlertCriticalDays)
	}

	cfg.DatabasePath = expandHomePath(cfg.DatabasePath)

	return &cfg, nil
}

// envTransform converts environment variable names to config keys
// Example: MONTAGE_DATABASE_PATH -> database_path
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "MONTAGE_"))
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
