// Package cli provides CLI commands for the montage application.
package cli

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/example/montage/internal/config"
	"github.com/example/montage/internal/core/alert"
	"github.com/example/montage/internal/db"
	"github.com/example/montage/internal/wire"
)

// cfg holds the configuration loaded at CLI startup.
var cfg *config.Configuration

// Bootstrap loads configuration and points the database layer at the
// configured path. Called once from the root command's PersistentPreRunE,
// before any service is wired.
func Bootstrap(localConfigPath string) error {
	loaded, err := config.Load(localConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg = loaded

	db.SetPath(cfg.DatabasePath)
	wire.SetAlertWindows(alert.Windows{
		Warning:  cfg.AlertWarningDays,
		Error:    cfg.AlertErrorDays,
		Critical: cfg.AlertCriticalDays,
	})
	if cfg.NoColor {
		color.NoColor = true
	}
	return nil
}

// Config returns the configuration loaded by Bootstrap. Falls back to
// defaults-only when Bootstrap was not called (tests, doc generation).
func Config() *config.Configuration {
	if cfg == nil {
		return &config.Configuration{
			AlertWarningDays:  10,
			AlertErrorDays:    5,
			AlertCriticalDays: 2,
		}
	}
	return cfg
}
