package platform

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/emersion/go-autostart"
)

// launcher describes the login item for the running executable
func launcher() (*autostart.App, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}

	// Resolve symlinks if any
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	return &autostart.App{
		Name:        "sticky-alarm",
		DisplayName: "Sticky Alarm",
		Exec:        []string{execPath},
	}, nil
}

// SetAutostart makes the login item match enable
func SetAutostart(enable bool, log *slog.Logger) error {
	app, err := launcher()
	if err != nil {
		return fmt.Errorf("locating executable: %w", err)
	}

	switch {
	case enable && !app.IsEnabled():
		if err := app.Enable(); err != nil {
			return fmt.Errorf("enabling autostart: %w", err)
		}
		log.Info("autostart enabled")
	case !enable && app.IsEnabled():
		if err := app.Disable(); err != nil {
			return fmt.Errorf("disabling autostart: %w", err)
		}
		log.Info("autostart disabled")
	}

	return nil
}
