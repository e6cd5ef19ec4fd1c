package main

import (
	"os"
	"path/filepath"

	"github.com/emersion/go-autostart"

	"github.com/borgmon/daybreak/pkg/logger"
)

// setupAutostart registers or removes the app as a login item to match the
// user's setting.
func setupAutostart(enable bool) error {
	execPath, err := os.Executable()
	if err != nil {
		return err
	}

	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return err
	}

	app := &autostart.App{
		Name:        "daybreak",
		DisplayName: "Daybreak",
		Exec:        []string{execPath},
	}

	if enable {
		if !app.IsEnabled() {
			if err := app.Enable(); err != nil {
				return err
			}
			logger.Infof("autostart enabled")
		}
		return nil
	}

	if app.IsEnabled() {
		if err := app.Disable(); err != nil {
			return err
		}
		logger.Infof("autostart disabled")
	}

	return nil
}
