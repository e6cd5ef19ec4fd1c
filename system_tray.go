package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

func (db *Daybreak) setupSystemTray() {
	db.mu.Lock()
	cfg := db.machine.Config()
	db.mu.Unlock()

	db.rebuildSystemTrayMenu(trayStatusLine(uiState{cfg: cfg}), cfg.Enabled)
}

// updateSystemTrayMenu rebuilds the tray menu when the status line changes.
// Rebuilding every tick would churn the desktop menu for no reason.
func (db *Daybreak) updateSystemTrayMenu(s uiState) {
	status := trayStatusLine(s)
	if status == db.lastTrayStatus {
		return
	}
	db.rebuildSystemTrayMenu(status, s.cfg.Enabled)
}

func (db *Daybreak) rebuildSystemTrayMenu(status string, enabled bool) {
	desk, ok := db.app.(desktop.App)
	if !ok {
		return
	}
	db.lastTrayStatus = status

	statusItem := fyne.NewMenuItem(status, nil)
	statusItem.Disabled = true

	toggleLabel := "Turn Alarm On"
	if enabled {
		toggleLabel = "Turn Alarm Off"
	}

	menu := fyne.NewMenu("Daybreak",
		statusItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Show Daybreak", func() {
			db.mainWindow.Show()
		}),
		fyne.NewMenuItem(toggleLabel, func() {
			db.setEnabled(!enabled)
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			db.quit()
		}),
	)
	desk.SetSystemTrayMenu(menu)
}

func trayStatusLine(s uiState) string {
	switch {
	case s.ringing:
		return "Ringing now"
	case s.hasRemaining:
		return fmt.Sprintf("Alarm %s (%s)", s.cfg.Time, s.remaining)
	default:
		return "Alarm off"
	}
}
