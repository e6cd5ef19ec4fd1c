package main

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// showSettingsDialog edits app-level settings: autostart, snooze length and
// the hold-to-confirm time for the ring buttons.
func showSettingsDialog(db *Daybreak, parent fyne.Window) {
	autoStartCheck := widget.NewCheck("Launch Daybreak at login", nil)
	autoStartCheck.SetChecked(db.settings.AutoStart)

	snoozeEntry := widget.NewEntry()
	snoozeEntry.SetText(strconv.Itoa(db.settings.SnoozeMinutes))

	holdEntry := widget.NewEntry()
	holdEntry.SetText(strconv.Itoa(db.settings.HoldSeconds))

	items := []*widget.FormItem{
		widget.NewFormItem("Autostart", autoStartCheck),
		widget.NewFormItem("Snooze minutes", snoozeEntry),
		widget.NewFormItem("Hold seconds", holdEntry),
	}

	dialog.ShowForm("Settings", "Save", "Cancel", items, func(confirmed bool) {
		if !confirmed {
			return
		}

		snoozeMinutes, err := strconv.Atoi(snoozeEntry.Text)
		if err != nil || snoozeMinutes < 1 {
			dialog.ShowError(fmt.Errorf("snooze minutes must be a positive number"), parent)
			return
		}

		holdSeconds, err := strconv.Atoi(holdEntry.Text)
		if err != nil || holdSeconds < 1 {
			dialog.ShowError(fmt.Errorf("hold seconds must be a positive number"), parent)
			return
		}

		db.settings.AutoStart = autoStartCheck.Checked
		db.settings.SnoozeMinutes = snoozeMinutes
		db.settings.HoldSeconds = holdSeconds
		db.applySettings()
	}, parent)
}
