package main

import (
	"time"

	"fyne.io/fyne/v2"

	"github.com/borgmon/daybreak/pkg/alarm"
)

// AppSettings holds app-level preferences. These live alongside, but apart
// from, the persisted alarm record managed by the settings store.
type AppSettings struct {
	AutoStart     bool
	SnoozeMinutes int
	HoldSeconds   int
}

const (
	defaultSnoozeMinutes = 5
	defaultHoldSeconds   = 2
)

func loadAppSettings(app fyne.App) *AppSettings {
	prefs := app.Preferences()

	return &AppSettings{
		AutoStart:     prefs.BoolWithFallback("auto_start", false),
		SnoozeMinutes: prefs.IntWithFallback("snooze_minutes", defaultSnoozeMinutes),
		HoldSeconds:   prefs.IntWithFallback("hold_seconds", defaultHoldSeconds),
	}
}

func saveAppSettings(app fyne.App, s *AppSettings) {
	prefs := app.Preferences()

	prefs.SetBool("auto_start", s.AutoStart)
	prefs.SetInt("snooze_minutes", s.SnoozeMinutes)
	prefs.SetInt("hold_seconds", s.HoldSeconds)
}

// SnoozeDuration converts the snooze setting to a duration, falling back to
// the machine default when the stored value is unusable.
func (s *AppSettings) SnoozeDuration() time.Duration {
	if s.SnoozeMinutes <= 0 {
		return alarm.DefaultSnoozeDuration
	}
	return time.Duration(s.SnoozeMinutes) * time.Minute
}
