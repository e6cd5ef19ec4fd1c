// Package store persists the alarm record through Fyne preferences.
package store

import (
	"encoding/json"

	"fyne.io/fyne/v2"

	"github.com/borgmon/daybreak/pkg/logger"
	"github.com/borgmon/daybreak/pkg/models"
)

// alarmKey is the single preferences key holding the alarm record.
const alarmKey = "alarm"

// SettingsStore loads and saves the persisted alarm record: exactly the
// configured time and the enabled flag, as one JSON record under one key.
// Transient snooze or ringing state never goes through here.
type SettingsStore struct {
	prefs fyne.Preferences
}

// NewSettingsStore creates a store backed by the app's preferences.
func NewSettingsStore(app fyne.App) *SettingsStore {
	return &SettingsStore{prefs: app.Preferences()}
}

// Load returns the last-saved alarm record. A missing, malformed, or
// wrong-shaped payload fails closed to the defaults (07:00, disabled);
// parse errors never reach the caller.
func (s *SettingsStore) Load() models.AlarmConfig {
	raw := s.prefs.String(alarmKey)
	if raw == "" {
		return models.DefaultAlarmConfig()
	}

	var cfg models.AlarmConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		logger.Warnf("malformed alarm record, using defaults: %v", err)
		return models.DefaultAlarmConfig()
	}

	if err := cfg.Validate(); err != nil {
		logger.Warnf("stored alarm record invalid, using defaults: %v", err)
		return models.DefaultAlarmConfig()
	}

	return cfg
}

// Save persists the alarm record. Writes are fire-and-forget full overwrites
// of the same record; durability is whatever the preferences backend offers.
func (s *SettingsStore) Save(cfg models.AlarmConfig) {
	data, err := json.Marshal(cfg)
	if err != nil {
		// Unreachable for this struct; log and keep the previous record.
		logger.Errorf("failed to encode alarm record: %v", err)
		return
	}
	s.prefs.SetString(alarmKey, string(data))
}
