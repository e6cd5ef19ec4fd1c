package main

import (
	"errors"
	"os"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/borgmon/daybreak/pkg/alarm"
	"github.com/borgmon/daybreak/pkg/audio"
	"github.com/borgmon/daybreak/pkg/clock"
	"github.com/borgmon/daybreak/pkg/logger"
	"github.com/borgmon/daybreak/pkg/models"
	"github.com/borgmon/daybreak/pkg/store"
)

// Daybreak wires the clock source, alarm machine, sound controller, settings
// store and presentation together.
type Daybreak struct {
	app      fyne.App
	settings *AppSettings
	store    *store.SettingsStore
	sound    *audio.Controller
	ticker   *clock.Ticker

	// mu serializes machine access between the tick goroutine and UI intents.
	mu      sync.Mutex
	machine *alarm.Machine

	mainWindow *MainWindow
	ringWindow *RingWindow

	lastTrayStatus string
}

func main() {
	if level, ok := logger.ParseLevel(os.Getenv("DAYBREAK_LOG_LEVEL")); ok {
		logger.SetLevel(level)
	}

	db := &Daybreak{
		app:   app.NewWithID("com.borgmon.daybreak"),
		sound: audio.NewController(),
	}

	db.initialize()
	db.run()
}

func (db *Daybreak) initialize() {
	db.settings = loadAppSettings(db.app)

	// Sync autostart state with settings on startup.
	if err := setupAutostart(db.settings.AutoStart); err != nil {
		logger.Warnf("failed to set up autostart: %v", err)
	}
	saveAppSettings(db.app, db.settings)

	db.store = store.NewSettingsStore(db.app)
	db.machine = alarm.NewMachine(
		db.store.Load(),
		alarm.WithSnoozeDuration(db.settings.SnoozeDuration()),
	)

	db.setupSystemTray()
	db.mainWindow = NewMainWindow(db)
	db.startTicker()
}

func (db *Daybreak) run() {
	db.mainWindow.Show()
	db.app.Run()
}

func (db *Daybreak) startTicker() {
	db.ticker = clock.NewTicker(clock.System{}, time.Second, db.onTick)
	db.ticker.Start()
}

// onTick evaluates the alarm against the current time and refreshes the UI.
// Effects are applied before this returns, so a tick always completes before
// the next one is handled.
func (db *Daybreak) onTick(now time.Time) {
	db.mu.Lock()
	effects := db.machine.Tick(now)
	cfg := db.machine.Config()
	db.mu.Unlock()

	db.apply(effects, cfg)
	db.requestRender(now)
}

// apply performs the side effects requested by a machine operation. Sound is
// best-effort: an unavailable audio device leaves the alarm ringing visually.
func (db *Daybreak) apply(effects []alarm.Effect, cfg models.AlarmConfig) {
	for _, effect := range effects {
		switch effect {
		case alarm.StartSound:
			if err := db.sound.Start(); err != nil {
				if errors.Is(err, audio.ErrUnavailable) {
					logger.Warnf("no audio output, alarm rings visually only")
				} else {
					logger.Errorf("failed to start alert sound: %v", err)
				}
			}
		case alarm.StopSound:
			db.sound.Stop()
		case alarm.Persist:
			db.store.Save(cfg)
		}
	}
}

// uiState is the snapshot the presentation layer renders from.
type uiState struct {
	now          time.Time
	cfg          models.AlarmConfig
	state        alarm.State
	ringing      bool
	remaining    string
	hasRemaining bool
}

func (db *Daybreak) snapshot(now time.Time) uiState {
	db.mu.Lock()
	defer db.mu.Unlock()

	remaining, ok := db.machine.Remaining(now)
	return uiState{
		now:          now,
		cfg:          db.machine.Config(),
		state:        db.machine.State(),
		ringing:      db.machine.Ringing(),
		remaining:    remaining,
		hasRemaining: ok,
	}
}

// requestRender schedules a UI refresh on the Fyne event thread.
func (db *Daybreak) requestRender(now time.Time) {
	s := db.snapshot(now)
	fyne.Do(func() {
		db.render(s)
	})
}

// render updates every surface from one snapshot. Runs on the event thread.
func (db *Daybreak) render(s uiState) {
	if s.ringing && db.ringWindow == nil {
		db.ringWindow = NewRingWindow(db)
		db.ringWindow.Show()
	} else if !s.ringing && db.ringWindow != nil {
		db.ringWindow.Close()
		db.ringWindow = nil
	}

	if db.ringWindow != nil {
		db.ringWindow.Refresh(s)
	}

	db.mainWindow.Refresh(s)
	db.updateSystemTrayMenu(s)
}

// User intents below may arrive from the event thread or from a hold-button
// progress goroutine; all of them funnel through the same apply/render path.

func (db *Daybreak) setAlarmTime(value string) error {
	db.mu.Lock()
	effects, err := db.machine.SetTime(value)
	cfg := db.machine.Config()
	db.mu.Unlock()

	if err != nil {
		return err
	}

	logger.InfoKV("alarm time set", "time", cfg.Time)
	db.apply(effects, cfg)
	db.requestRender(time.Now())
	return nil
}

func (db *Daybreak) setEnabled(enabled bool) {
	db.mu.Lock()
	effects := db.machine.SetEnabled(enabled)
	cfg := db.machine.Config()
	db.mu.Unlock()

	logger.InfoKV("alarm toggled", "enabled", enabled)
	db.apply(effects, cfg)
	db.requestRender(time.Now())
}

func (db *Daybreak) snooze() {
	now := time.Now()

	db.mu.Lock()
	effects := db.machine.Snooze(now)
	cfg := db.machine.Config()
	db.mu.Unlock()

	logger.InfoKV("alarm snoozed", "minutes", db.settings.SnoozeMinutes)
	db.apply(effects, cfg)
	db.requestRender(now)
}

func (db *Daybreak) dismiss() {
	db.mu.Lock()
	effects := db.machine.Dismiss()
	cfg := db.machine.Config()
	db.mu.Unlock()

	logger.Infof("alarm dismissed")
	db.apply(effects, cfg)
	db.requestRender(time.Now())
}

// applySettings is called after the settings dialog saves new values.
func (db *Daybreak) applySettings() {
	saveAppSettings(db.app, db.settings)

	if err := setupAutostart(db.settings.AutoStart); err != nil {
		logger.Warnf("failed to update autostart: %v", err)
	}

	db.mu.Lock()
	db.machine.SetSnoozeDuration(db.settings.SnoozeDuration())
	db.mu.Unlock()
}

// quit tears everything down. Stopping the ticker also stops any active
// alert sound so no audio resources outlive the app.
func (db *Daybreak) quit() {
	db.ticker.Stop()
	db.sound.Stop()
	db.app.Quit()
}
