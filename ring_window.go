package main

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/borgmon/daybreak/pkg/ui/components"
)

// RingWindow is the fullscreen surface shown while the alarm rings. Snooze
// and dismiss are hold-to-confirm so a stray click cannot silence the alarm.
type RingWindow struct {
	db     *Daybreak
	window fyne.Window

	timeText *canvas.Text

	snoozeProgress  float64
	dismissProgress float64
	snoozeTicker    *time.Ticker
	dismissTicker   *time.Ticker
	snoozeHeld      bool
	dismissHeld     bool
}

func NewRingWindow(db *Daybreak) *RingWindow {
	rw := &RingWindow{db: db}

	rw.window = db.app.NewWindow("Daybreak")
	rw.window.SetFullScreen(true)
	rw.buildUI()

	// Snooze and dismiss are the only ways out of a ring.
	rw.window.SetCloseIntercept(func() {})

	return rw
}

func (rw *RingWindow) buildUI() {
	title := canvas.NewText("Wake up!", nil)
	title.TextSize = 48
	title.Alignment = fyne.TextAlignCenter

	rw.timeText = canvas.NewText(time.Now().Format("15:04:05"), nil)
	rw.timeText.TextSize = 96
	rw.timeText.Alignment = fyne.TextAlignCenter

	hold := rw.db.settings.HoldSeconds

	var snoozeButton *components.HoldButton
	snoozeButton = components.NewHoldButton(
		fmt.Sprintf("Snooze %dm (Hold %ds)", rw.db.settings.SnoozeMinutes, hold),
		func() { rw.startSnoozeProgress(snoozeButton) },
		func() { rw.stopSnoozeProgress(snoozeButton) },
	)

	var dismissButton *components.HoldButton
	dismissButton = components.NewHoldButton(
		fmt.Sprintf("Dismiss (Hold %ds)", hold),
		func() { rw.startDismissProgress(dismissButton) },
		func() { rw.stopDismissProgress(dismissButton) },
	)

	content := container.NewVBox(
		container.NewPadded(title),
		container.NewPadded(rw.timeText),
		widget.NewSeparator(),
		container.NewHBox(snoozeButton, dismissButton),
	)

	rw.window.SetContent(container.NewCenter(content))
}

// Refresh updates the displayed time. Runs on the event thread.
func (rw *RingWindow) Refresh(s uiState) {
	rw.timeText.Text = s.now.Format("15:04:05")
	rw.timeText.Refresh()
}

func (rw *RingWindow) startSnoozeProgress(button *components.HoldButton) {
	if rw.snoozeHeld {
		return
	}
	rw.snoozeHeld = true
	rw.snoozeProgress = 0
	rw.snoozeTicker = rw.runHoldProgress(button, &rw.snoozeProgress, &rw.snoozeHeld, rw.db.snooze)
}

func (rw *RingWindow) stopSnoozeProgress(button *components.HoldButton) {
	rw.snoozeHeld = false
	if rw.snoozeTicker != nil {
		rw.snoozeTicker.Stop()
	}
	rw.snoozeProgress = 0
	fyne.Do(func() {
		button.SetProgress(0)
	})
}

func (rw *RingWindow) startDismissProgress(button *components.HoldButton) {
	if rw.dismissHeld {
		return
	}
	rw.dismissHeld = true
	rw.dismissProgress = 0
	rw.dismissTicker = rw.runHoldProgress(button, &rw.dismissProgress, &rw.dismissHeld, rw.db.dismiss)
}

func (rw *RingWindow) stopDismissProgress(button *components.HoldButton) {
	rw.dismissHeld = false
	if rw.dismissTicker != nil {
		rw.dismissTicker.Stop()
	}
	rw.dismissProgress = 0
	fyne.Do(func() {
		button.SetProgress(0)
	})
}

// runHoldProgress advances the button's progress fill while held and invokes
// complete once the full hold time elapses. The returned ticker is stopped
// by the matching stop*Progress call or on completion.
func (rw *RingWindow) runHoldProgress(button *components.HoldButton, progress *float64, held *bool, complete func()) *time.Ticker {
	tickInterval := 50 * time.Millisecond
	totalTicks := float64(rw.db.settings.HoldSeconds*1000) / float64(tickInterval.Milliseconds())
	increment := 1.0 / totalTicks

	ticker := time.NewTicker(tickInterval)

	go func() {
		for range ticker.C {
			if !*held {
				return
			}

			*progress += increment
			current := *progress

			fyne.Do(func() {
				button.SetProgress(current)
			})

			if current >= 1.0 {
				ticker.Stop()
				complete()
				return
			}
		}
	}()

	return ticker
}

func (rw *RingWindow) Show() {
	rw.window.Show()
}

// Close tears the window down; called when the machine leaves Ringing.
func (rw *RingWindow) Close() {
	if rw.snoozeTicker != nil {
		rw.snoozeTicker.Stop()
	}
	if rw.dismissTicker != nil {
		rw.dismissTicker.Stop()
	}
	rw.window.Close()
}
