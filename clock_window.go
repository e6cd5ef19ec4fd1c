package main

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// presetTimes are the quick-pick alarm times offered in the main window.
var presetTimes = []string{"06:00", "06:30", "07:00", "07:30", "08:00", "09:00"}

// MainWindow is the clock face: current time, alarm controls and status.
type MainWindow struct {
	db     *Daybreak
	window fyne.Window

	clockText    *canvas.Text
	statusLabel  *widget.Label
	enabledCheck *widget.Check
	timeEntry    *widget.Entry
}

func NewMainWindow(db *Daybreak) *MainWindow {
	mw := &MainWindow{db: db}

	mw.window = db.app.NewWindow("Daybreak")
	mw.buildUI()

	// Closing the window keeps the app alive in the tray so the alarm can
	// still fire; Quit lives in the tray menu.
	mw.window.SetCloseIntercept(func() {
		mw.window.Hide()
	})

	return mw
}

func (mw *MainWindow) buildUI() {
	mw.clockText = canvas.NewText("--:--:--", nil)
	mw.clockText.TextSize = 64
	mw.clockText.Alignment = fyne.TextAlignCenter

	mw.statusLabel = widget.NewLabel("Alarm off")
	mw.statusLabel.Alignment = fyne.TextAlignCenter

	cfg := mw.db.snapshot(time.Now()).cfg

	mw.timeEntry = widget.NewEntry()
	mw.timeEntry.SetPlaceHolder("HH:MM")
	mw.timeEntry.SetText(cfg.Time)

	setButton := widget.NewButton("Set", func() {
		mw.submitTime(mw.timeEntry.Text)
	})
	mw.timeEntry.OnSubmitted = func(value string) {
		mw.submitTime(value)
	}

	mw.enabledCheck = widget.NewCheck("Alarm enabled", func(checked bool) {
		mw.db.setEnabled(checked)
	})
	mw.enabledCheck.SetChecked(cfg.Enabled)

	presetRow := container.NewHBox()
	for _, preset := range presetTimes {
		preset := preset
		presetRow.Add(widget.NewButton(preset, func() {
			mw.timeEntry.SetText(preset)
			mw.submitTime(preset)
		}))
	}

	settingsButton := widget.NewButton("Settings", func() {
		showSettingsDialog(mw.db, mw.window)
	})

	content := container.NewVBox(
		container.NewPadded(mw.clockText),
		mw.statusLabel,
		widget.NewSeparator(),
		container.NewBorder(nil, nil, widget.NewLabel("Alarm time:"), setButton, mw.timeEntry),
		container.NewCenter(presetRow),
		container.NewCenter(mw.enabledCheck),
		widget.NewSeparator(),
		container.NewCenter(settingsButton),
	)

	mw.window.SetContent(container.NewPadded(content))
}

func (mw *MainWindow) submitTime(value string) {
	if err := mw.db.setAlarmTime(value); err != nil {
		dialog.ShowError(err, mw.window)
		return
	}
}

// Refresh redraws the clock face from a snapshot. Runs on the event thread.
func (mw *MainWindow) Refresh(s uiState) {
	mw.clockText.Text = s.now.Format("15:04:05")
	mw.clockText.Refresh()

	switch {
	case s.ringing:
		mw.statusLabel.SetText("Ringing")
	case s.hasRemaining:
		mw.statusLabel.SetText(s.remaining)
	default:
		mw.statusLabel.SetText("Alarm off")
	}

	if mw.enabledCheck.Checked != s.cfg.Enabled {
		mw.enabledCheck.SetChecked(s.cfg.Enabled)
	}
}

func (mw *MainWindow) Show() {
	mw.window.Show()
}
