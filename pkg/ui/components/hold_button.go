// Package components holds reusable Fyne widgets.
package components

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// HoldButton is a button that must be held down to confirm an action. A
// progress fill gives feedback while holding; releasing or leaving the
// button cancels.
type HoldButton struct {
	widget.BaseWidget
	Text        string
	OnHoldStart func()
	OnHoldEnd   func()

	holding  bool
	hovered  bool
	progress float64
}

// NewHoldButton creates a hold button. onHoldStart fires when the pointer
// goes down, onHoldEnd when the hold is released or cancelled.
func NewHoldButton(text string, onHoldStart, onHoldEnd func()) *HoldButton {
	b := &HoldButton{
		Text:        text,
		OnHoldStart: onHoldStart,
		OnHoldEnd:   onHoldEnd,
	}
	b.ExtendBaseWidget(b)
	return b
}

// SetProgress updates the hold progress fill, 0 to 1.
func (b *HoldButton) SetProgress(progress float64) {
	b.progress = progress
	b.Refresh()
}

func (b *HoldButton) CreateRenderer() fyne.WidgetRenderer {
	text := canvas.NewText(b.Text, theme.ForegroundColor())
	text.Alignment = fyne.TextAlignCenter

	return &holdButtonRenderer{
		button:   b,
		text:     text,
		bg:       canvas.NewRectangle(theme.ButtonColor()),
		progress: canvas.NewRectangle(theme.PrimaryColor()),
	}
}

// Tapped fires on release; hold behavior is driven by MouseDown/MouseUp.
func (b *HoldButton) Tapped(*fyne.PointEvent) {}

func (b *HoldButton) TappedSecondary(*fyne.PointEvent) {}

func (b *HoldButton) MouseIn(*desktop.MouseEvent) {
	b.hovered = true
	b.Refresh()
}

func (b *HoldButton) MouseMoved(*desktop.MouseEvent) {}

func (b *HoldButton) MouseOut() {
	b.hovered = false
	// Leaving the button cancels an in-progress hold.
	if b.holding {
		b.holding = false
		if b.OnHoldEnd != nil {
			b.OnHoldEnd()
		}
	}
	b.Refresh()
}

func (b *HoldButton) MouseDown(*desktop.MouseEvent) {
	if b.holding {
		return
	}
	b.holding = true
	b.Refresh()
	if b.OnHoldStart != nil {
		b.OnHoldStart()
	}
}

func (b *HoldButton) MouseUp(*desktop.MouseEvent) {
	if !b.holding {
		return
	}
	b.holding = false
	b.Refresh()
	if b.OnHoldEnd != nil {
		b.OnHoldEnd()
	}
}

type holdButtonRenderer struct {
	button   *HoldButton
	text     *canvas.Text
	bg       *canvas.Rectangle
	progress *canvas.Rectangle
}

func (r *holdButtonRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.text.Resize(size)

	// Progress fills from the left edge.
	r.progress.Resize(fyne.NewSize(size.Width*float32(r.button.progress), size.Height))
	r.progress.Move(fyne.NewPos(0, 0))
}

func (r *holdButtonRenderer) MinSize() fyne.Size {
	textSize := r.text.MinSize()
	return fyne.NewSize(
		fyne.Max(textSize.Width+theme.Padding()*4, 240),
		fyne.Max(textSize.Height+theme.Padding()*2, 64),
	)
}

func (r *holdButtonRenderer) Refresh() {
	r.text.Text = r.button.Text
	r.text.Color = theme.ForegroundColor()

	if r.button.hovered {
		r.bg.FillColor = theme.HoverColor()
	} else {
		r.bg.FillColor = theme.ButtonColor()
	}

	size := r.bg.Size()
	r.progress.Resize(fyne.NewSize(size.Width*float32(r.button.progress), size.Height))

	r.bg.Refresh()
	r.progress.Refresh()
	r.text.Refresh()
}

func (r *holdButtonRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.bg, r.progress, r.text}
}

func (r *holdButtonRenderer) Destroy() {}

func (r *holdButtonRenderer) BackgroundColor() color.Color {
	return theme.ButtonColor()
}
