package components

import (
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const holdTick = 50 * time.Millisecond

// HoldButton fires OnComplete only after being held down for Hold. Letting
// go or leaving the button early resets the progress bar.
type HoldButton struct {
	widget.BaseWidget
	Text       string
	Hold       time.Duration
	OnComplete func()

	mu       sync.Mutex
	holding  bool
	hovered  bool
	done     bool
	progress float64
	stop     chan struct{}
}

// NewHoldButton creates a new HoldButton
func NewHoldButton(text string, hold time.Duration, onComplete func()) *HoldButton {
	b := &HoldButton{
		Text:       text,
		Hold:       hold,
		OnComplete: onComplete,
	}
	b.ExtendBaseWidget(b)
	return b
}

// CreateRenderer implements fyne.Widget
func (b *HoldButton) CreateRenderer() fyne.WidgetRenderer {
	text := canvas.NewText(b.Text, theme.Color(theme.ColorNameForeground))
	text.Alignment = fyne.TextAlignCenter
	text.TextSize = theme.TextSubHeadingSize()

	bg := canvas.NewRectangle(theme.Color(theme.ColorNameButton))
	bg.CornerRadius = theme.InputRadiusSize()
	progressBar := canvas.NewRectangle(theme.Color(theme.ColorNamePrimary))
	progressBar.CornerRadius = theme.InputRadiusSize()

	return &holdButtonRenderer{
		button:      b,
		text:        text,
		bg:          bg,
		progressBar: progressBar,
	}
}

// Progress returns how far the current hold is, from 0 to 1
func (b *HoldButton) Progress() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.progress
}

func (b *HoldButton) setProgress(p float64) {
	b.mu.Lock()
	b.progress = p
	b.mu.Unlock()
	fyne.Do(b.Refresh)
}

// Tapped completes immediately when no hold time is configured
func (b *HoldButton) Tapped(*fyne.PointEvent) {
	if b.Hold <= 0 {
		b.complete()
	}
}

// MouseIn implements desktop.Hoverable
func (b *HoldButton) MouseIn(*desktop.MouseEvent) {
	b.mu.Lock()
	b.hovered = true
	b.mu.Unlock()
	b.Refresh()
}

// MouseMoved implements desktop.Hoverable
func (b *HoldButton) MouseMoved(*desktop.MouseEvent) {}

// MouseOut implements desktop.Hoverable
func (b *HoldButton) MouseOut() {
	b.mu.Lock()
	b.hovered = false
	b.mu.Unlock()
	b.release()
	b.Refresh()
}

// MouseDown implements desktop.Mouseable
func (b *HoldButton) MouseDown(*desktop.MouseEvent) {
	if b.Hold <= 0 {
		return
	}

	b.mu.Lock()
	if b.holding || b.done {
		b.mu.Unlock()
		return
	}
	b.holding = true
	b.progress = 0
	stop := make(chan struct{})
	b.stop = stop
	b.mu.Unlock()

	go b.track(time.Now(), stop)
}

// MouseUp implements desktop.Mouseable
func (b *HoldButton) MouseUp(*desktop.MouseEvent) {
	b.release()
}

func (b *HoldButton) release() {
	b.mu.Lock()
	if !b.holding {
		b.mu.Unlock()
		return
	}
	b.holding = false
	close(b.stop)
	b.stop = nil
	b.mu.Unlock()

	b.setProgress(0)
}

func (b *HoldButton) track(start time.Time, stop chan struct{}) {
	ticker := time.NewTicker(holdTick)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			p := float64(time.Since(start)) / float64(b.Hold)
			if p < 1 {
				b.setProgress(p)
				continue
			}

			b.mu.Lock()
			if !b.holding {
				b.mu.Unlock()
				return
			}
			b.holding = false
			b.stop = nil
			b.mu.Unlock()

			b.setProgress(1)
			b.complete()
			return
		}
	}
}

func (b *HoldButton) complete() {
	b.mu.Lock()
	if b.done {
		b.mu.Unlock()
		return
	}
	b.done = true
	b.mu.Unlock()

	if b.OnComplete != nil {
		b.OnComplete()
	}
}

type holdButtonRenderer struct {
	button      *HoldButton
	text        *canvas.Text
	bg          *canvas.Rectangle
	progressBar *canvas.Rectangle
}

func (r *holdButtonRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.text.Resize(size)

	// fills from left to right
	r.progressBar.Resize(fyne.NewSize(size.Width*float32(r.button.Progress()), size.Height))
	r.progressBar.Move(fyne.NewPos(0, 0))
}

func (r *holdButtonRenderer) MinSize() fyne.Size {
	textSize := r.text.MinSize()
	return fyne.NewSize(
		max(textSize.Width+theme.Padding()*4, 300),
		max(textSize.Height+theme.Padding()*2, 80),
	)
}

func (r *holdButtonRenderer) Refresh() {
	r.text.Text = r.button.Text
	r.text.Color = theme.Color(theme.ColorNameForeground)

	r.button.mu.Lock()
	hovered := r.button.hovered
	r.button.mu.Unlock()
	if hovered {
		r.bg.FillColor = theme.Color(theme.ColorNameHover)
	} else {
		r.bg.FillColor = theme.Color(theme.ColorNameButton)
	}

	r.Layout(r.bg.Size())

	r.bg.Refresh()
	r.progressBar.Refresh()
	r.text.Refresh()
}

func (r *holdButtonRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.bg, r.progressBar, r.text}
}

func (r *holdButtonRenderer) Destroy() {}

func (r *holdButtonRenderer) BackgroundColor() color.Color {
	return theme.Color(theme.ColorNameButton)
}
