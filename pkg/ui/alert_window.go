package ui

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"golang.design/x/hotkey"

	"github.com/borgmon/sticky-alarm/pkg/geometry"
	"github.com/borgmon/sticky-alarm/pkg/logger"
	"github.com/borgmon/sticky-alarm/pkg/models"
	"github.com/borgmon/sticky-alarm/pkg/platform"
	"github.com/borgmon/sticky-alarm/pkg/ui/components"
)

const focusCheckInterval = 500 * time.Millisecond

// alertWindow covers the screen while an alarm rings. It can only be
// dismissed with the hold button; the quit shortcut is swallowed while it
// has focus.
type alertWindow struct {
	window fyne.Window
	alarm  models.Alarm
	log    *slog.Logger

	mu             sync.Mutex
	quitHotkey     *hotkey.Hotkey
	stopMonitoring chan struct{}
	closed         bool
}

func newAlertWindow(u *App, alarm models.Alarm) *alertWindow {
	aw := &alertWindow{
		alarm:          alarm,
		log:            u.log.With(slog.String("component", "alert_window")),
		stopMonitoring: make(chan struct{}),
	}

	aw.window = u.fyne.NewWindow("Alarm")
	aw.window.SetFullScreen(true)
	aw.buildUI(u)

	// Only the hold button closes the alert
	aw.window.SetCloseIntercept(func() {})

	aw.window.SetOnClosed(func() {
		aw.mu.Lock()
		aw.closed = true
		close(aw.stopMonitoring)
		hk := aw.quitHotkey
		aw.quitHotkey = nil
		aw.mu.Unlock()

		if hk != nil {
			_ = hk.Unregister()
		}
	})

	aw.registerQuitPrevention()
	aw.setupFocusMonitoring()

	return aw
}

func (aw *alertWindow) buildUI(u *App) {
	label := aw.alarm.Text
	if label == "" {
		label = "Alarm"
	}
	if glyph := components.IconGlyph(aw.alarm.Icon); glyph != "" {
		label = glyph + " " + label
	}

	title := canvas.NewText(label, nil)
	title.TextSize = 32
	title.Alignment = fyne.TextAlignCenter

	clock := canvas.NewText(geometry.FormatClock(aw.alarm.Time, u.cfg.TwelveHour), nil)
	clock.TextSize = 64
	clock.TextStyle = fyne.TextStyle{Bold: true}
	clock.Alignment = fyne.TextAlignCenter

	repeat := widget.NewLabel(aw.alarm.RepeatSummary())
	repeat.Alignment = fyne.TextAlignCenter

	hold := time.Duration(u.cfg.HoldTimeSeconds) * time.Second
	text := "Dismiss"
	if hold > 0 {
		text = fmt.Sprintf("Dismiss (Hold %ds)", u.cfg.HoldTimeSeconds)
	}
	dismiss := components.NewHoldButton(text, hold, func() {
		// Closing follows from the scheduler's ringing=false notification
		u.board.Dismiss()
	})

	content := container.NewVBox(
		container.NewPadded(clock),
		container.NewPadded(title),
		repeat,
		widget.NewSeparator(),
		container.NewCenter(dismiss),
	)

	aw.window.SetContent(container.NewPadded(container.NewCenter(content)))
}

func (aw *alertWindow) Show() {
	aw.window.Show()
	aw.window.RequestFocus()
}

func (aw *alertWindow) Close() {
	aw.mu.Lock()
	closed := aw.closed
	aw.mu.Unlock()
	if !closed {
		aw.window.Close()
	}
}

func (aw *alertWindow) registerQuitPrevention() {
	go func() {
		hk := hotkey.New(quitModifiers, hotkey.KeyQ)
		if err := hk.Register(); err != nil {
			aw.log.Warn("registering quit shortcut guard", logger.Err(err))
			return
		}

		aw.mu.Lock()
		if aw.closed {
			aw.mu.Unlock()
			_ = hk.Unregister()
			return
		}
		aw.quitHotkey = hk
		aw.mu.Unlock()

		// Consume quit presses so the app keeps running
		for range hk.Keydown() {
			aw.log.Info("quit blocked, hold the dismiss button instead")
		}
	}()
}

func (aw *alertWindow) setupFocusMonitoring() {
	go func() {
		ticker := time.NewTicker(focusCheckInterval)
		defer ticker.Stop()

		wasFocused := true
		for {
			select {
			case <-aw.stopMonitoring:
				return
			case <-ticker.C:
				isFocused := platform.IsAppActive()

				if wasFocused && !isFocused {
					// Another app has focus, the shortcut belongs to it
					aw.mu.Lock()
					hk := aw.quitHotkey
					aw.quitHotkey = nil
					aw.mu.Unlock()
					if hk != nil {
						_ = hk.Unregister()
					}
				} else if !wasFocused && isFocused {
					aw.registerQuitPrevention()
				}

				if !isFocused {
					aw.log.Debug("alert window not active, bringing to front")
					platform.ActivateApp()
					fyne.Do(func() {
						aw.mu.Lock()
						closed := aw.closed
						aw.mu.Unlock()
						if !closed {
							aw.window.Show()
						}
					})
				}

				wasFocused = isFocused
			}
		}
	}()
}

// showAlert opens the alert for a newly ringing alarm
func (u *App) showAlert(a models.Alarm) {
	u.closeAlert()
	u.alert = newAlertWindow(u, a)
	u.alert.Show()
}

func (u *App) closeAlert() {
	if u.alert == nil {
		return
	}
	u.alert.Close()
	u.alert = nil
}
