package ui

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/borgmon/sticky-alarm/pkg/dragdrop"
	"github.com/borgmon/sticky-alarm/pkg/geometry"
	"github.com/borgmon/sticky-alarm/pkg/platform"
	"github.com/borgmon/sticky-alarm/pkg/scheduler"
)

const flashDuration = 1500 * time.Millisecond

type mainWindow struct {
	app    *App
	window fyne.Window

	router   *router
	timeline *timeline
	scroll   *container.Scroll
	palette  *paletteView

	clockLabel *widget.Label
	zoomButton *widget.Button
	trash      *widget.Button
	editor     *editor
}

func newMainWindow(u *App) *mainWindow {
	mw := &mainWindow{app: u}
	mw.window = u.fyne.NewWindow("Sticky Alarm")

	mw.router = newRouter(u.board)
	mw.router.onOutcome = mw.handleOutcome
	mw.timeline = newTimeline(u.board, mw.router)
	mw.timeline.twelveHour = u.cfg.TwelveHour
	mw.scroll = container.NewVScroll(mw.timeline)
	mw.palette = newPaletteView(mw.router)

	mw.router.content = mw.timeline
	mw.router.viewport = mw.scroll
	mw.router.palette = mw.palette

	mw.buildUI()
	mw.refresh()

	// Keep the now line moving
	scheduler.SystemClock{}.Every(30*time.Second, func() {
		fyne.Do(mw.tick)
	})

	return mw
}

func (mw *mainWindow) buildUI() {
	mw.clockLabel = widget.NewLabel("")
	mw.clockLabel.TextStyle = fyne.TextStyle{Bold: true}

	mw.zoomButton = widget.NewButtonWithIcon("", theme.ZoomInIcon(), mw.toggleZoom)
	settingsButton := widget.NewButtonWithIcon("", theme.SettingsIcon(), mw.app.showSettings)

	mw.trash = widget.NewButtonWithIcon("Trash", theme.DeleteIcon(), mw.toggleDeleteMode)
	mw.router.trash = mw.trash

	toolbar := container.NewBorder(nil, nil,
		mw.clockLabel,
		container.NewHBox(mw.zoomButton, settingsButton),
	)

	side := container.NewBorder(
		widget.NewLabelWithStyle("Notes", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		mw.trash,
		nil, nil,
		container.NewVScroll(mw.palette.box),
	)

	content := container.NewBorder(
		container.NewPadded(toolbar),
		nil,
		nil,
		container.NewPadded(side),
		mw.scroll,
	)

	mw.window.SetContent(content)
	mw.window.Resize(fyne.NewSize(680, 760))
	mw.window.CenterOnScreen()

	mw.setupKeyboardShortcuts()

	// Closing the board keeps the app in the tray
	mw.window.SetCloseIntercept(func() {
		mw.router.cancel()
		mw.window.Hide()
		platform.SetDockVisible(false)
	})
}

func (mw *mainWindow) setupKeyboardShortcuts() {
	c := mw.window.Canvas()
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) {
		mw.toggleZoom()
	})
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyEqual, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) {
		mw.pinch(1.5)
	})
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyMinus, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) {
		mw.pinch(0.5)
	})
	c.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name != fyne.KeyEscape {
			return
		}
		mw.router.cancel()
		if mw.editor != nil {
			mw.editor.close()
		}
		if mw.app.board.Resolver().DeleteMode() {
			mw.toggleDeleteMode()
		}
	})
}

func (mw *mainWindow) Show() {
	mw.window.Show()
	mw.window.RequestFocus()
	platform.SetDockVisible(true)
	mw.scrollTo(minutesNow(time.Now()))
}

func (mw *mainWindow) refresh() {
	mw.palette.set(mw.app.board.Palette())
	mw.timeline.Refresh()
	if mw.editor != nil {
		mw.editor.refresh()
	}
	mw.tick()
}

func (mw *mainWindow) tick() {
	mw.clockLabel.SetText(geometry.FormatClock(int(minutesNow(time.Now())), mw.timeline.twelveHour))
	mw.timeline.Refresh()
}

// anchor is the minute at the center of the viewport
func (mw *mainWindow) anchor() (minutes, viewport float64) {
	viewport = float64(mw.scroll.Size().Height)
	offset := float64(mw.scroll.Offset.Y) + viewport/2
	return mw.app.board.MinutesAt(offset, false), viewport
}

func (mw *mainWindow) scrollTo(minutes float64) {
	viewport := float64(mw.scroll.Size().Height)
	target := geometry.ScrollTarget(minutes, mw.app.board.Zoom(), viewport)
	mw.setScroll(target)
}

func (mw *mainWindow) setScroll(y float64) {
	mw.scroll.Offset = fyne.NewPos(0, float32(y))
	mw.scroll.Refresh()
}

func (mw *mainWindow) toggleZoom() {
	anchor, viewport := mw.anchor()
	z, target := mw.app.board.ToggleZoom(anchor, viewport)
	mw.applyZoom(z, target)
}

// pinch takes keyboard zoom as a two finger scale ratio
func (mw *mainWindow) pinch(ratio float64) {
	anchor, viewport := mw.anchor()
	z, target, changed := mw.app.board.Pinch(ratio, anchor, viewport)
	if changed {
		mw.applyZoom(z, target)
	}
}

func (mw *mainWindow) applyZoom(z geometry.Zoom, target float64) {
	if z == geometry.Expanded {
		mw.zoomButton.SetIcon(theme.ZoomOutIcon())
	} else {
		mw.zoomButton.SetIcon(theme.ZoomInIcon())
	}
	mw.timeline.Refresh()
	mw.scroll.Refresh()
	mw.setScroll(target)
}

func (mw *mainWindow) toggleDeleteMode() {
	r := mw.app.board.Resolver()
	on := !r.DeleteMode()
	r.SetDeleteMode(on)

	if on {
		mw.trash.Importance = widget.DangerImportance
		mw.trash.SetText("Done")
		if mw.editor != nil {
			mw.editor.close()
		}
	} else {
		mw.trash.Importance = widget.MediumImportance
		mw.trash.SetText("Trash")
	}
	mw.trash.Refresh()
	mw.timeline.Refresh()
}

func (mw *mainWindow) handleOutcome(out dragdrop.Outcome) {
	st := mw.app.board.Store()

	switch out.Action {
	case dragdrop.EditorOpened:
		mw.openEditor(out.AlarmID)
	case dragdrop.EditorClosed:
		if mw.editor != nil {
			mw.editor.close()
		}
	case dragdrop.Deleted:
		if mw.editor != nil && mw.editor.id == out.AlarmID {
			mw.editor.close()
		}
	case dragdrop.Created:
		id := out.AlarmID
		time.AfterFunc(flashDuration, func() {
			if a, ok := st.Alarm(id); ok && a.IsNew {
				a.IsNew = false
				st.UpdateAlarm(a)
			}
		})
	}
	mw.timeline.Refresh()
}

func (mw *mainWindow) openEditor(id string) {
	if mw.editor != nil {
		mw.editor.close()
	}

	var ed *editor
	ed = newEditor(mw.app, mw.window, id, func() {
		if mw.editor == ed {
			mw.editor = nil
		}
		if r := mw.app.board.Resolver(); r.Editing() == id {
			r.CloseEditor()
		}
		mw.timeline.Refresh()
	})
	if ed == nil {
		return
	}
	mw.editor = ed
	ed.show()
}

func (mw *mainWindow) setTwelveHour(on bool) {
	mw.timeline.twelveHour = on
	mw.refresh()
}
