package ui

import (
	"fmt"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/borgmon/sticky-alarm/pkg/geometry"
	"github.com/borgmon/sticky-alarm/pkg/logger"
	"github.com/borgmon/sticky-alarm/pkg/models"
	"github.com/borgmon/sticky-alarm/pkg/store"
	"github.com/borgmon/sticky-alarm/pkg/ui/components"
)

const (
	noIcon         = "None"
	previewLength  = 3 * time.Second
	maxLabelLength = 40
)

// editor is the dialog opened by tapping a note. Every change is written to
// the store as it happens.
type editor struct {
	app *App
	id  string

	dialog   dialog.Dialog
	timeText *widget.Label
	label    *widget.Entry
	days     *components.DayPicker
	swatches []*components.Swatch
	icon     *widget.Select
	ringtone *widget.Select
	repeat   *widget.Label

	paint *store.DayPaint
}

// newEditor returns nil when the alarm no longer exists
func newEditor(u *App, parent fyne.Window, id string, onClosed func()) *editor {
	a, ok := u.board.Store().Alarm(id)
	if !ok {
		return nil
	}

	e := &editor{app: u, id: id}
	st := u.board.Store()

	e.timeText = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	e.repeat = widget.NewLabel("")

	e.label = widget.NewEntry()
	e.label.SetPlaceHolder("Label")
	e.label.SetText(a.Text)
	e.label.Validator = func(s string) error {
		if len([]rune(s)) > maxLabelLength {
			return fmt.Errorf("at most %d characters", maxLabelLength)
		}
		return nil
	}
	e.label.OnChanged = func(s string) {
		if e.label.Validate() != nil {
			return
		}
		e.update(func(a *models.Alarm) { a.Text = strings.TrimSpace(s) })
	}

	e.days = components.NewDayPicker(a.RepeatDays)
	e.days.OnBegin = func(d models.Weekday) { e.paint = st.BeginDayPaint(id, d) }
	e.days.OnEnter = func(d models.Weekday) {
		if e.paint != nil {
			e.paint.Enter(d)
		}
	}
	e.days.OnEnd = func() {
		if e.paint != nil {
			e.paint.End()
			e.paint = nil
		}
	}

	swatchRow := container.NewGridWrap(fyne.NewSize(30, 30))
	for _, s := range models.Swatches {
		sw := components.NewSwatch(s.Hex, func(hex string) {
			st.BeginColorPaint(id, hex).End()
		})
		e.swatches = append(e.swatches, sw)
		swatchRow.Add(sw)
	}

	icons := []string{noIcon}
	for _, i := range models.Icons {
		icons = append(icons, components.IconGlyph(string(i))+" "+string(i))
	}
	e.icon = widget.NewSelect(icons, func(choice string) {
		name := ""
		if choice != noIcon {
			_, name, _ = strings.Cut(choice, " ")
		}
		e.update(func(a *models.Alarm) { a.Icon = name })
	})

	ringtones := make([]string, len(models.Ringtones))
	for i, r := range models.Ringtones {
		ringtones[i] = r.Name
	}
	e.ringtone = widget.NewSelect(ringtones, func(name string) {
		e.update(func(a *models.Alarm) { a.Ringtone = name })
	})
	previewButton := widget.NewButtonWithIcon("", theme.MediaPlayIcon(), func() {
		e.preview(e.ringtone.Selected)
	})

	deleteButton := widget.NewButtonWithIcon("Delete", theme.DeleteIcon(), func() {
		st.DeleteAlarm(id)
		e.close()
	})
	deleteButton.Importance = widget.DangerImportance

	form := widget.NewForm(
		widget.NewFormItem("Label", e.label),
		widget.NewFormItem("Repeat", container.NewVBox(e.days, e.repeat)),
		widget.NewFormItem("Color", swatchRow),
		widget.NewFormItem("Icon", e.icon),
		widget.NewFormItem("Ringtone", container.NewBorder(nil, nil, nil, previewButton, e.ringtone)),
	)

	content := container.NewBorder(
		e.timeText,
		container.NewHBox(deleteButton),
		nil, nil,
		form,
	)

	e.dialog = dialog.NewCustom("Edit alarm", "Done", content, parent)
	e.dialog.SetOnClosed(onClosed)
	e.dialog.Resize(fyne.NewSize(520, 420))
	e.refresh()
	return e
}

func (e *editor) show() {
	e.dialog.Show()
}

func (e *editor) close() {
	e.dialog.Hide()
}

// update applies fn to the stored alarm, skipping writes that change nothing
func (e *editor) update(fn func(*models.Alarm)) {
	st := e.app.board.Store()
	a, ok := st.Alarm(e.id)
	if !ok {
		return
	}
	before := a.Clone()
	fn(&a)
	if a.Text == before.Text && a.Icon == before.Icon && a.Ringtone == before.Ringtone {
		return
	}
	st.UpdateAlarm(a)
}

// refresh pulls the alarm back from the store
func (e *editor) refresh() {
	a, ok := e.app.board.Store().Alarm(e.id)
	if !ok {
		e.close()
		return
	}

	twelveHour := e.app.main != nil && e.app.main.timeline.twelveHour
	e.timeText.SetText(geometry.FormatClock(a.Time, twelveHour))
	e.repeat.SetText(a.RepeatSummary())
	e.days.SetDays(a.RepeatDays)

	if e.label.Text != a.Text && !e.app.isFocused(e.label) {
		e.label.SetText(a.Text)
	}

	current, _ := models.LookupColor(a.Color)
	for _, sw := range e.swatches {
		sw.Selected = strings.EqualFold(sw.Hex, current.Hex)
		sw.Refresh()
	}

	icon := noIcon
	if glyph := components.IconGlyph(a.Icon); glyph != "" {
		icon = glyph + " " + a.Icon
	}
	if e.icon.Selected != icon {
		e.icon.SetSelected(icon)
	}
	if e.ringtone.Selected != a.Ringtone {
		e.ringtone.SetSelected(a.Ringtone)
	}
}

func (e *editor) preview(ringtone string) {
	engine := e.app.engine
	if engine == nil || ringtone == "" {
		return
	}
	if _, ringing := e.app.board.Ringing(); ringing {
		return
	}
	if err := engine.Preview(ringtone); err != nil {
		e.app.log.Warn("ringtone preview", logger.Err(err))
		return
	}
	time.AfterFunc(previewLength, func() {
		if _, ringing := e.app.board.Ringing(); !ringing {
			_ = engine.Stop()
		}
	})
}
