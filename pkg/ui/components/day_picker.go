package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/borgmon/sticky-alarm/pkg/models"
)

// DayPicker is a row of weekday toggles that can be painted with one swipe.
// Pressing a day starts a paint, every other day the pointer crosses is
// reported once, releasing ends it.
type DayPicker struct {
	widget.BaseWidget

	OnBegin func(models.Weekday)
	OnEnter func(models.Weekday)
	OnEnd   func()

	days    []models.Weekday
	active  bool
	current models.Weekday
}

func NewDayPicker(days []models.Weekday) *DayPicker {
	p := &DayPicker{days: models.NormalizeDays(days)}
	p.ExtendBaseWidget(p)
	return p
}

// SetDays updates the highlighted days
func (p *DayPicker) SetDays(days []models.Weekday) {
	p.days = models.NormalizeDays(days)
	p.Refresh()
}

func (p *DayPicker) has(d models.Weekday) bool {
	for _, day := range p.days {
		if day == d {
			return true
		}
	}
	return false
}

// dayAt maps an x position to a weekday, clamped to the row
func (p *DayPicker) dayAt(x float32) models.Weekday {
	width := p.Size().Width / float32(len(models.AllWeekdays))
	if width <= 0 {
		return models.AllWeekdays[0]
	}
	i := int(x / width)
	i = max(0, min(i, len(models.AllWeekdays)-1))
	return models.AllWeekdays[i]
}

func (p *DayPicker) MouseDown(ev *desktop.MouseEvent) {
	p.begin(p.dayAt(ev.Position.X))
}

func (p *DayPicker) MouseUp(*desktop.MouseEvent) {
	p.end()
}

func (p *DayPicker) Dragged(ev *fyne.DragEvent) {
	day := p.dayAt(ev.Position.X)
	if !p.active {
		p.begin(day)
		return
	}
	if day == p.current {
		return
	}
	p.current = day
	if p.OnEnter != nil {
		p.OnEnter(day)
	}
}

func (p *DayPicker) DragEnd() {
	p.end()
}

func (p *DayPicker) begin(day models.Weekday) {
	p.active = true
	p.current = day
	if p.OnBegin != nil {
		p.OnBegin(day)
	}
}

func (p *DayPicker) end() {
	if !p.active {
		return
	}
	p.active = false
	if p.OnEnd != nil {
		p.OnEnd()
	}
}

func (p *DayPicker) CreateRenderer() fyne.WidgetRenderer {
	r := &dayPickerRenderer{picker: p}
	for _, d := range models.AllWeekdays {
		bg := canvas.NewRectangle(theme.Color(theme.ColorNameButton))
		bg.CornerRadius = theme.InputRadiusSize()
		label := canvas.NewText(string(d), theme.Color(theme.ColorNameForeground))
		label.Alignment = fyne.TextAlignCenter
		r.bgs = append(r.bgs, bg)
		r.labels = append(r.labels, label)
	}
	r.Refresh()
	return r
}

type dayPickerRenderer struct {
	picker *DayPicker
	bgs    []*canvas.Rectangle
	labels []*canvas.Text
}

func (r *dayPickerRenderer) Layout(size fyne.Size) {
	width := size.Width / float32(len(r.bgs))
	pad := theme.Padding() / 2
	for i := range r.bgs {
		pos := fyne.NewPos(float32(i)*width+pad, 0)
		cell := fyne.NewSize(width-2*pad, size.Height)
		r.bgs[i].Move(pos)
		r.bgs[i].Resize(cell)
		r.labels[i].Move(pos)
		r.labels[i].Resize(cell)
	}
}

func (r *dayPickerRenderer) MinSize() fyne.Size {
	label := r.labels[0].MinSize()
	return fyne.NewSize(float32(len(r.bgs))*(label.Width+theme.Padding()*3), label.Height+theme.Padding()*2)
}

func (r *dayPickerRenderer) Refresh() {
	for i, d := range models.AllWeekdays {
		if r.picker.has(d) {
			r.bgs[i].FillColor = theme.Color(theme.ColorNamePrimary)
			r.labels[i].Color = theme.Color(theme.ColorNameForegroundOnPrimary)
		} else {
			r.bgs[i].FillColor = theme.Color(theme.ColorNameButton)
			r.labels[i].Color = theme.Color(theme.ColorNameForeground)
		}
		r.bgs[i].Refresh()
		r.labels[i].Refresh()
	}
}

func (r *dayPickerRenderer) Objects() []fyne.CanvasObject {
	objects := make([]fyne.CanvasObject, 0, 2*len(r.bgs))
	for i := range r.bgs {
		objects = append(objects, r.bgs[i], r.labels[i])
	}
	return objects
}

func (r *dayPickerRenderer) Destroy() {}
