package ui

import (
	"image/color"
	"math"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/borgmon/sticky-alarm/pkg/board"
	"github.com/borgmon/sticky-alarm/pkg/geometry"
	"github.com/borgmon/sticky-alarm/pkg/ui/components"
)

const (
	gutterWidth   = 64
	timelineWidth = 420
)

var nowColor = color.NRGBA{R: 0xef, G: 0x44, B: 0x44, A: 0xff}

// timeline draws the hour grid and the alarm notes. Its coordinates are
// the timeline content coordinates used by the resolver.
type timeline struct {
	widget.BaseWidget

	board  *board.Board
	router *router
	now    func() time.Time

	twelveHour bool
}

func newTimeline(b *board.Board, r *router) *timeline {
	t := &timeline{board: b, router: r, now: time.Now}
	t.ExtendBaseWidget(t)
	return t
}

func (t *timeline) MinSize() fyne.Size {
	return fyne.NewSize(timelineWidth, float32(t.board.Height()))
}

func (t *timeline) CreateRenderer() fyne.WidgetRenderer {
	r := &timelineRenderer{
		timeline:    t,
		notes:       map[string]*components.Note{},
		nowLine:     canvas.NewLine(nowColor),
		previewLine: canvas.NewLine(theme.Color(theme.ColorNamePrimary)),
		previewText: canvas.NewText("", theme.Color(theme.ColorNamePrimary)),
	}
	r.nowLine.StrokeWidth = 2
	r.previewLine.StrokeWidth = 2
	r.previewText.TextStyle = fyne.TextStyle{Bold: true}
	for h := 0; h <= 24; h++ {
		line := canvas.NewLine(theme.Color(theme.ColorNameSeparator))
		label := canvas.NewText("", theme.Color(theme.ColorNamePlaceHolder))
		label.TextSize = theme.CaptionTextSize()
		r.hourLines = append(r.hourLines, line)
		r.hourLabels = append(r.hourLabels, label)
	}
	r.Refresh()
	return r
}

type timelineRenderer struct {
	timeline *timeline

	hourLines  []*canvas.Line
	hourLabels []*canvas.Text

	notes   map[string]*components.Note
	ordered []*components.Note
	pos     map[*components.Note]fyne.Position

	nowLine     *canvas.Line
	previewLine *canvas.Line
	previewText *canvas.Text

	objects []fyne.CanvasObject
}

func (r *timelineRenderer) Layout(fyne.Size) {
	for n, p := range r.pos {
		n.Move(p)
		n.Resize(components.NoteSize)
	}
}

func (r *timelineRenderer) MinSize() fyne.Size {
	return r.timeline.MinSize()
}

func (r *timelineRenderer) Refresh() {
	t := r.timeline
	b := t.board
	width := float32(math.Max(float64(t.Size().Width), timelineWidth))

	for h, line := range r.hourLines {
		y := float32(b.Geometry(float64(h * 60)))
		line.Position1 = fyne.NewPos(gutterWidth-8, y)
		line.Position2 = fyne.NewPos(width, y)
		line.Refresh()

		label := r.hourLabels[h]
		label.Text = geometry.FormatClock(h*60, t.twelveHour)
		label.Move(fyne.NewPos(4, y-label.MinSize().Height/2))
		label.Refresh()
	}

	now := t.now()
	nowY := float32(b.Geometry(minutesNow(now)))
	r.nowLine.Position1 = fyne.NewPos(gutterWidth-8, nowY)
	r.nowLine.Position2 = fyne.NewPos(width, nowY)
	r.nowLine.Refresh()

	r.refreshNotes()
	r.refreshPreview(width)

	r.objects = r.objects[:0]
	for i := range r.hourLines {
		r.objects = append(r.objects, r.hourLines[i], r.hourLabels[i])
	}
	r.objects = append(r.objects, r.nowLine)
	for _, n := range r.ordered {
		r.objects = append(r.objects, n)
	}
	r.objects = append(r.objects, r.previewLine, r.previewText)

	r.Layout(t.Size())
}

// refreshNotes reuses note widgets by alarm id so a note being dragged
// keeps receiving its drag events
func (r *timelineRenderer) refreshNotes() {
	t := r.timeline
	b := t.board
	editing := b.Resolver().Editing()
	ringing, isRinging := b.Ringing()

	placements := b.Layout()
	seen := make(map[string]bool, len(placements))
	r.ordered = r.ordered[:0]
	r.pos = make(map[*components.Note]fyne.Position, len(placements))

	for _, p := range placements {
		a := p.Alarm
		seen[a.ID] = true

		n, ok := r.notes[a.ID]
		if !ok {
			n = components.NewNote("", "", "", "")
			r.bind(n, a.ID)
			r.notes[a.ID] = n
		}
		n.Color = a.Color
		n.Label = a.Text
		n.Icon = a.Icon
		n.Caption = geometry.FormatClock(a.Time, t.twelveHour)
		n.Highlight = a.ID == editing || (isRinging && a.ID == ringing.ID)
		n.Flash = a.IsNew
		n.Refresh()

		r.pos[n] = fyne.NewPos(
			gutterWidth+float32(p.Indent),
			float32(p.Y)-components.NoteSize.Height/2,
		)
		r.ordered = append(r.ordered, n)
	}

	for id := range r.notes {
		if !seen[id] {
			delete(r.notes, id)
		}
	}
}

func (r *timelineRenderer) bind(n *components.Note, id string) {
	rt := r.timeline.router
	n.OnTapped = func(abs fyne.Position) { rt.tapAlarm(id, abs) }
	n.OnDragStart = func(abs fyne.Position) { rt.beginAlarm(id, abs) }
	n.OnDragged = rt.move
	n.OnDragEnd = rt.end
}

func (r *timelineRenderer) refreshPreview(width float32) {
	t := r.timeline
	p := t.board.Resolver().Preview()
	if !p.Active {
		r.previewLine.Hide()
		r.previewText.Hide()
		return
	}

	y := float32(t.board.Geometry(p.Minutes))
	r.previewLine.Position1 = fyne.NewPos(gutterWidth-8, y)
	r.previewLine.Position2 = fyne.NewPos(width, y)
	r.previewText.Text = geometry.FormatClock(int(math.Round(p.Minutes)), t.twelveHour)
	r.previewText.Move(fyne.NewPos(width-r.previewText.MinSize().Width-4, y-r.previewText.MinSize().Height))
	r.previewLine.Show()
	r.previewText.Show()
	r.previewLine.Refresh()
	r.previewText.Refresh()
}

func (r *timelineRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *timelineRenderer) Destroy() {}

// minutesNow is the current minute of the day
func minutesNow(now time.Time) float64 {
	return float64(now.Hour()*60 + now.Minute())
}
