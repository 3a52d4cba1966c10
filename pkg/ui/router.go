package ui

import (
	"fyne.io/fyne/v2"

	"github.com/borgmon/sticky-alarm/pkg/board"
	"github.com/borgmon/sticky-alarm/pkg/dragdrop"
)

// router turns absolute pointer positions into resolver events: it finds
// the surface under the pointer and converts to timeline content
// coordinates, which follow the scroll offset.
type router struct {
	board *board.Board

	content  fyne.CanvasObject // timeline content, origin of dragdrop.Point
	viewport fyne.CanvasObject // visible part of the timeline
	palette  *paletteView
	trash    fyne.CanvasObject

	locate    func(fyne.CanvasObject) fyne.Position
	onOutcome func(dragdrop.Outcome)

	last         dragdrop.Event
	overTimeline bool
}

func newRouter(b *board.Board) *router {
	return &router{
		board: b,
		locate: func(o fyne.CanvasObject) fyne.Position {
			return fyne.CurrentApp().Driver().AbsolutePositionForObject(o)
		},
	}
}

func (r *router) within(o fyne.CanvasObject, abs fyne.Position) bool {
	if o == nil || !o.Visible() {
		return false
	}
	origin := r.locate(o)
	size := o.Size()
	return abs.X >= origin.X && abs.X < origin.X+size.Width &&
		abs.Y >= origin.Y && abs.Y < origin.Y+size.Height
}

func (r *router) event(abs fyne.Position) dragdrop.Event {
	origin := r.locate(r.content)
	ev := dragdrop.Event{
		Pos: dragdrop.Point{X: float64(abs.X - origin.X), Y: float64(abs.Y - origin.Y)},
	}

	switch {
	case r.within(r.trash, abs):
		ev.Target = dragdrop.Trash
	case r.palette != nil && r.within(r.palette.box, abs):
		ev.Target = dragdrop.Palette
		ev.Index = r.palette.dropIndex(abs.Y - r.locate(r.palette.box).Y)
	case r.within(r.viewport, abs):
		ev.Target = dragdrop.Timeline
	}
	return ev
}

func (r *router) beginAlarm(id string, abs fyne.Position) {
	r.board.BeginAlarm(r.event(abs).Pos, id)
}

func (r *router) beginTemplate(index int, abs fyne.Position) {
	r.board.BeginTemplate(r.event(abs).Pos, index)
}

func (r *router) move(abs fyne.Position) {
	ev := r.event(abs)
	r.last = ev

	over := ev.Target == dragdrop.Timeline
	if r.overTimeline && !over {
		r.board.Leave()
	}
	r.overTimeline = over
	r.board.Move(ev)
}

func (r *router) end() {
	r.finish(r.board.End(r.last))
}

func (r *router) cancel() {
	r.overTimeline = false
	r.board.Cancel()
}

// tapAlarm and tapTemplate run a press and release at the same spot
func (r *router) tapAlarm(id string, abs fyne.Position) {
	ev := r.event(abs)
	r.board.BeginAlarm(ev.Pos, id)
	r.finish(r.board.End(ev))
}

func (r *router) tapTemplate(index int, abs fyne.Position) {
	ev := r.event(abs)
	r.board.BeginTemplate(ev.Pos, index)
	r.finish(r.board.End(ev))
}

func (r *router) finish(out dragdrop.Outcome) {
	r.overTimeline = false
	r.last = dragdrop.Event{}
	if r.onOutcome != nil {
		r.onOutcome(out)
	}
}
