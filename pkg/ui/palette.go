package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"

	"github.com/borgmon/sticky-alarm/pkg/dragdrop"
	"github.com/borgmon/sticky-alarm/pkg/models"
	"github.com/borgmon/sticky-alarm/pkg/ui/components"
)

// paletteView is the column of templates new alarms are dragged from
type paletteView struct {
	box    *fyne.Container
	router *router
	notes  []*components.Note
}

func newPaletteView(r *router) *paletteView {
	return &paletteView{box: container.NewVBox(), router: r}
}

func (p *paletteView) set(palette []models.PaletteNote) {
	p.notes = p.notes[:0]
	objects := make([]fyne.CanvasObject, 0, len(palette))
	for i, tpl := range palette {
		n := components.NewNote(tpl.Color, tpl.Label, tpl.Icon, "")
		if tpl.Label == "" && tpl.Icon == "" {
			n.Caption = fmt.Sprintf("#%d", i+1)
		}
		index := i
		n.OnTapped = func(abs fyne.Position) { p.router.tapTemplate(index, abs) }
		n.OnDragStart = func(abs fyne.Position) { p.router.beginTemplate(index, abs) }
		n.OnDragged = p.router.move
		n.OnDragEnd = p.router.end

		p.notes = append(p.notes, n)
		objects = append(objects, n)
	}
	p.box.Objects = objects
	p.box.Refresh()
}

// dropIndex maps a y inside the column to an insertion index
func (p *paletteView) dropIndex(y float32) int {
	tops := make([]float64, len(p.notes))
	for i, n := range p.notes {
		tops[i] = float64(n.Position().Y)
	}
	return dragdrop.PaletteDropIndex(float64(y), tops, float64(components.NoteSize.Height))
}
