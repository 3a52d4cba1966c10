package components

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/borgmon/sticky-alarm/pkg/models"
)

// NoteSize is the size of a sticky note on the timeline and in the palette
var NoteSize = fyne.NewSize(150, 30)

// iconGlyphs maps the icon catalog to glyphs the default font can draw
var iconGlyphs = map[models.Icon]string{
	"Bed": "🛏", "Utensils": "🍴", "Pill": "💊", "BookOpen": "📖", "Flower2": "🌸",
	"GraduationCap": "🎓", "Brain": "🧠", "Languages": "🈂", "Dumbbell": "🏋",
	"PenTool": "✒", "Coffee": "☕", "Sun": "☀", "Moon": "🌙", "Briefcase": "💼",
	"Users": "👥", "Target": "🎯", "Bell": "🔔", "Heart": "❤", "SmilePlus": "☺",
	"Mic": "🎤", "Music2": "🎵", "Camera": "📷", "Laptop": "💻", "MapPin": "📍",
}

// IconGlyph returns the glyph for an icon name, or "" for unknown names
func IconGlyph(name string) string {
	icon, ok := models.LookupIcon(name)
	if !ok {
		return ""
	}
	return iconGlyphs[icon]
}

// Note draws a sticky note and reports taps and drags to its owner.
// Positions passed to the callbacks are absolute.
type Note struct {
	widget.BaseWidget

	Color   string
	Label   string
	Icon    string
	Caption string
	// Highlight marks the note being edited or ringing
	Highlight bool
	// Flash marks a freshly created note
	Flash bool

	OnTapped    func(abs fyne.Position)
	OnDragStart func(abs fyne.Position)
	OnDragged   func(abs fyne.Position)
	OnDragEnd   func()

	dragging bool
}

func NewNote(colorToken, label, icon, caption string) *Note {
	n := &Note{Color: colorToken, Label: label, Icon: icon, Caption: caption}
	n.ExtendBaseWidget(n)
	return n
}

// Text is what the note shows: icon, label and caption
func (n *Note) Text() string {
	text := n.Caption
	if n.Label != "" {
		if text != "" {
			text += "  "
		}
		text += n.Label
	}
	if glyph := IconGlyph(n.Icon); glyph != "" {
		text = glyph + " " + text
	}
	return text
}

func (n *Note) Tapped(ev *fyne.PointEvent) {
	if n.OnTapped != nil {
		n.OnTapped(ev.AbsolutePosition)
	}
}

func (n *Note) Dragged(ev *fyne.DragEvent) {
	if !n.dragging {
		n.dragging = true
		if n.OnDragStart != nil {
			start := ev.AbsolutePosition.Subtract(fyne.NewPos(ev.Dragged.DX, ev.Dragged.DY))
			n.OnDragStart(start)
		}
	}
	if n.OnDragged != nil {
		n.OnDragged(ev.AbsolutePosition)
	}
}

func (n *Note) DragEnd() {
	if !n.dragging {
		return
	}
	n.dragging = false
	if n.OnDragEnd != nil {
		n.OnDragEnd()
	}
}

func (n *Note) MinSize() fyne.Size {
	return NoteSize
}

func (n *Note) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(color.Transparent)
	bg.CornerRadius = 4
	bg.StrokeWidth = 1.5
	text := canvas.NewText("", color.Black)
	text.TextSize = theme.CaptionTextSize() + 1
	text.TextStyle = fyne.TextStyle{Bold: true}

	r := &noteRenderer{note: n, bg: bg, text: text}
	r.Refresh()
	return r
}

type noteRenderer struct {
	note *Note
	bg   *canvas.Rectangle
	text *canvas.Text
}

func (r *noteRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	textSize := r.text.MinSize()
	r.text.Move(fyne.NewPos(theme.Padding(), (size.Height-textSize.Height)/2))
	r.text.Resize(fyne.NewSize(size.Width-2*theme.Padding(), textSize.Height))
}

func (r *noteRenderer) MinSize() fyne.Size {
	return NoteSize
}

func (r *noteRenderer) Refresh() {
	colors := models.SwatchContrast(r.note.Color)
	r.bg.FillColor = colors.Fill
	r.bg.StrokeColor = colors.Border
	if r.note.Highlight {
		r.bg.StrokeColor = theme.Color(theme.ColorNamePrimary)
		r.bg.StrokeWidth = 3
	} else {
		r.bg.StrokeWidth = 1.5
	}
	if r.note.Flash {
		r.bg.StrokeColor = theme.Color(theme.ColorNameSuccess)
	}

	r.text.Text = r.note.Text()
	r.text.Color = colors.Text

	r.Layout(r.bg.Size())
	r.bg.Refresh()
	r.text.Refresh()
}

func (r *noteRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.bg, r.text}
}

func (r *noteRenderer) Destroy() {}
