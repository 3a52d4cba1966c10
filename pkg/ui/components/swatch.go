package components

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/borgmon/sticky-alarm/pkg/models"
)

var swatchSize = fyne.NewSize(26, 26)

// Swatch is a tappable color chip
type Swatch struct {
	widget.BaseWidget

	Hex      string
	Selected bool
	OnTapped func(hex string)
}

func NewSwatch(hex string, onTapped func(string)) *Swatch {
	s := &Swatch{Hex: hex, OnTapped: onTapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *Swatch) Tapped(*fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Hex)
	}
}

func (s *Swatch) MinSize() fyne.Size {
	return swatchSize
}

func (s *Swatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(color.Transparent)
	rect.CornerRadius = swatchSize.Width / 2
	r := &swatchRenderer{swatch: s, rect: rect}
	r.Refresh()
	return r
}

type swatchRenderer struct {
	swatch *Swatch
	rect   *canvas.Rectangle
}

func (r *swatchRenderer) Layout(size fyne.Size) { r.rect.Resize(size) }
func (r *swatchRenderer) MinSize() fyne.Size    { return swatchSize }
func (r *swatchRenderer) Destroy()              {}

func (r *swatchRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.rect}
}

func (r *swatchRenderer) Refresh() {
	colors := models.SwatchContrast(r.swatch.Hex)
	r.rect.FillColor = colors.Fill
	r.rect.StrokeColor = colors.Border
	r.rect.StrokeWidth = 1
	if r.swatch.Selected {
		r.rect.StrokeColor = theme.Color(theme.ColorNameForeground)
		r.rect.StrokeWidth = 3
	}
	r.rect.Refresh()
}
