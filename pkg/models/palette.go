package models

// PaletteNote is a reusable template that new alarms are dragged from
type PaletteNote struct {
	Color string `json:"color"`
	Label string `json:"label"`
	Icon  string `json:"icon,omitempty"`
}

// DefaultPalette returns a fresh copy of the built-in templates.
// The palette resets to this list whenever it would become empty.
func DefaultPalette() []PaletteNote {
	return []PaletteNote{
		{Color: ColorHex("green")},
		{Color: ColorHex("sky")},
		{Color: ColorHex("violet")},
		{Color: ColorHex("red")},
		{Color: ColorHex("orange")},
		{Color: ColorHex("yellow")},
	}
}
