package models

import (
	"image/color"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// Swatch is a named note color
type Swatch struct {
	Name string
	Hex  string
}

// Swatches is the fixed color catalog in picker order
var Swatches = []Swatch{
	{"green", "#bef264"},
	{"lime", "#a3e635"},
	{"emerald", "#34d399"},
	{"teal", "#2dd4bf"},
	{"cyan", "#22d3ee"},
	{"sky", "#7dd3fc"},
	{"blue", "#60a5fa"},
	{"indigo", "#818cf8"},
	{"violet", "#a78bfa"},
	{"purple", "#d8b4fe"},
	{"fuchsia", "#e879f9"},
	{"pink", "#f472b6"},
	{"rose", "#fb7185"},
	{"red", "#f87171"},
	{"orange", "#fdba74"},
	{"amber", "#fbbf24"},
	{"yellow", "#fde047"},
	{"cream", "#fef08a"},
	{"stone", "#a8a29e"},
	{"slate", "#94a3b8"},
	{"sage", "#86efac"},
	{"gold", "#fbbf24"},
	{"coral", "#fb7185"},
	{"lavender", "#e9d5ff"},
	{"mint", "#d1fae5"},
	{"ocean", "#0ea5e9"},
	{"apricot", "#ffedd5"},
	{"clay", "#d6d3d1"},
}

// NeutralSwatch is used to render color tokens that cannot be resolved
var NeutralSwatch = Swatch{Name: "neutral", Hex: "#e5e7eb"}

// ColorHex returns the hex value of a named swatch, or "" if unknown
func ColorHex(name string) string {
	for _, s := range Swatches {
		if s.Name == name {
			return s.Hex
		}
	}
	return ""
}

// LookupColor resolves a token (swatch name or hex) for rendering.
// Unknown tokens resolve to the neutral swatch and ok=false.
func LookupColor(token string) (Swatch, bool) {
	token = strings.TrimSpace(token)
	for _, s := range Swatches {
		if strings.EqualFold(s.Name, token) || strings.EqualFold(s.Hex, token) {
			return s, true
		}
	}
	if _, err := colorful.Hex(token); err == nil {
		return Swatch{Name: token, Hex: strings.ToLower(token)}, true
	}
	return NeutralSwatch, false
}

// NoteColors holds the derived colors used to paint a note
type NoteColors struct {
	Fill   color.Color
	Border color.Color
	Text   color.Color
}

// SwatchContrast derives fill, border and text colors for a token
func SwatchContrast(token string) NoteColors {
	s, _ := LookupColor(token)
	c, err := colorful.Hex(s.Hex)
	if err != nil {
		c, _ = colorful.Hex(NeutralSwatch.Hex)
	}

	l, a, b := c.Lab()
	border := colorful.Lab(l*0.8, a, b).Clamped()

	text := colorful.Color{R: 0.07, G: 0.09, B: 0.15}
	if l < 0.55 {
		text = colorful.Color{R: 1, G: 1, B: 1}
	}

	return NoteColors{Fill: c, Border: border, Text: text}
}

// Icon identifies an entry in the fixed icon catalog
type Icon string

// Icons is the closed icon catalog in picker order
var Icons = []Icon{
	"Bed", "Utensils", "Pill", "BookOpen", "Flower2",
	"GraduationCap", "Brain", "Languages", "Dumbbell",
	"PenTool", "Coffee", "Sun", "Moon", "Briefcase",
	"Users", "Target", "Bell", "Heart", "SmilePlus",
	"Mic", "Music2", "Camera", "Laptop", "MapPin",
}

// LookupIcon fails closed: unknown or empty names yield ok=false and render as no icon
func LookupIcon(name string) (Icon, bool) {
	for _, i := range Icons {
		if string(i) == name {
			return i, true
		}
	}
	return "", false
}

// Ringtone is a catalog entry; Duration is the nominal length of the tune
type Ringtone struct {
	Name     string
	Duration time.Duration
}

// Ringtones is the fixed ringtone catalog
var Ringtones = []Ringtone{
	{DefaultRingtone, 15 * time.Second},
	{"Morning Birds", 30 * time.Second},
	{"Soft Piano", time.Minute},
	{"Funky Bass", 45 * time.Second},
	{"Synth", 20 * time.Second},
	{"Forest Wind", 2 * time.Minute},
	{"Ocean Waves", 90 * time.Second},
	{"Beep 1", 12 * time.Second},
	{"Beep 2", 18 * time.Second},
}

// LookupRingtone falls back to the default ringtone for unknown names
func LookupRingtone(name string) Ringtone {
	for _, r := range Ringtones {
		if r.Name == name {
			return r
		}
	}
	return Ringtones[0]
}
