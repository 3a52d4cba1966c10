// Package geometry maps minutes of the day to vertical timeline offsets and back.
package geometry

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/borgmon/sticky-alarm/pkg/models"
)

// Zoom selects one of the two timeline scales
type Zoom int

const (
	Compact Zoom = iota + 1
	Expanded
)

const (
	// TopMargin is the blank space above 00:00
	TopMargin = 50.0

	compactHourHeight  = 36.0
	expandedHourHeight = 120.0

	pinchExpandRatio  = 1.25
	pinchCompactRatio = 0.75
)

func (z Zoom) String() string {
	if z == Expanded {
		return "expanded"
	}
	return "compact"
}

// HourHeight returns the pixel height of one hour
func HourHeight(z Zoom) float64 {
	if z == Expanded {
		return expandedHourHeight
	}
	return compactHourHeight
}

// TotalHeight returns the pixel height of 24 hours, excluding margins
func TotalHeight(z Zoom) float64 {
	return 24 * HourHeight(z)
}

// SnapInterval returns the grid step in minutes
func SnapInterval(z Zoom) int {
	if z == Expanded {
		return 1
	}
	return 15
}

// MinutesToOffset converts minutes since midnight to a vertical offset
func MinutesToOffset(minutes float64, z Zoom) float64 {
	return minutes/models.MinutesPerDay*TotalHeight(z) + TopMargin
}

// OffsetToMinutes is the inverse of MinutesToOffset. With snap it rounds to
// the zoom's grid; the result is always clamped to [0, 1440].
func OffsetToMinutes(offset float64, z Zoom, snap bool) float64 {
	minutes := (offset - TopMargin) / TotalHeight(z) * models.MinutesPerDay
	if snap {
		step := float64(SnapInterval(z))
		minutes = math.Round(minutes/step) * step
	}
	return clamp(minutes)
}

// SnapMinutes rounds a fractional minute to the zoom's grid
func SnapMinutes(minutes float64, z Zoom) int {
	step := float64(SnapInterval(z))
	return int(clamp(math.Round(minutes/step) * step))
}

func clamp(m float64) float64 {
	return math.Max(0, math.Min(models.MinutesPerDay, m))
}

// Toggle switches between the two zoom levels
func Toggle(z Zoom) Zoom {
	if z == Expanded {
		return Compact
	}
	return Expanded
}

// Pinch returns the zoom level after a two-finger gesture whose finger
// distance changed by ratio. changed is false when the level stays.
func Pinch(z Zoom, ratio float64) (next Zoom, changed bool) {
	switch {
	case ratio > pinchExpandRatio && z != Expanded:
		return Expanded, true
	case ratio < pinchCompactRatio && z == Expanded:
		return Compact, true
	}
	return z, false
}

// ScrollTarget returns the scroll position that centers minutes in a
// viewport of the given height after switching to zoom z.
func ScrollTarget(minutes float64, z Zoom, viewportHeight float64) float64 {
	target := minutes/models.MinutesPerDay*TotalHeight(z) - viewportHeight/2 + TopMargin
	return math.Max(0, target)
}

// FormatClock renders minutes as "08:05" or, in twelve hour mode, "8:05 AM"
func FormatClock(minutes int, twelveHour bool) string {
	h := minutes / 60
	m := minutes % 60
	if !twelveHour {
		return fmt.Sprintf("%02d:%02d", h, m)
	}

	suffix := "AM"
	if h >= 12 && h < 24 {
		suffix = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, m, suffix)
}

// ParseClock reads "8:05", "08:05", "24:00", "8:05pm" or "12 AM" as
// minutes since midnight
func ParseClock(s string) (int, error) {
	in := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))

	meridiem := ""
	for _, suffix := range []string{"am", "pm"} {
		if strings.HasSuffix(in, suffix) {
			meridiem = suffix
			in = strings.TrimSuffix(in, suffix)
		}
	}

	hh, mm, found := strings.Cut(in, ":")
	if !found {
		mm = "0"
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}

	switch meridiem {
	case "":
		if h < 0 || h > 24 || (h == 24 && m != 0) {
			return 0, fmt.Errorf("invalid hour in %q", s)
		}
	default:
		if h < 1 || h > 12 {
			return 0, fmt.Errorf("invalid hour in %q", s)
		}
		h %= 12
		if meridiem == "pm" {
			h += 12
		}
	}
	return h*60 + m, nil
}
