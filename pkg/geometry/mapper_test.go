package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinutesToOffset(t *testing.T) {
	assert.Equal(t, TopMargin, MinutesToOffset(0, Compact))
	assert.Equal(t, TopMargin+TotalHeight(Compact), MinutesToOffset(1440, Compact))
	assert.InDelta(t, TopMargin+8*36.0, MinutesToOffset(480, Compact), 1e-9)
	assert.InDelta(t, TopMargin+8*120.0, MinutesToOffset(480, Expanded), 1e-9)
}

func TestOffsetToMinutesClamps(t *testing.T) {
	for _, z := range []Zoom{Compact, Expanded} {
		assert.Equal(t, 0.0, OffsetToMinutes(-500, z, true))
		assert.Equal(t, 0.0, OffsetToMinutes(-500, z, false))
		assert.Equal(t, 1440.0, OffsetToMinutes(1e6, z, true))
		assert.Equal(t, 1440.0, OffsetToMinutes(1e6, z, false))
	}
}

func TestOffsetToMinutesSnap(t *testing.T) {
	// 07:52 in compact snaps to 07:45, 07:53 to 08:00
	assert.Equal(t, 465.0, OffsetToMinutes(MinutesToOffset(472, Compact), Compact, true))
	assert.Equal(t, 480.0, OffsetToMinutes(MinutesToOffset(473, Compact), Compact, true))

	raw := OffsetToMinutes(MinutesToOffset(472.4, Expanded), Expanded, false)
	assert.InDelta(t, 472.4, raw, 1e-9)
	assert.Equal(t, 472.0, OffsetToMinutes(MinutesToOffset(472.4, Expanded), Expanded, true))
}

func TestRoundTripWithinOneGridUnit(t *testing.T) {
	for _, z := range []Zoom{Compact, Expanded} {
		step := float64(SnapInterval(z))
		for m := 0; m <= 1440; m++ {
			got := OffsetToMinutes(MinutesToOffset(float64(m), z), z, true)
			assert.Equal(t, 0.0, math.Mod(got, step), "minute %d zoom %v lands on the grid", m, z)
			assert.LessOrEqual(t, math.Abs(got-float64(m)), step, "minute %d zoom %v", m, z)
		}
	}
}

func TestGridAlignedRoundTripIsIdempotent(t *testing.T) {
	for _, z := range []Zoom{Compact, Expanded} {
		for m := 0; m <= 1440; m += SnapInterval(z) {
			off := MinutesToOffset(float64(m), z)
			again := MinutesToOffset(OffsetToMinutes(off, z, true), z)
			assert.InDelta(t, off, again, 1e-9, "minute %d zoom %v", m, z)
		}
	}
}

func TestSnapMinutes(t *testing.T) {
	assert.Equal(t, 615, SnapMinutes(614.6, Expanded))
	assert.Equal(t, 615, SnapMinutes(614.6, Compact))
	assert.Equal(t, 600, SnapMinutes(607.4, Compact))
	assert.Equal(t, 0, SnapMinutes(-3, Compact))
	assert.Equal(t, 1440, SnapMinutes(1450, Expanded))
}

func TestZoomHelpers(t *testing.T) {
	assert.Equal(t, Expanded, Toggle(Compact))
	assert.Equal(t, Compact, Toggle(Expanded))

	z, changed := Pinch(Compact, 1.3)
	assert.True(t, changed)
	assert.Equal(t, Expanded, z)

	z, changed = Pinch(Expanded, 1.3)
	assert.False(t, changed)
	assert.Equal(t, Expanded, z)

	z, changed = Pinch(Expanded, 0.7)
	assert.True(t, changed)
	assert.Equal(t, Compact, z)

	_, changed = Pinch(Compact, 1.0)
	assert.False(t, changed)
}

func TestScrollTarget(t *testing.T) {
	assert.InDelta(t, 12*120.0-300+TopMargin, ScrollTarget(720, Expanded, 600), 1e-9)
	assert.Equal(t, 0.0, ScrollTarget(0, Compact, 600))
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "08:05", FormatClock(485, false))
	assert.Equal(t, "24:00", FormatClock(1440, false))
	assert.Equal(t, "8:05 AM", FormatClock(485, true))
	assert.Equal(t, "12:00 AM", FormatClock(0, true))
	assert.Equal(t, "12:30 PM", FormatClock(750, true))
	assert.Equal(t, "11:59 PM", FormatClock(1439, true))
	assert.Equal(t, "12:00 AM", FormatClock(1440, true))
}

func TestParseClock(t *testing.T) {
	for in, want := range map[string]int{
		"08:05":   485,
		"8:05":    485,
		"0:00":    0,
		"24:00":   1440,
		"8:05pm":  1205,
		"12 AM":   0,
		"12:30pm": 750,
		"7 am":    420,
		"23":      1380,
	} {
		got, err := ParseClock(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "25:00", "24:01", "8:60", "13pm", "0am", "ab:cd"} {
		_, err := ParseClock(in)
		assert.Error(t, err, in)
	}

	for m := 0; m <= 1440; m += 7 {
		got, err := ParseClock(FormatClock(m, false))
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
}
