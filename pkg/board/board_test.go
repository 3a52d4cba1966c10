package board

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borgmon/sticky-alarm/pkg/dragdrop"
	"github.com/borgmon/sticky-alarm/pkg/geometry"
	"github.com/borgmon/sticky-alarm/pkg/logger"
	"github.com/borgmon/sticky-alarm/pkg/scheduler"
	"github.com/borgmon/sticky-alarm/pkg/store"
)

type memoryKV struct {
	mu      sync.Mutex
	records map[string][]byte
}

func (m *memoryKV) Read(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d, ok := m.records[key]; ok {
		return d, nil
	}
	return nil, store.ErrNotFound
}

func (m *memoryKV) Write(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key] = data
	return nil
}

// idleFrames never runs a frame; previews are covered in dragdrop
type idleFrames struct{}

func (idleFrames) RequestFrame(func()) func() { return func() {} }

func newBoard(t *testing.T, clock scheduler.Clock) *Board {
	t.Helper()
	st := store.Open(&memoryKV{records: map[string][]byte{}}, logger.Discard())
	res := dragdrop.NewResolver(st, idleFrames{}, logger.Discard())
	sched := scheduler.New(st, nil, clock, logger.Discard())
	return New(st, res, sched, geometry.Compact)
}

func TestZoomSwitching(t *testing.T) {
	b := newBoard(t, nil)

	var seen []geometry.Zoom
	b.OnZoom(func(z geometry.Zoom) { seen = append(seen, z) })

	z, scroll := b.ToggleZoom(720, 600)
	assert.Equal(t, geometry.Expanded, z)
	assert.Equal(t, geometry.ScrollTarget(720, geometry.Expanded, 600), scroll)

	_, _, changed := b.Pinch(1.1, 720, 600)
	assert.False(t, changed)

	z, _, changed = b.Pinch(0.5, 720, 600)
	assert.True(t, changed)
	assert.Equal(t, geometry.Compact, z)

	assert.Equal(t, []geometry.Zoom{geometry.Expanded, geometry.Compact}, seen)
	assert.Equal(t, 24*36.0+100, b.Height())
}

func TestGestureUsesBoardZoom(t *testing.T) {
	b := newBoard(t, nil)
	b.SetZoom(geometry.Expanded)

	b.BeginTemplate(dragdrop.Point{}, 0)
	y := b.Geometry(487)
	b.Move(dragdrop.Event{Pos: dragdrop.Point{X: 50, Y: y}, Target: dragdrop.Timeline})
	out := b.End(dragdrop.Event{Pos: dragdrop.Point{X: 50, Y: y}, Target: dragdrop.Timeline})

	require.Equal(t, dragdrop.Created, out.Action)
	assert.Equal(t, 487, out.Minutes, "expanded zoom snaps to the minute")

	placements := b.Layout()
	require.Len(t, placements, 1)
	assert.Equal(t, y, placements[0].Y)
}

func TestRingingAndDismiss(t *testing.T) {
	now := time.Date(2024, 1, 2, 8, 0, 0, 0, time.Local)
	clock := scheduler.NewManualClock(now)
	b := newBoard(t, clock)
	a := b.Store().AddAlarm(480, "#bef264", "", "")

	_, ok := b.Ringing()
	assert.False(t, ok)

	b.Scheduler().Tick(now)
	got, ok := b.Ringing()
	require.True(t, ok)
	assert.Equal(t, a.ID, got.ID)

	b.Dismiss()
	_, ok = b.Ringing()
	assert.False(t, ok)
	assert.Empty(t, b.Alarms())
}

func TestBeginWithStaleReferences(t *testing.T) {
	b := newBoard(t, nil)

	b.BeginAlarm(dragdrop.Point{}, "missing")
	b.BeginTemplate(dragdrop.Point{}, 99)
	assert.Equal(t, dragdrop.Idle, b.Resolver().Phase())
}
