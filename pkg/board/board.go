// Package board is what the desktop UI talks to: it ties the alarm store,
// the gesture resolver and the scheduler to a shared zoom level.
package board

import (
	"slices"
	"sync"

	"github.com/borgmon/sticky-alarm/pkg/dragdrop"
	"github.com/borgmon/sticky-alarm/pkg/geometry"
	"github.com/borgmon/sticky-alarm/pkg/layout"
	"github.com/borgmon/sticky-alarm/pkg/models"
	"github.com/borgmon/sticky-alarm/pkg/scheduler"
	"github.com/borgmon/sticky-alarm/pkg/store"
)

// Board is the presentation boundary
type Board struct {
	mu   sync.RWMutex
	zoom geometry.Zoom

	store    *store.AlarmStore
	resolver *dragdrop.Resolver
	sched    *scheduler.Scheduler

	zoomListeners []func(geometry.Zoom)
}

// New creates a board showing zoom z
func New(st *store.AlarmStore, resolver *dragdrop.Resolver, sched *scheduler.Scheduler, z geometry.Zoom) *Board {
	if z != geometry.Expanded {
		z = geometry.Compact
	}
	resolver.SetZoom(z)
	return &Board{
		zoom:     z,
		store:    st,
		resolver: resolver,
		sched:    sched,
	}
}

func (b *Board) Store() *store.AlarmStore        { return b.store }
func (b *Board) Resolver() *dragdrop.Resolver    { return b.resolver }
func (b *Board) Scheduler() *scheduler.Scheduler { return b.sched }

func (b *Board) Zoom() geometry.Zoom {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.zoom
}

// SetZoom switches the zoom level for rendering and gesture resolution
func (b *Board) SetZoom(z geometry.Zoom) {
	b.mu.Lock()
	if b.zoom == z {
		b.mu.Unlock()
		return
	}
	b.zoom = z
	listeners := slices.Clone(b.zoomListeners)
	b.mu.Unlock()

	b.resolver.SetZoom(z)
	for _, fn := range listeners {
		fn(z)
	}
}

// OnZoom registers fn for zoom changes
func (b *Board) OnZoom(fn func(geometry.Zoom)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.zoomListeners = append(b.zoomListeners, fn)
}

// ToggleZoom flips the zoom level and returns the scroll offset that keeps
// anchor minutes centered in a viewport of the given height
func (b *Board) ToggleZoom(anchor, viewport float64) (geometry.Zoom, float64) {
	z := geometry.Toggle(b.Zoom())
	b.SetZoom(z)
	return z, geometry.ScrollTarget(anchor, z, viewport)
}

// Pinch applies a two-finger scale ratio; see geometry.Pinch
func (b *Board) Pinch(ratio, anchor, viewport float64) (z geometry.Zoom, scroll float64, changed bool) {
	z, changed = geometry.Pinch(b.Zoom(), ratio)
	if !changed {
		return z, 0, false
	}
	b.SetZoom(z)
	return z, geometry.ScrollTarget(anchor, z, viewport), true
}

// Geometry returns the vertical offset of minutes at the current zoom
func (b *Board) Geometry(minutes float64) float64 {
	return geometry.MinutesToOffset(minutes, b.Zoom())
}

// MinutesAt converts an offset back to minutes at the current zoom
func (b *Board) MinutesAt(offset float64, snap bool) float64 {
	return geometry.OffsetToMinutes(offset, b.Zoom(), snap)
}

// Height is the full timeline content height including both margins
func (b *Board) Height() float64 {
	return geometry.TotalHeight(b.Zoom()) + 2*geometry.TopMargin
}

// Layout returns the placement of every alarm at the current zoom
func (b *Board) Layout() []layout.Placement {
	return layout.Arrange(b.store.Alarms(), b.Zoom())
}

func (b *Board) Alarms() []models.Alarm        { return b.store.Alarms() }
func (b *Board) Palette() []models.PaletteNote { return b.store.Palette() }

// Ringing is the alarm currently alerting, if any
func (b *Board) Ringing() (models.Alarm, bool) {
	if b.sched == nil {
		return models.Alarm{}, false
	}
	return b.sched.Ringing()
}

// Dismiss silences the ringing alarm
func (b *Board) Dismiss() {
	if b.sched != nil {
		b.sched.Dismiss()
	}
}

// gesture forwarding

func (b *Board) BeginTemplate(pos dragdrop.Point, index int) {
	palette := b.store.Palette()
	if index < 0 || index >= len(palette) {
		return
	}
	b.resolver.BeginPayload(pos, dragdrop.TemplatePayload(index, palette[index]))
}

func (b *Board) BeginAlarm(pos dragdrop.Point, id string) {
	a, ok := b.store.Alarm(id)
	if !ok {
		return
	}
	b.resolver.BeginPayload(pos, dragdrop.AlarmPayload(a))
}

func (b *Board) Begin(pos dragdrop.Point, data []byte) error { return b.resolver.Begin(pos, data) }
func (b *Board) Move(ev dragdrop.Event)                      { b.resolver.Move(ev) }
func (b *Board) Leave()                                      { b.resolver.Leave() }
func (b *Board) End(ev dragdrop.Event) dragdrop.Outcome      { return b.resolver.End(ev) }
func (b *Board) Cancel()                                     { b.resolver.Cancel() }
