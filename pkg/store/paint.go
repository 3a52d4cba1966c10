package store

import (
	"sync"

	"github.com/borgmon/sticky-alarm/pkg/models"
)

// PaintMode is what a day paint gesture does to every day it crosses
type PaintMode int

const (
	PaintAdd PaintMode = iota + 1
	PaintRemove
)

func (m PaintMode) String() string {
	if m == PaintRemove {
		return "remove"
	}
	return "add"
}

// DayPaint is one press-and-swipe across the repeat day toggles of an
// alarm. The first day decides the mode; later days get the same mode and
// each day is applied at most once until End.
type DayPaint struct {
	mu      sync.Mutex
	store   *AlarmStore
	id      string
	mode    PaintMode
	visited map[models.Weekday]bool
	ended   bool
}

// BeginDayPaint toggles day on the alarm and starts a gesture in the
// resulting mode
func (s *AlarmStore) BeginDayPaint(id string, day models.Weekday) *DayPaint {
	p := &DayPaint{
		store:   s,
		id:      id,
		visited: map[models.Weekday]bool{day: true},
	}
	p.mode = s.ToggleDay(id, day)
	return p
}

// Mode returns the mode fixed by the first toggle
func (p *DayPaint) Mode() PaintMode {
	return p.mode
}

// Enter applies the gesture's mode to day unless it was already visited
func (p *DayPaint) Enter(day models.Weekday) {
	p.mu.Lock()
	if p.ended || p.visited[day] {
		p.mu.Unlock()
		return
	}
	p.visited[day] = true
	p.mu.Unlock()

	p.store.setDay(p.id, day, p.mode)
}

// End finishes the gesture and clears the visited set
func (p *DayPaint) End() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ended = true
	clear(p.visited)
}

// ColorPaint swipes one color across several notes: every alarm entered
// during the gesture takes the color
type ColorPaint struct {
	mu      sync.Mutex
	store   *AlarmStore
	color   string
	visited map[string]bool
	ended   bool
}

// BeginColorPaint recolors the alarm under the pointer and starts a swipe
func (s *AlarmStore) BeginColorPaint(id, color string) *ColorPaint {
	p := &ColorPaint{
		store:   s,
		color:   color,
		visited: map[string]bool{},
	}
	p.Enter(id)
	return p
}

// Enter recolors the alarm with id once per gesture
func (p *ColorPaint) Enter(id string) {
	p.mu.Lock()
	if p.ended || p.visited[id] {
		p.mu.Unlock()
		return
	}
	p.visited[id] = true
	p.mu.Unlock()

	p.store.setColor(id, p.color)
}

// End finishes the swipe
func (p *ColorPaint) End() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ended = true
	clear(p.visited)
}
