package store

import (
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/borgmon/sticky-alarm/pkg/logger"
	"github.com/borgmon/sticky-alarm/pkg/models"
)

// Keys of the two persisted records
const (
	AlarmsKey  = "sticky_alarms"
	PaletteKey = "sticky_palette"
)

// AlarmStore owns the live alarm collection and the palette templates.
// Every mutation rewrites the affected record in the KV backend.
type AlarmStore struct {
	mu sync.RWMutex

	kv  KV
	log *slog.Logger

	// Alarms in insertion order; the scheduler and the CLI rely on it
	alarms  []models.Alarm
	palette []models.PaletteNote

	newID     func() string
	listeners []func()
}

// Open loads both records from kv. Missing or corrupt records fall back to
// an empty alarm list and the default palette.
func Open(kv KV, log *slog.Logger) *AlarmStore {
	if log == nil {
		log = slog.Default()
	}

	s := &AlarmStore{
		kv:    kv,
		log:   log,
		newID: uuid.NewString,
	}
	s.alarms = s.loadAlarms()
	s.palette = s.loadPalette()
	return s
}

func (s *AlarmStore) loadAlarms() []models.Alarm {
	data, err := s.kv.Read(AlarmsKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Warn("reading alarms, starting empty", logger.Err(err))
		}
		return []models.Alarm{}
	}

	var loaded []models.Alarm
	if err := json.Unmarshal(data, &loaded); err != nil {
		s.log.Warn("alarms record is corrupt, starting empty", logger.Err(err))
		return []models.Alarm{}
	}

	seen := make(map[string]bool, len(loaded))
	alarms := make([]models.Alarm, 0, len(loaded))
	for _, a := range loaded {
		if a.ID == "" || seen[a.ID] {
			old := a.ID
			a.ID = s.newID()
			s.log.Warn("reassigned alarm id", slog.String("old", old), slog.String("new", a.ID))
		}
		seen[a.ID] = true
		a.Normalize()
		a.IsNew = false
		alarms = append(alarms, a)
	}

	s.log.Info("alarms loaded", slog.Int("count", len(alarms)))
	return alarms
}

func (s *AlarmStore) loadPalette() []models.PaletteNote {
	data, err := s.kv.Read(PaletteKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Warn("reading palette, using defaults", logger.Err(err))
		}
		return models.DefaultPalette()
	}

	var palette []models.PaletteNote
	if err := json.Unmarshal(data, &palette); err != nil {
		s.log.Warn("palette record is corrupt, using defaults", logger.Err(err))
		return models.DefaultPalette()
	}
	if len(palette) == 0 {
		return models.DefaultPalette()
	}
	return palette
}

// Subscribe registers fn to be called after every mutation
func (s *AlarmStore) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *AlarmStore) notify() {
	s.mu.RLock()
	listeners := slices.Clone(s.listeners)
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn()
	}
}

// persistAlarms must be called with the write lock held so records are
// written in mutation order
func (s *AlarmStore) persistAlarms() {
	data, err := json.Marshal(s.alarms)
	if err != nil {
		s.log.Error("encoding alarms", logger.Err(err))
		return
	}
	if err := s.kv.Write(AlarmsKey, data); err != nil {
		s.log.Error("writing alarms", logger.Err(err))
	}
}

func (s *AlarmStore) persistPalette() {
	data, err := json.Marshal(s.palette)
	if err != nil {
		s.log.Error("encoding palette", logger.Err(err))
		return
	}
	if err := s.kv.Write(PaletteKey, data); err != nil {
		s.log.Error("writing palette", logger.Err(err))
	}
}

func (s *AlarmStore) indexOf(id string) int {
	return slices.IndexFunc(s.alarms, func(a models.Alarm) bool { return a.ID == id })
}

// Alarms returns a snapshot of the collection in insertion order
func (s *AlarmStore) Alarms() []models.Alarm {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Alarm, len(s.alarms))
	for i, a := range s.alarms {
		out[i] = a.Clone()
	}
	return out
}

// Alarm returns the alarm with the given id
func (s *AlarmStore) Alarm(id string) (models.Alarm, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.alarms[i].Clone(), true
	}
	return models.Alarm{}, false
}

// Palette returns a snapshot of the templates
func (s *AlarmStore) Palette() []models.PaletteNote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.palette)
}

// AddAlarm creates a one-shot alarm with a fresh id and the default ringtone
func (s *AlarmStore) AddAlarm(minutes int, color, label, icon string) models.Alarm {
	alarm := models.Alarm{
		ID:         s.newID(),
		Time:       models.ClampMinutes(minutes),
		Text:       label,
		Color:      color,
		RepeatDays: []models.Weekday{},
		Ringtone:   models.DefaultRingtone,
		Icon:       icon,
		IsNew:      true,
	}

	s.mu.Lock()
	s.alarms = append(s.alarms, alarm)
	s.persistAlarms()
	s.mu.Unlock()

	s.log.Debug("alarm added", slog.String("id", alarm.ID), slog.Int("time", alarm.Time))
	s.notify()
	return alarm.Clone()
}

// UpdateAlarm replaces the alarm with the same id. Unknown ids are ignored.
func (s *AlarmStore) UpdateAlarm(alarm models.Alarm) {
	alarm = alarm.Clone()
	alarm.Normalize()

	s.mu.Lock()
	i := s.indexOf(alarm.ID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.alarms[i] = alarm
	s.persistAlarms()
	s.mu.Unlock()

	s.notify()
}

// ImportAlarms merges alarms into the collection. An alarm whose id is
// already present replaces it; one without an id gets a fresh one.
func (s *AlarmStore) ImportAlarms(alarms []models.Alarm) (added, replaced int) {
	if len(alarms) == 0 {
		return 0, 0
	}

	s.mu.Lock()
	for _, a := range alarms {
		a = a.Clone()
		a.Normalize()
		a.IsNew = false
		if a.ID == "" {
			a.ID = s.newID()
		}
		if i := s.indexOf(a.ID); i >= 0 {
			s.alarms[i] = a
			replaced++
			continue
		}
		s.alarms = append(s.alarms, a)
		added++
	}
	s.persistAlarms()
	s.mu.Unlock()

	s.log.Info("alarms imported", slog.Int("added", added), slog.Int("replaced", replaced))
	s.notify()
	return added, replaced
}

// MoveAlarm sets the time of an alarm, clamped to [0, 1440]
func (s *AlarmStore) MoveAlarm(id string, minutes int) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.alarms[i].Time = models.ClampMinutes(minutes)
	stored := s.alarms[i].Time
	s.persistAlarms()
	s.mu.Unlock()

	s.log.Debug("alarm moved", slog.String("id", id), slog.Int("time", stored))
	s.notify()
}

// DeleteAlarm removes an alarm; absent ids are ignored
func (s *AlarmStore) DeleteAlarm(id string) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.alarms = slices.Delete(s.alarms, i, i+1)
	s.persistAlarms()
	s.mu.Unlock()

	s.log.Debug("alarm deleted", slog.String("id", id))
	s.notify()
}

// AddPaletteTemplate inserts a template at index, clamped to 0..len
func (s *AlarmStore) AddPaletteTemplate(color, label string, index int, icon string) {
	s.mu.Lock()
	index = max(0, min(index, len(s.palette)))
	s.palette = slices.Insert(s.palette, index, models.PaletteNote{Color: color, Label: label, Icon: icon})
	s.persistPalette()
	s.mu.Unlock()

	s.notify()
}

// DeletePaletteTemplate removes the template at index. Out of range indexes
// are ignored; removing the last template restores the default palette.
func (s *AlarmStore) DeletePaletteTemplate(index int) {
	s.mu.Lock()
	if index < 0 || index >= len(s.palette) {
		s.mu.Unlock()
		return
	}
	s.palette = slices.Delete(s.palette, index, index+1)
	if len(s.palette) == 0 {
		s.palette = models.DefaultPalette()
		s.log.Info("palette emptied, restored defaults")
	}
	s.persistPalette()
	s.mu.Unlock()

	s.notify()
}

// ToggleDay adds day to the alarm's repeat set if absent, removes it
// otherwise, and reports which of the two happened
func (s *AlarmStore) ToggleDay(id string, day models.Weekday) PaintMode {
	mode := PaintAdd
	if a, ok := s.Alarm(id); ok && a.HasDay(day) {
		mode = PaintRemove
	}
	s.setDay(id, day, mode)
	return mode
}

// setDay applies mode to one day, writing only when the set changes
func (s *AlarmStore) setDay(id string, day models.Weekday, mode PaintMode) {
	if !day.Valid() {
		return
	}

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}

	a := &s.alarms[i]
	has := a.HasDay(day)
	switch {
	case mode == PaintAdd && !has:
		a.RepeatDays = models.NormalizeDays(append(slices.Clone(a.RepeatDays), day))
	case mode == PaintRemove && has:
		a.RepeatDays = slices.DeleteFunc(slices.Clone(a.RepeatDays), func(d models.Weekday) bool { return d == day })
	default:
		s.mu.Unlock()
		return
	}
	s.persistAlarms()
	s.mu.Unlock()

	s.notify()
}

func (s *AlarmStore) setColor(id, color string) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 || s.alarms[i].Color == color {
		s.mu.Unlock()
		return
	}
	s.alarms[i].Color = color
	s.persistAlarms()
	s.mu.Unlock()

	s.notify()
}
