package models

import (
	"strings"
	"time"
)

const (
	// MinutesPerDay is the upper bound of an alarm time; 1440 is the end-of-day slot
	MinutesPerDay = 1440

	// DefaultRingtone is assigned to every new alarm
	DefaultRingtone = "Default"
)

// Alarm is a sticky note placed on the timeline
type Alarm struct {
	ID         string    `json:"id"`
	Time       int       `json:"time"` // minutes since midnight, 0..1440
	Text       string    `json:"text"`
	Color      string    `json:"color"`
	RepeatDays []Weekday `json:"repeatDays"`
	Ringtone   string    `json:"ringtone"`
	Icon       string    `json:"icon,omitempty"`
	IsNew      bool      `json:"isNew,omitempty"` // creation flash, ignored by scheduling
}

// ClampMinutes bounds m to the valid alarm range
func ClampMinutes(m int) int {
	if m < 0 {
		return 0
	}
	if m > MinutesPerDay {
		return MinutesPerDay
	}
	return m
}

// IsOneShot returns true when the alarm has no repeat days
func (a Alarm) IsOneShot() bool {
	return len(a.RepeatDays) == 0
}

// HasDay reports whether d is in the repeat set
func (a Alarm) HasDay(d Weekday) bool {
	for _, rd := range a.RepeatDays {
		if rd == d {
			return true
		}
	}
	return false
}

// Matches reports whether the alarm is due in the minute containing now.
// An alarm at 1440 belongs to the end of its day and rings at the following midnight.
func (a Alarm) Matches(now time.Time) bool {
	current := now.Hour()*60 + now.Minute()
	day := now

	if a.Time >= MinutesPerDay {
		if current != 0 {
			return false
		}
		day = now.AddDate(0, 0, -1)
	} else if a.Time != current {
		return false
	}

	return a.IsOneShot() || a.HasDay(WeekdayOf(day.Weekday()))
}

// Normalize enforces the stored invariants in place
func (a *Alarm) Normalize() {
	a.Time = ClampMinutes(a.Time)
	a.RepeatDays = NormalizeDays(a.RepeatDays)
	if a.Ringtone == "" {
		a.Ringtone = DefaultRingtone
	}
}

// Clone returns a copy that shares no slices with a
func (a Alarm) Clone() Alarm {
	c := a
	c.RepeatDays = append([]Weekday(nil), a.RepeatDays...)
	if c.RepeatDays == nil {
		c.RepeatDays = []Weekday{}
	}
	return c
}

// RepeatSummary renders the repeat set for labels and listings
func (a Alarm) RepeatSummary() string {
	days := NormalizeDays(a.RepeatDays)
	switch {
	case len(days) == 0:
		return "Once"
	case len(days) == 7:
		return "Every day"
	case len(days) == 5 && days[0] == Mon && days[4] == Fri:
		return "Weekdays"
	case len(days) == 2 && days[0] == Sat && days[1] == Sun:
		return "Weekends"
	}

	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = string(d)
	}
	return strings.Join(parts, " ")
}
