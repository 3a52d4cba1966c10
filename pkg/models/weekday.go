package models

import (
	"fmt"
	"strings"
	"time"
)

// Weekday is the tag stored in an alarm's repeat set
type Weekday string

const (
	Mon Weekday = "Mon"
	Tue Weekday = "Tue"
	Wed Weekday = "Wed"
	Thu Weekday = "Thu"
	Fri Weekday = "Fri"
	Sat Weekday = "Sat"
	Sun Weekday = "Sun"
)

// AllWeekdays lists the tags in canonical Monday to Sunday order
var AllWeekdays = []Weekday{Mon, Tue, Wed, Thu, Fri, Sat, Sun}

var weekdayOrder = map[Weekday]int{
	Mon: 0, Tue: 1, Wed: 2, Thu: 3, Fri: 4, Sat: 5, Sun: 6,
}

var fromTimeWeekday = map[time.Weekday]Weekday{
	time.Monday:    Mon,
	time.Tuesday:   Tue,
	time.Wednesday: Wed,
	time.Thursday:  Thu,
	time.Friday:    Fri,
	time.Saturday:  Sat,
	time.Sunday:    Sun,
}

// WeekdayOf converts a time.Weekday into its tag
func WeekdayOf(d time.Weekday) Weekday {
	return fromTimeWeekday[d]
}

// Time converts the tag back into a time.Weekday
func (d Weekday) Time() time.Weekday {
	for td, w := range fromTimeWeekday {
		if w == d {
			return td
		}
	}
	return time.Sunday
}

// Valid reports whether d is one of the seven known tags
func (d Weekday) Valid() bool {
	_, ok := weekdayOrder[d]
	return ok
}

// ParseWeekday accepts tags ("Mon"), full names ("monday") in any case
func ParseWeekday(s string) (Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) >= 3 {
		for _, d := range AllWeekdays {
			if strings.HasPrefix(strings.ToLower(d.Time().String()), s) || strings.ToLower(string(d)) == s {
				return d, nil
			}
		}
	}
	return "", fmt.Errorf("unknown weekday %q", s)
}

// NormalizeDays drops unknown and duplicate tags and sorts the rest Mon..Sun.
// The result is never nil so it encodes as an empty JSON list.
func NormalizeDays(days []Weekday) []Weekday {
	seen := make(map[Weekday]bool, len(days))
	for _, d := range days {
		if d.Valid() {
			seen[d] = true
		}
	}

	out := make([]Weekday, 0, len(seen))
	for _, d := range AllWeekdays {
		if seen[d] {
			out = append(out, d)
		}
	}
	return out
}
