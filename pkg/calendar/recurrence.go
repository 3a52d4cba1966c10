package calendar

import (
	"time"

	"github.com/teambition/rrule-go"

	"github.com/borgmon/sticky-alarm/pkg/models"
)

var rruleDay = map[models.Weekday]rrule.Weekday{
	models.Mon: rrule.MO,
	models.Tue: rrule.TU,
	models.Wed: rrule.WE,
	models.Thu: rrule.TH,
	models.Fri: rrule.FR,
	models.Sat: rrule.SA,
	models.Sun: rrule.SU,
}

// rrule numbers days from Monday, the same order as AllWeekdays
func standardDay(wd rrule.Weekday) models.Weekday {
	return models.AllWeekdays[wd.Day()%7]
}

// Rule returns the recurrence of an alarm starting at dtstart: daily for
// one-shot alarms and alarms repeating every day, weekly on the repeat days
// otherwise
func Rule(a models.Alarm, dtstart time.Time) rrule.ROption {
	days := models.NormalizeDays(a.RepeatDays)
	if len(days) == 0 || len(days) == len(models.AllWeekdays) {
		return rrule.ROption{Freq: rrule.DAILY, Dtstart: dtstart}
	}

	opt := rrule.ROption{Freq: rrule.WEEKLY, Dtstart: dtstart, Wkst: rrule.MO}
	for _, d := range days {
		opt.Byweekday = append(opt.Byweekday, rruleDay[d])
	}
	return opt
}

// daysOf maps a parsed rule back to repeat days. Rules that are neither
// daily nor weekly yield ok=false.
func daysOf(opt *rrule.ROption) ([]models.Weekday, bool) {
	switch opt.Freq {
	case rrule.DAILY:
		return models.NormalizeDays(models.AllWeekdays), true
	case rrule.WEEKLY:
		days := []models.Weekday{}
		for _, wd := range opt.Byweekday {
			days = append(days, standardDay(wd))
		}
		if len(days) == 0 && !opt.Dtstart.IsZero() {
			days = append(days, models.WeekdayOf(opt.Dtstart.Weekday()))
		}
		return models.NormalizeDays(days), true
	}
	return nil, false
}

// shiftDays moves every day forward by one, for end-of-day alarms that
// ring at the next midnight
func shiftDays(days []models.Weekday) []models.Weekday {
	out := make([]models.Weekday, 0, len(days))
	for _, d := range days {
		out = append(out, models.WeekdayOf((d.Time()+1)%7))
	}
	return models.NormalizeDays(out)
}

func unshiftDays(days []models.Weekday) []models.Weekday {
	out := make([]models.Weekday, 0, len(days))
	for _, d := range days {
		out = append(out, models.WeekdayOf((d.Time()+6)%7))
	}
	return models.NormalizeDays(out)
}

// NextOccurrence returns the first time at or after from when the alarm
// rings, in from's location
func NextOccurrence(a models.Alarm, from time.Time) (time.Time, error) {
	from = from.Truncate(time.Minute)
	midnight := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())

	probe := a
	minutes := models.ClampMinutes(a.Time)
	if minutes == models.MinutesPerDay {
		minutes = 0
		probe.RepeatDays = shiftDays(a.RepeatDays)
	}

	dtstart := midnight.Add(time.Duration(minutes) * time.Minute)
	r, err := rrule.NewRRule(Rule(probe, dtstart))
	if err != nil {
		return time.Time{}, err
	}
	return r.After(from, true), nil
}
