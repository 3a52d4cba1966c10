package calendar

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/emersion/go-ical"

	"github.com/borgmon/sticky-alarm/pkg/models"
)

const (
	productID = "-//borgmon//sticky-alarm//EN"

	propColor    = "X-STICKY-COLOR"
	propIcon     = "X-STICKY-ICON"
	propRingtone = "X-STICKY-RINGTONE"
	propMinute   = "X-STICKY-MINUTE"

	floatingFormat = "20060102T150405"
)

// Export writes alarms as an iCalendar stream, one VEVENT per alarm
// anchored at its next occurrence after now
func Export(w io.Writer, alarms []models.Alarm, now time.Time) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	for _, a := range alarms {
		event, err := toEvent(a, now)
		if err != nil {
			return fmt.Errorf("exporting alarm %s: %w", a.ID, err)
		}
		cal.Children = append(cal.Children, event.Component)
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encoding calendar: %w", err)
	}
	return nil
}

func toEvent(a models.Alarm, now time.Time) (*ical.Event, error) {
	start, err := NextOccurrence(a, now)
	if err != nil {
		return nil, err
	}

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, a.ID)
	event.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
	setFloating(event, ical.PropDateTimeStart, start)
	setFloating(event, ical.PropDateTimeEnd, start.Add(models.LookupRingtone(a.Ringtone).Duration))

	summary := a.Text
	if summary == "" {
		summary = "Alarm"
	}
	event.Props.SetText(ical.PropSummary, summary)

	if !a.IsOneShot() {
		days := a.RepeatDays
		if a.Time >= models.MinutesPerDay {
			days = shiftDays(days)
		}
		rule := Rule(models.Alarm{RepeatDays: days}, start)
		event.Props.SetRecurrenceRule(&rule)
	}

	setExtension(event, propColor, a.Color)
	setExtension(event, propRingtone, a.Ringtone)
	setExtension(event, propMinute, strconv.Itoa(a.Time))
	if a.Icon != "" {
		setExtension(event, propIcon, a.Icon)
	}

	valarm := ical.NewComponent(ical.CompAlarm)
	valarm.Props.SetText(ical.PropAction, "AUDIO")
	trigger := ical.NewProp(ical.PropTrigger)
	trigger.Value = "PT0S"
	valarm.Props.Set(trigger)
	event.Children = append(event.Children, valarm)

	return event, nil
}

// setExtension writes an X- property as a bare value. SetText would add
// VALUE=TEXT, which some readers reject on extension properties.
func setExtension(event *ical.Event, name, value string) {
	prop := ical.NewProp(name)
	prop.Value = value
	event.Props.Set(prop)
}

// setFloating writes a local wall clock time without a time zone
func setFloating(event *ical.Event, name string, t time.Time) {
	prop := ical.NewProp(name)
	prop.Value = t.Format(floatingFormat)
	event.Props.Set(prop)
}

// Import reads VEVENTs from an iCalendar stream. Events carry their UID as
// alarm id; repeat rules other than daily or weekly import as one-shot.
func Import(r io.Reader) ([]models.Alarm, error) {
	dec := ical.NewDecoder(r)
	alarms := []models.Alarm{}

	for {
		cal, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding calendar: %w", err)
		}

		for _, event := range cal.Events() {
			a, err := fromEvent(event)
			if err != nil {
				return nil, err
			}
			alarms = append(alarms, a)
		}
	}

	return alarms, nil
}

func fromEvent(event ical.Event) (models.Alarm, error) {
	a := models.Alarm{
		ID:         text(event, ical.PropUID),
		Text:       text(event, ical.PropSummary),
		Color:      text(event, propColor),
		Ringtone:   text(event, propRingtone),
		RepeatDays: []models.Weekday{},
	}
	if a.Text == "Alarm" {
		a.Text = ""
	}
	if a.Color == "" {
		a.Color = models.DefaultPalette()[0].Color
	}
	if icon, ok := models.LookupIcon(text(event, propIcon)); ok {
		a.Icon = string(icon)
	}

	start := event.Props.Get(ical.PropDateTimeStart)
	if start == nil {
		return models.Alarm{}, fmt.Errorf("event %q has no DTSTART", a.ID)
	}
	t, err := start.DateTime(time.Local)
	if err != nil {
		return models.Alarm{}, fmt.Errorf("event %q: %w", a.ID, err)
	}
	t = t.In(time.Local)
	a.Time = t.Hour()*60 + t.Minute()

	if m, err := strconv.Atoi(text(event, propMinute)); err == nil && m == models.MinutesPerDay && a.Time == 0 {
		a.Time = models.MinutesPerDay
	}

	rule, err := event.Props.RecurrenceRule()
	if err != nil {
		return models.Alarm{}, fmt.Errorf("event %q: %w", a.ID, err)
	}
	if rule != nil {
		if rule.Dtstart.IsZero() {
			rule.Dtstart = t
		}
		if days, ok := daysOf(rule); ok {
			if a.Time == models.MinutesPerDay {
				days = unshiftDays(days)
			}
			a.RepeatDays = days
		}
	}

	a.Normalize()
	return a, nil
}

func text(event ical.Event, name string) string {
	prop := event.Props.Get(name)
	if prop == nil {
		return ""
	}
	if v, err := prop.Text(); err == nil {
		return v
	}
	return prop.Value
}
