package calendar

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borgmon/sticky-alarm/pkg/models"
)

// 2024-01-02 is a Tuesday
var tuesdayNoon = time.Date(2024, 1, 2, 12, 0, 0, 0, time.Local)

func TestNextOccurrence(t *testing.T) {
	cases := []struct {
		name  string
		alarm models.Alarm
		want  time.Time
	}{
		{"later today", models.Alarm{Time: 13 * 60}, time.Date(2024, 1, 2, 13, 0, 0, 0, time.Local)},
		{"this minute", models.Alarm{Time: 12 * 60}, tuesdayNoon},
		{"tomorrow", models.Alarm{Time: 8 * 60}, time.Date(2024, 1, 3, 8, 0, 0, 0, time.Local)},
		{"next weekday", models.Alarm{Time: 8 * 60, RepeatDays: []models.Weekday{models.Mon}}, time.Date(2024, 1, 8, 8, 0, 0, 0, time.Local)},
		{"same day later", models.Alarm{Time: 18 * 60, RepeatDays: []models.Weekday{models.Tue, models.Fri}}, time.Date(2024, 1, 2, 18, 0, 0, 0, time.Local)},
		{"every day", models.Alarm{Time: 6 * 60, RepeatDays: models.AllWeekdays}, time.Date(2024, 1, 3, 6, 0, 0, 0, time.Local)},
		{"end of day", models.Alarm{Time: models.MinutesPerDay}, time.Date(2024, 1, 3, 0, 0, 0, 0, time.Local)},
		{"end of monday", models.Alarm{Time: models.MinutesPerDay, RepeatDays: []models.Weekday{models.Mon}}, time.Date(2024, 1, 9, 0, 0, 0, 0, time.Local)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NextOccurrence(tc.alarm, tuesdayNoon.Add(20*time.Second))
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "want %s got %s", tc.want, got)
			assert.True(t, tc.alarm.Matches(got), "the occurrence is a minute the scheduler rings in")
		})
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	alarms := []models.Alarm{
		{ID: "a1", Time: 480, Text: "Wake up", Color: "#bef264", RepeatDays: []models.Weekday{models.Mon, models.Wed, models.Fri}, Ringtone: "Synth", Icon: "Sun"},
		{ID: "a2", Time: 1320, Text: "", Color: "#a78bfa", RepeatDays: []models.Weekday{}, Ringtone: models.DefaultRingtone},
		{ID: "a3", Time: 600, Text: "Daily, no snooze; really", Color: "#7dd3fc", RepeatDays: models.AllWeekdays, Ringtone: "Beep 1"},
		{ID: "a4", Time: models.MinutesPerDay, Text: "Late", Color: "#f87171", RepeatDays: []models.Weekday{models.Sun}, Ringtone: "Beep 2"},
	}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, alarms, tuesdayNoon))

	out := buf.String()
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "BEGIN:VALARM")
	assert.Contains(t, out, "X-STICKY-COLOR:#bef264")
	assert.Contains(t, out, "X-STICKY-MINUTE:1440")
	assert.NotContains(t, out, "VALUE=TEXT")
	assert.Contains(t, out, "RRULE:")

	got, err := Import(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, got, len(alarms))

	for i, want := range alarms {
		want.Normalize()
		assert.Equal(t, want, got[i], want.ID)
	}
}

func TestImportForeignEvents(t *testing.T) {
	const data = "BEGIN:VCALENDAR\r\n" +
		"VERSION:2.0\r\n" +
		"PRODID:-//example//test//EN\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:standup\r\n" +
		"DTSTAMP:20240101T000000Z\r\n" +
		"DTSTART:20240102T093000\r\n" +
		"SUMMARY:Standup\r\n" +
		"RRULE:FREQ=WEEKLY;BYDAY=TU,TH\r\n" +
		"X-STICKY-ICON:Spaceship\r\n" +
		"END:VEVENT\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:monthly\r\n" +
		"DTSTAMP:20240101T000000Z\r\n" +
		"DTSTART:20240105T170000\r\n" +
		"SUMMARY:Rent\r\n" +
		"RRULE:FREQ=MONTHLY\r\n" +
		"END:VEVENT\r\n" +
		"END:VCALENDAR\r\n"

	got, err := Import(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "standup", got[0].ID)
	assert.Equal(t, 570, got[0].Time)
	assert.Equal(t, []models.Weekday{models.Tue, models.Thu}, got[0].RepeatDays)
	assert.Empty(t, got[0].Icon, "unknown icons fail closed")
	assert.Equal(t, models.DefaultRingtone, got[0].Ringtone)
	assert.NotEmpty(t, got[0].Color)

	assert.Equal(t, 17*60, got[1].Time)
	assert.Empty(t, got[1].RepeatDays, "unsupported rules import as one-shot")
}

func TestImportRejectsGarbage(t *testing.T) {
	_, err := Import(strings.NewReader("BEGIN:VCALENDAR\r\nthis is not ical\r\n"))
	assert.Error(t, err)
}
