package ui

import (
	"fmt"
	"slices"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"

	"github.com/borgmon/sticky-alarm/pkg/calendar"
	"github.com/borgmon/sticky-alarm/pkg/geometry"
	"github.com/borgmon/sticky-alarm/pkg/models"
)

const trayUpcomingLimit = 5

type upcomingAlarm struct {
	Alarm models.Alarm
	At    time.Time
}

func (u *App) setupSystemTray() {
	u.updateSystemTrayMenu()
}

func (u *App) updateSystemTrayMenu() {
	desk, ok := u.fyne.(desktop.App)
	if !ok {
		return
	}

	menuItems := []*fyne.MenuItem{}

	upcoming := upcomingToday(u.board.Alarms(), time.Now(), trayUpcomingLimit)
	if len(upcoming) > 0 {
		header := fyne.NewMenuItem("Upcoming Today:", nil)
		header.Disabled = true
		menuItems = append(menuItems, header)

		for _, next := range upcoming {
			label := next.Alarm.Text
			if label == "" {
				label = "Alarm"
			}
			item := fyne.NewMenuItem(fmt.Sprintf("  %s - %s",
				geometry.FormatClock(next.At.Hour()*60+next.At.Minute(), u.cfg.TwelveHour),
				truncateString(label, 35)), nil)
			item.Disabled = true
			menuItems = append(menuItems, item)
		}

		menuItems = append(menuItems, fyne.NewMenuItemSeparator())
	}

	menuItems = append(menuItems,
		fyne.NewMenuItem("Open Board", func() {
			u.main.Show()
		}),
		fyne.NewMenuItem("Settings", func() {
			u.showSettings()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			u.quit()
		}),
	)

	desk.SetSystemTrayMenu(fyne.NewMenu("Sticky Alarm", menuItems...))
	desk.SetSystemTrayIcon(theme.HistoryIcon())
}

// upcomingToday returns the next alarms ringing between now and midnight,
// soonest first
func upcomingToday(alarms []models.Alarm, now time.Time, limit int) []upcomingAlarm {
	midnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())

	upcoming := []upcomingAlarm{}
	for _, a := range alarms {
		at, err := calendar.NextOccurrence(a, now)
		if err != nil || at.IsZero() || !at.Before(midnight) {
			continue
		}
		upcoming = append(upcoming, upcomingAlarm{Alarm: a, At: at})
	}

	slices.SortStableFunc(upcoming, func(a, b upcomingAlarm) int {
		return a.At.Compare(b.At)
	})
	if len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming
}

// truncateString truncates a string to maxLen characters, adding "..." if needed
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
