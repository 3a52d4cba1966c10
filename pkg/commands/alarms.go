package commands

import (
	"fmt"
	"strings"

	"github.com/borgmon/sticky-alarm/pkg/models"
	"github.com/borgmon/sticky-alarm/pkg/store"
)

const shortIDLen = 8

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

// findAlarm resolves a full id or a unique id prefix
func findAlarm(st *store.AlarmStore, ref string) (models.Alarm, error) {
	if a, ok := st.Alarm(ref); ok {
		return a, nil
	}

	var matches []models.Alarm
	for _, a := range st.Alarms() {
		if strings.HasPrefix(a.ID, ref) {
			matches = append(matches, a)
		}
	}

	switch len(matches) {
	case 0:
		return models.Alarm{}, fmt.Errorf("no alarm with id %q", ref)
	case 1:
		return matches[0], nil
	default:
		return models.Alarm{}, fmt.Errorf("id prefix %q matches %d alarms", ref, len(matches))
	}
}

func parseDays(args []string) ([]models.Weekday, error) {
	days := []models.Weekday{}
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			switch strings.ToLower(part) {
			case "weekdays":
				days = append(days, models.Mon, models.Tue, models.Wed, models.Thu, models.Fri)
				continue
			case "weekends":
				days = append(days, models.Sat, models.Sun)
				continue
			case "daily", "everyday":
				days = append(days, models.AllWeekdays...)
				continue
			}
			d, err := models.ParseWeekday(part)
			if err != nil {
				return nil, err
			}
			days = append(days, d)
		}
	}
	return models.NormalizeDays(days), nil
}

// resolveColor accepts swatch names and hex values
func resolveColor(token string) (string, error) {
	s, ok := models.LookupColor(token)
	if !ok {
		return "", fmt.Errorf("unknown color %q", token)
	}
	return s.Hex, nil
}
