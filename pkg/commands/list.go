package commands

import (
	"fmt"
	"slices"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/borgmon/sticky-alarm/pkg/calendar"
	"github.com/borgmon/sticky-alarm/pkg/geometry"
	"github.com/borgmon/sticky-alarm/pkg/models"
)

func addList(topLevel *cobra.Command, e *env) {
	twelveHour := false
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List alarms by time of day.",
		Example: `
sticky-alarm list
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			st, err := e.openStore()
			if err != nil {
				return err
			}

			alarms := st.Alarms()
			out := cmd.OutOrStdout()
			if len(alarms) == 0 {
				_, _ = color.New(color.Faint, color.Italic).Fprintln(out, "no alarms")
				return nil
			}
			slices.SortStableFunc(alarms, func(a, b models.Alarm) int { return a.Time - b.Time })

			bold := color.New(color.Bold)
			now := time.Now()

			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Time"), bold.Sprint("Repeat"), bold.Sprint("Label"),
				bold.Sprint("Color"), bold.Sprint("Icon"), bold.Sprint("Ringtone"), bold.Sprint("Next"))
			for _, a := range alarms {
				next := "-"
				if t, err := calendar.NextOccurrence(a, now); err == nil && !t.IsZero() {
					next = t.Format("Mon Jan 2 15:04")
				}
				tbl.AddRow(shortID(a.ID), geometry.FormatClock(a.Time, twelveHour), a.RepeatSummary(),
					a.Text, swatchName(a.Color), a.Icon, a.Ringtone, next)
			}

			_, _ = fmt.Fprintln(out, tbl)
			return nil
		},
	}

	cmd.Flags().BoolVar(&twelveHour, "12h", false, "Show times as 8:00 AM.")

	topLevel.AddCommand(cmd)
}

func swatchName(token string) string {
	s, ok := models.LookupColor(token)
	if !ok {
		return token
	}
	return s.Name
}
