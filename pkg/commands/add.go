package commands

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/borgmon/sticky-alarm/pkg/commands/options"
	"github.com/borgmon/sticky-alarm/pkg/geometry"
	"github.com/borgmon/sticky-alarm/pkg/models"
)

func addAdd(topLevel *cobra.Command, e *env) {
	o := &options.AddOptions{}
	cmd := &cobra.Command{
		Use:   "add TIME [LABEL...]",
		Short: "Add an alarm.",
		Example: `
sticky-alarm add 7:30 wake up --days=weekdays --icon=Sun
sticky-alarm add 9pm take pills --color=violet
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			minutes, err := geometry.ParseClock(args[0])
			if err != nil {
				return err
			}
			hex, err := resolveColor(o.Color)
			if err != nil {
				return err
			}
			days, err := parseDays(o.Days)
			if err != nil {
				return err
			}
			icon := ""
			if o.Icon != "" {
				i, ok := models.LookupIcon(o.Icon)
				if !ok {
					return fmt.Errorf("unknown icon %q", o.Icon)
				}
				icon = string(i)
			}
			ringtone := models.LookupRingtone(o.Ringtone)
			if ringtone.Name != o.Ringtone {
				return fmt.Errorf("unknown ringtone %q", o.Ringtone)
			}

			st, err := e.openStore()
			if err != nil {
				return err
			}
			a := st.AddAlarm(minutes, hex, strings.Join(args[1:], " "), icon)
			a.RepeatDays = days
			a.Ringtone = ringtone.Name
			a.IsNew = false
			st.UpdateAlarm(a)

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s at %s, %s\n",
				color.GreenString("added"), shortID(a.ID), geometry.FormatClock(a.Time, false), a.RepeatSummary())
			return nil
		},
	}

	options.AddAlarmArgs(cmd, o)

	topLevel.AddCommand(cmd)
}

func addRm(topLevel *cobra.Command, e *env) {
	cmd := &cobra.Command{
		Use:   "rm ID...",
		Short: "Delete alarms by id or id prefix.",
		Example: `
sticky-alarm rm 3f2a
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			st, err := e.openStore()
			if err != nil {
				return err
			}
			for _, ref := range args {
				a, err := findAlarm(st, ref)
				if err != nil {
					return err
				}
				st.DeleteAlarm(a.ID)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", color.RedString("deleted"), shortID(a.ID))
			}
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

func addDays(topLevel *cobra.Command, e *env) {
	cmd := &cobra.Command{
		Use:   "days ID DAY...",
		Short: "Toggle repeat days of an alarm.",
		Long: `Toggle repeat days of an alarm. Like a swipe across the day buttons in the
editor, the first day decides whether the days are added or removed.`,
		Example: `
sticky-alarm days 3f2a mon tue wed
`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			days := make([]models.Weekday, 0, len(args)-1)
			for _, arg := range args[1:] {
				d, err := models.ParseWeekday(arg)
				if err != nil {
					return err
				}
				days = append(days, d)
			}

			st, err := e.openStore()
			if err != nil {
				return err
			}
			a, err := findAlarm(st, args[0])
			if err != nil {
				return err
			}

			paint := st.BeginDayPaint(a.ID, days[0])
			for _, d := range days[1:] {
				paint.Enter(d)
			}
			paint.End()

			a, _ = st.Alarm(a.ID)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s repeats %s\n", shortID(a.ID), a.RepeatSummary())
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
