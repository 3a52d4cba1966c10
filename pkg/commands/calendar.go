package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/borgmon/sticky-alarm/pkg/calendar"
)

func addExport(topLevel *cobra.Command, e *env) {
	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Write all alarms to an iCalendar file, - for stdout.",
		Example: `
sticky-alarm export alarms.ics
sticky-alarm export - > alarms.ics
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			st, err := e.openStore()
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if args[0] != "-" {
				f, err := os.Create(args[0])
				if err != nil {
					return err
				}
				defer func() { _ = f.Close() }()
				w = f
			}

			alarms := st.Alarms()
			if err := calendar.Export(w, alarms, time.Now()); err != nil {
				return err
			}
			if args[0] != "-" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d alarms to %s\n", len(alarms), args[0])
			}
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

func addImport(topLevel *cobra.Command, e *env) {
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Add alarms from an iCalendar file, - for stdin.",
		Long: `Add alarms from an iCalendar file. Events exported by sticky-alarm replace
the alarm with the same id; daily and weekly events from other calendars
keep their days, anything else becomes a one-shot alarm.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer func() { _ = f.Close() }()
				r = f
			}

			alarms, err := calendar.Import(r)
			if err != nil {
				return err
			}

			st, err := e.openStore()
			if err != nil {
				return err
			}
			added, replaced := st.ImportAlarms(alarms)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %d alarms, %d replaced\n", added, replaced)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
