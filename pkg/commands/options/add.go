package options

import (
	"github.com/spf13/cobra"
)

// AddOptions are the flags shared by commands that create notes
type AddOptions struct {
	Color    string
	Icon     string
	Days     []string
	Ringtone string
}

func AddAlarmArgs(cmd *cobra.Command, o *AddOptions) {
	AddNoteArgs(cmd, o)
	cmd.Flags().StringSliceVar(&o.Days, "days", nil,
		`Repeat days, example: --days=mon,wed or --days=weekdays. Omit for a one-shot alarm.`)
	cmd.Flags().StringVar(&o.Ringtone, "ringtone", "Default", "Ringtone name.")
}

func AddNoteArgs(cmd *cobra.Command, o *AddOptions) {
	cmd.Flags().StringVar(&o.Color, "color", "green", "Swatch name or hex color.")
	cmd.Flags().StringVar(&o.Icon, "icon", "", "Icon name, see the list command's legend.")
}
