package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/borgmon/sticky-alarm/pkg/commands/options"
	"github.com/borgmon/sticky-alarm/pkg/models"
)

func addPalette(topLevel *cobra.Command, e *env) {
	cmd := &cobra.Command{
		Use:   "palette",
		Short: "Manage the note templates new alarms are dragged from.",
		Example: `
sticky-alarm palette
sticky-alarm palette add gym --color=orange --icon=Dumbbell
sticky-alarm palette rm 2
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			st, err := e.openStore()
			if err != nil {
				return err
			}

			bold := color.New(color.Bold)
			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.AddRow(bold.Sprint("#"), bold.Sprint("Label"), bold.Sprint("Color"), bold.Sprint("Icon"))
			for i, n := range st.Palette() {
				tbl.AddRow(i, n.Label, swatchName(n.Color), n.Icon)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), tbl)
			return nil
		},
	}

	addPaletteAdd(cmd, e)
	addPaletteRm(cmd, e)

	topLevel.AddCommand(cmd)
}

func addPaletteAdd(parent *cobra.Command, e *env) {
	o := &options.AddOptions{}
	index := -1
	cmd := &cobra.Command{
		Use:   "add [LABEL...]",
		Short: "Add a template.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			hex, err := resolveColor(o.Color)
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

			st, err := e.openStore()
			if err != nil {
				return err
			}
			at := index
			if at < 0 {
				at = len(st.Palette())
			}
			st.AddPaletteTemplate(hex, strings.Join(args, " "), at, icon)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s template %d\n", color.GreenString("added"), min(at, len(st.Palette())-1))
			return nil
		},
	}

	options.AddNoteArgs(cmd, o)
	cmd.Flags().IntVar(&index, "at", -1, "Insert position, defaults to the end.")

	parent.AddCommand(cmd)
}

func addPaletteRm(parent *cobra.Command, e *env) {
	cmd := &cobra.Command{
		Use:   "rm INDEX",
		Short: "Delete a template. Deleting the last one restores the defaults.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid index %q", args[0])
			}

			st, err := e.openStore()
			if err != nil {
				return err
			}
			if index < 0 || index >= len(st.Palette()) {
				return fmt.Errorf("no template at index %d", index)
			}
			st.DeletePaletteTemplate(index)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s template %d\n", color.RedString("deleted"), index)
			return nil
		},
	}

	parent.AddCommand(cmd)
}
