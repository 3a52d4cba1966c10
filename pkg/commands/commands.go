package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/borgmon/sticky-alarm/pkg/logger"
	"github.com/borgmon/sticky-alarm/pkg/settings"
	"github.com/borgmon/sticky-alarm/pkg/store"
	"github.com/borgmon/sticky-alarm/pkg/ui"
)

// env is what every command needs, loaded once before it runs
type env struct {
	configDir string
	settings  *settings.Settings
	log       *logger.Logger
}

func New() *cobra.Command {
	e := &env{}

	cmd := &cobra.Command{
		Use:   "sticky-alarm",
		Short: "Sticky note alarm clock: drag colored notes onto a 24 hour timeline.",
		Long: `Sticky note alarm clock.

Without a subcommand the desktop app opens. The subcommands manage the same
alarms from the terminal, and "run" rings them without a window.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.load()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return ui.Run(ui.Options{Settings: e.settings, Log: e.log.Logger})
		},
	}

	cmd.PersistentFlags().StringVar(&e.configDir, "config", "", "Directory holding .sticky-alarm.yaml.")

	AddCommands(cmd, e)
	return cmd
}

func AddCommands(topLevel *cobra.Command, e *env) {
	addList(topLevel, e)
	addAdd(topLevel, e)
	addRm(topLevel, e)
	addDays(topLevel, e)
	addPalette(topLevel, e)
	addExport(topLevel, e)
	addImport(topLevel, e)
	addRun(topLevel, e)
	addVersion(topLevel)
}

func (e *env) load() error {
	s, err := settings.Load(e.configDir)
	if err != nil {
		return err
	}
	e.settings = s
	e.log = logger.New(s.LogLevel, s.LogEnv)
	return nil
}

// openStore opens the alarm store in the data directory. The terminal
// always uses the disk backend.
func (e *env) openStore() (*store.AlarmStore, error) {
	if err := os.MkdirAll(e.settings.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	return store.Open(store.NewDiskKV(e.settings.DataDir), e.log.Logger), nil
}
