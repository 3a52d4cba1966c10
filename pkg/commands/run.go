package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/borgmon/sticky-alarm/pkg/audio"
	"github.com/borgmon/sticky-alarm/pkg/geometry"
	"github.com/borgmon/sticky-alarm/pkg/models"
	"github.com/borgmon/sticky-alarm/pkg/scheduler"
)

func addRun(topLevel *cobra.Command, e *env) {
	sound := ""
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Ring alarms from the terminal until interrupted. Press Enter to dismiss.",
		Example: `
sticky-alarm run
STICKY_ALARM_MUTE=true sticky-alarm run
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			st, err := e.openStore()
			if err != nil {
				return err
			}
			alert, err := e.alert(sound, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			sched := scheduler.New(st, alert, nil, e.log.Logger)
			out := cmd.OutOrStdout()
			sched.Subscribe(func(a models.Alarm, ringing bool) {
				if !ringing {
					return
				}
				label := a.Text
				if label == "" {
					label = "Alarm"
				}
				_, _ = fmt.Fprintf(out, "%s %s, press Enter to dismiss\n",
					color.New(color.Bold).Sprint(geometry.FormatClock(a.Time, false)), label)
			})

			_, _ = fmt.Fprintf(out, "watching %d alarms, Ctrl+C to quit\n", len(st.Alarms()))
			return runScheduler(ctx, sched, cmd.InOrStdin())
		},
	}

	cmd.Flags().StringVar(&sound, "sound", "", "16 bit WAV file played instead of the built-in ringtones.")

	topLevel.AddCommand(cmd)
}

// alert picks the audio device, falling back to the terminal bell
func (e *env) alert(sound string, w io.Writer) (scheduler.Alert, error) {
	bell := audio.NewBell(w)
	if e.settings.Mute {
		return bell, nil
	}
	engine, err := audio.NewEngine(sound, e.log.Logger)
	if err != nil {
		return nil, err
	}
	return audio.NewFallback(engine, bell, e.log.Logger), nil
}

// runScheduler runs sched until ctx is done; every line read from in
// dismisses the ringing alarm
func runScheduler(ctx context.Context, sched *scheduler.Scheduler, in io.Reader) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return sched.Run(ctx)
	})

	lines := make(chan struct{})
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- struct{}{}:
			case <-ctx.Done():
				return
			}
		}
	}()

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-lines:
				sched.Dismiss()
			}
		}
	})

	return g.Wait()
}
