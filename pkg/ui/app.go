// Package ui is the fyne desktop front end: the timeline board, its editor,
// the full screen alert and the tray menu.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/borgmon/sticky-alarm/pkg/audio"
	"github.com/borgmon/sticky-alarm/pkg/board"
	"github.com/borgmon/sticky-alarm/pkg/dragdrop"
	"github.com/borgmon/sticky-alarm/pkg/geometry"
	"github.com/borgmon/sticky-alarm/pkg/logger"
	"github.com/borgmon/sticky-alarm/pkg/models"
	"github.com/borgmon/sticky-alarm/pkg/platform"
	"github.com/borgmon/sticky-alarm/pkg/scheduler"
	"github.com/borgmon/sticky-alarm/pkg/settings"
	"github.com/borgmon/sticky-alarm/pkg/store"
)

type Options struct {
	Settings *settings.Settings
	Log      *slog.Logger
}

// App ties the board to fyne windows
type App struct {
	fyne fyne.App
	log  *slog.Logger

	settings *settings.Settings
	cfgStore *store.ConfigStore
	cfg      *models.Config

	board  *board.Board
	engine *audio.Engine // nil when muted

	main  *mainWindow
	alert *alertWindow
	prefs *settingsWindow
}

// Run opens the board window and blocks until the app quits
func Run(opts Options) error {
	u, err := newApp(app.NewWithID(settings.AppID), opts)
	if err != nil {
		return err
	}
	return u.run()
}

func newApp(fa fyne.App, opts Options) (*App, error) {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}

	u := &App{
		fyne:     fa,
		log:      log,
		settings: opts.Settings,
		cfgStore: store.NewConfigStore(fa.Preferences()),
	}
	u.cfg = u.cfgStore.Load()

	kv, err := u.openKV()
	if err != nil {
		return nil, err
	}
	st := store.Open(kv, log)

	zoom := geometry.Compact
	if u.cfg.Expanded {
		zoom = geometry.Expanded
	}
	resolver := dragdrop.NewResolver(st, nil, log.With(slog.String("component", "dragdrop")))
	sched := scheduler.New(st, u.newAlert(), nil, log.With(slog.String("component", "scheduler")))
	u.board = board.New(st, resolver, sched, zoom)

	if err := platform.SetAutostart(u.cfg.AutoStart, log); err != nil {
		log.Warn("syncing autostart", logger.Err(err))
	}

	u.main = newMainWindow(u)

	st.Subscribe(func() {
		fyne.Do(u.refresh)
	})
	resolver.Subscribe(func(dragdrop.Preview) {
		fyne.Do(u.main.timeline.Refresh)
	})
	sched.Subscribe(func(a models.Alarm, ringing bool) {
		fyne.Do(func() {
			if ringing {
				u.showAlert(a)
			} else {
				u.closeAlert()
			}
			u.main.timeline.Refresh()
		})
	})
	u.board.OnZoom(func(z geometry.Zoom) {
		u.cfg.Expanded = z == geometry.Expanded
		u.cfgStore.Save(u.cfg)
	})

	u.setupSystemTray()
	return u, nil
}

// openKV picks the record backend named by the user config
func (u *App) openKV() (store.KV, error) {
	if u.cfg.Storage == models.StoragePreferences {
		return store.NewPrefsKV(u.fyne.Preferences()), nil
	}
	if err := os.MkdirAll(u.settings.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	return store.NewDiskKV(u.settings.DataDir), nil
}

// newAlert plays through the audio device and falls back to the terminal
// bell when there is none
func (u *App) newAlert() scheduler.Alert {
	bell := audio.NewBell(os.Stderr)
	if u.settings.Mute {
		return bell
	}

	engine, err := audio.NewEngine(u.cfg.AlarmSound, u.log)
	if err != nil {
		u.log.Warn("custom alarm sound ignored", slog.String("path", u.cfg.AlarmSound), logger.Err(err))
		engine, _ = audio.NewEngine("", u.log)
	}
	u.engine = engine
	return audio.NewFallback(engine, bell, u.log)
}

func (u *App) run() error {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- u.board.Scheduler().Run(ctx)
	}()

	u.fyne.Lifecycle().SetOnStarted(func() {
		platform.SetDockVisible(true)
	})
	u.main.Show()
	u.fyne.Run()

	cancel()
	return <-done
}

func (u *App) refresh() {
	u.main.refresh()
	u.updateSystemTrayMenu()
}

func (u *App) quit() {
	u.fyne.Quit()
}

func (u *App) isFocused(o fyne.Focusable) bool {
	return u.main != nil && u.main.window.Canvas().Focused() == o
}
