package ui

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/borgmon/sticky-alarm/pkg/audio"
	"github.com/borgmon/sticky-alarm/pkg/calendar"
	"github.com/borgmon/sticky-alarm/pkg/logger"
	"github.com/borgmon/sticky-alarm/pkg/models"
	"github.com/borgmon/sticky-alarm/pkg/platform"
)

var storageOptions = []string{"Data folder", "App preferences"}

type settingsWindow struct {
	app    *App
	window fyne.Window

	autoStartCheck  *widget.Check
	twelveHourCheck *widget.Check
	storageSelect   *widget.Select
	holdSelect      *widget.Select
	soundEntry      *widget.Entry

	saveStatusLabel *widget.Label
	saveButton      *widget.Button
}

func (u *App) showSettings() {
	// Already open, bring it to front
	if u.prefs != nil {
		u.prefs.window.Show()
		u.prefs.window.RequestFocus()
		return
	}

	u.prefs = newSettingsWindow(u)
	u.prefs.window.SetOnClosed(func() {
		u.prefs = nil
	})
	u.prefs.window.Show()
}

func newSettingsWindow(u *App) *settingsWindow {
	sw := &settingsWindow{app: u}
	sw.window = u.fyne.NewWindow("Sticky Alarm - Settings")
	sw.buildUI()
	return sw
}

func (sw *settingsWindow) buildUI() {
	tabs := container.NewAppTabs(
		container.NewTabItem("General", sw.buildGeneralTab()),
		container.NewTabItem("Alert", sw.buildAlertTab()),
		container.NewTabItem("Calendar", sw.buildCalendarTab()),
	)

	sw.saveStatusLabel = widget.NewLabel("")
	sw.saveButton = widget.NewButton("Save", sw.save)
	sw.saveButton.Importance = widget.HighImportance
	sw.saveButton.Disable()

	closeButton := widget.NewButton("Close", sw.handleClose)

	buttonRow := container.NewBorder(nil, nil,
		container.NewHBox(sw.saveButton, sw.saveStatusLabel),
		closeButton,
	)

	sw.window.SetContent(container.NewBorder(nil, container.NewPadded(buttonRow), nil, nil, tabs))
	sw.window.Resize(fyne.NewSize(640, 420))
	sw.window.CenterOnScreen()
	sw.window.SetCloseIntercept(sw.handleClose)
	sw.window.Canvas().SetOnTypedKey(func(key *fyne.KeyEvent) {
		if key.Name == fyne.KeyEscape {
			sw.handleClose()
		}
	})
}

func (sw *settingsWindow) buildGeneralTab() fyne.CanvasObject {
	cfg := sw.app.cfg

	sw.autoStartCheck = widget.NewCheck("Launch Sticky Alarm when you log in", func(bool) { sw.markChanged() })
	sw.autoStartCheck.SetChecked(cfg.AutoStart)

	sw.twelveHourCheck = widget.NewCheck("Show times as 8:00 AM", func(bool) { sw.markChanged() })
	sw.twelveHourCheck.SetChecked(cfg.TwelveHour)

	sw.storageSelect = widget.NewSelect(storageOptions, func(string) { sw.markChanged() })
	sw.storageSelect.SetSelected(storageLabel(cfg.Storage))
	storageHelp := widget.NewLabel("Alarms move to the new place after a restart.")
	storageHelp.Wrapping = fyne.TextWrapWord

	dataDir := widget.NewEntry()
	dataDir.SetText(sw.app.settings.DataDir)
	dataDir.Disable()
	openButton := widget.NewButton("Open in File Manager", func() {
		openInFileManager(sw.app, sw.app.settings.DataDir)
	})

	form := container.New(layout.NewFormLayout(),
		widget.NewLabel("Auto Start:"), sw.autoStartCheck,
		widget.NewLabel("Clock:"), sw.twelveHourCheck,
		widget.NewLabel("Storage:"), container.NewVBox(sw.storageSelect, storageHelp),
		widget.NewLabel("Data Folder:"), container.NewBorder(nil, openButton, nil, nil, dataDir),
	)

	return container.NewPadded(container.NewVScroll(form))
}

func (sw *settingsWindow) buildAlertTab() fyne.CanvasObject {
	cfg := sw.app.cfg

	holdOptions := []string{}
	for _, s := range []int{0, 1, 2, 3, 5, 10, 15, 30} {
		holdOptions = append(holdOptions, holdLabel(s))
	}
	sw.holdSelect = widget.NewSelect(holdOptions, func(string) { sw.markChanged() })
	sw.holdSelect.SetSelected(holdLabel(cfg.HoldTimeSeconds))

	sw.soundEntry = widget.NewEntry()
	sw.soundEntry.SetPlaceHolder("Built-in ringtones")
	sw.soundEntry.SetText(cfg.AlarmSound)
	sw.soundEntry.OnChanged = func(string) { sw.markChanged() }

	browse := widget.NewButtonWithIcon("", theme.FolderOpenIcon(), func() {
		open := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
			if err != nil || r == nil {
				return
			}
			_ = r.Close()
			sw.soundEntry.SetText(r.URI().Path())
		}, sw.window)
		open.SetFilter(storage.NewExtensionFileFilter([]string{".wav"}))
		open.Show()
	})
	test := widget.NewButtonWithIcon("", theme.MediaPlayIcon(), func() {
		// Only the running engine may touch the audio device
		if _, err := audio.NewEngine(sw.soundEntry.Text, sw.app.log); err != nil {
			dialog.ShowError(err, sw.window)
			return
		}
		engine := sw.app.engine
		if engine == nil || sw.soundEntry.Text != sw.app.cfg.AlarmSound {
			dialog.ShowInformation("Alarm Sound", "The file can be played. It is used after saving and restarting.", sw.window)
			return
		}
		if err := engine.Preview(models.DefaultRingtone); err != nil {
			dialog.ShowError(err, sw.window)
			return
		}
		time.AfterFunc(previewLength, func() { _ = engine.Stop() })
	})
	soundHelp := widget.NewLabel("A 16 bit WAV file played instead of the built-in ringtones.")
	soundHelp.Wrapping = fyne.TextWrapWord

	form := container.New(layout.NewFormLayout(),
		widget.NewLabel("Dismiss Hold:"), sw.holdSelect,
		widget.NewLabel("Alarm Sound:"), container.NewVBox(
			container.NewBorder(nil, nil, nil, container.NewHBox(browse, test), sw.soundEntry),
			soundHelp,
		),
	)

	return container.NewPadded(container.NewVScroll(form))
}

func (sw *settingsWindow) buildCalendarTab() fyne.CanvasObject {
	st := sw.app.board.Store()

	exportButton := widget.NewButtonWithIcon("Export .ics", theme.DownloadIcon(), func() {
		save := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
			if err != nil || w == nil {
				return
			}
			defer func() { _ = w.Close() }()
			alarms := st.Alarms()
			if err := calendar.Export(w, alarms, time.Now()); err != nil {
				dialog.ShowError(err, sw.window)
				return
			}
			dialog.ShowInformation("Export", fmt.Sprintf("Exported %d alarms.", len(alarms)), sw.window)
		}, sw.window)
		save.SetFileName("sticky-alarms.ics")
		save.Show()
	})

	importButton := widget.NewButtonWithIcon("Import .ics", theme.UploadIcon(), func() {
		open := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
			if err != nil || r == nil {
				return
			}
			defer func() { _ = r.Close() }()
			alarms, err := calendar.Import(r)
			if err != nil {
				dialog.ShowError(err, sw.window)
				return
			}
			added, replaced := st.ImportAlarms(alarms)
			dialog.ShowInformation("Import", fmt.Sprintf("Added %d alarms, replaced %d.", added, replaced), sw.window)
		}, sw.window)
		open.SetFilter(storage.NewExtensionFileFilter([]string{".ics"}))
		open.Show()
	})

	help := widget.NewLabel("Alarms are exported as repeating events. Daily and weekly events from other calendars keep their days, anything else becomes a one-time alarm.")
	help.Wrapping = fyne.TextWrapWord

	return container.NewPadded(container.NewVBox(help, container.NewHBox(exportButton, importButton)))
}

func (sw *settingsWindow) configFromUI() *models.Config {
	cfg := *sw.app.cfg
	cfg.AutoStart = sw.autoStartCheck.Checked
	cfg.TwelveHour = sw.twelveHourCheck.Checked
	cfg.Storage = storageValue(sw.storageSelect.Selected)
	cfg.HoldTimeSeconds = holdValue(sw.holdSelect.Selected, cfg.HoldTimeSeconds)
	cfg.AlarmSound = sw.soundEntry.Text
	cfg.Validate()
	return &cfg
}

func (sw *settingsWindow) hasChanges() bool {
	return *sw.configFromUI() != *sw.app.cfg
}

func (sw *settingsWindow) markChanged() {
	if sw.saveButton == nil {
		return
	}
	if sw.hasChanges() {
		sw.saveButton.Enable()
	} else {
		sw.saveButton.Disable()
	}
}

func (sw *settingsWindow) save() {
	u := sw.app
	next := sw.configFromUI()
	prev := *u.cfg

	if next.AutoStart != prev.AutoStart {
		if err := platform.SetAutostart(next.AutoStart, u.log); err != nil {
			u.log.Error("setting autostart", logger.Err(err))
			sw.saveStatusLabel.SetText("Error: Failed to set autostart")
			sw.saveStatusLabel.Importance = widget.DangerImportance
			sw.saveStatusLabel.Refresh()
			return
		}
	}

	*u.cfg = *next
	u.cfgStore.Save(u.cfg)

	if next.TwelveHour != prev.TwelveHour {
		u.main.setTwelveHour(next.TwelveHour)
	}
	if next.Storage != prev.Storage || next.AlarmSound != prev.AlarmSound {
		dialog.ShowInformation("Restart needed", "Storage and sound changes apply after Sticky Alarm restarts.", sw.window)
	}

	sw.saveButton.Disable()
	sw.saveStatusLabel.SetText("Settings saved")
	sw.saveStatusLabel.Importance = widget.SuccessImportance
	sw.saveStatusLabel.Refresh()

	time.AfterFunc(3*time.Second, func() {
		fyne.Do(func() {
			if sw.saveStatusLabel.Text == "Settings saved" {
				sw.saveStatusLabel.SetText("")
			}
		})
	})
}

// handleClose asks before dropping unsaved changes
func (sw *settingsWindow) handleClose() {
	if !sw.hasChanges() {
		sw.window.Close()
		return
	}
	dialog.ShowConfirm("Unsaved Changes",
		"You have unsaved changes. Are you sure you want to close?",
		func(confirmed bool) {
			if confirmed {
				sw.window.Close()
			}
		}, sw.window)
}

func storageLabel(value string) string {
	if value == models.StoragePreferences {
		return storageOptions[1]
	}
	return storageOptions[0]
}

func storageValue(label string) string {
	if label == storageOptions[1] {
		return models.StoragePreferences
	}
	return models.StorageDisk
}

func holdLabel(seconds int) string {
	if seconds == 0 {
		return "Off (click)"
	}
	return fmt.Sprintf("%d s", seconds)
}

func holdValue(label string, fallback int) int {
	if label == holdLabel(0) {
		return 0
	}
	var n int
	if _, err := fmt.Sscanf(label, "%d s", &n); err != nil {
		return fallback
	}
	return n
}

func openInFileManager(u *App, path string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("explorer", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	default:
		u.log.Warn("no file manager for this OS", slog.String("os", runtime.GOOS))
		return
	}

	if err := cmd.Start(); err != nil {
		u.log.Warn("opening file manager", logger.Err(err))
	}
}

