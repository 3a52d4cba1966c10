package commands

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borgmon/sticky-alarm/pkg/logger"
	"github.com/borgmon/sticky-alarm/pkg/models"
	"github.com/borgmon/sticky-alarm/pkg/scheduler"
	"github.com/borgmon/sticky-alarm/pkg/store"
)

func execute(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("STICKY_ALARM_DATA_DIR", dataDir)
	t.Setenv("STICKY_ALARM_LOG_LEVEL", "error")

	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", t.TempDir()}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func openStore(t *testing.T, dataDir string) *store.AlarmStore {
	t.Helper()
	return store.Open(store.NewDiskKV(dataDir), logger.Discard())
}

func TestAddAndList(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, dir, "add", "7:30", "wake", "up", "--days=weekdays", "--icon=Sun")
	require.NoError(t, err)
	assert.Contains(t, out, "07:30, Weekdays")

	_, err = execute(t, dir, "add", "9pm", "--color=violet")
	require.NoError(t, err)

	alarms := openStore(t, dir).Alarms()
	require.Len(t, alarms, 2)
	assert.Equal(t, "wake up", alarms[0].Text)
	assert.Equal(t, "Sun", alarms[0].Icon)
	assert.False(t, alarms[0].IsNew)
	assert.Equal(t, models.ColorHex("violet"), alarms[1].Color)
	assert.True(t, alarms[1].IsOneShot())

	out, err = execute(t, dir, "list", "--12h")
	require.NoError(t, err)
	assert.Contains(t, out, "7:30 AM")
	assert.Contains(t, out, "9:00 PM")
	assert.Contains(t, out, "violet")
	assert.Less(t, strings.Index(out, "7:30 AM"), strings.Index(out, "9:00 PM"))
}

func TestAddRejectsBadInput(t *testing.T) {
	dir := t.TempDir()

	for _, args := range [][]string{
		{"add", "25:00"},
		{"add", "8:00", "--color=nope"},
		{"add", "8:00", "--icon=Rocket"},
		{"add", "8:00", "--days=funday"},
		{"add", "8:00", "--ringtone=Kazoo"},
	} {
		_, err := execute(t, dir, args...)
		assert.Error(t, err, args)
	}
	assert.Empty(t, openStore(t, dir).Alarms())
}

func TestListEmpty(t *testing.T) {
	out, err := execute(t, t.TempDir(), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "no alarms")
}

func TestRmByPrefix(t *testing.T) {
	dir := t.TempDir()
	st := openStore(t, dir)
	a := st.AddAlarm(480, "#bef264", "", "")
	b := st.AddAlarm(600, "#bef264", "", "")

	_, err := execute(t, dir, "rm", a.ID[:10])
	require.NoError(t, err)

	alarms := openStore(t, dir).Alarms()
	require.Len(t, alarms, 1)
	assert.Equal(t, b.ID, alarms[0].ID)

	_, err = execute(t, dir, "rm", "zzzz")
	assert.Error(t, err)
}

func TestDaysPaintsLikeASwipe(t *testing.T) {
	dir := t.TempDir()
	a := openStore(t, dir).AddAlarm(480, "#bef264", "", "")

	out, err := execute(t, dir, "days", a.ID, "mon", "tue", "wed")
	require.NoError(t, err)
	assert.Contains(t, out, "Mon Tue Wed")

	// first day is set, so the whole swipe removes
	_, err = execute(t, dir, "days", a.ID, "tue", "wed", "fri")
	require.NoError(t, err)

	got, ok := openStore(t, dir).Alarm(a.ID)
	require.True(t, ok)
	assert.Equal(t, []models.Weekday{models.Mon}, got.RepeatDays)
}

func TestPaletteCommands(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, dir, "palette", "add", "gym", "--color=orange", "--icon=Dumbbell", "--at=0")
	require.NoError(t, err)

	palette := openStore(t, dir).Palette()
	require.Len(t, palette, len(models.DefaultPalette())+1)
	assert.Equal(t, models.PaletteNote{Color: models.ColorHex("orange"), Label: "gym", Icon: "Dumbbell"}, palette[0])

	out, err := execute(t, dir, "palette")
	require.NoError(t, err)
	assert.Contains(t, out, "gym")

	_, err = execute(t, dir, "palette", "rm", "0")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPalette(), openStore(t, dir).Palette())

	_, err = execute(t, dir, "palette", "rm", "99")
	assert.Error(t, err)
}

func TestExportImport(t *testing.T) {
	src := t.TempDir()
	st := openStore(t, src)
	a := st.AddAlarm(450, models.ColorHex("sky"), "standup", "Users")
	st.ToggleDay(a.ID, models.Mon)

	file := filepath.Join(t.TempDir(), "alarms.ics")
	out, err := execute(t, src, "export", file)
	require.NoError(t, err)
	assert.Contains(t, out, "exported 1 alarms")

	dst := t.TempDir()
	out, err = execute(t, dst, "import", file)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 1 alarms, 0 replaced")

	// importing again replaces by id
	out, err = execute(t, dst, "import", file)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 0 alarms, 1 replaced")

	alarms := openStore(t, dst).Alarms()
	require.Len(t, alarms, 1)
	assert.Equal(t, a.ID, alarms[0].ID)
	assert.Equal(t, 450, alarms[0].Time)
	assert.Equal(t, "standup", alarms[0].Text)
	assert.Equal(t, []models.Weekday{models.Mon}, alarms[0].RepeatDays)

	_, err = execute(t, dst, "import", filepath.Join(t.TempDir(), "missing.ics"))
	assert.Error(t, err)
}

func TestExportToStdout(t *testing.T) {
	dir := t.TempDir()
	openStore(t, dir).AddAlarm(480, "#bef264", "", "")

	out, err := execute(t, dir, "export", "-")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR"))
}

func TestVersion(t *testing.T) {
	out, err := execute(t, t.TempDir(), "version", "--short")
	require.NoError(t, err)
	assert.Contains(t, out, "dev")
}

type countingAlert struct {
	mu    sync.Mutex
	stops int
}

func (c *countingAlert) Start(string) error { return nil }
func (c *countingAlert) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stops++
	return nil
}

func TestRunSchedulerDismissesOnEnter(t *testing.T) {
	st := openStore(t, t.TempDir())
	a := st.AddAlarm(480, "#bef264", "", "")

	clock := scheduler.NewManualClock(time.Date(2024, 1, 2, 8, 0, 0, 0, time.Local))
	alert := &countingAlert{}
	sched := scheduler.New(st, alert, clock, logger.Discard())

	r, w := io.Pipe()
	defer func() { _ = w.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runScheduler(ctx, sched, r) }()

	require.Eventually(t, func() bool { return sched.State() == scheduler.Ringing }, time.Second, time.Millisecond)

	_, err := w.Write([]byte("\n"))
	require.NoError(t, err)
	require.Eventually(t, func() bool { return sched.State() == scheduler.Idle }, time.Second, time.Millisecond)

	_, ok := st.Alarm(a.ID)
	assert.False(t, ok, "dismissed one-shot removed")

	cancel()
	require.NoError(t, <-done)
}

func TestMuteUsesBell(t *testing.T) {
	e := &env{configDir: t.TempDir()}
	t.Setenv("STICKY_ALARM_MUTE", "true")
	t.Setenv("STICKY_ALARM_DATA_DIR", t.TempDir())
	require.NoError(t, e.load())

	var buf bytes.Buffer
	alert, err := e.alert("", &buf)
	require.NoError(t, err)
	require.NoError(t, alert.Start(models.DefaultRingtone))
	assert.Contains(t, buf.String(), "ringing")
}
