// Package scheduler raises the ringing signal when the wall clock reaches
// an alarm's minute and weekday.
package scheduler

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/borgmon/sticky-alarm/pkg/logger"
	"github.com/borgmon/sticky-alarm/pkg/models"
)

// State of the ringing engine
type State int

const (
	Idle State = iota
	Ringing
	Silencing // dismissal in progress, collapses into Idle
)

func (s State) String() string {
	switch s {
	case Ringing:
		return "ringing"
	case Silencing:
		return "silencing"
	default:
		return "idle"
	}
}

const (
	tickInterval = time.Second

	// a tick landing up to this second of the minute still evaluates it
	graceSeconds = 1
)

// Alert is the audible side of ringing. Start restarts cleanly when already
// started; Stop is idempotent.
type Alert interface {
	Start(ringtone string) error
	Stop() error
}

// AlarmSource is the part of the alarm store the scheduler needs
type AlarmSource interface {
	Alarms() []models.Alarm
	Alarm(id string) (models.Alarm, bool)
	DeleteAlarm(id string)
}

// Listener is told when ringing starts (true) or ends (false)
type Listener func(alarm models.Alarm, ringing bool)

// Scheduler is the ringing engine
type Scheduler struct {
	mu sync.Mutex

	store AlarmSource
	alert Alert
	clock Clock
	log   *slog.Logger

	state     State
	ringing   models.Alarm
	retrigger Ticker
	// bumped whenever retrigger is replaced so a late callback is ignored
	generation  uint64
	lastChecked time.Time

	listeners []Listener
}

// New creates an idle scheduler. A nil clock means the system clock.
func New(store AlarmSource, alert Alert, clock Clock, log *slog.Logger) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Scheduler{
		store: store,
		alert: alert,
		clock: clock,
		log:   log,
	}
}

// Subscribe registers fn for ringing transitions
func (s *Scheduler) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Scheduler) notify(alarm models.Alarm, ringing bool) {
	s.mu.Lock()
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(alarm, ringing)
	}
}

// State returns the current state
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Ringing returns the alarm currently alerting, if any
func (s *Scheduler) Ringing() (models.Alarm, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Ringing {
		return models.Alarm{}, false
	}
	return s.ringing.Clone(), true
}

// Run drives Tick once per second until ctx is done. An alarm still ringing
// at that point is silenced but kept.
func (s *Scheduler) Run(ctx context.Context) error {
	s.log.Info("scheduler started")

	s.Tick(s.clock.Now())
	ticker := s.clock.Every(tickInterval, func() {
		s.Tick(s.clock.Now())
	})
	defer ticker.Stop()

	<-ctx.Done()

	s.silence(false)
	s.log.Info("scheduler stopped")
	return nil
}

// Tick evaluates the store at most once per calendar minute, on the first
// tick at the start of that minute
func (s *Scheduler) Tick(now time.Time) {
	s.healStale()

	if now.Second() > graceSeconds {
		return
	}

	minute := now.Truncate(time.Minute)

	s.mu.Lock()
	if minute.Equal(s.lastChecked) {
		s.mu.Unlock()
		return
	}
	s.lastChecked = minute

	if s.state != Idle {
		s.mu.Unlock()
		return
	}

	alarm, ok := pick(s.store.Alarms(), now)
	if !ok {
		s.mu.Unlock()
		return
	}

	s.state = Ringing
	s.ringing = alarm
	s.generation++
	gen := s.generation
	s.startAlert(alarm)
	s.retrigger = s.clock.Every(tickInterval, func() { s.retriggerAlert(gen) })
	s.mu.Unlock()

	s.log.Info("alarm ringing",
		slog.String("id", alarm.ID),
		slog.String("text", alarm.Text),
		slog.Int("time", alarm.Time),
	)
	s.notify(alarm.Clone(), true)
}

// pick returns the matching alarm with the lowest id
func pick(alarms []models.Alarm, now time.Time) (models.Alarm, bool) {
	var best models.Alarm
	found := false
	for _, a := range alarms {
		if !a.Matches(now) {
			continue
		}
		if !found || strings.Compare(a.ID, best.ID) < 0 {
			best = a
			found = true
		}
	}
	return best, found
}

// startAlert must be called with s.mu held
func (s *Scheduler) startAlert(alarm models.Alarm) {
	if s.alert == nil {
		return
	}
	if err := s.alert.Start(alarm.Ringtone); err != nil {
		s.log.Warn("starting alert", slog.String("id", alarm.ID), logger.Err(err))
	}
}

func (s *Scheduler) retriggerAlert(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Ringing || gen != s.generation {
		return
	}
	// pick up edits made while ringing, such as a new ringtone
	if current, ok := s.store.Alarm(s.ringing.ID); ok {
		s.ringing = current
	}
	s.startAlert(s.ringing)
}

// Dismiss stops the ringing alarm. One-shot alarms are deleted from the
// store, recurring ones stay. Dismissing while idle does nothing.
func (s *Scheduler) Dismiss() {
	if alarm, ok := s.silence(true); ok {
		s.log.Info("alarm dismissed", slog.String("id", alarm.ID), slog.Bool("one_shot", alarm.IsOneShot()))
	}
}

// healStale silences an alarm that vanished from the store while ringing
func (s *Scheduler) healStale() {
	s.mu.Lock()
	if s.state != Ringing {
		s.mu.Unlock()
		return
	}
	id := s.ringing.ID
	s.mu.Unlock()

	if _, ok := s.store.Alarm(id); ok {
		return
	}
	if alarm, ok := s.silence(false); ok {
		s.log.Info("ringing alarm was removed, silenced", slog.String("id", alarm.ID))
	}
}

// silence runs the Ringing -> Silencing -> Idle transition. The retrigger
// is cancelled exactly once since only the caller that leaves Ringing gets
// the ticker.
func (s *Scheduler) silence(deleteOneShot bool) (models.Alarm, bool) {
	s.mu.Lock()
	if s.state != Ringing {
		s.mu.Unlock()
		return models.Alarm{}, false
	}
	s.state = Silencing
	alarm := s.ringing
	retrigger := s.retrigger
	s.retrigger = nil
	s.generation++
	s.mu.Unlock()

	if retrigger != nil {
		retrigger.Stop()
	}
	if s.alert != nil {
		if err := s.alert.Stop(); err != nil {
			s.log.Warn("stopping alert", slog.String("id", alarm.ID), logger.Err(err))
		}
	}
	// repeat days may have changed while ringing
	if current, ok := s.store.Alarm(alarm.ID); ok {
		alarm = current
	}
	if deleteOneShot && alarm.IsOneShot() {
		s.store.DeleteAlarm(alarm.ID)
	}

	s.mu.Lock()
	s.state = Idle
	s.ringing = models.Alarm{}
	s.mu.Unlock()

	s.notify(alarm.Clone(), false)
	return alarm, true
}
