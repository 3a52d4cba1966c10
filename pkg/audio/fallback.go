package audio

import (
	"log/slog"
	"sync"

	"github.com/borgmon/sticky-alarm/pkg/logger"
)

// Alert is anything that can ring and be silenced
type Alert interface {
	Start(ringtone string) error
	Stop() error
}

// Fallback rings primary and switches to secondary for good once primary
// fails to start, so a missing audio device still leaves a visible alert.
type Fallback struct {
	mu        sync.Mutex
	primary   Alert
	secondary Alert
	failed    bool
	log       *slog.Logger
}

func NewFallback(primary, secondary Alert, log *slog.Logger) *Fallback {
	if log == nil {
		log = slog.Default()
	}
	return &Fallback{primary: primary, secondary: secondary, log: log}
}

func (f *Fallback) current() (Alert, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failed {
		return f.secondary, true
	}
	return f.primary, false
}

func (f *Fallback) Start(ringtone string) error {
	if a, failed := f.current(); failed {
		return a.Start(ringtone)
	}

	err := f.primary.Start(ringtone)
	if err == nil {
		return nil
	}

	f.mu.Lock()
	f.failed = true
	f.mu.Unlock()
	f.log.Warn("audio alert failed, falling back", logger.Err(err))
	return f.secondary.Start(ringtone)
}

func (f *Fallback) Stop() error {
	a, _ := f.current()
	return a.Stop()
}
