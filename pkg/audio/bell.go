package audio

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

// Bell is the alert used without an audio device: it rings the terminal
// bell and prints a banner once per ringing period
type Bell struct {
	mu      sync.Mutex
	w       io.Writer
	ringing bool
}

func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

func (b *Bell) Start(ringtone string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.ringing {
		b.ringing = true
		if _, err := fmt.Fprintln(b.w, color.New(color.FgYellow, color.Bold).Sprintf("⏰ ringing (%s)", ringtone)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(b.w, "\a")
	return err
}

func (b *Bell) Stop() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ringing {
		b.ringing = false
		_, err := fmt.Fprintln(b.w, color.GreenString("alarm dismissed"))
		return err
	}
	return nil
}
