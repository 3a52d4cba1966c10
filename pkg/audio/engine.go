// Package audio plays alarm sounds through the system audio device.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/mitchellh/go-homedir"

	"github.com/borgmon/sticky-alarm/pkg/logger"
)

// DefaultFormat is used for synthesized ringtones
var DefaultFormat = Format{SampleRate: 44100, Channels: 1, BitDepth: 16}

// ErrNoDevice is returned by Start when the audio device could not be opened
var ErrNoDevice = errors.New("audio device unavailable")

// Engine plays one ringtone at a time. The device is opened lazily on the
// first Start. oto allows one context per process, so create one Engine.
type Engine struct {
	mu sync.Mutex

	format Format
	custom []byte // PCM of the user's sound file, if any
	cache  map[string][]byte
	log    *slog.Logger

	ctxOnce sync.Once
	ctx     *oto.Context
	ctxErr  error

	player  *oto.Player
	playing string
}

// NewEngine prepares an engine. soundFile, when set, is a 16 bit PCM WAV
// played for every ringtone instead of the synthesized patterns.
func NewEngine(soundFile string, log *slog.Logger) (*Engine, error) {
	if log == nil {
		log = slog.Default()
	}
	e := &Engine{
		format: DefaultFormat,
		cache:  map[string][]byte{},
		log:    log,
	}
	if soundFile == "" {
		return e, nil
	}

	path, err := homedir.Expand(soundFile)
	if err != nil {
		return nil, fmt.Errorf("expanding sound file path: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sound file: %w", err)
	}
	format, pcm, err := parseWAV(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	e.format = format
	e.custom = pcm
	return e, nil
}

func (e *Engine) context() (*oto.Context, error) {
	e.ctxOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   e.format.SampleRate,
			ChannelCount: e.format.Channels,
			Format:       oto.FormatSignedInt16LE,
		}

		ctx, readyChan, err := oto.NewContext(op)
		if err != nil {
			e.ctxErr = fmt.Errorf("%w: %v", ErrNoDevice, err)
			return
		}

		// Wait for the hardware audio devices to be ready
		<-readyChan

		e.ctx = ctx
		e.log.Info("audio context initialized", slog.Int("sample_rate", e.format.SampleRate))
	})
	return e.ctx, e.ctxErr
}

// pcm returns the sound for a ringtone, synthesizing it on first use
func (e *Engine) pcm(ringtone string) []byte {
	if e.custom != nil {
		return e.custom
	}
	if data, ok := e.cache[ringtone]; ok {
		return data
	}
	data := synthesize(patternFor(ringtone), e.format)
	e.cache[ringtone] = data
	return data
}

// Start plays ringtone from the beginning. A custom sound file that is
// still playing is left to finish instead.
func (e *Engine) Start(ringtone string) error {
	ctx, err := e.context()
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.player != nil {
		if e.custom != nil && e.player.IsPlaying() {
			return nil
		}
		e.closePlayer()
	}

	e.player = ctx.NewPlayer(bytes.NewReader(e.pcm(ringtone)))
	e.player.Play()
	e.playing = ringtone
	return nil
}

// Stop silences playback; calling it when nothing plays is fine
func (e *Engine) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.player == nil {
		return nil
	}
	e.closePlayer()
	e.log.Debug("audio playback stopped")
	return nil
}

func (e *Engine) closePlayer() {
	e.player.Pause()
	if err := e.player.Close(); err != nil {
		e.log.Warn("closing audio player", logger.Err(err))
	}
	e.player = nil
	e.playing = ""
}

// Playing returns the ringtone started last, or "" once stopped
func (e *Engine) Playing() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playing
}

// Preview plays a ringtone once, for the editor's ringtone picker
func (e *Engine) Preview(ringtone string) error {
	return e.Start(ringtone)
}
