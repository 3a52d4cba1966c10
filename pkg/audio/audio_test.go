package audio

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borgmon/sticky-alarm/pkg/logger"
	"github.com/borgmon/sticky-alarm/pkg/models"
)

func buildWAV(t *testing.T, f Format, pcm []byte, extra bool) []byte {
	t.Helper()
	var body bytes.Buffer
	body.WriteString("WAVE")

	if extra {
		body.WriteString("LIST")
		binary.Write(&body, binary.LittleEndian, uint32(3))
		body.Write([]byte{1, 2, 3, 0}) // odd size plus pad byte
	}

	body.WriteString("fmt ")
	binary.Write(&body, binary.LittleEndian, uint32(16))
	binary.Write(&body, binary.LittleEndian, uint16(1))
	binary.Write(&body, binary.LittleEndian, uint16(f.Channels))
	binary.Write(&body, binary.LittleEndian, uint32(f.SampleRate))
	binary.Write(&body, binary.LittleEndian, uint32(f.SampleRate*f.Channels*f.BitDepth/8))
	binary.Write(&body, binary.LittleEndian, uint16(f.Channels*f.BitDepth/8))
	binary.Write(&body, binary.LittleEndian, uint16(f.BitDepth))

	body.WriteString("data")
	binary.Write(&body, binary.LittleEndian, uint32(len(pcm)))
	body.Write(pcm)

	var out bytes.Buffer
	out.WriteString("RIFF")
	binary.Write(&out, binary.LittleEndian, uint32(body.Len()))
	out.Write(body.Bytes())
	return out.Bytes()
}

func TestParseWAV(t *testing.T) {
	want := Format{SampleRate: 22050, Channels: 2, BitDepth: 16}
	pcm := []byte{1, 0, 2, 0, 3, 0, 4, 0}

	for _, extra := range []bool{false, true} {
		f, data, err := parseWAV(buildWAV(t, want, pcm, extra))
		require.NoError(t, err)
		assert.Equal(t, want, f)
		assert.Equal(t, pcm, data)
	}
}

func TestParseWAVRejects(t *testing.T) {
	_, _, err := parseWAV([]byte("not a wav file at all"))
	assert.ErrorIs(t, err, errNotWAV)

	_, _, err = parseWAV([]byte("RIF"))
	assert.Error(t, err)

	_, _, err = parseWAV(buildWAV(t, Format{SampleRate: 8000, Channels: 1, BitDepth: 8}, []byte{1, 2}, false))
	assert.ErrorContains(t, err, "bit depth")
}

func TestSynthesizeEveryRingtone(t *testing.T) {
	for _, r := range models.Ringtones {
		pcm := synthesize(patternFor(r.Name), DefaultFormat)
		require.NotEmpty(t, pcm, r.Name)
		assert.Zero(t, len(pcm)%2, r.Name)
		assert.Less(t, len(pcm), DefaultFormat.SampleRate*2, "%s fits in the one second retrigger", r.Name)
	}

	stereo := Format{SampleRate: 8000, Channels: 2, BitDepth: 16}
	pcm := synthesize([]note{{440, 100 * time.Millisecond}}, stereo)
	assert.Len(t, pcm, 800*4)
	for i := 0; i < len(pcm); i += 4 {
		assert.Equal(t, pcm[i:i+2], pcm[i+2:i+4], "both channels carry the same sample")
	}

	assert.Equal(t, patterns["Default"], patternFor("Removed Tune"))
}

func TestNewEngineSoundFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ring.wav")
	f := Format{SampleRate: 16000, Channels: 1, BitDepth: 16}
	require.NoError(t, os.WriteFile(path, buildWAV(t, f, []byte{9, 0, 8, 0}, false), 0o644))

	e, err := NewEngine(path, logger.Discard())
	require.NoError(t, err)
	assert.Equal(t, f, e.format)
	assert.Equal(t, []byte{9, 0, 8, 0}, e.pcm("Synth"))

	_, err = NewEngine(filepath.Join(t.TempDir(), "missing.wav"), logger.Discard())
	assert.Error(t, err)

	e, err = NewEngine("", logger.Discard())
	require.NoError(t, err)
	assert.Equal(t, DefaultFormat, e.format)
	assert.NoError(t, e.Stop(), "stop without start is fine")
}

func TestBell(t *testing.T) {
	var buf bytes.Buffer
	b := NewBell(&buf)

	require.NoError(t, b.Start("Synth"))
	require.NoError(t, b.Start("Synth"))
	require.NoError(t, b.Stop())
	require.NoError(t, b.Stop())

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "ringing (Synth)"))
	assert.Equal(t, 2, strings.Count(out, "\a"))
	assert.Equal(t, 1, strings.Count(out, "alarm dismissed"))
}

type brokenAlert struct{ starts, stops int }

func (b *brokenAlert) Start(string) error { b.starts++; return ErrNoDevice }
func (b *brokenAlert) Stop() error        { b.stops++; return nil }

func TestFallbackSwitchesOnFailure(t *testing.T) {
	var buf bytes.Buffer
	primary := &brokenAlert{}
	f := NewFallback(primary, NewBell(&buf), logger.Discard())

	require.NoError(t, f.Start(models.DefaultRingtone))
	require.NoError(t, f.Start(models.DefaultRingtone))
	require.NoError(t, f.Stop())

	assert.Equal(t, 1, primary.starts, "primary is not retried")
	assert.Zero(t, primary.stops)
	assert.Equal(t, 1, strings.Count(buf.String(), "ringing"))
	assert.Equal(t, 2, strings.Count(buf.String(), "\a"))
	assert.Contains(t, buf.String(), "alarm dismissed")
}
