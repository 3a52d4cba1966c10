package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel(" warn "))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestJSONEnvironment(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "debug", EnvDev)

	log.Info("alarm added", slog.String("id", "a1"), Err(errors.New("boom")))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "alarm added", rec["msg"])
	assert.Equal(t, "a1", rec["id"])
	assert.Equal(t, "boom", rec["error"])
}

func TestPrettyEnvironment(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info", EnvLocal).With(slog.String("component", "scheduler"))

	log.Debug("hidden")
	log.Warn("alert failed", slog.Int("attempt", 2))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "alert failed")
	assert.Contains(t, out, `"component": "scheduler"`)
	assert.Contains(t, out, `"attempt": 2`)
}
