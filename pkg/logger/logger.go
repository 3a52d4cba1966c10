package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/borgmon/sticky-alarm/pkg/logger/slogpretty"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// Logger -.
type Logger struct {
	*slog.Logger
}

// New builds a logger writing to stderr. Unknown environments fall back to
// the pretty handler.
func New(level, env string) *Logger {
	return NewWithWriter(os.Stderr, level, env)
}

// NewWithWriter is New with an explicit destination
func NewWithWriter(w io.Writer, level, env string) *Logger {
	lev := ParseLevel(level)

	var logger *slog.Logger

	switch env {
	case EnvDev:
		logger = slog.New(
			slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lev}),
		)
	case EnvProd:
		logger = slog.New(
			slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		logger = setupPrettySlog(w, lev)
	}

	return &Logger{logger}
}

// ParseLevel maps a level name to a slog level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "error":
		return slog.LevelError
	case "warn":
		return slog.LevelWarn
	case "debug":
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

func setupPrettySlog(w io.Writer, level slog.Level) *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: level,
		},
	}

	handler := opts.NewPrettyHandler(w)

	return slog.New(handler)
}

// Discard returns a logger that drops every record
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{Key: "error", Value: slog.StringValue("<nil>")}
	}
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
