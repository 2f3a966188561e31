// logging.go - Process-wide structured logger

package logging

import (
	"io"
	"log/slog"
	"strings"
)

// Service is attached to every record so log lines can be told apart
// when several processes share a collector.
const Service = "bibliotech"

// New builds a JSON logger writing to w at the given level.
func New(w io.Writer, level string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     ParseLevel(level),
		AddSource: true,
	})
	return slog.New(handler).With("service", Service)
}

// Init installs New(w, level) as the slog default and returns it.
func Init(w io.Writer, level string) *slog.Logger {
	logger := New(w, level)
	slog.SetDefault(logger)
	return logger
}

// ParseLevel maps a config string to a slog level, ignoring case.
// Unknown input falls back to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
