// Package logger provides structured logging configuration for the application.
// It configures log/slog with JSON output format and source location tracking.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup initializes the global slog logger with JSON output and source location.
func Setup(level slog.Level) {
	slog.SetDefault(New(os.Stdout, level))
}

// New builds a JSON logger writing to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		AddSource: true,
		Level:     level,
	})
	return slog.New(handler).With("service", "taskboard")
}

// ParseLevel converts a string log level to slog.Level.
// Valid values: "debug", "info", "warn", "error", in any case.
// Unrecognized values default to info level.
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
