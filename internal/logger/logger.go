// ABOUTME: Structured logging configuration using log/slog.
// ABOUTME: Provides Init() to configure default logger with level and format from environment.

package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Init configures the default slog logger based on environment variables.
// LOG_LEVEL: debug, info, warn, error (default: warn)
// LOG_FORMAT: text, json (default: text)
// A non-empty level argument overrides LOG_LEVEL.
func Init(w io.Writer, level string) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	format := strings.ToLower(os.Getenv("LOG_FORMAT"))

	opts := &slog.HandlerOptions{
		Level: Level(level),
	}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	l := slog.New(handler)
	slog.SetDefault(l)
	return l
}

// Level resolves level, falling back to LOG_LEVEL when it is empty
func Level(level string) slog.Level {
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	return parseLevel(level)
}

// parseLevel converts a string log level to slog.Level.
// The CLI stays quiet by default so command output is not interleaved with logs.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
