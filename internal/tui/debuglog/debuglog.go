// ABOUTME: Debug logger for the TUI that writes to a log file
// ABOUTME: Keeps slog output off the terminal while the alternate screen is active

package debuglog

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// FileName is the log file created under the config directory
const FileName = "debug.log"

var (
	logFile *os.File
	logger  = slog.New(slog.NewTextHandler(io.Discard, nil))
	mu      sync.Mutex
)

// Init opens configDir/debug.log. If configDir is empty, logging is disabled.
func Init(configDir string, level slog.Level) error {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()
	if configDir == "" {
		return nil
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(configDir, FileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}

	logFile = f
	logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return nil
}

// Logger returns the file logger, or a discarding logger before Init
func Logger() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Close closes the log file
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
}

func closeLocked() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Error logs an error with context
func Error(context string, err error) {
	if err == nil {
		return
	}
	Logger().Error(context, "error", err)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	Logger().Warn(msg, args...)
}

// Info logs an informational message
func Info(msg string, args ...any) {
	Logger().Info(msg, args...)
}
