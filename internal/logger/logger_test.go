// ABOUTME: Tests for slog configuration
// ABOUTME: Verifies level parsing and output format selection

package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelWarn},
		{"bogus", slog.LevelWarn},
	}
	for _, tc := range tests {
		if got := parseLevel(tc.input); got != tc.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestInit_JSONFormat(t *testing.T) {
	t.Setenv("LOG_FORMAT", "json")
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	l := Init(&buf, "debug")
	l.Debug("Request completed", "status", 200)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q", buf.String())
	}
	if entry["msg"] != "Request completed" {
		t.Errorf("unexpected msg %v", entry["msg"])
	}
}

func TestInit_LevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_FORMAT", "")

	var buf bytes.Buffer
	l := Init(&buf, "")
	l.Warn("hidden")
	l.Error("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Error("expected warn to be filtered at error level")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("expected error to be logged")
	}
}

func TestLevel_ArgumentWinsOverEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")

	if got := Level("debug"); got != slog.LevelDebug {
		t.Errorf("Level(debug) = %v, want debug", got)
	}
	if got := Level(""); got != slog.LevelError {
		t.Errorf("Level(\"\") = %v, want error from env", got)
	}
}
