// ABOUTME: Tests for the TUI file logger
// ABOUTME: Verifies file creation, level filtering and the disabled state

package debuglog

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit_WritesToFile(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir, slog.LevelInfo); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer Close()

	Info("Dashboard loaded", "projects", 3)
	Error("Login failed", errors.New("Credenciales inválidas"))
	Logger().Debug("hidden")

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("expected log file: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "Dashboard loaded") || !strings.Contains(out, "projects=3") {
		t.Errorf("expected info entry, got:\n%s", out)
	}
	if !strings.Contains(out, "Credenciales inválidas") {
		t.Errorf("expected error entry, got:\n%s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Error("expected debug entry to be filtered at info level")
	}
}

func TestInit_EmptyDirDisables(t *testing.T) {
	if err := Init("", slog.LevelDebug); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	// Must not panic without a file
	Warn("nothing")
	Error("ignored", nil)
	Close()
}
