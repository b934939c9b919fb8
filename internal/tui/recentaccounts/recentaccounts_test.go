// ABOUTME: Tests for recent login email storage
// ABOUTME: Validates config storage, max limit and deduplication

package recentaccounts

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmpty(t *testing.T) {
	a := New(t.TempDir())

	emails, err := a.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(emails) != 0 {
		t.Errorf("expected empty list, got %v", emails)
	}
	if a.Latest() != "" {
		t.Error("expected no latest email")
	}
}

func TestAddAndReload(t *testing.T) {
	dir := t.TempDir()
	a := New(dir)

	if err := a.Add("ana@example.com"); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if err := a.Add("bo@example.com"); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	reloaded := New(dir)
	emails, err := reloaded.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(emails) != 2 || emails[0] != "bo@example.com" || emails[1] != "ana@example.com" {
		t.Errorf("unexpected order %v", emails)
	}

	info, err := os.Stat(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected mode 0600, got %o", perm)
	}
}

func TestAddDeduplicates(t *testing.T) {
	a := New(t.TempDir())
	_ = a.Add("ana@example.com")
	_ = a.Add("bo@example.com")
	_ = a.Add("ANA@example.com")

	list := a.List()
	if len(list) != 2 {
		t.Fatalf("expected 2 emails, got %v", list)
	}
	if list[0] != "ANA@example.com" {
		t.Errorf("expected re-added email first, got %q", list[0])
	}
}

func TestMaxAccounts(t *testing.T) {
	a := New(t.TempDir())
	for i := range MaxAccounts + 3 {
		_ = a.Add(fmt.Sprintf("user%d@example.com", i))
	}

	if got := len(a.List()); got != MaxAccounts {
		t.Errorf("expected %d emails, got %d", MaxAccounts, got)
	}
	if a.Latest() != fmt.Sprintf("user%d@example.com", MaxAccounts+2) {
		t.Errorf("unexpected latest %q", a.Latest())
	}
}

func TestCorruptFileStartsFresh(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("{nope"), 0600); err != nil {
		t.Fatal(err)
	}

	emails, err := New(dir).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(emails) != 0 {
		t.Errorf("expected empty list, got %v", emails)
	}
}

func TestEmptyDirDisablesPersistence(t *testing.T) {
	a := New("")
	if err := a.Add("ana@example.com"); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if a.Latest() != "ana@example.com" {
		t.Errorf("expected in-memory list, got %q", a.Latest())
	}
}
