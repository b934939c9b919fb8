// ABOUTME: Tests for the new-project form model
// ABOUTME: Verifies defaults, trimming and required name handling

package projectform

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/markalston/projecthub-cli/internal/models"
)

func TestSubmitDefaultsToActive(t *testing.T) {
	f := New()
	f.name = "  Website  "
	f.description = "Redesign"

	msg := f.submit()()
	sub, ok := msg.(SubmittedMsg)
	if !ok {
		t.Fatalf("expected SubmittedMsg, got %#v", msg)
	}
	want := models.ProjectInput{Name: "Website", Description: "Redesign", Status: models.StatusActive}
	if sub.Input != want {
		t.Errorf("got %+v, want %+v", sub.Input, want)
	}
}

func TestSubmitBlankNameRejected(t *testing.T) {
	f := New()
	f.name = "   "

	cmd := f.submit()
	if cmd != nil {
		if _, ok := cmd().(SubmittedMsg); ok {
			t.Fatal("blank name must not be submitted")
		}
	}
	if !strings.Contains(f.View(), "name is required") {
		t.Error("expected required error in view")
	}
}

func TestEscCancels(t *testing.T) {
	f := New()
	_, cmd := f.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := cmd().(CancelledMsg); !ok {
		t.Error("expected CancelledMsg")
	}
}
