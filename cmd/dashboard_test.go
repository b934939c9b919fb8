// ABOUTME: Tests for the dashboard command
// ABOUTME: Verifies the summary, the empty state and all-or-nothing loading

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/markalston/projecthub-cli/internal/config"
	"github.com/markalston/projecthub-cli/internal/models"
	"github.com/markalston/projecthub-cli/internal/service"
	"github.com/markalston/projecthub-cli/internal/testutil"
)

func TestRunDashboard(t *testing.T) {
	b := testutil.NewBackend(t)
	svc, user := loggedIn(t, b)
	p := b.AddProject(user.Email, models.Project{Name: "Website", Description: "Marketing site"})
	b.AddProject(user.Email, models.Project{Name: "Archive", Status: models.StatusCompleted})
	b.AddTask(p.ProjectID.String(), models.Task{"title": "Hero banner"})

	var buf bytes.Buffer
	if code := runDashboard(context.Background(), svc, &buf); code != exitOK {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}

	out := buf.String()
	for _, want := range []string{
		"Hi, Ana",
		"Total projects:   2",
		"Active projects:  1",
		"Completed:        1",
		"Total tasks:      1",
		"My Projects (2)",
		"Website [Owner]",
		"Marketing site",
		"No description",
		"tasks: 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRunDashboard_Empty(t *testing.T) {
	b := testutil.NewBackend(t)
	svc, _ := loggedIn(t, b)

	var buf bytes.Buffer
	if code := runDashboard(context.Background(), svc, &buf); code != exitOK {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(buf.String(), "No projects yet") {
		t.Errorf("expected empty state, got:\n%s", buf.String())
	}
}

func TestRunDashboard_FailureShowsNothingPartial(t *testing.T) {
	b := testutil.NewBackend(t)
	svc, user := loggedIn(t, b)
	b.AddProject(user.Email, models.Project{Name: "Website"})
	b.Fail(http.MethodGet, "/auth/me", http.StatusInternalServerError, map[string]any{"success": false, "error": "boom"})

	var buf bytes.Buffer
	if code := runDashboard(context.Background(), svc, &buf); code != exitBackend {
		t.Errorf("expected exit 2, got %d", code)
	}
	out := buf.String()
	if strings.Contains(out, "Website") || strings.Contains(out, "Total projects") {
		t.Errorf("expected no partial dashboard, got:\n%s", out)
	}
	if !strings.Contains(out, "Error: boom") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestRunDashboard_JSON(t *testing.T) {
	b := testutil.NewBackend(t)
	svc, user := loggedIn(t, b)
	useConfig(t, &config.Config{APIURL: b.URL(), JSON: true})
	b.AddProject(user.Email, models.Project{Name: "Website"})

	var buf bytes.Buffer
	if code := runDashboard(context.Background(), svc, &buf); code != exitOK {
		t.Fatalf("expected exit 0, got %d", code)
	}
	var d service.Dashboard
	if err := json.Unmarshal(buf.Bytes(), &d); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(d.Projects) != 1 || d.Statistics.TotalProjects != 1 {
		t.Errorf("unexpected dashboard %+v", d)
	}
}

func TestFirstName(t *testing.T) {
	tests := map[string]string{
		"Ana García": "Ana",
		"Solo":       "Solo",
		"":           "",
	}
	for in, want := range tests {
		if got := firstName(in); got != want {
			t.Errorf("firstName(%q) = %q, want %q", in, got, want)
		}
	}
}
