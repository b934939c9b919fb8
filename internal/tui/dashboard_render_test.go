// ABOUTME: Test to verify dashboard screen renders with visible header/footer
// ABOUTME: Ensures project cards don't push the frame off screen

package tui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/projecthub-cli/internal/models"
	"github.com/markalston/projecthub-cli/internal/service"
)

func TestDashboardRendersWithHeader(t *testing.T) {
	app := newApp(t, nil)
	app.screen = ScreenDashboard
	app.loading = true

	data := &service.Dashboard{
		User:       &models.User{ID: models.NewID("1"), Name: "Ana García", Email: "ana@example.com"},
		Statistics: models.Statistics{TotalProjects: 6, ActiveProjects: 4, CompletedProjects: 2, TotalTasks: 30},
	}
	for i := range 6 {
		data.Projects = append(data.Projects, models.Project{
			ProjectID:   models.NewID(fmt.Sprint(i)),
			Name:        fmt.Sprintf("Project %d", i),
			Description: "A project with a fairly long description that should wrap inside its card",
			Status:      models.StatusActive,
			UserRole:    models.RoleOwner,
			TaskCount:   5,
			MemberCount: 2,
			CreatedAt:   "2026-01-15T09:00:00Z",
		})
	}

	app = send(app, dashboardLoadedMsg{data: data})
	if app.screen != ScreenDashboard {
		t.Fatalf("Expected ScreenDashboard, got %v", app.screen)
	}

	view := app.View()
	lines := strings.Split(view, "\n")

	headerLineIdx := -1
	footerLineIdx := -1
	for i, line := range lines {
		if strings.Contains(line, "╭─") && strings.Contains(line, "ProjectHub") && headerLineIdx == -1 {
			headerLineIdx = i
		}
		if strings.Contains(line, "╰─") && strings.Contains(line, "Refresh") {
			footerLineIdx = i
		}
	}

	if headerLineIdx != 0 {
		t.Errorf("Header should be at line 0, found at %d", headerLineIdx)
	}
	if footerLineIdx != len(lines)-1 {
		t.Errorf("Footer should be at last line, found at %d of %d", footerLineIdx, len(lines))
	}
	if len(lines) > 40 {
		t.Errorf("expected view to fit 40 rows, got %d", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w > 120 {
			t.Errorf("line %d overflows terminal: width %d", i, w)
		}
	}
	if !strings.Contains(lines[0], "Ana García") {
		t.Error("expected signed-in user in header")
	}
}
