// ABOUTME: Dashboard component showing the user's statistics and projects
// ABOUTME: Renders stat blocks, completion progress and one card per project

package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/projecthub-cli/internal/models"
	"github.com/markalston/projecthub-cli/internal/service"
	"github.com/markalston/projecthub-cli/internal/tui/icons"
	"github.com/markalston/projecthub-cli/internal/tui/styles"
	"github.com/markalston/projecthub-cli/internal/tui/widgets"
)

const blockGap = 1

// Dashboard displays a loaded service.Dashboard
type Dashboard struct {
	data   *service.Dashboard
	width  int
	height int
}

// New creates a dashboard for data
func New(data *service.Dashboard, width, height int) *Dashboard {
	return &Dashboard{
		data:   data,
		width:  width,
		height: height,
	}
}

// Update replaces the rendered data after a refresh
func (d *Dashboard) Update(data *service.Dashboard) {
	d.data = data
}

// SetSize updates the dashboard dimensions
func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// View renders the dashboard
func (d *Dashboard) View() string {
	if d.data == nil {
		return styles.Subtitle.Render("Loading your projects...")
	}

	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Hi, " + firstName(d.data.User)))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render("Summary of your projects and tasks"))
	sb.WriteString("\n\n")

	sb.WriteString(d.renderStats())
	sb.WriteString("\n\n")
	sb.WriteString(d.renderCompletion())
	sb.WriteString("\n\n")

	sb.WriteString(styles.Title.Render(fmt.Sprintf("My Projects (%d)", len(d.data.Projects))))
	sb.WriteString("\n")
	if d.data.IsEmpty() {
		sb.WriteString(styles.Subtitle.Render("No projects yet. Press n to create one."))
	} else {
		cards := make([]string, 0, len(d.data.Projects))
		for _, p := range d.data.Projects {
			cards = append(cards, d.renderCard(p))
		}
		sb.WriteString(lipgloss.JoinVertical(lipgloss.Left, cards...))
	}

	style := lipgloss.NewStyle().Width(max(d.width, 1))
	if d.height > 0 {
		style = style.MaxHeight(d.height)
	}
	return style.Render(sb.String())
}

// renderStats lays out the four counters, wrapping to two rows on narrow panes
func (d *Dashboard) renderStats() string {
	stats := d.data.Statistics
	perRow := 4
	if d.width < 4*(widgets.DefaultMetricBlockConfig().Width+blockGap) {
		perRow = 2
	}

	cfg := widgets.DefaultMetricBlockConfig()
	cfg.Width = max(12, (d.width-blockGap*(perRow-1))/perRow)

	blocks := []string{
		widgets.CountBlock(icons.Target, stats.TotalProjects, "Total projects", cfg),
		widgets.CountBlock(icons.Clock, stats.ActiveProjects, "Active", cfg),
		widgets.CountBlock(icons.CheckOK, stats.CompletedProjects, "Completed", cfg),
		widgets.CountBlock(icons.Folder, stats.TotalTasks, "Total tasks", cfg),
	}

	gap := strings.Repeat(" ", blockGap)
	var rows []string
	for i := 0; i < len(blocks); i += perRow {
		row := make([]string, 0, perRow*2)
		for j, b := range blocks[i:min(i+perRow, len(blocks))] {
			if j > 0 {
				row = append(row, gap)
			}
			row = append(row, b)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (d *Dashboard) renderCompletion() string {
	stats := d.data.Statistics
	cfg := widgets.DefaultProgressBarConfig()
	cfg.Width = max(10, min(40, d.width-12))

	percent := widgets.Percent(stats.CompletedProjects, stats.TotalProjects)
	return styles.KeyStyle.Render("Completed projects") + "\n" + widgets.ProgressBarWithLabel(percent, cfg)
}

func (d *Dashboard) renderCard(p models.Project) string {
	title := fmt.Sprintf("%s %s %s", widgets.StatusDot(p.Status), lipgloss.NewStyle().Bold(true).Render(p.Name), widgets.RoleBadge(p))

	desc := p.Description
	if desc == "" {
		desc = "No description"
	}

	meta := fmt.Sprintf("%s %d members   %s %d tasks   %s %s",
		icons.Users, max(p.MemberCount, 1),
		icons.Folder, p.TaskCount,
		icons.Calendar, createdLabel(p))

	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		styles.Subtitle.Render(desc),
		styles.Help.Render(meta),
	)
	return styles.Card.Width(max(d.width-2, 20)).Render(body)
}

// firstName returns the first word of the user's name
func firstName(u *models.User) string {
	if u == nil {
		return "there"
	}
	if fields := strings.Fields(u.Name); len(fields) > 0 {
		return fields[0]
	}
	return "there"
}

func createdLabel(p models.Project) string {
	if t, ok := p.Created(); ok {
		return t.Format("Jan 2")
	}
	return p.CreatedAt
}
