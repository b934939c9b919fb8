// ABOUTME: Dashboard command for projecthub CLI
// ABOUTME: Loads projects and profile statistics together and prints a summary

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/markalston/projecthub-cli/internal/models"
	"github.com/markalston/projecthub-cli/internal/service"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show statistics and projects for the current user",
	Long: `Fetch the project list and profile statistics concurrently. If either request
fails nothing is printed but the error.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()
		exit(runDashboard(ctx, newServices(), os.Stdout))
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

// runDashboard loads and prints the dashboard, returns exit code
func runDashboard(ctx context.Context, svc *service.Services, w io.Writer) int {
	if !requireSession(svc, w) {
		return exitAuth
	}
	defer watchSession(svc, w)()

	d, err := service.LoadDashboard(ctx, svc.Auth, svc.Projects)
	if err != nil {
		return reportError(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, d)
	} else {
		fmt.Fprintln(w, formatDashboardHuman(d))
	}
	return exitOK
}

// formatDashboardHuman formats the dashboard for the terminal
func formatDashboardHuman(d *service.Dashboard) string {
	var sb strings.Builder

	if d.User != nil && d.User.Name != "" {
		fmt.Fprintf(&sb, "Hi, %s\n", firstName(d.User.Name))
	}
	sb.WriteString("Summary of your projects and tasks\n\n")
	sb.WriteString(formatStatistics(d.Statistics))
	sb.WriteString("\n\n")

	fmt.Fprintf(&sb, "My Projects (%d)\n", len(d.Projects))
	if d.IsEmpty() {
		sb.WriteString("\nNo projects yet\nCreate your first project with 'projecthub projects create --name <name>'")
		return sb.String()
	}
	for _, p := range d.Projects {
		sb.WriteString("\n")
		sb.WriteString(formatProjectCard(p))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// formatStatistics formats the four profile counters
func formatStatistics(s models.Statistics) string {
	return fmt.Sprintf(`Total projects:   %d
Active projects:  %d
Completed:        %d
Total tasks:      %d`, s.TotalProjects, s.ActiveProjects, s.CompletedProjects, s.TotalTasks)
}

// formatProjectCard formats one project entry of the dashboard list
func formatProjectCard(p models.Project) string {
	description := p.Description
	if description == "" {
		description = "No description"
	}
	return fmt.Sprintf(`  %s %s [%s]
    %s
    members: %d  tasks: %d  created: %s
`, statusMarker(p.Status), p.Name, roleLabel(p), description, memberCount(p), p.TaskCount, createdLabel(p))
}

// statusMarker distinguishes active from completed projects
func statusMarker(status string) string {
	if status == models.StatusCompleted {
		return "✓"
	}
	return "●"
}

// firstName returns the first word of a display name
func firstName(name string) string {
	if fields := strings.Fields(name); len(fields) > 0 {
		return fields[0]
	}
	return name
}
