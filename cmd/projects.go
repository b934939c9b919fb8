// ABOUTME: Project commands: list, get, create, update and delete
// ABOUTME: Thin wrappers over the project facade with table or JSON output

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/markalston/projecthub-cli/internal/models"
	"github.com/markalston/projecthub-cli/internal/service"
	"github.com/markalston/projecthub-cli/internal/validation"
	"github.com/spf13/cobra"
)

var (
	projectName        string
	projectDescription string
	projectStatus      string

	updateName        string
	updateDescription string
	updateStatus      string
)

var projectsCmd = &cobra.Command{
	Use:     "projects",
	Aliases: []string{"project"},
	Short:   "Manage projects",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects visible to the current user",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()
		exit(runProjectsList(ctx, newServices(), os.Stdout))
	},
}

var projectsGetCmd = &cobra.Command{
	Use:   "get <project-id>",
	Short: "Show a project as returned by the backend",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()
		exit(runProjectsGet(ctx, newServices(), os.Stdout, args[0]))
	},
}

var projectsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a project",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()
		in := models.ProjectInput{Name: projectName, Description: projectDescription, Status: projectStatus}
		exit(runProjectsCreate(ctx, newServices(), os.Stdout, in))
	},
}

var projectsUpdateCmd = &cobra.Command{
	Use:   "update <project-id>",
	Short: "Update a project; only the flags given are sent",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()
		var in models.ProjectUpdate
		if cmd.Flags().Changed("name") {
			in.Name = updateName
		}
		if cmd.Flags().Changed("description") {
			in.Description = updateDescription
		}
		if cmd.Flags().Changed("status") {
			in.Status = updateStatus
		}
		exit(runProjectsUpdate(ctx, newServices(), os.Stdout, args[0], in))
	},
}

var projectsDeleteCmd = &cobra.Command{
	Use:   "delete <project-id>",
	Short: "Delete a project",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()
		exit(runProjectsDelete(ctx, newServices(), os.Stdout, args[0]))
	},
}

func init() {
	rootCmd.AddCommand(projectsCmd)
	projectsCmd.AddCommand(projectsListCmd, projectsGetCmd, projectsCreateCmd, projectsUpdateCmd, projectsDeleteCmd)

	projectsCreateCmd.Flags().StringVar(&projectName, "name", "", "Project name (required)")
	projectsCreateCmd.Flags().StringVar(&projectDescription, "description", "", "Project description")
	projectsCreateCmd.Flags().StringVar(&projectStatus, "status", models.StatusActive, "Project status: active or completed")

	projectsUpdateCmd.Flags().StringVar(&updateName, "name", "", "New project name")
	projectsUpdateCmd.Flags().StringVar(&updateDescription, "description", "", "New description")
	projectsUpdateCmd.Flags().StringVar(&updateStatus, "status", "", "New status: active or completed")
}

// exit terminates with code when non-zero
func exit(code int) {
	if code != exitOK {
		os.Exit(code)
	}
}

// runProjectsList prints the project list and returns exit code
func runProjectsList(ctx context.Context, svc *service.Services, w io.Writer) int {
	if !requireSession(svc, w) {
		return exitAuth
	}
	defer watchSession(svc, w)()

	list, err := svc.Projects.GetAll(ctx)
	if err != nil {
		return reportError(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, list)
	} else {
		fmt.Fprintln(w, formatProjectsTable(list.Projects))
	}
	return exitOK
}

func runProjectsGet(ctx context.Context, svc *service.Services, w io.Writer, id string) int {
	if !requireSession(svc, w) {
		return exitAuth
	}
	defer watchSession(svc, w)()

	data, err := svc.Projects.GetByID(ctx, id)
	if err != nil {
		return reportError(w, err)
	}
	printPayload(w, data)
	return exitOK
}

func runProjectsCreate(ctx context.Context, svc *service.Services, w io.Writer, in models.ProjectInput) int {
	if in.Status == "" {
		in.Status = models.StatusActive
	}
	if err := validation.Project(in); err != nil {
		return reportError(w, err)
	}
	if !requireSession(svc, w) {
		return exitAuth
	}
	defer watchSession(svc, w)()

	data, err := svc.Projects.Create(ctx, in)
	if err != nil {
		return reportError(w, err)
	}
	if !IsJSONOutput() {
		fmt.Fprintf(w, "Created project %q\n", in.Name)
	}
	printPayload(w, data)
	return exitOK
}

func runProjectsUpdate(ctx context.Context, svc *service.Services, w io.Writer, id string, in models.ProjectUpdate) int {
	if in == (models.ProjectUpdate{}) {
		return reportError(w, &validation.Error{Field: "name", Message: "nothing to update: pass --name, --description or --status"})
	}
	if err := validation.Status(in.Status); err != nil {
		return reportError(w, err)
	}
	if !requireSession(svc, w) {
		return exitAuth
	}
	defer watchSession(svc, w)()

	data, err := svc.Projects.Update(ctx, id, in)
	if err != nil {
		return reportError(w, err)
	}
	if !IsJSONOutput() {
		fmt.Fprintf(w, "Updated project %s\n", id)
	}
	printPayload(w, data)
	return exitOK
}

func runProjectsDelete(ctx context.Context, svc *service.Services, w io.Writer, id string) int {
	if !requireSession(svc, w) {
		return exitAuth
	}
	defer watchSession(svc, w)()

	data, err := svc.Projects.Delete(ctx, id)
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		printPayload(w, data)
	} else {
		fmt.Fprintf(w, "Deleted project %s\n", id)
	}
	return exitOK
}

// formatProjectsTable renders projects as a table
func formatProjectsTable(projects []models.Project) string {
	if len(projects) == 0 {
		return "No projects yet"
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "STATUS", "ROLE", "TASKS", "MEMBERS", "CREATED")
	for _, p := range projects {
		t.Row(
			p.ProjectID.String(),
			p.Name,
			p.Status,
			roleLabel(p),
			strconv.Itoa(p.TaskCount),
			strconv.Itoa(memberCount(p)),
			createdLabel(p),
		)
	}
	return t.String()
}

// roleLabel is the badge text for the user's role
func roleLabel(p models.Project) string {
	if p.IsOwner() {
		return "Owner"
	}
	return "Member"
}

// memberCount treats a missing count as the single owner
func memberCount(p models.Project) int {
	if p.MemberCount < 1 {
		return 1
	}
	return p.MemberCount
}

// createdLabel formats the creation date as "Jan 2", or the raw value if unparseable
func createdLabel(p models.Project) string {
	if t, ok := p.Created(); ok {
		return t.Format("Jan 2")
	}
	return p.CreatedAt
}
