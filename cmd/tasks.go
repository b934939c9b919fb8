// ABOUTME: Task commands: list, create, update and delete within a project
// ABOUTME: Task bodies are passed to the backend as given via --data or --set

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/markalston/projecthub-cli/internal/models"
	"github.com/markalston/projecthub-cli/internal/service"
	"github.com/markalston/projecthub-cli/internal/validation"
	"github.com/spf13/cobra"
)

var (
	taskData   string
	taskFields map[string]string
)

var tasksCmd = &cobra.Command{
	Use:     "tasks",
	Aliases: []string{"task"},
	Short:   "Manage tasks of a project",
}

var tasksListCmd = &cobra.Command{
	Use:   "list <project-id>",
	Short: "List the tasks of a project",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()
		exit(runTasksList(ctx, newServices(), os.Stdout, args[0]))
	},
}

var tasksCreateCmd = &cobra.Command{
	Use:   "create <project-id>",
	Short: "Create a task",
	Example: `  projecthub tasks create 42 --set title="Write docs" --set status=pending
  projecthub tasks create 42 --data '{"title":"Write docs","priority":2}'`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()
		in, err := buildTaskInput(taskData, taskFields)
		if err != nil {
			exit(reportError(os.Stdout, err))
		}
		exit(runTasksCreate(ctx, newServices(), os.Stdout, args[0], in))
	},
}

var tasksUpdateCmd = &cobra.Command{
	Use:   "update <project-id> <task-id>",
	Short: "Update a task",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()
		in, err := buildTaskInput(taskData, taskFields)
		if err != nil {
			exit(reportError(os.Stdout, err))
		}
		exit(runTasksUpdate(ctx, newServices(), os.Stdout, args[0], args[1], in))
	},
}

var tasksDeleteCmd = &cobra.Command{
	Use:   "delete <project-id> <task-id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()
		exit(runTasksDelete(ctx, newServices(), os.Stdout, args[0], args[1]))
	},
}

func init() {
	rootCmd.AddCommand(tasksCmd)
	tasksCmd.AddCommand(tasksListCmd, tasksCreateCmd, tasksUpdateCmd, tasksDeleteCmd)

	for _, c := range []*cobra.Command{tasksCreateCmd, tasksUpdateCmd} {
		c.Flags().StringVar(&taskData, "data", "", "Task body as a JSON object")
		c.Flags().StringToStringVar(&taskFields, "set", nil, "Task field as key=value (repeatable, applied after --data)")
	}
}

// buildTaskInput merges a JSON body with key=value overrides
func buildTaskInput(data string, fields map[string]string) (models.TaskInput, error) {
	in := models.TaskInput{}
	if data != "" {
		parsed, err := models.ParseTaskInput(data)
		if err != nil {
			return nil, &validation.Error{Field: "data", Message: "--data must be a JSON object: " + err.Error()}
		}
		in = parsed
	}
	for k, v := range fields {
		in[k] = v
	}
	if len(in) == 0 {
		return nil, &validation.Error{Field: "data", Message: "task body is empty: pass --data or --set"}
	}
	return in, nil
}

func runTasksList(ctx context.Context, svc *service.Services, w io.Writer, projectID string) int {
	if !requireSession(svc, w) {
		return exitAuth
	}
	defer watchSession(svc, w)()

	list, err := svc.Tasks.GetByProject(ctx, projectID)
	if err != nil {
		return reportError(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, list)
	} else {
		fmt.Fprintln(w, formatTasksTable(list.Tasks))
	}
	return exitOK
}

func runTasksCreate(ctx context.Context, svc *service.Services, w io.Writer, projectID string, in models.TaskInput) int {
	if !requireSession(svc, w) {
		return exitAuth
	}
	defer watchSession(svc, w)()

	data, err := svc.Tasks.Create(ctx, projectID, in)
	if err != nil {
		return reportError(w, err)
	}
	if !IsJSONOutput() {
		fmt.Fprintf(w, "Created task in project %s\n", projectID)
	}
	printPayload(w, data)
	return exitOK
}

func runTasksUpdate(ctx context.Context, svc *service.Services, w io.Writer, projectID, taskID string, in models.TaskInput) int {
	if !requireSession(svc, w) {
		return exitAuth
	}
	defer watchSession(svc, w)()

	data, err := svc.Tasks.Update(ctx, projectID, taskID, in)
	if err != nil {
		return reportError(w, err)
	}
	if !IsJSONOutput() {
		fmt.Fprintf(w, "Updated task %s\n", taskID)
	}
	printPayload(w, data)
	return exitOK
}

func runTasksDelete(ctx context.Context, svc *service.Services, w io.Writer, projectID, taskID string) int {
	if !requireSession(svc, w) {
		return exitAuth
	}
	defer watchSession(svc, w)()

	data, err := svc.Tasks.Delete(ctx, projectID, taskID)
	if err != nil {
		return reportError(w, err)
	}
	if IsJSONOutput() {
		printPayload(w, data)
	} else {
		fmt.Fprintf(w, "Deleted task %s\n", taskID)
	}
	return exitOK
}

// formatTasksTable renders the common task fields; anything else is in --json
func formatTasksTable(tasks []models.Task) string {
	if len(tasks) == 0 {
		return "No tasks yet"
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "STATUS", "ASSIGNEE")
	for _, task := range tasks {
		title := task.Field("title")
		if title == "" {
			title = task.Field("name")
		}
		t.Row(task.ID(), title, task.Field("status"), task.Field("assignedTo"))
	}
	return t.String()
}
