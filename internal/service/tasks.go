// ABOUTME: Task facade: pass-throughs over /projects/:id/tasks
// ABOUTME: Task bodies are backend-defined and forwarded unchanged

package service

import (
	"context"

	"github.com/markalston/projecthub-cli/internal/client"
	"github.com/markalston/projecthub-cli/internal/models"
)

// Tasks wraps the task endpoints
type Tasks struct {
	client *client.Client
}

// NewTasks creates a task facade
func NewTasks(c *client.Client) *Tasks {
	return &Tasks{client: c}
}

// GetByProject calls GET /projects/:id/tasks
func (t *Tasks) GetByProject(ctx context.Context, projectID string) (*models.TaskList, error) {
	env, err := t.client.Get(ctx, tasksPath(projectID))
	if err != nil {
		return nil, err
	}
	list, err := client.DecodeData[models.TaskList](env)
	if err != nil {
		return nil, err
	}
	if list.Tasks == nil {
		list.Tasks = []models.Task{}
	}
	return &list, nil
}

// Create calls POST /projects/:id/tasks
func (t *Tasks) Create(ctx context.Context, projectID string, in models.TaskInput) (models.Payload, error) {
	return payload(t.client.Post(ctx, tasksPath(projectID), in))
}

// Update calls PUT /projects/:id/tasks/:taskId
func (t *Tasks) Update(ctx context.Context, projectID, taskID string, in models.TaskInput) (models.Payload, error) {
	return payload(t.client.Put(ctx, taskPath(projectID, taskID), in))
}

// Delete calls DELETE /projects/:id/tasks/:taskId
func (t *Tasks) Delete(ctx context.Context, projectID, taskID string) (models.Payload, error) {
	return payload(t.client.Delete(ctx, taskPath(projectID, taskID)))
}
