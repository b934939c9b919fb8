// ABOUTME: Project facade: CRUD pass-throughs over /projects
// ABOUTME: No validation, merging or caching happens here

package service

import (
	"context"

	"github.com/markalston/projecthub-cli/internal/client"
	"github.com/markalston/projecthub-cli/internal/models"
)

// Projects wraps the /projects endpoints
type Projects struct {
	client *client.Client
}

// NewProjects creates a project facade
func NewProjects(c *client.Client) *Projects {
	return &Projects{client: c}
}

// GetAll calls GET /projects. A missing list is returned as empty.
func (p *Projects) GetAll(ctx context.Context) (*models.ProjectList, error) {
	env, err := p.client.Get(ctx, "/projects")
	if err != nil {
		return nil, err
	}
	list, err := client.DecodeData[models.ProjectList](env)
	if err != nil {
		return nil, err
	}
	if list.Projects == nil {
		list.Projects = []models.Project{}
	}
	return &list, nil
}

// GetByID calls GET /projects/:id
func (p *Projects) GetByID(ctx context.Context, id string) (models.Payload, error) {
	return payload(p.client.Get(ctx, projectPath(id)))
}

// Create calls POST /projects with in as the exact body
func (p *Projects) Create(ctx context.Context, in models.ProjectInput) (models.Payload, error) {
	return payload(p.client.Post(ctx, "/projects", in))
}

// Update calls PUT /projects/:id
func (p *Projects) Update(ctx context.Context, id string, in models.ProjectUpdate) (models.Payload, error) {
	return payload(p.client.Put(ctx, projectPath(id), in))
}

// Delete calls DELETE /projects/:id
func (p *Projects) Delete(ctx context.Context, id string) (models.Payload, error) {
	return payload(p.client.Delete(ctx, projectPath(id)))
}
