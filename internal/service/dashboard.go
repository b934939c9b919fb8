// ABOUTME: Dashboard loader fetching projects and profile concurrently
// ABOUTME: The first failure cancels the other request and aborts the load

package service

import (
	"context"

	"github.com/markalston/projecthub-cli/internal/models"
	"golang.org/x/sync/errgroup"
)

// Dashboard is everything the dashboard screen renders
type Dashboard struct {
	User       *models.User      `json:"user,omitempty"`
	Projects   []models.Project  `json:"projects"`
	Statistics models.Statistics `json:"statistics"`
}

// IsEmpty reports whether there are no projects to list
func (d *Dashboard) IsEmpty() bool {
	return len(d.Projects) == 0
}

// LoadDashboard issues GET /projects and GET /auth/me together and waits for both.
func LoadDashboard(ctx context.Context, auth *Auth, projects *Projects) (*Dashboard, error) {
	g, gctx := errgroup.WithContext(ctx)

	var list *models.ProjectList
	var profile *models.Profile

	g.Go(func() error {
		var err error
		list, err = projects.GetAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		profile, err = auth.Profile(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	d := &Dashboard{Projects: list.Projects}
	if profile.Statistics != nil {
		d.Statistics = *profile.Statistics
	}
	d.User = profile.User
	if d.User == nil {
		d.User = auth.CurrentUser()
	}
	return d, nil
}
