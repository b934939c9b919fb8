// ABOUTME: Service facade over the ProjectHub HTTP client
// ABOUTME: Builds the client around an explicit session so 401s tear the session down

package service

import (
	"net/url"

	"github.com/markalston/projecthub-cli/internal/client"
	"github.com/markalston/projecthub-cli/internal/models"
	"github.com/markalston/projecthub-cli/internal/session"
)

// Services groups the auth, project and task facades sharing one client and session
type Services struct {
	Client   *client.Client
	Session  *session.Session
	Auth     *Auth
	Projects *Projects
	Tasks    *Tasks
}

// New wires a client to sess: the session supplies bearer tokens and is
// invalidated on any 401 response.
func New(baseURL string, sess *session.Session, opts ...client.Option) *Services {
	if sess == nil {
		sess = session.New(nil)
	}
	opts = append([]client.Option{
		client.WithTokenSource(sess),
		client.WithUnauthorizedHandler(sess.HandleUnauthorized),
	}, opts...)
	c := client.New(baseURL, opts...)

	return &Services{
		Client:   c,
		Session:  sess,
		Auth:     NewAuth(c, sess),
		Projects: NewProjects(c),
		Tasks:    NewTasks(c),
	}
}

// payload returns the raw envelope data
func payload(env *client.Envelope, err error) (models.Payload, error) {
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func projectPath(projectID string) string {
	return "/projects/" + url.PathEscape(projectID)
}

func tasksPath(projectID string) string {
	return projectPath(projectID) + "/tasks"
}

func taskPath(projectID, taskID string) string {
	return tasksPath(projectID) + "/" + url.PathEscape(taskID)
}
