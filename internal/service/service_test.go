// ABOUTME: Tests for the auth, project and task facades
// ABOUTME: Runs against the fake backend and raw httptest servers

package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/markalston/projecthub-cli/internal/client"
	"github.com/markalston/projecthub-cli/internal/models"
	"github.com/markalston/projecthub-cli/internal/session"
	"github.com/markalston/projecthub-cli/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loggedIn returns services whose session holds a valid token for a fresh user
func loggedIn(t *testing.T, backend *testutil.Backend) (*Services, models.User) {
	t.Helper()
	user := backend.AddUser("Ana", "ana@uaq.mx", "secret1")
	sess := session.New(session.NewMemoryStore())
	require.NoError(t, sess.Establish(backend.IssueToken(user.Email), user))
	return New(backend.URL(), sess), user
}

func TestLogin_PersistsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success":true,"data":{"token":"T","user":{"id":1,"name":"A","email":"a@x.com"}}}`)
	}))
	defer server.Close()

	svc := New(server.URL, session.New(session.NewMemoryStore()))
	result, err := svc.Auth.Login(context.Background(), models.Credentials{Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, "T", result.Data.Token)

	assert.True(t, svc.Auth.IsAuthenticated())
	user := svc.Auth.CurrentUser()
	require.NotNil(t, user)
	assert.Equal(t, "1", user.ID.String())
	assert.Equal(t, "A", user.Name)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, session.Authenticated, svc.Session.State())
}

func TestLogin_KeepsStringIDsThatLookNumeric(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success":true,"data":{"token":"T","user":{"id":"007","name":"Bond","email":"b@x.com"}}}`)
	}))
	defer server.Close()

	store := session.NewMemoryStore()
	svc := New(server.URL, session.New(store))
	result, err := svc.Auth.Login(context.Background(), models.Credentials{Email: "b@x.com", Password: "pw"})
	require.NoError(t, err)
	require.True(t, result.Success)

	assert.True(t, svc.Auth.IsAuthenticated())
	user := svc.Auth.CurrentUser()
	require.NotNil(t, user)
	assert.Equal(t, "007", user.ID.String())

	reloaded := New(server.URL, session.New(store))
	again := reloaded.Auth.CurrentUser()
	require.NotNil(t, again)
	assert.Equal(t, *user, *again)

	data, err := json.Marshal(again)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"007","name":"Bond","email":"b@x.com"}`, string(data))
}

func TestLogin_InvalidCredentialsLeaveSessionAlone(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.AddUser("Ana", "ana@uaq.mx", "secret1")

	svc := New(backend.URL(), session.New(session.NewMemoryStore()))
	_, err := svc.Auth.Login(context.Background(), models.Credentials{Email: "ana@uaq.mx", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, "Credenciales inválidas", err.Error())
	assert.False(t, svc.Auth.IsAuthenticated())
	assert.Nil(t, svc.Auth.CurrentUser())
}

func TestLogin_BusinessFailureIsReturnedNotRaised(t *testing.T) {
	backend := testutil.NewBackend(t)
	svc, user := loggedIn(t, backend)
	backend.Fail(http.MethodPost, "/auth/login", http.StatusOK, map[string]any{
		"success": false,
		"error":   "Cuenta bloqueada",
	})

	before, err := svc.Session.Token()
	require.NoError(t, err)

	result, err := svc.Auth.Login(context.Background(), models.Credentials{Email: "x@y.z", Password: "pw"})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "Cuenta bloqueada", string(result.Error))

	after, err := svc.Session.Token()
	require.NoError(t, err)
	assert.Equal(t, before.AccessToken, after.AccessToken)
	assert.Equal(t, &user, svc.Auth.CurrentUser())
}

func TestLogin_SuccessWithoutTokenDoesNotPersist(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success":true,"data":{"user":{"id":1,"name":"A","email":"a@x.com"}}}`)
	}))
	defer server.Close()

	svc := New(server.URL, session.New(session.NewMemoryStore()))
	result, err := svc.Auth.Login(context.Background(), models.Credentials{})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.False(t, svc.Auth.IsAuthenticated())
	assert.Nil(t, svc.Auth.CurrentUser())
}

func TestRegister_PersistsSessionAndOmitsConfirmation(t *testing.T) {
	backend := testutil.NewBackend(t)
	svc := New(backend.URL(), session.New(session.NewMemoryStore()))

	result, err := svc.Auth.Register(context.Background(), models.RegisterInput{
		Name:     "Pedro López",
		Email:    "pedro@uaq.mx",
		Password: "secret1",
	})
	require.NoError(t, err)
	require.True(t, result.Success)

	assert.True(t, svc.Auth.IsAuthenticated())
	assert.Equal(t, "Pedro López", svc.Auth.CurrentUser().Name)
	assert.JSONEq(t, `{"name":"Pedro López","email":"pedro@uaq.mx","password":"secret1"}`, backend.LastRequest().Body)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.AddUser("Ana", "ana@uaq.mx", "secret1")
	svc := New(backend.URL(), session.New(session.NewMemoryStore()))

	_, err := svc.Auth.Register(context.Background(), models.RegisterInput{Name: "Ana", Email: "ana@uaq.mx", Password: "secret1"})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, client.StatusCode(err))
	assert.Equal(t, "El email ya está registrado", err.Error())
	assert.False(t, svc.Auth.IsAuthenticated())
}

func TestProfile_IncludesStatistics(t *testing.T) {
	backend := testutil.NewBackend(t)
	svc, user := loggedIn(t, backend)
	backend.AddProject(user.Email, models.Project{Name: "One"})
	backend.AddProject(user.Email, models.Project{Name: "Two", Status: models.StatusCompleted})

	profile, err := svc.Auth.Profile(context.Background())
	require.NoError(t, err)
	require.NotNil(t, profile.Statistics)
	assert.Equal(t, 2, profile.Statistics.TotalProjects)
	assert.Equal(t, 1, profile.Statistics.ActiveProjects)
	assert.Equal(t, 1, profile.Statistics.CompletedProjects)
	assert.Equal(t, "Bearer "+mustToken(t, svc), backend.LastRequest().Authorization)
}

func mustToken(t *testing.T, svc *Services) string {
	t.Helper()
	tok, err := svc.Session.Token()
	require.NoError(t, err)
	return tok.AccessToken
}

func TestLogout_IsIdempotentAndNotifies(t *testing.T) {
	backend := testutil.NewBackend(t)
	svc, _ := loggedIn(t, backend)

	events := 0
	svc.Session.OnInvalidated(func() { events++ })

	require.NoError(t, svc.Auth.Logout())
	require.NoError(t, svc.Auth.Logout())
	assert.False(t, svc.Auth.IsAuthenticated())
	assert.Nil(t, svc.Auth.CurrentUser())
	assert.Equal(t, 2, events)
	assert.Empty(t, backend.Requests(), "logout must not touch the network")
}

func TestUnauthorized_ClearsSessionFromAnyEndpoint(t *testing.T) {
	backend := testutil.NewBackend(t)
	user := backend.AddUser("Ana", "ana@uaq.mx", "secret1")
	sess := session.New(session.NewMemoryStore())
	require.NoError(t, sess.Establish("expired-token", user))
	svc := New(backend.URL(), sess)

	navigated := 0
	sess.OnInvalidated(func() { navigated++ })

	_, err := svc.Projects.GetByID(context.Background(), "some-project")
	require.Error(t, err)
	assert.True(t, client.IsUnauthorized(err))
	assert.False(t, sess.IsAuthenticated())
	assert.Nil(t, sess.CurrentUser())
	assert.Equal(t, 1, navigated)
}

func TestProjects_GetAllEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success":true,"data":{"projects":[]}}`)
	}))
	defer server.Close()

	list, err := New(server.URL, nil).Projects.GetAll(context.Background())
	require.NoError(t, err)
	require.NotNil(t, list.Projects)
	assert.Empty(t, list.Projects)
}

func TestProjects_GetAllMissingList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success":true,"data":{}}`)
	}))
	defer server.Close()

	list, err := New(server.URL, nil).Projects.GetAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list.Projects)
}

func TestProjects_CreatePostsExactBody(t *testing.T) {
	const created = `{"project":{"projectId":"p-1","name":"Lib System","description":"","status":"active","extra":{"nested":true}}}`
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/projects", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"success":true,"data":`+created+`}`)
	}))
	defer server.Close()

	out, err := New(server.URL, nil).Projects.Create(context.Background(), models.ProjectInput{
		Name:        "Lib System",
		Description: "",
		Status:      "active",
	})
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Lib System","description":"","status":"active"}`, gotBody)
	assert.Equal(t, created, string(out))
}

func TestProjects_CRUD(t *testing.T) {
	backend := testutil.NewBackend(t)
	svc, _ := loggedIn(t, backend)
	ctx := context.Background()

	out, err := svc.Projects.Create(ctx, models.ProjectInput{Name: "Lib System", Status: models.StatusActive})
	require.NoError(t, err)

	var created struct {
		Project models.Project `json:"project"`
	}
	require.NoError(t, json.Unmarshal(out, &created))
	id := created.Project.ProjectID.String()
	require.NotEmpty(t, id)

	list, err := svc.Projects.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, list.Projects, 1)
	assert.Equal(t, "Lib System", list.Projects[0].Name)
	assert.True(t, list.Projects[0].IsOwner())

	_, err = svc.Projects.Update(ctx, id, models.ProjectUpdate{Status: models.StatusCompleted})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"completed"}`, backend.LastRequest().Body)

	detail, err := svc.Projects.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Contains(t, string(detail), `"status":"completed"`)

	_, err = svc.Projects.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "/projects/"+id, backend.LastRequest().Path)

	_, err = svc.Projects.GetByID(ctx, id)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, client.StatusCode(err))
	assert.Equal(t, "Proyecto no encontrado", err.Error())
	assert.True(t, svc.Auth.IsAuthenticated(), "404 must not clear the session")
}

func TestTasks_CRUD(t *testing.T) {
	backend := testutil.NewBackend(t)
	svc, user := loggedIn(t, backend)
	ctx := context.Background()
	project := backend.AddProject(user.Email, models.Project{Name: "Lib System"})
	pid := project.ProjectID.String()

	list, err := svc.Tasks.GetByProject(ctx, pid)
	require.NoError(t, err)
	assert.Empty(t, list.Tasks)

	out, err := svc.Tasks.Create(ctx, pid, models.TaskInput{"title": "Catalogue", "priority": "high"})
	require.NoError(t, err)
	var created struct {
		Task models.Task `json:"task"`
	}
	require.NoError(t, json.Unmarshal(out, &created))
	tid := created.Task.ID()
	require.NotEmpty(t, tid)
	assert.Equal(t, "high", created.Task.Field("priority"))

	_, err = svc.Tasks.Update(ctx, pid, tid, models.TaskInput{"status": "done"})
	require.NoError(t, err)
	assert.Equal(t, "/projects/"+pid+"/tasks/"+tid, backend.LastRequest().Path)

	list, err = svc.Tasks.GetByProject(ctx, pid)
	require.NoError(t, err)
	require.Len(t, list.Tasks, 1)
	assert.Equal(t, "done", list.Tasks[0].Field("status"))
	assert.Equal(t, "Catalogue", list.Tasks[0].Field("title"))

	_, err = svc.Tasks.Delete(ctx, pid, tid)
	require.NoError(t, err)

	list, err = svc.Tasks.GetByProject(ctx, pid)
	require.NoError(t, err)
	assert.Empty(t, list.Tasks)
}

func TestPaths_EscapeSegments(t *testing.T) {
	assert.Equal(t, "/projects/a%2Fb", projectPath("a/b"))
	assert.Equal(t, "/projects/p/tasks/t%201", taskPath("p", "t 1"))
}

func TestLoadDashboard(t *testing.T) {
	backend := testutil.NewBackend(t)
	svc, user := loggedIn(t, backend)
	backend.AddProject(user.Email, models.Project{Name: "Lib System"})

	d, err := LoadDashboard(context.Background(), svc.Auth, svc.Projects)
	require.NoError(t, err)
	require.Len(t, d.Projects, 1)
	assert.False(t, d.IsEmpty())
	assert.Equal(t, 1, d.Statistics.TotalProjects)
	assert.Equal(t, "Ana", d.User.Name)
}

func TestLoadDashboard_EmptyState(t *testing.T) {
	backend := testutil.NewBackend(t)
	svc, _ := loggedIn(t, backend)

	d, err := LoadDashboard(context.Background(), svc.Auth, svc.Projects)
	require.NoError(t, err)
	assert.True(t, d.IsEmpty())
	assert.Equal(t, models.Statistics{}, d.Statistics)
}

func TestLoadDashboard_OneFailureAborts(t *testing.T) {
	backend := testutil.NewBackend(t)
	svc, _ := loggedIn(t, backend)
	backend.Fail(http.MethodGet, "/auth/me", http.StatusInternalServerError, map[string]any{"success": false, "error": "boom"})

	d, err := LoadDashboard(context.Background(), svc.Auth, svc.Projects)
	require.Error(t, err)
	assert.Nil(t, d)
	assert.True(t, svc.Auth.IsAuthenticated())
}

func TestLoadDashboard_MissingStatistics(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/projects":
			io.WriteString(w, `{"success":true,"data":{}}`)
		case "/auth/me":
			io.WriteString(w, `{"success":true,"data":{}}`)
		}
	}))
	defer server.Close()

	svc := New(server.URL, nil)
	d, err := LoadDashboard(context.Background(), svc.Auth, svc.Projects)
	require.NoError(t, err)
	assert.True(t, d.IsEmpty())
	assert.Equal(t, 0, d.Statistics.TotalTasks)
	assert.Nil(t, d.User)
}
