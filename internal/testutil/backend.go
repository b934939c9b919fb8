// ABOUTME: In-process fake of the ProjectHub REST backend for tests
// ABOUTME: Routes with gorilla/mux, records requests and supports forced failures

package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/markalston/projecthub-cli/internal/models"
)

// RecordedRequest is what the fake saw on the wire
type RecordedRequest struct {
	Method        string
	Path          string
	Authorization string
	ContentType   string
	Body          string
}

type fakeUser struct {
	user     models.User
	password string
}

type fakeProject struct {
	project models.Project
	owner   string
	tasks   []models.Task
}

type override struct {
	status int
	body   any
}

// Backend is a fake ProjectHub API
type Backend struct {
	Server *httptest.Server

	mu        sync.Mutex
	users     map[string]*fakeUser // by email
	tokens    map[string]string    // token -> email
	projects  []*fakeProject
	requests  []RecordedRequest
	overrides map[string]override
	nextUser  int
}

// NewBackend starts a fake backend that is closed when the test ends
func NewBackend(t *testing.T) *Backend {
	t.Helper()

	b := &Backend{
		users:     make(map[string]*fakeUser),
		tokens:    make(map[string]string),
		overrides: make(map[string]override),
		nextUser:  1,
	}

	r := mux.NewRouter()
	r.Use(b.record)
	r.HandleFunc("/auth/register", b.register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", b.login).Methods(http.MethodPost)

	protected := r.NewRoute().Subrouter()
	protected.Use(b.requireToken)
	protected.HandleFunc("/auth/me", b.profile).Methods(http.MethodGet)
	protected.HandleFunc("/projects", b.listProjects).Methods(http.MethodGet)
	protected.HandleFunc("/projects", b.createProject).Methods(http.MethodPost)
	protected.HandleFunc("/projects/{id}", b.getProject).Methods(http.MethodGet)
	protected.HandleFunc("/projects/{id}", b.updateProject).Methods(http.MethodPut)
	protected.HandleFunc("/projects/{id}", b.deleteProject).Methods(http.MethodDelete)
	protected.HandleFunc("/projects/{id}/tasks", b.listTasks).Methods(http.MethodGet)
	protected.HandleFunc("/projects/{id}/tasks", b.createTask).Methods(http.MethodPost)
	protected.HandleFunc("/projects/{id}/tasks/{taskId}", b.updateTask).Methods(http.MethodPut)
	protected.HandleFunc("/projects/{id}/tasks/{taskId}", b.deleteTask).Methods(http.MethodDelete)

	b.Server = httptest.NewServer(r)
	t.Cleanup(b.Server.Close)
	return b
}

// URL returns the base URL of the fake
func (b *Backend) URL() string {
	return b.Server.URL
}

// AddUser registers a user directly and returns its record
func (b *Backend) AddUser(name, email, password string) models.User {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addUserLocked(name, email, password)
}

// IssueToken returns a valid token for an existing user
func (b *Backend) IssueToken(email string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.issueTokenLocked(email)
}

// AddProject stores a project owned by email and returns it with its ID filled in
func (b *Backend) AddProject(email string, p models.Project) models.Project {
	b.mu.Lock()
	defer b.mu.Unlock()

	if p.ProjectID.IsZero() {
		p.ProjectID = models.NewID(uuid.NewString())
	}
	if p.Status == "" {
		p.Status = models.StatusActive
	}
	if p.CreatedAt == "" {
		p.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	if p.UserRole == "" {
		p.UserRole = models.RoleOwner
	}
	if p.MemberCount == 0 {
		p.MemberCount = 1
	}
	b.projects = append(b.projects, &fakeProject{project: p, owner: email})
	return p
}

// AddTask stores a task under projectID and returns it with its ID filled in
func (b *Backend) AddTask(projectID string, task models.Task) models.Task {
	b.mu.Lock()
	defer b.mu.Unlock()

	fp := b.findProjectLocked(projectID)
	if fp == nil {
		return nil
	}
	out := models.Task{"taskId": uuid.NewString(), "projectId": projectID}
	for k, v := range task {
		out[k] = v
	}
	fp.tasks = append(fp.tasks, out)
	fp.project.TaskCount = len(fp.tasks)
	return out
}

// Fail forces method+path to answer with status and body
func (b *Backend) Fail(method, path string, status int, body any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.overrides[method+" "+path] = override{status: status, body: body}
}

// Requests returns a copy of every recorded request
func (b *Backend) Requests() []RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]RecordedRequest(nil), b.requests...)
}

// LastRequest returns the most recent request, or the zero value
func (b *Backend) LastRequest() RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.requests) == 0 {
		return RecordedRequest{}
	}
	return b.requests[len(b.requests)-1]
}

func (b *Backend) addUserLocked(name, email, password string) models.User {
	user := models.User{ID: models.NewID(strconv.Itoa(b.nextUser)), Name: name, Email: email}
	b.nextUser++
	b.users[email] = &fakeUser{user: user, password: password}
	return user
}

func (b *Backend) issueTokenLocked(email string) string {
	token := "tok-" + uuid.NewString()
	b.tokens[token] = email
	return token
}

func (b *Backend) findProjectLocked(id string) *fakeProject {
	for _, fp := range b.projects {
		if fp.project.ProjectID.String() == id {
			return fp
		}
	}
	return nil
}

// record captures the request and applies forced failures
func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(strings.NewReader(string(body)))

		b.mu.Lock()
		b.requests = append(b.requests, RecordedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			ContentType:   r.Header.Get("Content-Type"),
			Body:          string(body),
		})
		ov, forced := b.overrides[r.Method+" "+r.URL.Path]
		b.mu.Unlock()

		if forced {
			writeJSON(w, ov.status, ov.body)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireToken rejects requests without a known bearer token
func (b *Backend) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			fail(w, http.StatusUnauthorized, "Token no proporcionado")
			return
		}
		b.mu.Lock()
		email, known := b.tokens[strings.TrimPrefix(header, "Bearer ")]
		b.mu.Unlock()
		if !known {
			fail(w, http.StatusUnauthorized, "Token inválido o expirado")
			return
		}
		r.Header.Set("X-Fake-User", email)
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) register(w http.ResponseWriter, r *http.Request) {
	var in models.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		fail(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.users[in.Email]; exists {
		fail(w, http.StatusConflict, "El email ya está registrado")
		return
	}
	user := b.addUserLocked(in.Name, in.Email, in.Password)
	token := b.issueTokenLocked(in.Email)
	ok(w, http.StatusCreated, models.AuthData{Token: token, User: &user})
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var in models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		fail(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	u, exists := b.users[in.Email]
	if !exists || u.password != in.Password {
		fail(w, http.StatusUnauthorized, "Credenciales inválidas")
		return
	}
	token := b.issueTokenLocked(in.Email)
	user := u.user
	ok(w, http.StatusOK, models.AuthData{Token: token, User: &user})
}

func (b *Backend) profile(w http.ResponseWriter, r *http.Request) {
	email := r.Header.Get("X-Fake-User")

	b.mu.Lock()
	defer b.mu.Unlock()

	user := b.users[email].user
	stats := models.Statistics{}
	for _, fp := range b.visibleLocked(email) {
		stats.TotalProjects++
		stats.TotalTasks += len(fp.tasks)
		switch fp.project.Status {
		case models.StatusActive:
			stats.ActiveProjects++
		case models.StatusCompleted:
			stats.CompletedProjects++
		}
	}
	ok(w, http.StatusOK, models.Profile{User: &user, Statistics: &stats})
}

func (b *Backend) visibleLocked(email string) []*fakeProject {
	var out []*fakeProject
	for _, fp := range b.projects {
		if fp.owner == email {
			out = append(out, fp)
		}
	}
	return out
}

func (b *Backend) listProjects(w http.ResponseWriter, r *http.Request) {
	email := r.Header.Get("X-Fake-User")

	b.mu.Lock()
	defer b.mu.Unlock()

	projects := []models.Project{}
	for _, fp := range b.visibleLocked(email) {
		projects = append(projects, fp.project)
	}
	ok(w, http.StatusOK, models.ProjectList{Projects: projects})
}

func (b *Backend) createProject(w http.ResponseWriter, r *http.Request) {
	var in models.ProjectInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Name == "" {
		fail(w, http.StatusBadRequest, "El nombre del proyecto es requerido")
		return
	}
	email := r.Header.Get("X-Fake-User")

	b.mu.Lock()
	defer b.mu.Unlock()

	p := models.Project{
		ProjectID:   models.NewID(uuid.NewString()),
		Name:        in.Name,
		Description: in.Description,
		Status:      in.Status,
		MemberCount: 1,
		UserRole:    models.RoleOwner,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if p.Status == "" {
		p.Status = models.StatusActive
	}
	b.projects = append(b.projects, &fakeProject{project: p, owner: email})
	ok(w, http.StatusCreated, map[string]any{"project": p})
}

func (b *Backend) getProject(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	fp := b.findProjectLocked(mux.Vars(r)["id"])
	if fp == nil {
		fail(w, http.StatusNotFound, "Proyecto no encontrado")
		return
	}
	tasks := append([]models.Task{}, fp.tasks...)
	ok(w, http.StatusOK, map[string]any{"project": fp.project, "tasks": tasks})
}

func (b *Backend) updateProject(w http.ResponseWriter, r *http.Request) {
	var in models.ProjectUpdate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		fail(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	fp := b.findProjectLocked(mux.Vars(r)["id"])
	if fp == nil {
		fail(w, http.StatusNotFound, "Proyecto no encontrado")
		return
	}
	if in.Name != "" {
		fp.project.Name = in.Name
	}
	if in.Description != "" {
		fp.project.Description = in.Description
	}
	if in.Status != "" {
		fp.project.Status = in.Status
	}
	ok(w, http.StatusOK, map[string]any{"project": fp.project})
}

func (b *Backend) deleteProject(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	b.mu.Lock()
	defer b.mu.Unlock()

	for i, fp := range b.projects {
		if fp.project.ProjectID.String() == id {
			b.projects = append(b.projects[:i], b.projects[i+1:]...)
			ok(w, http.StatusOK, map[string]any{"message": "Proyecto eliminado"})
			return
		}
	}
	fail(w, http.StatusNotFound, "Proyecto no encontrado")
}

func (b *Backend) listTasks(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	fp := b.findProjectLocked(mux.Vars(r)["id"])
	if fp == nil {
		fail(w, http.StatusNotFound, "Proyecto no encontrado")
		return
	}
	ok(w, http.StatusOK, models.TaskList{Tasks: append([]models.Task{}, fp.tasks...)})
}

func (b *Backend) createTask(w http.ResponseWriter, r *http.Request) {
	var in models.TaskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		fail(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	projectID := mux.Vars(r)["id"]

	b.mu.Lock()
	defer b.mu.Unlock()

	fp := b.findProjectLocked(projectID)
	if fp == nil {
		fail(w, http.StatusNotFound, "Proyecto no encontrado")
		return
	}
	task := models.Task{"taskId": uuid.NewString(), "projectId": projectID}
	for k, v := range in {
		task[k] = v
	}
	fp.tasks = append(fp.tasks, task)
	fp.project.TaskCount = len(fp.tasks)
	ok(w, http.StatusCreated, map[string]any{"task": task})
}

func (b *Backend) updateTask(w http.ResponseWriter, r *http.Request) {
	var in models.TaskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		fail(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	vars := mux.Vars(r)

	b.mu.Lock()
	defer b.mu.Unlock()

	fp := b.findProjectLocked(vars["id"])
	if fp == nil {
		fail(w, http.StatusNotFound, "Proyecto no encontrado")
		return
	}
	for _, task := range fp.tasks {
		if task.ID() == vars["taskId"] {
			for k, v := range in {
				task[k] = v
			}
			ok(w, http.StatusOK, map[string]any{"task": task})
			return
		}
	}
	fail(w, http.StatusNotFound, "Tarea no encontrada")
}

func (b *Backend) deleteTask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	b.mu.Lock()
	defer b.mu.Unlock()

	fp := b.findProjectLocked(vars["id"])
	if fp == nil {
		fail(w, http.StatusNotFound, "Proyecto no encontrado")
		return
	}
	for i, task := range fp.tasks {
		if task.ID() == vars["taskId"] {
			fp.tasks = append(fp.tasks[:i], fp.tasks[i+1:]...)
			fp.project.TaskCount = len(fp.tasks)
			ok(w, http.StatusOK, map[string]any{"message": "Tarea eliminada"})
			return
		}
	}
	fail(w, http.StatusNotFound, "Tarea no encontrada")
}

func ok(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, map[string]any{"success": true, "data": data})
}

func fail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"success": false, "error": message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}
