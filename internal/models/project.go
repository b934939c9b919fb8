// ABOUTME: Project and task models for the ProjectHub API
// ABOUTME: Projects are typed read-only projections; tasks stay opaque

package models

import (
	"encoding/json"
	"errors"
	"time"
)

// Project status values
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Project role values
const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

// Project is one entry of GET /projects
type Project struct {
	ProjectID   ID     `json:"projectId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
	MemberCount int    `json:"memberCount"`
	TaskCount   int    `json:"taskCount"`
	UserRole    string `json:"userRole"`
	CreatedAt   string `json:"createdAt"`
}

// IsOwner reports whether the current user owns the project
func (p Project) IsOwner() bool {
	return p.UserRole == RoleOwner
}

// Created parses CreatedAt, accepting RFC 3339 with or without a zone
func (p Project) Created() (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02"} {
		if t, err := time.Parse(layout, p.CreatedAt); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ProjectList is the GET /projects payload
type ProjectList struct {
	Projects []Project `json:"projects"`
}

// ProjectInput is the create/update request body
type ProjectInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// ProjectUpdate is the update request body; empty fields are left out
type ProjectUpdate struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
}

// Task is passed through as the backend defines it
type Task map[string]any

// ID returns the task identifier, whichever key the backend uses
func (t Task) ID() string {
	for _, key := range []string{"taskId", "id"} {
		if v, ok := t[key]; ok && v != nil {
			return stringify(v)
		}
	}
	return ""
}

// UnmarshalJSON decodes numbers as json.Number so large integers are not rounded
func (t *Task) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data)
	if err != nil {
		return err
	}
	*t = obj
	return nil
}

// Field returns a string rendering of a task field, or ""
func (t Task) Field(key string) string {
	if v, ok := t[key]; ok && v != nil {
		return stringify(v)
	}
	return ""
}

// TaskList is the GET /projects/:id/tasks payload
type TaskList struct {
	Tasks []Task `json:"tasks"`
}

// TaskInput is a task create/update body, passed through unchanged
type TaskInput map[string]any

// UnmarshalJSON decodes numbers as json.Number so large integers are not rounded
func (in *TaskInput) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data)
	if err != nil {
		return err
	}
	*in = obj
	return nil
}

// ParseTaskInput decodes a task body given on the command line. The body
// must be a JSON object; null and other values are rejected.
func ParseTaskInput(data string) (TaskInput, error) {
	var in TaskInput
	if err := json.Unmarshal([]byte(data), &in); err != nil {
		return nil, err
	}
	if in == nil {
		return nil, errors.New("expected a JSON object, got null")
	}
	return in, nil
}
