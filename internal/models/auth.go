// ABOUTME: Auth request/response models for the ProjectHub API
// ABOUTME: Defines the user record, credentials and the profile statistics

package models

import "github.com/markalston/projecthub-cli/internal/client"

// User is the authenticated user record kept alongside the token
type User struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Credentials is the login request body
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterInput is the registration request body
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthData is the payload of a successful login or register
type AuthData struct {
	Token string `json:"token,omitempty"`
	User  *User  `json:"user,omitempty"`
}

// AuthResult is the backend response to login/register, unchanged
type AuthResult struct {
	Success bool              `json:"success"`
	Data    AuthData          `json:"data"`
	Error   client.ErrorField `json:"error,omitempty"`
}

// Statistics aggregates counts for the current user
type Statistics struct {
	TotalProjects     int `json:"totalProjects"`
	ActiveProjects    int `json:"activeProjects"`
	CompletedProjects int `json:"completedProjects"`
	TotalTasks        int `json:"totalTasks"`
}

// Profile is the GET /auth/me payload
type Profile struct {
	User       *User       `json:"user,omitempty"`
	Statistics *Statistics `json:"statistics,omitempty"`
}
