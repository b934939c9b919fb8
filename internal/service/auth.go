// ABOUTME: Auth facade: register, login, profile and logout
// ABOUTME: Persists token and user together after a successful authentication

package service

import (
	"context"
	"fmt"

	"github.com/markalston/projecthub-cli/internal/client"
	"github.com/markalston/projecthub-cli/internal/models"
	"github.com/markalston/projecthub-cli/internal/session"
)

// Auth wraps the /auth endpoints
type Auth struct {
	client  *client.Client
	session *session.Session
}

// NewAuth creates an auth facade
func NewAuth(c *client.Client, s *session.Session) *Auth {
	return &Auth{client: c, session: s}
}

// Register calls POST /auth/register
func (a *Auth) Register(ctx context.Context, in models.RegisterInput) (*models.AuthResult, error) {
	return a.authenticate(ctx, "/auth/register", in)
}

// Login calls POST /auth/login
func (a *Auth) Login(ctx context.Context, creds models.Credentials) (*models.AuthResult, error) {
	return a.authenticate(ctx, "/auth/login", creds)
}

// authenticate posts body and establishes the session when the backend
// reports success with a token. Business failures are returned, not raised.
func (a *Auth) authenticate(ctx context.Context, path string, body any) (*models.AuthResult, error) {
	env, err := a.client.Post(ctx, path, body)
	if err != nil {
		return nil, err
	}

	data, err := client.DecodeData[models.AuthData](env)
	if err != nil {
		return nil, err
	}
	result := &models.AuthResult{Success: env.Success, Data: data, Error: env.Error}

	if result.Success && data.Token != "" {
		var user models.User
		if data.User != nil {
			user = *data.User
		}
		if err := a.session.Establish(data.Token, user); err != nil {
			return nil, fmt.Errorf("failed to save session: %w", err)
		}
	}
	return result, nil
}

// Profile calls GET /auth/me
func (a *Auth) Profile(ctx context.Context) (*models.Profile, error) {
	env, err := a.client.Get(ctx, "/auth/me")
	if err != nil {
		return nil, err
	}
	profile, err := client.DecodeData[models.Profile](env)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Logout clears the session and emits the invalidation event. Safe to repeat.
func (a *Auth) Logout() error {
	return a.session.Invalidate()
}

// CurrentUser reads the stored user without touching the network
func (a *Auth) CurrentUser() *models.User {
	return a.session.CurrentUser()
}

// IsAuthenticated reports whether a token is stored
func (a *Auth) IsAuthenticated() bool {
	return a.session.IsAuthenticated()
}
