// ABOUTME: Client session context holding the bearer token and user record
// ABOUTME: Token and user are always written and cleared together

package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/markalston/projecthub-cli/internal/models"
	"golang.org/x/oauth2"
)

// Storage keys
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// ErrNoSession is returned by Token when nobody is logged in.
var ErrNoSession = errors.New("no active session")

// State is the session lifecycle state
type State int

const (
	Anonymous State = iota
	Authenticated
)

// String returns the string representation of a State
func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Session is the single client session, passed explicitly to whoever needs it.
// It implements oauth2.TokenSource so the HTTP client can read the token.
type Session struct {
	mu        sync.Mutex
	store     Store
	listeners map[int]func()
	nextID    int
}

// New creates a session backed by store
func New(store Store) *Session {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Session{
		store:     store,
		listeners: make(map[int]func()),
	}
}

// Token implements oauth2.TokenSource
func (s *Session) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	token := values[KeyToken]
	if token == "" {
		return nil, ErrNoSession
	}
	return &oauth2.Token{AccessToken: token, TokenType: "Bearer"}, nil
}

// Establish persists token and user in a single write.
func (s *Session) Establish(token string, user models.User) error {
	if token == "" {
		return errors.New("cannot establish session without a token")
	}
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("failed to read session: %w", err)
	}
	values[KeyToken] = token
	values[KeyUser] = string(userJSON)
	return s.store.Save(values)
}

// CurrentUser returns the stored user, or nil when absent or unreadable.
func (s *Session) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.store.Load()
	if err != nil {
		return nil
	}
	raw := values[KeyUser]
	if raw == "" {
		return nil
	}
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil
	}
	return &user
}

// IsAuthenticated reports whether a token is stored. It never touches the network.
func (s *Session) IsAuthenticated() bool {
	tok, err := s.Token()
	return err == nil && tok.AccessToken != ""
}

// State returns the current lifecycle state
func (s *Session) State() State {
	if s.IsAuthenticated() {
		return Authenticated
	}
	return Anonymous
}

// Clear removes token and user in a single write. Safe without a session.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("failed to read session: %w", err)
	}
	if _, hasToken := values[KeyToken]; !hasToken {
		if _, hasUser := values[KeyUser]; !hasUser {
			return nil
		}
	}
	delete(values, KeyToken)
	delete(values, KeyUser)
	return s.store.Save(values)
}

// Invalidate clears the session and notifies every subscriber.
// Subscribers run even when clearing fails.
func (s *Session) Invalidate() error {
	err := s.Clear()

	s.mu.Lock()
	listeners := make([]func(), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
	return err
}

// OnInvalidated subscribes fn to session invalidation and returns an unsubscribe func.
func (s *Session) OnInvalidated(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// HandleUnauthorized is the client hook for 401 responses.
func (s *Session) HandleUnauthorized() {
	_ = s.Invalidate()
}
