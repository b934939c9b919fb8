// ABOUTME: HTTP client for the ProjectHub REST API
// ABOUTME: Resolves paths against the base URL and unwraps the response envelope

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
)

// DefaultBaseURL is used when no override is configured.
const DefaultBaseURL = "http://localhost:3000/dev"

var defaultHeaders = map[string]string{
	"Content-Type": "application/json",
	"Accept":       "application/json",
}

// Envelope is the {success, data, error} wrapper around every response body
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   ErrorField      `json:"error,omitempty"`
}

// Client is the API client for the ProjectHub backend
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         oauth2.TokenSource
	onUnauthorized func()
	logger         *slog.Logger
	extra          []Middleware
	send           SendFunc
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTokenSource sets where bearer tokens are read from before each request.
func WithTokenSource(src oauth2.TokenSource) Option {
	return func(c *Client) { c.tokens = src }
}

// WithUnauthorizedHandler registers the callback run on any 401 response.
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithMiddleware appends middleware after the built-in chain, closest to the wire.
func WithMiddleware(mws ...Middleware) Option {
	return func(c *Client) { c.extra = append(c.extra, mws...) }
}

// New creates a new API client with the given base URL
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	chain := []Middleware{
		LogRequests(c.logger),
		NormalizeErrors(c.baseURL),
		HandleUnauthorized(c.onUnauthorized),
		BearerToken(c.tokens),
		DefaultHeaders(defaultHeaders),
	}
	c.send = Chain(c.httpClient.Do, append(chain, c.extra...)...)
	return c
}

// BaseURL returns the resolved backend URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get calls GET path
func (c *Client) Get(ctx context.Context, path string) (*Envelope, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

// Post calls POST path with a JSON body
func (c *Client) Post(ctx context.Context, path string, body any) (*Envelope, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

// Put calls PUT path with a JSON body
func (c *Client) Put(ctx context.Context, path string, body any) (*Envelope, error) {
	return c.Do(ctx, http.MethodPut, path, body)
}

// Delete calls DELETE path
func (c *Client) Delete(ctx context.Context, path string) (*Envelope, error) {
	return c.Do(ctx, http.MethodDelete, path, nil)
}

// Do sends one request through the middleware chain and decodes the envelope.
// Every failure is returned as *Error.
func (c *Client) Do(ctx context.Context, method, path string, body any) (*Envelope, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Message: fmt.Sprintf("failed to marshal request: %v", err), err: err}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("failed to create request: %v", err), err: err}
	}

	resp, err := c.send(req)
	if err != nil {
		return nil, normalizeTransportError(ctx, c.baseURL, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("failed to read response: %v", err), Status: resp.StatusCode, err: err}
	}

	var env Envelope
	if len(bytes.TrimSpace(raw)) == 0 {
		return &env, nil
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		apiErr := &Error{Message: fmt.Sprintf("invalid response from backend: %v", err), Status: resp.StatusCode, err: err}
		if json.Valid(raw) {
			apiErr.Data = json.RawMessage(raw)
		}
		return nil, apiErr
	}
	return &env, nil
}

// DecodeData decodes the envelope payload into T.
// A missing or null payload yields the zero value.
func DecodeData[T any](env *Envelope) (T, error) {
	var out T
	if env == nil {
		return out, nil
	}
	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, &Error{Message: fmt.Sprintf("invalid response from backend: %v", err), Data: env.Data, err: err}
	}
	return out, nil
}
