// ABOUTME: Request middleware chain wrapped around the single send primitive
// ABOUTME: Token attachment, 401 handling, error normalization and logging live here

package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// maxErrorBody caps how much of a failed response body is kept.
const maxErrorBody = 1 << 20

// SendFunc performs one HTTP round trip.
type SendFunc func(*http.Request) (*http.Response, error)

// Middleware wraps a SendFunc.
type Middleware func(SendFunc) SendFunc

// Chain applies middleware functions to a SendFunc in order.
// The first middleware in the list is the outermost (executes first).
// Example: Chain(send, logging, auth) applies as: logging(auth(send))
func Chain(send SendFunc, middlewares ...Middleware) SendFunc {
	for i := len(middlewares) - 1; i >= 0; i-- {
		send = middlewares[i](send)
	}
	return send
}

// DefaultHeaders sets headers on every request that does not already carry them.
func DefaultHeaders(headers map[string]string) Middleware {
	return func(next SendFunc) SendFunc {
		return func(req *http.Request) (*http.Response, error) {
			req = req.Clone(req.Context())
			for k, v := range headers {
				if req.Header.Get(k) == "" {
					req.Header.Set(k, v)
				}
			}
			return next(req)
		}
	}
}

// BearerToken attaches the current token from src as a bearer credential.
// A nil source, a source error or an empty token leaves the request untouched.
func BearerToken(src oauth2.TokenSource) Middleware {
	return func(next SendFunc) SendFunc {
		return func(req *http.Request) (*http.Response, error) {
			if src == nil {
				return next(req)
			}
			tok, err := src.Token()
			if err != nil || tok == nil || tok.AccessToken == "" {
				return next(req)
			}
			req = req.Clone(req.Context())
			tok.SetAuthHeader(req)
			return next(req)
		}
	}
}

// HandleUnauthorized calls onUnauthorized whenever a response carries 401.
// There is no retry and no distinction between expired and invalid tokens.
func HandleUnauthorized(onUnauthorized func()) Middleware {
	return func(next SendFunc) SendFunc {
		return func(req *http.Request) (*http.Response, error) {
			resp, err := next(req)
			if err == nil && resp.StatusCode == http.StatusUnauthorized && onUnauthorized != nil {
				onUnauthorized()
			}
			return resp, err
		}
	}
}

// NormalizeErrors turns transport failures and non-2xx responses into *Error.
// A response is only returned to the caller when the status is 2xx.
func NormalizeErrors(baseURL string) Middleware {
	return func(next SendFunc) SendFunc {
		return func(req *http.Request) (*http.Response, error) {
			resp, err := next(req)
			if err != nil {
				return nil, normalizeTransportError(req.Context(), baseURL, err)
			}
			if resp.StatusCode < 200 || resp.StatusCode > 299 {
				defer resp.Body.Close()
				return nil, normalizeResponseError(resp)
			}
			return resp, nil
		}
	}
}

// LogRequests logs each round trip at debug level.
func LogRequests(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next SendFunc) SendFunc {
		return func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next(req)
			if err != nil {
				logger.Debug("Request failed",
					"method", req.Method,
					"path", req.URL.Path,
					"status", StatusCode(err),
					"error", err.Error(),
					"latency_ms", time.Since(start).Milliseconds(),
				)
				return nil, err
			}
			logger.Debug("Request completed",
				"method", req.Method,
				"path", req.URL.Path,
				"status", resp.StatusCode,
				"latency_ms", time.Since(start).Milliseconds(),
			)
			return resp, nil
		}
	}
}

// normalizeTransportError converts errors without a response into *Error
func normalizeTransportError(ctx context.Context, baseURL string, err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var msg string
	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		msg = "request canceled"
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		msg = "request timed out"
	case err != nil:
		msg = fmt.Sprintf("cannot connect to backend at %s: %v", baseURL, err)
	}

	return &Error{Message: firstNonEmpty(msg), err: err}
}

// normalizeResponseError parses an API error response.
// The backend "error" field wins over the generic status message.
func normalizeResponseError(resp *http.Response) *Error {
	apiErr := &Error{Status: resp.StatusCode}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var body struct {
		Error   ErrorField `json:"error"`
		Message string     `json:"message"`
	}
	if len(raw) > 0 && json.Valid(raw) {
		apiErr.Data = json.RawMessage(raw)
		_ = json.Unmarshal(raw, &body)
	}

	apiErr.Message = firstNonEmpty(
		string(body.Error),
		body.Message,
		fmt.Sprintf("backend returned status %d", resp.StatusCode),
	)
	return apiErr
}
