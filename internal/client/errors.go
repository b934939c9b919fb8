// ABOUTME: Normalized error type returned by every failed ProjectHub API call
// ABOUTME: Carries a non-empty message plus the HTTP status and raw payload when present

package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
)

// FallbackMessage is used when neither the backend nor the transport explain a failure.
const FallbackMessage = "connection error"

// Error is the single error shape produced by the client.
// Status is 0 when no response was received.
type Error struct {
	Message string          `json:"message"`
	Status  int             `json:"status,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`

	err error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return FallbackMessage
	}
	return e.Message
}

// Unwrap exposes the underlying transport error, if any.
func (e *Error) Unwrap() error {
	return e.err
}

// IsUnauthorized reports whether err is a normalized 401 failure.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// ErrorField decodes the backend "error" member, which is either a plain
// string or an object with a "message" member. Other values keep their JSON text.
type ErrorField string

// UnmarshalJSON implements json.Unmarshaler
func (f *ErrorField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = ErrorField(s)
		return nil
	}

	var obj struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	// Any other shape is kept as its raw JSON text
	if err := json.Unmarshal(data, &obj); err != nil {
		*f = ErrorField(data)
		return nil
	}
	*f = ErrorField(firstNonEmpty(obj.Message, obj.Code, string(data)))
	return nil
}

// firstNonEmpty returns the first non-empty string, or FallbackMessage.
func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return FallbackMessage
}
