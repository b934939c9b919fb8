// ABOUTME: Shared identifiers and envelope payload helpers
// ABOUTME: IDs arrive from the backend as either JSON numbers or strings

package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"
)

// ID is a backend identifier. It remembers whether it arrived as a JSON
// number or a JSON string and is written back in the same form.
type ID struct {
	value   string
	numeric bool
}

// NewID returns a string identifier
func NewID(s string) ID {
	return ID{value: s}
}

// UnmarshalJSON implements json.Unmarshaler
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ID{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID{value: s}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID{value: n.String(), numeric: true}
	return nil
}

// MarshalJSON implements json.Marshaler
func (id ID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

// String returns the identifier text
func (id ID) String() string {
	return id.value
}

// IsZero reports whether the identifier is empty
func (id ID) IsZero() bool {
	return id.value == ""
}

// Payload is a backend payload passed through without reinterpretation
type Payload = json.RawMessage

// decodeObject decodes a JSON object with exact numbers. null yields a nil map.
func decodeObject(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after JSON object")
	}
	if v == nil {
		return nil, nil
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, errors.New("expected a JSON object")
	}
	return obj, nil
}

// stringify renders a decoded JSON value as text
func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	default:
		data, err := json.Marshal(x)
		if err != nil {
			return ""
		}
		return string(data)
	}
}
