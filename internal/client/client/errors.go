package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// APIError is returned for every response whose status is outside 2xx.
//
// Message is taken from the body's "error" field, then its "message" field,
// and is otherwise synthesized from the status code. Data holds the parsed
// body (nil when there was none).
type APIError struct {
	Message string
	Status  int
	Data    json.RawMessage
}

func (e *APIError) Error() string {
	return e.Message
}

// Is lets callers match broad classes with errors.Is:
// 401/403 match ErrUnauthorized, 404 matches ErrNotFound.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

func newAPIError(status int, data json.RawMessage) *APIError {
	msg := firstString(data, "error", "message")
	if msg == "" {
		msg = fmt.Sprintf("Request failed with %d", status)
	}
	return &APIError{Message: msg, Status: status, Data: data}
}
