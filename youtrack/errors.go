package youtrack

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors for common HTTP failures. APIError values match these
// via errors.Is based on their status code.
var (
	ErrUnauthorized = errors.New("youtrack: invalid or missing token")
	ErrForbidden    = errors.New("youtrack: access forbidden")
	ErrNotFound     = errors.New("youtrack: resource not found")
)

// APIError is a non-2xx response from the YouTrack API. Message carries the
// server's error_description or message field when the body was JSON, and
// the raw body otherwise.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("youtrack: API error: %s", http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("youtrack: API error: %s", e.Message)
}

// Is maps status codes onto the package sentinel errors so callers can use
// errors.Is without inspecting the status themselves.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// newAPIError extracts a meaningful message from an error response body.
func newAPIError(status int, body []byte) *APIError {
	var payload struct {
		ErrorDescription string `json:"error_description"`
		Message          string `json:"message"`
		Err              string `json:"error"`
	}
	msg := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.ErrorDescription != "":
			msg = payload.ErrorDescription
		case payload.Message != "":
			msg = payload.Message
		case payload.Err != "":
			msg = payload.Err
		}
	}
	return &APIError{StatusCode: status, Message: msg}
}
