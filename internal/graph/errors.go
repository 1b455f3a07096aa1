package graph

import (
	"fmt"
	"strings"
)

// APIError is the failure variant of a Graph call: an HTTP status code and
// a human-readable, actionable message. Status 0 means the request never
// produced an HTTP response (transport failure).
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// networkError normalizes a transport-level failure.
func networkError(err error) *APIError {
	return &APIError{Status: 0, Message: "Network error: " + err.Error()}
}

// classify maps a non-2xx Graph response to an actionable message.
func classify(status int, body string) *APIError {
	var msg string
	switch status {
	case 401:
		msg = "Authentication expired or invalid (401). Reconnect your Microsoft account and try again."
	case 403:
		msg = "Access denied (403). Check that the signed-in account has granted the required permissions."
	case 404:
		msg = "Resource not found (404). It may not exist, or the account may be missing the required license."
	default:
		msg = fmt.Sprintf("Microsoft Graph request failed with status %d: %s", status, strings.TrimSpace(body))
	}
	return &APIError{Status: status, Message: msg}
}
