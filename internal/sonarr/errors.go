// file: internal/sonarr/errors.go
package sonarr

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"
)

// maxErrorBodySize caps how much of a failed response body is kept on an APIError.
const maxErrorBodySize = 64 * 1024

// MsgNoResponse is the message used when a request was sent but no response arrived.
const MsgNoResponse = "No response from server"

// APIError is the single error shape produced by the client for every failed call.
type APIError struct {
	// Message is the human-readable failure description.
	Message string
	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int
	// Body is the raw response body, if any.
	Body string
	// Cause is the underlying transport error, if any.
	Cause error
}

// Error implements the error interface. Transport causes are appended so the
// underlying reason stays visible to the end user.
func (e *APIError) Error() string {
	if e.Cause != nil && e.Cause.Error() != e.Message {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap exposes the transport cause for errors.Is / errors.As.
func (e *APIError) Unwrap() error { return e.Cause }

// Retryable reports whether the failure is transient: no response at all, or a 5xx.
func (e *APIError) Retryable() bool {
	return e.StatusCode == 0 || e.StatusCode >= http.StatusInternalServerError
}

// IsNotFound reports whether the upstream answered 404.
func (e *APIError) IsNotFound() bool { return e.StatusCode == http.StatusNotFound }

// readBodyForError reads at most maxErrorBodySize bytes of a failed response body.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return nil
	}
	return body
}

// newStatusError builds an APIError from a non-2xx response.
func newStatusError(status int, body []byte) *APIError {
	msg := serverMessage(body)
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))
	}
	return &APIError{Message: msg, StatusCode: status, Body: string(body)}
}

// newTransportError builds an APIError for a request that never produced a response.
// sent distinguishes a dispatched request from one that could not be built.
func newTransportError(err error, sent bool) *APIError {
	if sent {
		return &APIError{Message: MsgNoResponse, Cause: err}
	}
	return &APIError{Message: err.Error(), Cause: err}
}

// serverMessage extracts a server-supplied message from a Sonarr error body.
// Sonarr answers with {"message": ...}, {"error": ...} or, for validation
// failures, an array of {"propertyName", "errorMessage"} objects.
func serverMessage(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}
	switch trimmed[0] {
	case '{':
		var obj struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return ""
		}
		if obj.Message != "" {
			return obj.Message
		}
		return obj.Error
	case '[':
		var failures []struct {
			PropertyName string `json:"propertyName"`
			ErrorMessage string `json:"errorMessage"`
		}
		if err := json.Unmarshal(trimmed, &failures); err != nil || len(failures) == 0 {
			return ""
		}
		return strings.TrimSpace(failures[0].ErrorMessage)
	}
	return ""
}
