package transport

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Distinguished error codes in backend error payloads.
const (
	// CodeUnauthorized is fatal to the session. The pipeline redirects
	// to the unauthenticated entry point; it is never surfaced inline.
	CodeUnauthorized = "ACCESS_UNAUTHORIZED"

	// CodeUnknown classifies payloads with no error code and
	// network-level failures with no response at all.
	CodeUnknown = "UNKNOWN_ERROR"
)

// ErrSessionInvalid is returned after the pipeline has already
// redirected to the unauthenticated entry point. Callers must treat it
// as terminal: the redirect is the action, there is nothing to recover.
var ErrSessionInvalid = errors.New("transport: session invalid")

// APIError is the uniform error shape propagated to callers.
type APIError struct {
	// ErrorCode classifies the failure. Never empty: payloads without
	// a code are normalized to CodeUnknown.
	ErrorCode string

	// Message is the human-readable failure description.
	Message string

	// Status is the HTTP status code, 0 for network-level failures.
	Status int

	// Details carries the remaining payload fields unchanged.
	Details map[string]any
}

// Error returns the error message.
func (e *APIError) Error() string {
	return fmt.Sprintf("transport: %s (%s)", e.Message, e.ErrorCode)
}

// Normalize decodes a backend error payload into the uniform shape.
// A payload that is not JSON, or carries no errorCode, classifies as
// CodeUnknown.
func Normalize(status int, body []byte) *APIError {
	apiErr := &APIError{
		ErrorCode: CodeUnknown,
		Status:    status,
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		apiErr.Message = string(body)
		return apiErr
	}

	if code, ok := payload["errorCode"].(string); ok && code != "" {
		apiErr.ErrorCode = code
	}
	if msg, ok := payload["message"].(string); ok {
		apiErr.Message = msg
	}

	delete(payload, "errorCode")
	delete(payload, "message")
	if len(payload) > 0 {
		apiErr.Details = payload
	}

	return apiErr
}

// NetworkError normalizes a failure with no response. The body is
// never read because there is none.
func NetworkError(err error) *APIError {
	return &APIError{
		ErrorCode: CodeUnknown,
		Message:   err.Error(),
	}
}

// IsUnauthorized reports whether err carries the distinguished
// unauthorized error code or is the pipeline's terminal
// session-invalid error.
func IsUnauthorized(err error) bool {
	if errors.Is(err, ErrSessionInvalid) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode == CodeUnauthorized
	}
	return false
}
