package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// APIError is returned for every failed backend call.
//
// Status is the HTTP status; transport failures are reported as 500 with a nil Body.
// Body holds the parsed JSON error document when the backend sent one.
type APIError struct {
	Op      string
	Status  int
	Message string
	Body    map[string]any
	Cause   error
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %d %s: %v", e.Op, e.Status, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %d %s", e.Op, e.Status, msg)
}

func (e *APIError) Unwrap() error { return e.Cause }

// HTTPStatus returns Status. Callers outside this package match on it through an interface.
func (e *APIError) HTTPStatus() int { return e.Status }

// ServerMessage returns the message the backend put in its JSON error body, if any.
func (e *APIError) ServerMessage() string {
	if e.Body == nil {
		return ""
	}
	return e.Message
}

// IsTransport reports whether the call never got an HTTP answer.
func (e *APIError) IsTransport() bool { return e.Cause != nil && e.Body == nil }

func newAPIError(op string, resp *http.Response) *APIError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &APIError{Op: op, Status: resp.StatusCode}

	var body map[string]any
	if len(raw) > 0 && json.Unmarshal(raw, &body) == nil {
		apiErr.Body = body
		apiErr.Message = messageFromBody(body)
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(raw))
		if len(apiErr.Message) > 200 {
			apiErr.Message = apiErr.Message[:200]
		}
	}
	return apiErr
}

func messageFromBody(body map[string]any) string {
	for _, k := range []string{"message", "error", "msg"} {
		if s, ok := body[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// StatusOf returns the HTTP status carried by err, or 0 when err is not an *APIError.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsUnauthorized reports whether err is a backend 401.
func IsUnauthorized(err error) bool { return StatusOf(err) == http.StatusUnauthorized }

// MessageOf returns the backend's message for err, or fallback when it sent none.
// Cancellations and transport failures always use fallback.
func MessageOf(err error, fallback string) string {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fallback
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if msg := apiErr.ServerMessage(); msg != "" {
			return msg
		}
	}
	return fallback
}
