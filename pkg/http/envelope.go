package http

import (
	"encoding/json"
	"errors"
	"fmt"
	gohttp "net/http"
	"strings"
)

// Envelope is the wrapper the backend puts around every reply.
type Envelope[T any] struct {
	Success    *bool  `json:"success,omitempty"`
	Message    string `json:"message"`
	Data       T      `json:"data"`
	StatusCode int    `json:"statusCode"`
}

// APIError is a non-2xx reply, or a 2xx reply flagged success=false.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string { return e.Message }

func newAPIError(status int, raw []byte) *APIError {
	return &APIError{StatusCode: status, Message: messageOf(status, raw), Body: raw}
}

// messageOf picks the backend's "message" (or "error") field, falling back
// to a generic status line.
func messageOf(status int, raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil {
		if m := strings.TrimSpace(body.Message); m != "" {
			return m
		}
		if m := strings.TrimSpace(body.Error); m != "" {
			return m
		}
	}
	return fmt.Sprintf("request failed with status %d", status)
}

// Fetch sends r and decodes the envelope's data field into T.
func Fetch[T any](r *Request) (T, error) {
	var zero T

	resp, err := r.Send()
	if err != nil {
		return zero, err
	}
	if err := resp.Throw(); err != nil {
		return zero, err
	}

	if len(strings.TrimSpace(string(resp.Raw))) == 0 {
		return zero, nil
	}

	var env Envelope[T]
	if err := resp.JSON(&env); err != nil {
		return zero, fmt.Errorf("http: %s %s: %w", r.method, r.path, err)
	}
	if env.Success != nil && !*env.Success {
		e := newAPIError(resp.StatusCode, resp.Raw)
		if env.StatusCode != 0 {
			e.StatusCode = env.StatusCode
		}
		return zero, e
	}
	return env.Data, nil
}

// Exec sends r and discards the data field.
func Exec(r *Request) error {
	_, err := Fetch[json.RawMessage](r)
	return err
}

// StatusCode extracts the HTTP status from an *APIError, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsNotFound reports a 404 from the backend.
func IsNotFound(err error) bool { return StatusCode(err) == gohttp.StatusNotFound }

// IsUnauthorized reports a 401 or 403 from the backend.
func IsUnauthorized(err error) bool {
	code := StatusCode(err)
	return code == gohttp.StatusUnauthorized || code == gohttp.StatusForbidden
}
