package internal

import (
	"errors"
	"net/http"
)

// Core errors.
var (
	ErrInvalidEvent   = errors.New("hydrate: value is not a lifecycle event")
	ErrNoScope        = errors.New("hydrate: no scope in context")
	ErrInvalidPattern = errors.New("hydrate: invalid page pattern")
	ErrInvalidResult  = errors.New("hydrate: invalid page result")
	ErrInvalidState   = errors.New("hydrate: invalid initial state")
)

// HTTPError is an error with an HTTP status. Page handlers and
// customization callbacks may return it to control the response code.
type HTTPError struct {
	// Err is the underlying error (for logging, not exposed to users).
	Err error

	// Message is the user-facing error message.
	Message string

	// Code is the HTTP status code (e.g., 404, 500).
	Code int
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) StatusCode() int {
	return e.Code
}

func (e *HTTPError) StatusText() string {
	return http.StatusText(e.Code)
}

// NewHTTPError creates a new HTTPError with the given status code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// ErrNotFound returns a 404 error.
func ErrNotFound(message string) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message)
}

// ErrInternal returns a 500 error wrapping err.
func ErrInternal(message string, err error) *HTTPError {
	e := NewHTTPError(http.StatusInternalServerError, message)
	e.Err = err
	return e
}

// AsHTTPError extracts the HTTPError from an error chain if present.
// Returns nil if there is none.
func AsHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return nil
}
