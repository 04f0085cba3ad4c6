package ainative

import (
	"errors"
	"fmt"
	"time"
)

// Error codes for programmatic handling.
const (
	CodeAuthError       = "AUTH_ERROR"
	CodeAPIError        = "API_ERROR"
	CodeNetworkError    = "NETWORK_ERROR"
	CodeValidationError = "VALIDATION_ERROR"
	CodeRateLimit       = "RATE_LIMIT"
	CodeNotFound        = "NOT_FOUND"
	CodeTimeout         = "TIMEOUT"
)

// Error is a structured SDK error with a code and actionable suggestion.
type Error struct {
	Code       string // machine-readable code (e.g. RATE_LIMIT)
	Message    string // human-readable description
	Suggestion string // actionable fix
	Err        error  // wrapped underlying error

	// HTTP context, set when the error came from an API response.
	StatusCode int
	Body       string

	// RetryAfter is populated for RATE_LIMIT errors.
	RetryAfter time.Duration
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap supports errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates an Error with the given code and message.
func NewError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError creates an Error wrapping an existing error.
func WrapError(code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// WithSuggestion returns the error with the suggestion set.
func (e *Error) WithSuggestion(suggestion string) *Error {
	e.Suggestion = suggestion
	return e
}

// Is checks whether target matches this error's code.
func (e *Error) Is(target error) bool {
	var ae *Error
	if errors.As(target, &ae) {
		return e.Code == ae.Code
	}
	return false
}

// AsCode extracts the code from an error, or "" if not an SDK Error.
func AsCode(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

// Suggestion extracts the suggestion from an error, or "" if not an SDK Error.
func Suggestion(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Suggestion
	}
	return ""
}

// StatusCode extracts the HTTP status from an error, or 0 if not an SDK Error.
func StatusCode(err error) int {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.StatusCode
	}
	return 0
}

// RetryAfter extracts the rate-limit delay from an error, or 0 for other errors.
func RetryAfter(err error) time.Duration {
	var ae *Error
	if errors.As(err, &ae) && ae.Code == CodeRateLimit {
		return ae.RetryAfter
	}
	return 0
}

// IsRetryable reports whether the error represents a transient failure a
// caller could reasonably retry: network errors, timeouts, and rate limits.
func IsRetryable(err error) bool {
	switch AsCode(err) {
	case CodeNetworkError, CodeTimeout, CodeRateLimit:
		return true
	}
	return false
}
