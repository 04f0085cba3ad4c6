package ainative

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestError_Error(t *testing.T) {
	err := NewError(CodeAuthError, "invalid API key")
	expected := "[AUTH_ERROR] invalid API key"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestError_Wrap(t *testing.T) {
	inner := fmt.Errorf("connection refused")
	err := WrapError(CodeNetworkError, "request failed", inner)

	if err.Error() != "[NETWORK_ERROR] request failed: connection refused" {
		t.Errorf("unexpected error string: %s", err.Error())
	}

	// Unwrap should return inner
	if !errors.Is(err, inner) {
		t.Error("errors.Is should find inner error")
	}
}

func TestError_WithSuggestion(t *testing.T) {
	err := NewError(CodeAuthError, "invalid API key").
		WithSuggestion("Set the AINATIVE_API_KEY environment variable")

	if err.Suggestion != "Set the AINATIVE_API_KEY environment variable" {
		t.Errorf("unexpected suggestion: %s", err.Suggestion)
	}
}

func TestError_ErrorsAs(t *testing.T) {
	err := WrapError(CodeTimeout, "request timed out", fmt.Errorf("deadline exceeded"))

	var ae *Error
	if !errors.As(err, &ae) {
		t.Fatal("errors.As should work")
	}
	if ae.Code != CodeTimeout {
		t.Errorf("expected code %q, got %q", CodeTimeout, ae.Code)
	}
}

func TestAsCode(t *testing.T) {
	err := NewError(CodeRateLimit, "rate limit exceeded")
	if AsCode(err) != CodeRateLimit {
		t.Errorf("expected code %q, got %q", CodeRateLimit, AsCode(err))
	}

	// Non-SDK error
	plain := fmt.Errorf("plain error")
	if AsCode(plain) != "" {
		t.Error("expected empty code for non-SDK error")
	}
}

func TestSuggestion(t *testing.T) {
	err := NewError(CodeValidationError, "bad input").WithSuggestion("check the params")
	if Suggestion(err) != "check the params" {
		t.Errorf("expected 'check the params', got %q", Suggestion(err))
	}

	// Non-SDK error
	if Suggestion(fmt.Errorf("plain")) != "" {
		t.Error("expected empty suggestion for non-SDK error")
	}
}

func TestError_WrappedAs(t *testing.T) {
	inner := NewError(CodeAPIError, "API error")
	wrapped := fmt.Errorf("operation failed: %w", inner)

	var ae *Error
	if !errors.As(wrapped, &ae) {
		t.Fatal("errors.As should unwrap through fmt.Errorf")
	}
	if ae.Code != CodeAPIError {
		t.Errorf("expected code %q, got %q", CodeAPIError, ae.Code)
	}
}

func TestStatusCode(t *testing.T) {
	err := NewError(CodeAPIError, "server error")
	err.StatusCode = 503
	if StatusCode(err) != 503 {
		t.Errorf("expected 503, got %d", StatusCode(err))
	}

	if StatusCode(fmt.Errorf("plain")) != 0 {
		t.Error("expected 0 for non-SDK error")
	}
}

func TestRetryAfter(t *testing.T) {
	err := NewError(CodeRateLimit, "rate limit exceeded")
	err.RetryAfter = 30 * time.Second
	if RetryAfter(err) != 30*time.Second {
		t.Errorf("expected 30s, got %s", RetryAfter(err))
	}

	// RetryAfter is only meaningful for rate limit errors.
	other := NewError(CodeAPIError, "server error")
	other.RetryAfter = 30 * time.Second
	if RetryAfter(other) != 0 {
		t.Error("expected 0 for non-rate-limit error")
	}
}

func TestIsRetryable(t *testing.T) {
	cases := []struct {
		code      string
		retryable bool
	}{
		{CodeNetworkError, true},
		{CodeTimeout, true},
		{CodeRateLimit, true},
		{CodeAuthError, false},
		{CodeAPIError, false},
		{CodeValidationError, false},
		{CodeNotFound, false},
	}
	for _, tc := range cases {
		if got := IsRetryable(NewError(tc.code, "x")); got != tc.retryable {
			t.Errorf("IsRetryable(%s) = %v, want %v", tc.code, got, tc.retryable)
		}
	}

	if IsRetryable(fmt.Errorf("plain")) {
		t.Error("plain errors should not be retryable")
	}
}
