package ainative

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

// flakyTransport fails the first N round trips, then serves a fixed 200.
type flakyTransport struct {
	mu       sync.Mutex
	failures int
	calls    int
	err      error
}

func (ft *flakyTransport) RoundTrip(*http.Request) (*http.Response, error) {
	ft.mu.Lock()
	ft.calls++
	n := ft.calls
	ft.mu.Unlock()

	if n <= ft.failures {
		if ft.err != nil {
			return nil, ft.err
		}
		return nil, fmt.Errorf("connection reset")
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader(`{"ok": true}`)),
	}, nil
}

func (ft *flakyTransport) callCount() int {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	return ft.calls
}

// timeoutError satisfies net.Error with Timeout() == true.
type timeoutError struct{}

func (timeoutError) Error() string   { return "dial timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func newFlakyClient(t *testing.T, ft *flakyTransport, maxRetries int) *Client {
	t.Helper()
	client, err := NewClient(Config{
		APIKey:     "key-123",
		BaseURL:    "http://ainative.test",
		MaxRetries: maxRetries,
		RetryDelay: time.Millisecond,
		HTTPClient: &http.Client{Transport: ft},
	})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func TestNewClient_NormalizesBaseURL(t *testing.T) {
	client, err := NewClient(Config{APIKey: "k", BaseURL: "http://localhost:8000/"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.BaseURL() != "http://localhost:8000/api/v1" {
		t.Errorf("unexpected base URL: %s", client.BaseURL())
	}
}

func TestDo_SendsAuthHeaders(t *testing.T) {
	var captured http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Header.Clone()
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	client, err := NewClient(Config{
		APIKey:    "key-123",
		APISecret: "secret-456",
		OrgID:     "org-7",
		BaseURL:   server.URL,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := client.Post(context.Background(), "/zerodb/memory", map[string]interface{}{"content": "x"}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if captured.Get("X-API-Key") != "key-123" {
		t.Errorf("unexpected API key header: %q", captured.Get("X-API-Key"))
	}
	if captured.Get("X-SDK-Version") != "0.1.0" || captured.Get("X-SDK-Language") != "Go" {
		t.Errorf("SDK identification headers missing: %v", captured)
	}
	if captured.Get("X-Organization-ID") != "org-7" {
		t.Errorf("org header missing: %q", captured.Get("X-Organization-ID"))
	}
	if captured.Get("X-Request-ID") == "" {
		t.Error("request ID header missing")
	}
	if captured.Get("Content-Type") != "application/json" {
		t.Errorf("unexpected content type: %q", captured.Get("Content-Type"))
	}

	// The signature must verify against the timestamp that was sent.
	ts := captured.Get("X-Timestamp")
	if ts == "" {
		t.Fatal("timestamp header missing")
	}
	if captured.Get("X-Signature") != signRequest("secret-456", "key-123", ts) {
		t.Error("signature does not verify against sent timestamp")
	}
}

func TestDo_RequestIDFromContext(t *testing.T) {
	var captured string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Header.Get("X-Request-ID")
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	client, err := NewClient(Config{APIKey: "k", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := WithRequestID(context.Background(), "trace-42")
	if err := client.Get(ctx, "/health", nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured != "trace-42" {
		t.Errorf("expected propagated request ID, got %q", captured)
	}
}

func TestDo_DecodesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name": "demo", "count": 3}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{APIKey: "k", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out map[string]interface{}
	if err := client.Get(context.Background(), "/zerodb/projects/p1", nil, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["name"] != "demo" || out["count"] != float64(3) {
		t.Errorf("unexpected response: %v", out)
	}
}

func TestDo_EmptyResponseBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewClient(Config{APIKey: "k", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out map[string]interface{}
	if err := client.Get(context.Background(), "/zerodb/projects", nil, &out); err != nil {
		t.Fatalf("empty body should not be an error, got: %v", err)
	}
	if out != nil {
		t.Errorf("out should be untouched for empty body, got %v", out)
	}
}

func TestDo_InvalidJSONResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway</html>"))
	}))
	defer server.Close()

	client, err := NewClient(Config{APIKey: "k", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out map[string]interface{}
	err = client.Get(context.Background(), "/health", nil, &out)
	if err == nil {
		t.Fatal("expected decode error")
	}

	var ae *Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if ae.Code != CodeAPIError {
		t.Errorf("expected API_ERROR, got %s", ae.Code)
	}
	if ae.Body != "<html>gateway</html>" {
		t.Errorf("raw body should be preserved, got %q", ae.Body)
	}
}

func TestDo_StatusUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "invalid key"}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{APIKey: "bad", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = client.Get(context.Background(), "/zerodb/projects", nil, nil)
	if AsCode(err) != CodeAuthError {
		t.Fatalf("expected AUTH_ERROR, got %v", err)
	}
	if StatusCode(err) != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", StatusCode(err))
	}
	if Suggestion(err) == "" {
		t.Error("auth errors should carry a suggestion")
	}
}

func TestDo_StatusNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client, err := NewClient(Config{APIKey: "k", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = client.Get(context.Background(), "/zerodb/projects/missing", nil, nil)
	if AsCode(err) != CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
	if !strings.Contains(err.Error(), "/zerodb/projects/missing") {
		t.Errorf("error should name the missing path, got %q", err.Error())
	}
}

func TestDo_StatusRateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client, err := NewClient(Config{APIKey: "k", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = client.Get(context.Background(), "/zerodb/vectors/search", nil, nil)
	if AsCode(err) != CodeRateLimit {
		t.Fatalf("expected RATE_LIMIT, got %v", err)
	}
	if RetryAfter(err) != 7*time.Second {
		t.Errorf("expected Retry-After 7s, got %s", RetryAfter(err))
	}
	if !IsRetryable(err) {
		t.Error("rate limit errors should be retryable")
	}
}

func TestDo_StatusRateLimitDefaultDelay(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client, err := NewClient(Config{APIKey: "k", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = client.Get(context.Background(), "/zerodb/vectors/search", nil, nil)
	if RetryAfter(err) != 60*time.Second {
		t.Errorf("expected default Retry-After 60s, got %s", RetryAfter(err))
	}
}

func TestDo_StatusServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail": "boom"}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{APIKey: "k", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = client.Get(context.Background(), "/health", nil, nil)
	var ae *Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if ae.Code != CodeAPIError || ae.StatusCode != 500 {
		t.Errorf("unexpected error: %+v", ae)
	}
	if ae.Body != `{"detail": "boom"}` {
		t.Errorf("response body should be preserved, got %q", ae.Body)
	}
}

func TestDo_HTTPErrorsNotRetried(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := NewClient(Config{
		APIKey:     "k",
		BaseURL:    server.URL,
		MaxRetries: 3,
		RetryDelay: time.Millisecond,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := client.Get(context.Background(), "/health", nil, nil); err == nil {
		t.Fatal("expected error")
	}
	if requests != 1 {
		t.Errorf("HTTP errors must not be retried, server saw %d requests", requests)
	}
}

func TestDo_RetriesTransientFailures(t *testing.T) {
	ft := &flakyTransport{failures: 2}
	client := newFlakyClient(t, ft, 3)

	var out map[string]interface{}
	if err := client.Get(context.Background(), "/health", nil, &out); err != nil {
		t.Fatalf("expected success after retries, got: %v", err)
	}
	if out["ok"] != true {
		t.Errorf("unexpected response: %v", out)
	}
	if ft.callCount() != 3 {
		t.Errorf("expected 3 attempts, got %d", ft.callCount())
	}

	summary := client.Metrics()
	if summary["retries"] != int64(2) {
		t.Errorf("expected 2 retries recorded, got %v", summary["retries"])
	}
}

func TestDo_ExhaustsRetries(t *testing.T) {
	ft := &flakyTransport{failures: 10}
	client := newFlakyClient(t, ft, 3)

	err := client.Get(context.Background(), "/health", nil, nil)
	if AsCode(err) != CodeNetworkError {
		t.Fatalf("expected NETWORK_ERROR, got %v", err)
	}
	if !strings.Contains(err.Error(), "after 3 attempts") {
		t.Errorf("error should report attempt count, got %q", err.Error())
	}
	if ft.callCount() != 3 {
		t.Errorf("expected exactly 3 attempts, got %d", ft.callCount())
	}
}

func TestDo_TimeoutClassification(t *testing.T) {
	ft := &flakyTransport{failures: 10, err: timeoutError{}}
	client := newFlakyClient(t, ft, 2)

	err := client.Get(context.Background(), "/health", nil, nil)
	if AsCode(err) != CodeTimeout {
		t.Fatalf("expected TIMEOUT, got %v", err)
	}
	if !IsRetryable(err) {
		t.Error("timeouts should be retryable")
	}
}

func TestDo_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	client, err := NewClient(Config{APIKey: "k", BaseURL: server.URL, MaxRetries: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = client.Get(ctx, "/health", nil, nil)
	if AsCode(err) != CodeNetworkError {
		t.Fatalf("expected NETWORK_ERROR for canceled context, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Error("error chain should contain context.Canceled")
	}
}

func TestDo_ContextDeadline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	client, err := NewClient(Config{APIKey: "k", BaseURL: server.URL, MaxRetries: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err = client.Get(ctx, "/health", nil, nil)
	if AsCode(err) != CodeTimeout {
		t.Fatalf("expected TIMEOUT for exceeded deadline, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("error chain should contain context.DeadlineExceeded")
	}
}

func TestClient_MetricsCounters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/missing") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	client, err := NewClient(Config{APIKey: "k", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := client.Get(context.Background(), "/health", nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := client.Get(context.Background(), "/missing", nil, nil); err == nil {
		t.Fatal("expected error")
	}

	summary := client.Metrics()
	if summary["requests_started"] != int64(2) {
		t.Errorf("expected 2 started, got %v", summary["requests_started"])
	}
	if summary["requests_completed"] != int64(1) {
		t.Errorf("expected 1 completed, got %v", summary["requests_completed"])
	}
	if summary["requests_failed"] != int64(1) {
		t.Errorf("expected 1 failed, got %v", summary["requests_failed"])
	}
	if summary["active_requests"] != int64(0) {
		t.Errorf("expected 0 active, got %v", summary["active_requests"])
	}
}

func TestHealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/health" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"status": "ok"}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{APIKey: "k", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := client.HealthCheck(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["status"] != "ok" {
		t.Errorf("unexpected health response: %v", out)
	}
}

func TestBackoff_Bounds(t *testing.T) {
	client, err := NewClient(Config{
		APIKey:         "k",
		BaseURL:        "http://ainative.test",
		RetryDelay:     100 * time.Millisecond,
		MaxRetryDelay:  200 * time.Millisecond,
		JitterFraction: 0.5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 50; i++ {
		// Attempt 0: base 100ms, jitter ±50ms.
		d := client.backoff(0)
		if d < 50*time.Millisecond || d > 150*time.Millisecond {
			t.Fatalf("attempt 0 backoff out of range: %s", d)
		}
		// Attempt 3: base 800ms capped to 200ms, jitter ±100ms.
		d = client.backoff(3)
		if d < 100*time.Millisecond || d > 300*time.Millisecond {
			t.Fatalf("attempt 3 backoff out of range: %s", d)
		}
	}
}

func TestParseRetryAfter(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"30", 30 * time.Second},
		{" 5 ", 5 * time.Second},
		{"", 60 * time.Second},
		{"junk", 60 * time.Second},
		{"-5", 60 * time.Second},
		{"0", 60 * time.Second},
	}
	for _, tc := range cases {
		if got := parseRetryAfter(tc.in); got != tc.want {
			t.Errorf("parseRetryAfter(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}
