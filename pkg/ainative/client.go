package ainative

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ainative/ainative-go/internal/telemetry"
)

// defaultRetryAfter is used when a 429 response carries no usable
// Retry-After header.
const defaultRetryAfter = 60 * time.Second

// Client is the low-level AINative API client. It owns authentication,
// request dispatch, retry, and error mapping; the resource packages
// (zerodb, agentswarm) are thin wrappers over it.
type Client struct {
	cfg        Config
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *telemetry.Metrics

	// now is injectable for deterministic signature tests.
	now func() time.Time
}

// NewClient creates a client. Zero Config fields are filled from defaults
// and AINATIVE_* environment variables; an empty API key is permitted and
// surfaces later as an AUTH_ERROR from the service.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, WrapError(CodeValidationError, fmt.Sprintf("invalid base URL %q", cfg.BaseURL), err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		if cfg.InsecureSkipVerify {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		}
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		}
	}

	logger := cfg.Logger
	if logger == nil {
		if cfg.Debug {
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		} else {
			logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		}
	}

	return &Client{
		cfg:        cfg,
		baseURL:    cfg.BaseURL,
		httpClient: httpClient,
		logger:     logger,
		metrics:    telemetry.NewMetrics(),
		now:        time.Now,
	}, nil
}

// BaseURL returns the normalized base URL requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Metrics returns a summary of request counters and latencies collected
// over the client's lifetime.
func (c *Client) Metrics() map[string]interface{} {
	return c.metrics.GetSummary()
}

// Get issues a GET request. Query may be nil.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPatch, path, nil, body, out)
}

// Delete issues a DELETE request. Query and body may both be nil; some
// endpoints (bulk vector deletion) take selectors in the body.
func (c *Client) Delete(ctx context.Context, path string, query url.Values, body, out interface{}) error {
	return c.Do(ctx, http.MethodDelete, path, query, body, out)
}

// HealthCheck probes the service health endpoint.
func (c *Client) HealthCheck(ctx context.Context) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := c.Get(ctx, "/health", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Close releases idle connections held by the transport.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// Do dispatches a request and decodes the JSON response into out (which may
// be nil). Transient network failures are retried up to MaxRetries total
// attempts with exponential backoff; HTTP error statuses are mapped to typed
// errors and never retried. An empty 2xx body leaves out untouched.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return WrapError(CodeValidationError, "failed to marshal request body", err)
		}
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	requestID := RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	attempts := c.cfg.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	c.metrics.IncRequestsStarted()
	start := time.Now()

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			c.metrics.IncRetries()
		}
		c.logger.Debug("sending request",
			"method", method, "url", reqURL, "attempt", attempt+1, "request_id", requestID)

		req, err := c.newRequest(ctx, method, reqURL, payload, requestID)
		if err != nil {
			c.metrics.IncRequestsFailed()
			return WrapError(CodeValidationError, "failed to create request", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				c.metrics.IncRequestsFailed()
				return c.contextError(ctxErr)
			}
			lastErr = fmt.Errorf("request failed: %w", err)
			c.logger.Debug("request attempt failed",
				"method", method, "url", reqURL, "attempt", attempt+1, "error", err)
			if attempt == attempts-1 {
				break
			}
			if err := c.sleep(ctx, c.backoff(attempt)); err != nil {
				c.metrics.IncRequestsFailed()
				return err
			}
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read response: %w", err)
			if attempt == attempts-1 {
				break
			}
			if err := c.sleep(ctx, c.backoff(attempt)); err != nil {
				c.metrics.IncRequestsFailed()
				return err
			}
			continue
		}

		c.metrics.RecordAPILatency(time.Since(start))
		c.logger.Debug("request completed",
			"method", method, "url", reqURL, "status", resp.StatusCode,
			"request_id", requestID, "duration", time.Since(start).Round(time.Millisecond))

		if resp.StatusCode >= 400 {
			c.metrics.IncRequestsFailed()
			if resp.StatusCode == http.StatusTooManyRequests {
				c.metrics.IncRateLimited()
			}
			return c.statusError(path, resp.StatusCode, respBody, resp.Header)
		}

		c.metrics.IncRequestsCompleted()

		if out == nil || len(respBody) == 0 {
			return nil
		}
		if err := json.Unmarshal(respBody, out); err != nil {
			ae := WrapError(CodeAPIError, "failed to decode response body", err)
			ae.StatusCode = resp.StatusCode
			ae.Body = string(respBody)
			return ae
		}
		return nil
	}

	c.metrics.IncRequestsFailed()
	if isTimeout(lastErr) {
		return WrapError(CodeTimeout, fmt.Sprintf("request timed out after %d attempts", attempts), lastErr).
			WithSuggestion("increase Config.Timeout or check service status")
	}
	return WrapError(CodeNetworkError, fmt.Sprintf("request failed after %d attempts", attempts), lastErr).
		WithSuggestion("check network connectivity and the configured base URL")
}

// newRequest builds a single attempt with auth and identification headers.
func (c *Client) newRequest(ctx context.Context, method, reqURL string, payload []byte, requestID string) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, err
	}

	for k, v := range authHeaders(c.cfg.APIKey, c.cfg.APISecret, c.cfg.OrgID, c.now()) {
		req.Header.Set(k, v)
	}
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// statusError maps an HTTP error status to a typed error.
func (c *Client) statusError(path string, status int, body []byte, header http.Header) error {
	switch status {
	case http.StatusUnauthorized:
		e := NewError(CodeAuthError, "invalid API key or authentication failed")
		e.StatusCode = status
		e.Body = string(body)
		return e.WithSuggestion("verify the API key, and the API secret if request signing is enabled")

	case http.StatusNotFound:
		e := NewError(CodeNotFound, fmt.Sprintf("resource not found: %s", path))
		e.StatusCode = status
		e.Body = string(body)
		return e

	case http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(header.Get("Retry-After"))
		e := NewError(CodeRateLimit, fmt.Sprintf("rate limit exceeded, retry after %s", retryAfter))
		e.StatusCode = status
		e.Body = string(body)
		e.RetryAfter = retryAfter
		return e.WithSuggestion("reduce request rate or raise the account quota")

	default:
		e := NewError(CodeAPIError, fmt.Sprintf("API request failed with status %d", status))
		e.StatusCode = status
		e.Body = string(body)
		return e
	}
}

// contextError maps a context error to the matching typed error.
func (c *Client) contextError(ctxErr error) error {
	if errors.Is(ctxErr, context.DeadlineExceeded) {
		return WrapError(CodeTimeout, "request deadline exceeded", ctxErr)
	}
	return WrapError(CodeNetworkError, "request canceled", ctxErr)
}

// sleep waits for the backoff delay, aborting early on context cancellation.
func (c *Client) sleep(ctx context.Context, delay time.Duration) error {
	select {
	case <-ctx.Done():
		return c.contextError(ctx.Err())
	case <-time.After(delay):
		return nil
	}
}

// backoff calculates the delay after a failed attempt using exponential
// backoff with jitter.
func (c *Client) backoff(attempt int) time.Duration {
	base := float64(c.cfg.RetryDelay) * math.Pow(2, float64(attempt))
	if base > float64(c.cfg.MaxRetryDelay) {
		base = float64(c.cfg.MaxRetryDelay)
	}

	jitter := base * c.cfg.JitterFraction * (rand.Float64()*2 - 1) // ±jitter
	delay := time.Duration(base + jitter)
	if delay < 0 {
		delay = 0
	}
	return delay
}

// parseRetryAfter reads a Retry-After header value in seconds, falling back
// to the default when the header is absent or malformed.
func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs <= 0 {
		return defaultRetryAfter
	}
	return time.Duration(secs) * time.Second
}

// isTimeout reports whether the error chain contains a timeout.
func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
