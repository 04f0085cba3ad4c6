package ainative

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"
)

// Defaults applied by NewClient when the corresponding Config field is zero.
const (
	DefaultBaseURL    = "https://api.ainative.studio"
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 3
	DefaultRetryDelay = 1 * time.Second

	// Retry backoff is capped and jittered to avoid thundering herds.
	DefaultMaxRetryDelay  = 60 * time.Second
	DefaultJitterFraction = 0.2
)

// Environment variables consulted by ConfigFromEnv and applyDefaults.
const (
	EnvAPIKey    = "AINATIVE_API_KEY"
	EnvAPISecret = "AINATIVE_API_SECRET"
	EnvOrgID     = "AINATIVE_ORG_ID"
	EnvBaseURL   = "AINATIVE_BASE_URL"
)

// environmentURLs maps named deployment environments to their base URLs.
var environmentURLs = map[string]string{
	"production":  "https://api.ainative.studio",
	"staging":     "https://staging-api.ainative.studio",
	"development": "https://dev-api.ainative.studio",
	"local":       "http://localhost:8000",
}

// Config holds client construction parameters. The zero value is usable:
// NewClient fills in defaults and falls back to AINATIVE_* environment
// variables for credentials.
type Config struct {
	// APIKey authenticates every request via the X-API-Key header.
	APIKey string

	// APISecret, when set, enables HMAC request signing (X-Timestamp and
	// X-Signature headers).
	APISecret string

	// OrgID scopes requests to an organization via X-Organization-ID.
	OrgID string

	// BaseURL is the service root. A trailing slash is stripped and the
	// /api/v1 prefix is appended unless the URL already carries an /api/
	// path segment.
	BaseURL string

	// Environment selects a named deployment (production, staging,
	// development, local) when BaseURL is empty.
	Environment string

	// Timeout bounds each HTTP attempt.
	Timeout time.Duration

	// MaxRetries is the total number of attempts for transient network
	// failures. HTTP error statuses are never retried.
	MaxRetries int

	// RetryDelay is the initial backoff between attempts; subsequent delays
	// grow exponentially up to MaxRetryDelay, with ±JitterFraction jitter.
	RetryDelay     time.Duration
	MaxRetryDelay  time.Duration
	JitterFraction float64

	// Debug enables request/response logging. When Logger is nil a text
	// logger writing to stderr at debug level is created.
	Debug bool

	// Logger receives structured request lifecycle logs.
	Logger *slog.Logger

	// HTTPClient overrides the default transport, mainly for tests.
	HTTPClient *http.Client

	// InsecureSkipVerify disables TLS certificate verification. Only
	// meaningful with the default transport.
	InsecureSkipVerify bool
}

// ConfigFromEnv builds a Config from AINATIVE_* environment variables.
func ConfigFromEnv() Config {
	return Config{
		APIKey:    os.Getenv(EnvAPIKey),
		APISecret: os.Getenv(EnvAPISecret),
		OrgID:     os.Getenv(EnvOrgID),
		BaseURL:   os.Getenv(EnvBaseURL),
	}
}

// EnvironmentBaseURL resolves a named environment to its base URL.
func EnvironmentBaseURL(env string) (string, error) {
	url, ok := environmentURLs[env]
	if !ok {
		return "", NewError(CodeValidationError, fmt.Sprintf("unknown environment: %s", env)).
			WithSuggestion(fmt.Sprintf("valid environments are: %s", strings.Join(Environments(), ", ")))
	}
	return url, nil
}

// Environments returns the known environment names, sorted.
func Environments() []string {
	names := make([]string, 0, len(environmentURLs))
	for name := range environmentURLs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// applyDefaults fills zero fields with defaults and environment fallbacks.
func (c *Config) applyDefaults() error {
	if c.APIKey == "" {
		c.APIKey = os.Getenv(EnvAPIKey)
	}
	if c.APISecret == "" {
		c.APISecret = os.Getenv(EnvAPISecret)
	}
	if c.OrgID == "" {
		c.OrgID = os.Getenv(EnvOrgID)
	}
	if c.BaseURL == "" {
		c.BaseURL = os.Getenv(EnvBaseURL)
	}
	if c.BaseURL == "" && c.Environment != "" {
		url, err := EnvironmentBaseURL(c.Environment)
		if err != nil {
			return err
		}
		c.BaseURL = url
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = normalizeBaseURL(c.BaseURL)

	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.RetryDelay == 0 {
		c.RetryDelay = DefaultRetryDelay
	}
	if c.MaxRetryDelay == 0 {
		c.MaxRetryDelay = DefaultMaxRetryDelay
	}
	if c.JitterFraction == 0 {
		c.JitterFraction = DefaultJitterFraction
	}
	return nil
}

// normalizeBaseURL strips a trailing slash and appends the /api/v1 prefix
// unless the URL already contains an /api/ segment. Idempotent.
func normalizeBaseURL(raw string) string {
	url := strings.TrimRight(raw, "/")
	if !strings.Contains(url, "/api/") {
		url += "/api/v1"
	}
	return url
}
