package evalforge

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Environment variable names for configuration.
const (
	// EnvAPIKey is the environment variable for the EvalForge API key.
	// It is consulted when no explicit key is passed; surrounding
	// whitespace is trimmed and an empty value is treated as absent.
	EnvAPIKey = "EVALFORGE_API_KEY"
	// EnvBaseURL is the environment variable for the API base URL.
	EnvBaseURL = "EVALFORGE_BASE_URL"
	// EnvDebug is the environment variable to enable debug logging.
	EnvDebug = "EVALFORGE_DEBUG"
)

// Default configuration values.
const (
	// DefaultBaseURL is the production API endpoint.
	DefaultBaseURL = "https://api.evalforge.dev/api/v1"

	// DefaultTimeout is the default per-request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxRetries is the default retry budget: the maximum number of
	// additional transport attempts after the first.
	DefaultMaxRetries = 3

	// DefaultRetryDelay is the base wait unit for exponential backoff.
	// The wait before retry i is DefaultRetryDelay * BackoffFactor^i.
	DefaultRetryDelay = 1 * time.Second

	// DefaultBackoffFactor is the default exponential backoff base.
	DefaultBackoffFactor = 2.0

	// DefaultListLimit is the default page size for list endpoints.
	DefaultListLimit = 20

	// DefaultItemsLimit is the default page size for dataset items, which
	// the service pages in larger chunks.
	DefaultItemsLimit = 100

	// DefaultMaxIdleConns is the default maximum number of idle connections.
	DefaultMaxIdleConns = 100

	// DefaultMaxIdleConnsPerHost is the default maximum idle connections per host.
	DefaultMaxIdleConnsPerHost = 10

	// DefaultIdleConnTimeout is the default timeout for idle connections.
	DefaultIdleConnTimeout = 90 * time.Second
)

// Config holds the configuration for the EvalForge client.
type Config struct {
	// APIKey is the bearer secret issued by the service (required).
	// If empty, EVALFORGE_API_KEY is consulted.
	APIKey string

	// BaseURL is the base URL for the EvalForge API.
	// Defaults to DefaultBaseURL.
	BaseURL string

	// HTTPClient is the HTTP client to use for requests.
	// If not set, a default client with sensible timeouts is used.
	HTTPClient *http.Client

	// Timeout is the per-request timeout. Applies to every request.
	// Defaults to 30 seconds. Must not be negative.
	Timeout time.Duration

	// MaxRetries is the retry budget: the maximum number of additional
	// transport attempts after the first. Only transport-level faults
	// (timeouts, connection failures) are retried; remote answers are not.
	// The zero value disables retries; New and NewFromEnv pre-populate
	// DefaultMaxRetries before options are applied. Must not be negative.
	MaxRetries int

	// RetryDelay is the base wait unit between retries.
	// Defaults to 1 second.
	RetryDelay time.Duration

	// BackoffFactor is the base of the exponential backoff schedule: the
	// wait before retry i is RetryDelay * BackoffFactor^i.
	// Defaults to 2.0. Must be greater than 1.
	BackoffFactor float64

	// Debug enables debug logging to stderr when no Logger is set.
	Debug bool

	// Logger receives structured SDK logs. Compatible with log/slog via
	// NewSlogAdapter. If nil, logging is disabled unless Debug is set.
	Logger StructuredLogger

	// Metrics receives SDK telemetry. If nil, no metrics are collected.
	Metrics Metrics

	// MaxIdleConns controls the connection pool size across all hosts.
	MaxIdleConns int

	// MaxIdleConnsPerHost controls the connection pool size per host.
	MaxIdleConnsPerHost int

	// IdleConnTimeout is how long idle connections are kept.
	IdleConnTimeout time.Duration
}

// String returns a representation of the config with the credential masked.
// Safe to use in logs and debug output.
func (c *Config) String() string {
	return fmt.Sprintf("Config{APIKey: %q, BaseURL: %q, Timeout: %v, MaxRetries: %d, BackoffFactor: %g}",
		MaskCredential(c.APIKey), c.BaseURL, c.Timeout, c.MaxRetries, c.BackoffFactor)
}

// applyDefaults sets default values for unset configuration options.
func (c *Config) applyDefaults() {
	if c.APIKey == "" {
		c.APIKey = strings.TrimSpace(os.Getenv(EnvAPIKey))
	}

	if c.BaseURL == "" {
		if env := os.Getenv(EnvBaseURL); env != "" {
			c.BaseURL = env
		} else {
			c.BaseURL = DefaultBaseURL
		}
	}

	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}

	if c.RetryDelay == 0 {
		c.RetryDelay = DefaultRetryDelay
	}

	if c.BackoffFactor == 0 {
		c.BackoffFactor = DefaultBackoffFactor
	}

	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = DefaultMaxIdleConns
	}

	if c.MaxIdleConnsPerHost == 0 {
		c.MaxIdleConnsPerHost = DefaultMaxIdleConnsPerHost
	}

	if c.IdleConnTimeout == 0 {
		c.IdleConnTimeout = DefaultIdleConnTimeout
	}

	if c.Debug && c.Logger == nil {
		c.Logger = NewSlogAdapter(nil)
	}

	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{
			Timeout: c.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        c.MaxIdleConns,
				MaxIdleConnsPerHost: c.MaxIdleConnsPerHost,
				IdleConnTimeout:     c.IdleConnTimeout,
			},
		}
	}
}

// validate checks that the configuration is valid.
// Call after applyDefaults.
func (c *Config) validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return ErrMissingAPIKey
	}

	if c.BaseURL == "" {
		return &ConfigError{Field: "BaseURL", Message: "base URL is required"}
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return &ConfigError{Field: "BaseURL", Message: fmt.Sprintf("not an absolute URL: %q", c.BaseURL)}
	}

	if c.Timeout <= 0 {
		return &ConfigError{Field: "Timeout", Message: "must be positive"}
	}
	if c.MaxRetries < 0 {
		return &ConfigError{Field: "MaxRetries", Message: fmt.Sprintf("cannot be negative, got %d", c.MaxRetries)}
	}
	if c.RetryDelay <= 0 {
		return &ConfigError{Field: "RetryDelay", Message: "must be positive"}
	}
	if c.BackoffFactor <= 1 {
		return &ConfigError{Field: "BackoffFactor", Message: fmt.Sprintf("must be greater than 1, got %g", c.BackoffFactor)}
	}

	return nil
}

// MaskCredential masks a credential for safe logging, keeping only the
// first 4 and last 4 characters visible.
//
// Examples:
//
//	MaskCredential("ef-1234567890abcdef") => "ef-1***********cdef"
//	MaskCredential("short") => "********"
func MaskCredential(s string) string {
	if s == "" {
		return ""
	}

	const visible = 4
	if len(s) <= 2*visible {
		return "********"
	}

	return s[:visible] + strings.Repeat("*", len(s)-2*visible) + s[len(s)-visible:]
}
