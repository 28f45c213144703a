package evalforge

import (
	"net/http"
	"time"
)

// ConfigOption is a function that modifies a Config.
type ConfigOption func(*Config)

// WithBaseURL sets a custom base URL for the EvalForge API.
func WithBaseURL(baseURL string) ConfigOption {
	return func(c *Config) {
		c.BaseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ConfigOption {
	return func(c *Config) {
		c.HTTPClient = client
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) ConfigOption {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// WithMaxRetries sets the retry budget for transient transport faults.
func WithMaxRetries(maxRetries int) ConfigOption {
	return func(c *Config) {
		c.MaxRetries = maxRetries
	}
}

// WithRetryDelay sets the base wait unit between retry attempts.
func WithRetryDelay(delay time.Duration) ConfigOption {
	return func(c *Config) {
		c.RetryDelay = delay
	}
}

// WithBackoffFactor sets the base of the exponential backoff schedule.
func WithBackoffFactor(factor float64) ConfigOption {
	return func(c *Config) {
		c.BackoffFactor = factor
	}
}

// WithDebug enables debug logging.
func WithDebug(debug bool) ConfigOption {
	return func(c *Config) {
		c.Debug = debug
	}
}

// WithLogger sets a structured logger.
//
// Example with slog:
//
//	client, _ := evalforge.New(key,
//	    evalforge.WithLogger(evalforge.NewSlogAdapter(slog.Default())),
//	)
func WithLogger(logger StructuredLogger) ConfigOption {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithMetrics sets a metrics collector.
func WithMetrics(metrics Metrics) ConfigOption {
	return func(c *Config) {
		c.Metrics = metrics
	}
}
