package evalforge

import (
	"context"
	"os"
	"sync"
)

// Client is the composition root for the EvalForge SDK. It owns the
// underlying HTTP connection pool and exposes the typed resource clients.
// A Client is safe for concurrent use by multiple goroutines.
type Client struct {
	config *Config
	http   *httpClient

	closeOnce sync.Once

	datasets    *DatasetsClient
	scorers     *ScorersClient
	evaluations *EvaluationsClient
	traces      *TracesClient
}

// New creates a new EvalForge client. If apiKey is empty, the
// EVALFORGE_API_KEY environment variable is consulted.
func New(apiKey string, opts ...ConfigOption) (*Client, error) {
	cfg := &Config{
		APIKey:     apiKey,
		MaxRetries: DefaultMaxRetries,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return NewWithConfig(cfg)
}

// NewWithConfig creates a new client from a Config struct. Unlike New, the
// zero value of MaxRetries is taken literally: no retries.
//
// Example:
//
//	client, err := evalforge.NewWithConfig(&evalforge.Config{
//	    APIKey:     os.Getenv("EVALFORGE_API_KEY"),
//	    MaxRetries: 5,
//	})
func NewWithConfig(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, ErrNilRequest
	}

	// Copy so defaulting never mutates the caller's struct.
	cfgCopy := *cfg
	cfgCopy.applyDefaults()

	if err := cfgCopy.validate(); err != nil {
		return nil, err
	}

	c := &Client{
		config: &cfgCopy,
		http:   newHTTPClient(&cfgCopy),
	}
	c.datasets = &DatasetsClient{client: c}
	c.scorers = &ScorersClient{client: c}
	c.evaluations = &EvaluationsClient{client: c}
	c.traces = &TracesClient{client: c}

	return c, nil
}

// NewFromEnv creates a client from environment variables: EVALFORGE_API_KEY
// (required), EVALFORGE_BASE_URL, and EVALFORGE_DEBUG. Explicit options
// override the environment.
//
// Example:
//
//	client, err := evalforge.NewFromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
func NewFromEnv(opts ...ConfigOption) (*Client, error) {
	envOpts := make([]ConfigOption, 0, 2)

	if baseURL := os.Getenv(EnvBaseURL); baseURL != "" {
		envOpts = append(envOpts, WithBaseURL(baseURL))
	}
	if debug := os.Getenv(EnvDebug); debug == "true" || debug == "1" {
		envOpts = append(envOpts, WithDebug(true))
	}

	return New("", append(envOpts, opts...)...)
}

// Datasets returns the datasets resource client.
func (c *Client) Datasets() *DatasetsClient { return c.datasets }

// Scorers returns the scorers resource client.
func (c *Client) Scorers() *ScorersClient { return c.scorers }

// Evaluations returns the evaluations resource client.
func (c *Client) Evaluations() *EvaluationsClient { return c.evaluations }

// Traces returns the traces resource client.
func (c *Client) Traces() *TracesClient { return c.traces }

// Config returns a copy of the client's effective configuration.
func (c *Client) Config() Config { return *c.config }

// Close releases the underlying connection pool. Closing is idempotent;
// the pool is closed exactly once. Any method call after Close fails with
// ErrClientClosed.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.http.close()
		if c.config.Logger != nil {
			c.config.Logger.Debug("client closed")
		}
	})
	return nil
}

// WithClient runs fn with a freshly constructed client and guarantees the
// client is closed on every exit path, including panics.
//
// Example:
//
//	err := evalforge.WithClient(ctx, apiKey, func(client *evalforge.Client) error {
//	    _, err := client.Datasets().Get(ctx, "ds-1")
//	    return err
//	})
func WithClient(ctx context.Context, apiKey string, fn func(*Client) error, opts ...ConfigOption) error {
	client, err := New(apiKey, opts...)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(client)
}
