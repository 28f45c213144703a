package evalforge

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigOptions(t *testing.T) {
	hc := &http.Client{}
	logger := NopLogger{}
	metrics := NopMetrics{}

	cfg := &Config{}
	for _, opt := range []ConfigOption{
		WithBaseURL("https://example.com/api/v1"),
		WithHTTPClient(hc),
		WithTimeout(10 * time.Second),
		WithMaxRetries(7),
		WithRetryDelay(250 * time.Millisecond),
		WithBackoffFactor(3.0),
		WithDebug(true),
		WithLogger(logger),
		WithMetrics(metrics),
	} {
		opt(cfg)
	}

	assert.Equal(t, "https://example.com/api/v1", cfg.BaseURL)
	assert.Same(t, hc, cfg.HTTPClient)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, 7, cfg.MaxRetries)
	assert.Equal(t, 250*time.Millisecond, cfg.RetryDelay)
	assert.Equal(t, 3.0, cfg.BackoffFactor)
	assert.True(t, cfg.Debug)
	assert.Equal(t, logger, cfg.Logger)
	assert.Equal(t, metrics, cfg.Metrics)
}

func TestOptionsApplyInOrder(t *testing.T) {
	cfg := &Config{}
	WithMaxRetries(1)(cfg)
	WithMaxRetries(2)(cfg)

	assert.Equal(t, 2, cfg.MaxRetries)
}
