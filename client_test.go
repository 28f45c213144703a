package evalforge_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	evalforge "github.com/evalforge/evalforge-go"
	"github.com/evalforge/evalforge-go/evalforgetest"
)

func TestClientClose(t *testing.T) {
	client, server := evalforgetest.NewTestClient(t)
	server.ResponseFunc = func(r *http.Request) (int, any) {
		return 200, map[string]any{"id": "ds-1"}
	}
	ctx := context.Background()

	_, err := client.Datasets().Get(ctx, "ds-1")
	require.NoError(t, err)

	require.NoError(t, client.Close())

	_, err = client.Datasets().Get(ctx, "ds-1")
	assert.ErrorIs(t, err, evalforge.ErrClientClosed)

	// Closing again is a no-op.
	require.NoError(t, client.Close())
	assert.Equal(t, 1, server.RequestCount())
}

func TestClientNewMissingKey(t *testing.T) {
	t.Setenv(evalforge.EnvAPIKey, "")

	_, err := evalforge.New("")
	assert.ErrorIs(t, err, evalforge.ErrMissingAPIKey)
}

func TestClientNewInvalidOption(t *testing.T) {
	_, err := evalforge.New("ef-test-key-1234", evalforge.WithBackoffFactor(0.5))
	assert.ErrorIs(t, err, evalforge.ErrInvalidConfig)
}

func TestClientNewFromEnv(t *testing.T) {
	server := evalforgetest.NewMockServer()
	t.Cleanup(server.Close)

	t.Setenv(evalforge.EnvAPIKey, evalforgetest.TestAPIKey)
	t.Setenv(evalforge.EnvBaseURL, server.URL)

	client, err := evalforge.NewFromEnv()
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	_, err = client.Datasets().Get(context.Background(), "ds-1")
	require.NoError(t, err)
	assert.Equal(t, "Bearer "+evalforgetest.TestAPIKey, server.LastRequest().AuthHeader)
}

func TestClientNewWithConfigDoesNotMutateCaller(t *testing.T) {
	cfg := &evalforge.Config{APIKey: "ef-test-key-1234"}

	client, err := evalforge.NewWithConfig(cfg)
	require.NoError(t, err)
	defer client.Close()

	assert.Empty(t, cfg.BaseURL)
	assert.Zero(t, cfg.Timeout)
	assert.Equal(t, evalforge.DefaultBaseURL, client.Config().BaseURL)
}

func TestClientNewWithConfigNil(t *testing.T) {
	_, err := evalforge.NewWithConfig(nil)
	assert.Error(t, err)
}

func TestClientConfigReturnsCopy(t *testing.T) {
	client, _ := evalforgetest.NewTestClient(t)

	cfg := client.Config()
	cfg.MaxRetries = 99

	assert.NotEqual(t, 99, client.Config().MaxRetries)
}

func TestWithClientScopedRelease(t *testing.T) {
	server := evalforgetest.NewMockServer()
	t.Cleanup(server.Close)

	var captured *evalforge.Client
	err := evalforge.WithClient(context.Background(), evalforgetest.TestAPIKey,
		func(client *evalforge.Client) error {
			captured = client
			_, err := client.Datasets().Get(context.Background(), "ds-1")
			return err
		},
		evalforge.WithBaseURL(server.URL),
		evalforge.WithMaxRetries(0),
	)
	require.NoError(t, err)

	// The scoped client is released on exit.
	_, err = captured.Datasets().Get(context.Background(), "ds-1")
	assert.ErrorIs(t, err, evalforge.ErrClientClosed)
}

func TestWithClientPropagatesError(t *testing.T) {
	server := evalforgetest.NewMockServer()
	t.Cleanup(server.Close)

	boom := errors.New("boom")
	err := evalforge.WithClient(context.Background(), evalforgetest.TestAPIKey,
		func(client *evalforge.Client) error { return boom },
		evalforge.WithBaseURL(server.URL),
	)
	assert.ErrorIs(t, err, boom)
}

func TestWithClientCanceledContext(t *testing.T) {
	server := evalforgetest.NewMockServer()
	t.Cleanup(server.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := evalforge.WithClient(ctx, evalforgetest.TestAPIKey,
		func(client *evalforge.Client) error {
			called = true
			return nil
		},
		evalforge.WithBaseURL(server.URL),
	)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestClientConcurrentUse(t *testing.T) {
	client, server := evalforgetest.NewTestClient(t)
	server.ResponseFunc = func(r *http.Request) (int, any) {
		return 200, map[string]any{"id": "ds-1"}
	}

	const goroutines = 10
	var wg sync.WaitGroup
	errs := make([]error, goroutines)

	for i := 0; i < goroutines; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = client.Datasets().Get(context.Background(), "ds-1")
		}()
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "goroutine %d", i)
	}
	assert.Equal(t, goroutines, server.RequestCount())
}
