package evalforge

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"syscall"
	"time"
)

const userAgent = "evalforge-go/1.0.0"

// httpClient issues HTTP exchanges against the EvalForge API with bound
// defaults: base URL, bearer credential, per-request timeout, and the retry
// schedule for transient transport faults.
type httpClient struct {
	client        *http.Client
	baseURL       string
	authHeader    string
	maxRetries    int
	retryDelay    time.Duration
	backoffFactor float64
	logger        StructuredLogger
	metrics       Metrics
	closed        atomic.Bool
}

// newHTTPClient creates the transport from a validated config.
func newHTTPClient(cfg *Config) *httpClient {
	return &httpClient{
		client:        cfg.HTTPClient,
		baseURL:       strings.TrimSuffix(cfg.BaseURL, "/"),
		authHeader:    "Bearer " + cfg.APIKey,
		maxRetries:    cfg.MaxRetries,
		retryDelay:    cfg.RetryDelay,
		backoffFactor: cfg.BackoffFactor,
		logger:        cfg.Logger,
		metrics:       cfg.Metrics,
	}
}

// request represents one HTTP exchange to be made.
type request struct {
	method string
	path   string
	query  url.Values
	body   any
	result any
}

// close marks the transport closed and releases pooled connections.
// Further requests fail with ErrClientClosed.
func (h *httpClient) close() {
	if h.closed.CompareAndSwap(false, true) {
		h.client.CloseIdleConnections()
	}
}

// do executes an HTTP request, retrying transient transport faults up to
// the configured budget with exponential backoff. Remote answers (any
// status code) are never repeated: 2xx parses and returns, non-2xx maps to
// a typed error and surfaces immediately.
func (h *httpClient) do(ctx context.Context, req *request) error {
	if h.closed.Load() {
		return ErrClientClosed
	}

	start := time.Now()
	var lastErr error
	attempts := 0

	for attempt := 0; attempt <= h.maxRetries; attempt++ {
		if attempt > 0 {
			delay := h.backoffDelay(attempt - 1)
			if h.logger != nil {
				h.logger.Debug("retrying request",
					"method", req.method, "path", req.path,
					"attempt", attempt, "delay", delay.String())
			}
			if h.metrics != nil {
				h.metrics.IncrementCounter(metricRequestRetries, 1)
			}
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}

		attempts++
		err := h.doOnce(ctx, req)
		if err == nil {
			if h.metrics != nil {
				h.metrics.IncrementCounter(metricRequests, 1)
				h.metrics.RecordDuration(metricRequestDuration, time.Since(start))
			}
			return nil
		}

		// Remote answers carry their own semantics; surface them as-is.
		if apiErr, ok := AsAPIError(err); ok {
			if h.metrics != nil {
				h.metrics.IncrementCounter(metricRequestErrors, 1)
			}
			if h.logger != nil {
				h.logger.Debug("request failed",
					"method", req.method, "path", req.path,
					"status", apiErr.StatusCode)
			}
			return err
		}

		// Cancellation propagates immediately; the transport stays open
		// for other in-flight calls.
		if ctx.Err() != nil {
			return ctx.Err()
		}

		lastErr = err
	}

	if h.metrics != nil {
		h.metrics.IncrementCounter(metricRequestErrors, 1)
	}
	return &TransportError{
		Kind:     classifyTransportError(lastErr),
		Attempts: attempts,
		Err:      lastErr,
	}
}

// backoffDelay returns the wait before retry i (zero-based):
// retryDelay * backoffFactor^i.
func (h *httpClient) backoffDelay(i int) time.Duration {
	return time.Duration(float64(h.retryDelay) * math.Pow(h.backoffFactor, float64(i)))
}

// doOnce executes a single HTTP exchange.
func (h *httpClient) doOnce(ctx context.Context, req *request) error {
	u := h.baseURL + "/" + strings.TrimPrefix(req.path, "/")
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}

	var bodyReader io.Reader
	if req.body != nil {
		bodyBytes, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("evalforge: failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, bodyReader)
	if err != nil {
		return fmt.Errorf("evalforge: failed to create request: %w", err)
	}

	httpReq.Header.Set("Authorization", h.authHeader)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", userAgent)

	resp, err := h.client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("evalforge: failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp, respBody)
	}

	// An empty 2xx body yields the zero value of the result.
	if req.result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, req.result); err != nil {
			return fmt.Errorf("evalforge: failed to unmarshal response: %w", err)
		}
	}

	return nil
}

// newAPIError maps a non-2xx response onto the error taxonomy, preserving
// the raw payload and the Retry-After hint when present.
func newAPIError(resp *http.Response, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Body:       body,
	}
	if len(body) > 0 {
		// Best effort: an unparseable error body still surfaces by status.
		json.Unmarshal(body, apiErr)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		if v := resp.Header.Get("Retry-After"); v != "" {
			if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
				apiErr.RetryAfter = time.Duration(secs) * time.Second
			}
		}
	}
	return apiErr
}

// classifyTransportError buckets a transport-level fault into its kind:
// timeout, connection establishment failure, or other network fault.
func classifyTransportError(err error) ErrorCode {
	if err == nil {
		return ErrCodeNetwork
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ErrCodeTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrCodeTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return ErrCodeConnect
	}

	var tlsErr *tls.CertificateVerificationError
	if errors.As(err, &tlsErr) {
		return ErrCodeConnect
	}

	var syscallErr syscall.Errno
	if errors.As(err, &syscallErr) {
		switch syscallErr {
		case syscall.ECONNREFUSED, syscall.ENETUNREACH, syscall.EHOSTUNREACH:
			return ErrCodeConnect
		}
	}

	// Fallback on message patterns for faults the typed checks miss.
	msg := strings.ToLower(err.Error())
	for _, pattern := range []string{"connection refused", "no such host", "tls:", "x509:", "handshake"} {
		if strings.Contains(msg, pattern) {
			return ErrCodeConnect
		}
	}
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded") {
		return ErrCodeTimeout
	}

	return ErrCodeNetwork
}

// get performs a GET request.
func (h *httpClient) get(ctx context.Context, path string, query url.Values, result any) error {
	return h.do(ctx, &request{method: http.MethodGet, path: path, query: query, result: result})
}

// post performs a POST request.
func (h *httpClient) post(ctx context.Context, path string, body any, result any) error {
	return h.do(ctx, &request{method: http.MethodPost, path: path, body: body, result: result})
}

// put performs a PUT request.
func (h *httpClient) put(ctx context.Context, path string, body any, result any) error {
	return h.do(ctx, &request{method: http.MethodPut, path: path, body: body, result: result})
}

// patch performs a PATCH request.
func (h *httpClient) patch(ctx context.Context, path string, body any, result any) error {
	return h.do(ctx, &request{method: http.MethodPatch, path: path, body: body, result: result})
}

// delete performs a DELETE request.
func (h *httpClient) delete(ctx context.Context, path string, result any) error {
	return h.do(ctx, &request{method: http.MethodDelete, path: path, result: result})
}
