package evalforgetest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	evalforge "github.com/evalforge/evalforge-go"
)

// TestAPIKey is the default credential used by test clients.
const TestAPIKey = "ef-test-key-1234"

// MockServer is a test HTTP server that records requests for verification.
type MockServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []*RecordedRequest

	// ResponseFunc customizes responses. If nil, every request gets an
	// empty 200 object.
	ResponseFunc func(r *http.Request) (int, any)
}

// RecordedRequest is a recorded HTTP request.
type RecordedRequest struct {
	Method      string
	Path        string
	Query       string
	Body        []byte
	ContentType string
	AuthHeader  string
}

// NewMockServer creates a new mock server.
func NewMockServer() *MockServer {
	ms := &MockServer{}

	ms.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			// Rewind so ResponseFunc can read the body too.
			r.Body = io.NopCloser(bytes.NewReader(body))
		}

		ms.mu.Lock()
		ms.requests = append(ms.requests, &RecordedRequest{
			Method:      r.Method,
			Path:        r.URL.Path,
			Query:       r.URL.RawQuery,
			Body:        body,
			ContentType: r.Header.Get("Content-Type"),
			AuthHeader:  r.Header.Get("Authorization"),
		})
		ms.mu.Unlock()

		status := http.StatusOK
		var response any = map[string]any{}
		if ms.ResponseFunc != nil {
			status, response = ms.ResponseFunc(r)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if response != nil {
			json.NewEncoder(w).Encode(response)
		}
	}))

	return ms
}

// Requests returns a copy of all recorded requests.
func (ms *MockServer) Requests() []*RecordedRequest {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return append([]*RecordedRequest{}, ms.requests...)
}

// RequestCount returns the number of recorded requests.
func (ms *MockServer) RequestCount() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.requests)
}

// LastRequest returns the most recent request, or nil if none.
func (ms *MockServer) LastRequest() *RecordedRequest {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if len(ms.requests) == 0 {
		return nil
	}
	return ms.requests[len(ms.requests)-1]
}

// Reset clears all recorded requests.
func (ms *MockServer) Reset() {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.requests = nil
}

// TestingT matches *testing.T and *testing.B.
type TestingT interface {
	Fatalf(format string, args ...any)
	Cleanup(func())
	Helper()
}

// NewTestClient creates a client bound to a fresh mock server. Both are
// cleaned up when the test ends.
func NewTestClient(t TestingT, opts ...evalforge.ConfigOption) (*evalforge.Client, *MockServer) {
	t.Helper()

	server := NewMockServer()

	baseOpts := []evalforge.ConfigOption{
		evalforge.WithBaseURL(server.URL),
		evalforge.WithMaxRetries(0),
	}
	client, err := evalforge.New(TestAPIKey, append(baseOpts, opts...)...)
	if err != nil {
		t.Fatalf("failed to create test client: %v", err)
	}

	t.Cleanup(func() {
		client.Close()
		server.Close()
	})

	return client, server
}
