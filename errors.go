package evalforge

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode represents a category of error for handling, metrics, and logging.
type ErrorCode string

// Error codes for categorization.
const (
	ErrCodeConfig     ErrorCode = "CONFIG"      // Invalid construction parameters
	ErrCodeCredential ErrorCode = "CREDENTIAL"  // Missing or malformed credential
	ErrCodeAuth       ErrorCode = "AUTH"        // 401/403 responses
	ErrCodeNotFound   ErrorCode = "NOT_FOUND"   // 404 responses
	ErrCodeConflict   ErrorCode = "CONFLICT"    // 409 responses
	ErrCodeValidation ErrorCode = "VALIDATION"  // 400 responses and local input validation
	ErrCodeRateLimit  ErrorCode = "RATE_LIMIT"  // 429 responses
	ErrCodeInternal   ErrorCode = "INTERNAL"    // 5xx responses
	ErrCodeAPI        ErrorCode = "API"         // Other 4xx responses
	ErrCodeTimeout    ErrorCode = "TIMEOUT"     // Request deadline exceeded, retries exhausted
	ErrCodeConnect    ErrorCode = "CONNECT"     // TCP/TLS establishment failed, retries exhausted
	ErrCodeNetwork    ErrorCode = "NETWORK"     // Any other transport fault, retries exhausted
	ErrCodeIterator   ErrorCode = "ITERATOR"    // Advancing a terminal iterator
	ErrCodeAssertion  ErrorCode = "ASSERTION"   // Aggregator threshold assertion failed
)

// Error is the common interface for all SDK errors.
// Use it to handle errors generically while still accessing
// error-specific information.
//
// Example:
//
//	var efErr evalforge.Error
//	if errors.As(err, &efErr) {
//	    log.Printf("code=%s retryable=%v", efErr.Code(), efErr.IsRetryable())
//	}
type Error interface {
	error

	// Code returns a machine-readable error code for categorization.
	Code() ErrorCode

	// IsRetryable reports whether the caller may reasonably retry the
	// operation. Note that the transport itself only ever retries
	// transport-level faults; remote answers (4xx/5xx) always surface.
	IsRetryable() bool
}

// Sentinel errors for configuration and lifecycle.
var (
	ErrMissingAPIKey = errors.New("evalforge: API key is required (set EVALFORGE_API_KEY or pass it explicitly)")
	ErrInvalidConfig = errors.New("evalforge: invalid configuration")
	ErrClientClosed  = errors.New("evalforge: client is closed")
	ErrNilRequest    = errors.New("evalforge: request cannot be nil")
)

// Sentinel errors for iteration and aggregation.
var (
	ErrIteratorExhausted = errors.New("evalforge: iterator is exhausted")
	ErrUnknownScorer     = errors.New("evalforge: no results for scorer")
)

// Sentinel APIError values for use with errors.Is().
// These match on status code only.
var (
	ErrNotFound     = &APIError{StatusCode: 404}
	ErrUnauthorized = &APIError{StatusCode: 401}
	ErrForbidden    = &APIError{StatusCode: 403}
	ErrConflict     = &APIError{StatusCode: 409}
	ErrRateLimited  = &APIError{StatusCode: 429}
)

// APIError represents a non-2xx answer from the EvalForge API.
// It supports error wrapping via Unwrap() and comparison via Is().
type APIError struct {
	StatusCode int            `json:"-"`
	Message    string         `json:"message"`
	Fields     map[string]any `json:"errors"` // Field-level validation detail, when present
	Body       []byte         `json:"-"`      // Raw response payload
	RetryAfter time.Duration  `json:"-"`      // From the Retry-After header (429 only)
	Err        error          `json:"-"`      // Underlying error for wrapping
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("evalforge: API error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("evalforge: API error (status %d)", e.StatusCode)
}

// Unwrap returns the underlying error for error chain support.
func (e *APIError) Unwrap() error { return e.Err }

// Is implements error comparison for errors.Is().
// It matches on status code, allowing comparisons like:
//
//	if errors.Is(err, evalforge.ErrNotFound) { ... }
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.StatusCode == t.StatusCode
}

// IsNotFound returns true for 404 responses.
func (e *APIError) IsNotFound() bool { return e.StatusCode == 404 }

// IsUnauthorized returns true for 401 responses.
func (e *APIError) IsUnauthorized() bool { return e.StatusCode == 401 }

// IsForbidden returns true for 403 responses.
func (e *APIError) IsForbidden() bool { return e.StatusCode == 403 }

// IsConflict returns true for 409 responses.
func (e *APIError) IsConflict() bool { return e.StatusCode == 409 }

// IsRateLimited returns true for 429 responses.
func (e *APIError) IsRateLimited() bool { return e.StatusCode == 429 }

// IsServerError returns true for 5xx responses.
func (e *APIError) IsServerError() bool { return e.StatusCode >= 500 && e.StatusCode < 600 }

// IsRetryable reports whether a caller may retry the failed request.
// Rate limits and server errors are retryable from the caller's point of
// view; the transport never repeats them on its own.
func (e *APIError) IsRetryable() bool { return e.IsRateLimited() || e.IsServerError() }

// Code returns the error code for the API error.
func (e *APIError) Code() ErrorCode {
	switch {
	case e.IsUnauthorized(), e.IsForbidden():
		return ErrCodeAuth
	case e.IsNotFound():
		return ErrCodeNotFound
	case e.IsConflict():
		return ErrCodeConflict
	case e.IsRateLimited():
		return ErrCodeRateLimit
	case e.StatusCode == 400:
		return ErrCodeValidation
	case e.IsServerError():
		return ErrCodeInternal
	default:
		return ErrCodeAPI
	}
}

// Ensure APIError implements Error.
var _ Error = (*APIError)(nil)

// TransportError represents a transport-level fault that survived the retry
// budget: the request never produced an answer from the service.
type TransportError struct {
	Kind     ErrorCode // ErrCodeTimeout, ErrCodeConnect, or ErrCodeNetwork
	Attempts int       // Total attempts made, including the first
	Err      error     // Last underlying fault
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	var what string
	switch e.Kind {
	case ErrCodeTimeout:
		what = "request timed out"
	case ErrCodeConnect:
		what = "connection failed"
	default:
		what = "network error"
	}
	if e.Attempts > 1 {
		return fmt.Sprintf("evalforge: %s after %d attempts: %v", what, e.Attempts, e.Err)
	}
	return fmt.Sprintf("evalforge: %s: %v", what, e.Err)
}

// Unwrap returns the underlying error for error chain support.
func (e *TransportError) Unwrap() error { return e.Err }

// Code returns the transport fault kind.
func (e *TransportError) Code() ErrorCode { return e.Kind }

// IsRetryable returns true: transport faults are transient by classification.
func (e *TransportError) IsRetryable() bool { return true }

// Ensure TransportError implements Error.
var _ Error = (*TransportError)(nil)

// ValidationError represents a local (client-side) validation failure.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("evalforge: validation error for field %q: %s", e.Field, e.Message)
}

// Unwrap returns the underlying error for error chain support.
func (e *ValidationError) Unwrap() error { return e.Err }

// Code returns ErrCodeValidation.
func (e *ValidationError) Code() ErrorCode { return ErrCodeValidation }

// IsRetryable returns false: validation errors should be fixed, not retried.
func (e *ValidationError) IsRetryable() bool { return false }

// Ensure ValidationError implements Error.
var _ Error = (*ValidationError)(nil)

// NewValidationError creates a new local validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ConfigError represents an invalid construction parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("evalforge: invalid config: %s: %s", e.Field, e.Message)
}

// Unwrap allows errors.Is(err, ErrInvalidConfig).
func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

// Code returns ErrCodeConfig.
func (e *ConfigError) Code() ErrorCode { return ErrCodeConfig }

// IsRetryable returns false.
func (e *ConfigError) IsRetryable() bool { return false }

// Ensure ConfigError implements Error.
var _ Error = (*ConfigError)(nil)

// AssertionError is returned by the aggregator's threshold assertions.
type AssertionError struct {
	Metric    string  // "passing_rate", "average_score", or "scorer_score"
	ScorerID  string  // Set for per-scorer assertions
	Threshold float64
	Actual    float64
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	if e.ScorerID != "" {
		return fmt.Sprintf("evalforge: assertion failed: %s for scorer %q is %.2f, expected >= %.2f",
			e.Metric, e.ScorerID, e.Actual, e.Threshold)
	}
	return fmt.Sprintf("evalforge: assertion failed: %s is %.2f, expected >= %.2f",
		e.Metric, e.Actual, e.Threshold)
}

// Code returns ErrCodeAssertion.
func (e *AssertionError) Code() ErrorCode { return ErrCodeAssertion }

// IsRetryable returns false.
func (e *AssertionError) IsRetryable() bool { return false }

// Ensure AssertionError implements Error.
var _ Error = (*AssertionError)(nil)

// AsAPIError extracts an APIError from the error chain.
// Returns the APIError and true if found, nil and false otherwise.
//
// Example:
//
//	if apiErr, ok := evalforge.AsAPIError(err); ok {
//	    log.Printf("API error %d: %s", apiErr.StatusCode, apiErr.Message)
//	}
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// AsTransportError extracts a TransportError from the error chain.
func AsTransportError(err error) (*TransportError, bool) {
	var tErr *TransportError
	if errors.As(err, &tErr) {
		return tErr, true
	}
	return nil, false
}

// AsValidationError extracts a ValidationError from the error chain.
func AsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}

// AsAssertionError extracts an AssertionError from the error chain.
func AsAssertionError(err error) (*AssertionError, bool) {
	var aErr *AssertionError
	if errors.As(err, &aErr) {
		return aErr, true
	}
	return nil, false
}

// IsRetryable reports whether the error represents a condition the caller
// may retry. Works with any error produced by this SDK.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var efErr Error
	if errors.As(err, &efErr) {
		return efErr.IsRetryable()
	}
	return false
}

// RetryAfter returns the server-suggested retry delay from a rate limit
// error, or 0 if the error carries no hint.
func RetryAfter(err error) time.Duration {
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.RetryAfter
	}
	return 0
}

// ErrorCodeOf returns the error code for an error, falling back to sentinel
// inspection when the error does not implement the Error interface.
func ErrorCodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}

	var efErr Error
	if errors.As(err, &efErr) {
		return efErr.Code()
	}

	switch {
	case errors.Is(err, ErrMissingAPIKey):
		return ErrCodeCredential
	case errors.Is(err, ErrInvalidConfig):
		return ErrCodeConfig
	case errors.Is(err, ErrClientClosed):
		return ErrCodeNetwork
	case errors.Is(err, ErrIteratorExhausted):
		return ErrCodeIterator
	case errors.Is(err, ErrUnknownScorer):
		return ErrCodeAssertion
	case errors.Is(err, ErrNilRequest):
		return ErrCodeValidation
	}

	return ErrCodeNetwork
}
