package evalforge

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIErrorCodeMapping(t *testing.T) {
	tests := []struct {
		status int
		code   ErrorCode
	}{
		{400, ErrCodeValidation},
		{401, ErrCodeAuth},
		{403, ErrCodeAuth},
		{404, ErrCodeNotFound},
		{409, ErrCodeConflict},
		{418, ErrCodeAPI},
		{429, ErrCodeRateLimit},
		{500, ErrCodeInternal},
		{502, ErrCodeInternal},
		{503, ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status %d", tt.status), func(t *testing.T) {
			err := &APIError{StatusCode: tt.status}
			assert.Equal(t, tt.code, err.Code())
		})
	}
}

func TestAPIErrorIs(t *testing.T) {
	err := &APIError{StatusCode: 404, Message: "dataset not found"}

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrRateLimited))

	wrapped := fmt.Errorf("lookup failed: %w", err)
	assert.True(t, errors.Is(wrapped, ErrNotFound))
}

func TestAPIErrorRetryable(t *testing.T) {
	assert.False(t, (&APIError{StatusCode: 400}).IsRetryable())
	assert.False(t, (&APIError{StatusCode: 404}).IsRetryable())
	assert.True(t, (&APIError{StatusCode: 429}).IsRetryable())
	assert.True(t, (&APIError{StatusCode: 500}).IsRetryable())
}

func TestAsAPIError(t *testing.T) {
	inner := &APIError{StatusCode: 409}
	wrapped := fmt.Errorf("create failed: %w", inner)

	apiErr, ok := AsAPIError(wrapped)
	require.True(t, ok)
	assert.Equal(t, 409, apiErr.StatusCode)

	_, ok = AsAPIError(errors.New("plain"))
	assert.False(t, ok)
}

func TestTransportErrorMessage(t *testing.T) {
	err := &TransportError{
		Kind:     ErrCodeTimeout,
		Attempts: 3,
		Err:      context.DeadlineExceeded,
	}

	assert.Contains(t, err.Error(), "timed out")
	assert.Contains(t, err.Error(), "3 attempts")
	assert.True(t, err.IsRetryable())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRetryAfterHelper(t *testing.T) {
	err := &APIError{StatusCode: 429, RetryAfter: 7 * time.Second}
	assert.Equal(t, 7*time.Second, RetryAfter(err))
	assert.Equal(t, time.Duration(0), RetryAfter(errors.New("other")))
	assert.Equal(t, time.Duration(0), RetryAfter(nil))
}

func TestIsRetryableHelper(t *testing.T) {
	assert.False(t, IsRetryable(nil))
	assert.False(t, IsRetryable(errors.New("plain")))
	assert.False(t, IsRetryable(NewValidationError("f", "bad")))
	assert.True(t, IsRetryable(&APIError{StatusCode: 503}))
	assert.True(t, IsRetryable(&TransportError{Kind: ErrCodeConnect}))
}

func TestErrorCodeOf(t *testing.T) {
	tests := []struct {
		err  error
		code ErrorCode
	}{
		{nil, ""},
		{ErrMissingAPIKey, ErrCodeCredential},
		{ErrClientClosed, ErrCodeNetwork},
		{ErrIteratorExhausted, ErrCodeIterator},
		{fmt.Errorf("wrapped: %w", ErrIteratorExhausted), ErrCodeIterator},
		{ErrNilRequest, ErrCodeValidation},
		{&ConfigError{Field: "Timeout"}, ErrCodeConfig},
		{&AssertionError{Metric: "passing_rate"}, ErrCodeAssertion},
		{errors.New("mystery"), ErrCodeNetwork},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.code, ErrorCodeOf(tt.err), "error %v", tt.err)
	}
}

func TestValidationErrorFields(t *testing.T) {
	err := NewValidationError("item_id", "item ID is required")
	assert.Contains(t, err.Error(), "item_id")
	assert.Equal(t, ErrCodeValidation, err.Code())
	assert.False(t, err.IsRetryable())
}
