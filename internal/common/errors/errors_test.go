package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errSentinel = stderrors.New("sentinel")

func TestStandardError_UnwrapKeepsSentinel(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewValidationError("principal must be positive", errSentinel))

	assert.True(t, stderrors.Is(err, errSentinel))
	assert.True(t, HasCode(err, ErrCodeValidation))
	assert.False(t, HasCode(err, ErrCodeLookupFailure))

	stdErr, ok := AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, "principal must be positive", stdErr.Details)
	assert.Contains(t, stdErr.Error(), "VALIDATION_ERROR")
}

func TestNewLookupFailureError(t *testing.T) {
	err := NewLookupFailureError("postgres", errSentinel)

	assert.Equal(t, ErrCodeLookupFailure, err.Code)
	assert.False(t, err.Retryable)
	assert.Contains(t, err.Details, "postgres")
	assert.Contains(t, err.Details, "sentinel")
	assert.ErrorIs(t, err, errSentinel)
}

func TestGetRetryCount_NeverRetries(t *testing.T) {
	for code := range BPMNErrorMapping {
		assert.Equal(t, 0, GetRetryCount(code), string(code))
	}
}

func TestConvertToBPMNError(t *testing.T) {
	stdErr := NewInvalidStatusTransitionError("approved", "pending")
	bpmnErr := ConvertToBPMNError(stdErr)

	assert.Equal(t, "INVALID_STATUS_TRANSITION", bpmnErr.Code)
	assert.Equal(t, 0, bpmnErr.Retries)

	vars := bpmnErr.ToErrorVariables()
	assert.Equal(t, "INVALID_STATUS_TRANSITION", vars["errorCode"])
	assert.Equal(t, "from: approved, to: pending", vars["errorDetails"])
	assert.NotEmpty(t, vars["timestamp"])
}

func TestNormalize(t *testing.T) {
	t.Run("standard error passes through", func(t *testing.T) {
		in := NewApplicationNotFoundError("app-1")
		assert.Same(t, in, Normalize(in))
	})

	t.Run("plain error becomes internal", func(t *testing.T) {
		out := Normalize(errSentinel)
		assert.Equal(t, ErrCodeInternal, out.Code)
		assert.Equal(t, "sentinel", out.Details)
		assert.ErrorIs(t, out, errSentinel)
	})
}

func TestGetErrorCategory(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected string
	}{
		{ErrCodeValidation, "input"},
		{ErrCodeInvalidStatusTransition, "input"},
		{ErrCodeLookupFailure, "data"},
		{ErrCodeDatabaseUpdateFailed, "data"},
		{ErrCodeSessionStoreFailed, "session"},
		{ErrCodeNotificationSendFailed, "notification"},
		{ErrCodeApplicationNotFound, "business"},
		{ErrCodeInternal, "system"},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.expected, GetErrorCategory(tt.code))
		})
	}
}
