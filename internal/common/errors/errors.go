// Package errors provides standardized error handling for the assistant and financing workers.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Calculator / input errors
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"

	// Inventory collaborator errors
	ErrCodeLookupFailure ErrorCode = "LOOKUP_FAILURE"

	// Never surfaced: the classifier always resolves to General.
	ErrCodeUnclassifiableInput ErrorCode = "UNCLASSIFIABLE_INPUT"

	ErrCodeSessionStoreFailed ErrorCode = "SESSION_STORE_FAILED"

	// Financing workflow errors
	ErrCodeApplicationNotFound     ErrorCode = "APPLICATION_NOT_FOUND"
	ErrCodeInvalidStatusTransition ErrorCode = "INVALID_STATUS_TRANSITION"
	ErrCodeDatabaseUpdateFailed    ErrorCode = "DATABASE_UPDATE_FAILED"
	ErrCodeNotificationSendFailed  ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause so errors.Is keeps working on sentinels.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewValidationError creates a non-retryable caller-input error.
func NewValidationError(details string, cause error) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidation,
		Message:   "Invalid input values",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// NewLookupFailureError wraps an inventory collaborator failure.
func NewLookupFailureError(source string, cause error) *StandardError {
	details := fmt.Sprintf("source: %s", source)
	if cause != nil {
		details = fmt.Sprintf("source: %s, error: %s", source, cause.Error())
	}
	return &StandardError{
		Code:      ErrCodeLookupFailure,
		Message:   "Inventory lookup failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// NewSessionStoreFailedError wraps a conversation session store failure.
func NewSessionStoreFailedError(sessionID string, cause error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionStoreFailed,
		Message:   "Conversation session store error",
		Details:   fmt.Sprintf("sessionId: %s, error: %v", sessionID, cause),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// NewApplicationNotFoundError creates a non-retryable missing financing application error.
func NewApplicationNotFoundError(applicationID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeApplicationNotFound,
		Message:   "Financing application not found",
		Details:   fmt.Sprintf("applicationId: %s", applicationID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidStatusTransitionError rejects a financing status change the lifecycle does not allow.
func NewInvalidStatusTransitionError(from, to string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidStatusTransition,
		Message:   "Financing status transition not allowed",
		Details:   fmt.Sprintf("from: %s, to: %s", from, to),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseUpdateFailedError wraps a failed write.
func NewDatabaseUpdateFailedError(cause error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseUpdateFailed,
		Message:   "Database update error",
		Details:   cause.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// NewNotificationSendFailedError wraps an email/SMS delivery failure.
func NewNotificationSendFailedError(channel string, cause error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Failed to send notification",
		Details:   fmt.Sprintf("channel: %s, error: %v", channel, cause),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeValidation:              "VALIDATION_ERROR",
	ErrCodeLookupFailure:           "LOOKUP_FAILURE",
	ErrCodeUnclassifiableInput:     "UNCLASSIFIABLE_INPUT",
	ErrCodeSessionStoreFailed:      "SESSION_STORE_FAILED",
	ErrCodeApplicationNotFound:     "APPLICATION_NOT_FOUND",
	ErrCodeInvalidStatusTransition: "INVALID_STATUS_TRANSITION",
	ErrCodeDatabaseUpdateFailed:    "DATABASE_UPDATE_FAILED",
	ErrCodeNotificationSendFailed:  "NOTIFICATION_SEND_FAILED",
	ErrCodeInternal:                "INTERNAL_ERROR",
}

// GetRetryCount returns the retry count for a code. Nothing in this service is retried
// automatically; retries belong to the caller or the process model.
func GetRetryCount(code ErrorCode) int {
	return 0
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	code, ok := BPMNErrorMapping[stdErr.Code]
	if !ok {
		code = string(stdErr.Code)
	}
	return &BPMNError{
		Code:      code,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   GetRetryCount(stdErr.Code),
		ErrorVariables: map[string]interface{}{
			"timestamp": stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// AsStandardError extracts a StandardError from an error chain.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code ErrorCode) bool {
	stdErr, ok := AsStandardError(err)
	return ok && stdErr.Code == code
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	switch {
	case code == ErrCodeValidation || code == ErrCodeInvalidStatusTransition:
		return "input"
	case code == ErrCodeLookupFailure || strings.HasPrefix(string(code), "DATABASE_"):
		return "data"
	case code == ErrCodeSessionStoreFailed:
		return "session"
	case code == ErrCodeNotificationSendFailed:
		return "notification"
	case code == ErrCodeApplicationNotFound:
		return "business"
	default:
		return "system"
	}
}
