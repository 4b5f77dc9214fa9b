// Package errors provides standardized error handling for the order pipeline
// and the read API.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	ErrCodeProvisioningRejected    ErrorCode = "PROVISIONING_REJECTED"
	ErrCodeProvisioningUnreachable ErrorCode = "PROVISIONING_UNREACHABLE"
	ErrCodeProvisioningBadResponse ErrorCode = "PROVISIONING_BAD_RESPONSE"

	ErrCodeStoreQueryFailed  ErrorCode = "STORE_QUERY_FAILED"
	ErrCodeStoreUpdateFailed ErrorCode = "STORE_UPDATE_FAILED"

	ErrCodeScanLockHeld ErrorCode = "SCAN_LOCK_HELD"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewValidationError creates a non-retryable input validation error.
func NewValidationError(field, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   fmt.Sprintf("invalid value for %s", field),
		Details:   details,
		Retryable: false,
		Metadata:  map[string]interface{}{"field": field},
		Timestamp: time.Now().UTC(),
	}
}

// NewProvisioningRejectedError records a reachable endpoint declining an
// order (non-2xx status or a body status other than "Successful").
func NewProvisioningRejectedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProvisioningRejected,
		Message:   "provisioning endpoint rejected the order",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewProvisioningUnreachableError records a transport-level failure talking
// to the provisioning endpoint.
func NewProvisioningUnreachableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProvisioningUnreachable,
		Message:   "provisioning endpoint unreachable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewProvisioningBadResponseError records an unparseable endpoint response.
func NewProvisioningBadResponseError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProvisioningBadResponse,
		Message:   "provisioning endpoint returned a malformed response",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreQueryError wraps a failed read against the application store.
func NewStoreQueryError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreQueryFailed,
		Message:   fmt.Sprintf("store query %s failed", operation),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreUpdateError wraps a failed write against the application store.
func NewStoreUpdateError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreUpdateFailed,
		Message:   fmt.Sprintf("store update %s failed", operation),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}
