// Package errors provides standardized error handling for the notification core.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Template errors
	ErrCodeTemplateNotFound        ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrCodeTemplateLanguageMissing ErrorCode = "TEMPLATE_LANGUAGE_MISSING"

	// Channel / delivery errors
	ErrCodeChannelDisabled ErrorCode = "CHANNEL_DISABLED"
	ErrCodeDeliveryFailed  ErrorCode = "DELIVERY_FAILED"
	ErrCodeDeliveryTimeout ErrorCode = "DELIVERY_TIMEOUT"
	ErrCodeNoAddress       ErrorCode = "NO_ADDRESS"

	// Subscription / data errors
	ErrCodeUserNotFound             ErrorCode = "USER_NOT_FOUND"
	ErrCodeSubscriptionUpdateFailed ErrorCode = "SUBSCRIPTION_UPDATE_FAILED"
	ErrCodeSubscriptionQueryFailed  ErrorCode = "SUBSCRIPTION_QUERY_FAILED"
	ErrCodeReminderStoreFailed      ErrorCode = "REMINDER_STORE_FAILED"
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

// Is lets errors.Is match two StandardErrors by code.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// ==========================
// 2. Error Constructors
// ==========================

// NewTemplateNotFoundError creates a non-retryable template error.
func NewTemplateNotFoundError(key string) *StandardError {
	return &StandardError{
		Code:      ErrCodeTemplateNotFound,
		Message:   "Template not found in registry",
		Details:   fmt.Sprintf("templateKey: %s", key),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTemplateLanguageMissingError creates a non-retryable template error for a
// key that exists but has no variant in the requested language.
func NewTemplateLanguageMissingError(key, language string) *StandardError {
	return &StandardError{
		Code:      ErrCodeTemplateLanguageMissing,
		Message:   "Template has no variant for requested language",
		Details:   fmt.Sprintf("templateKey: %s, language: %s", key, language),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewChannelDisabledError creates a non-retryable configuration error for a
// channel whose credentials were missing at startup.
func NewChannelDisabledError(channel string) *StandardError {
	return &StandardError{
		Code:      ErrCodeChannelDisabled,
		Message:   "Channel is disabled by configuration",
		Details:   fmt.Sprintf("channel: %s", channel),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDeliveryFailedError creates a retryable delivery error for a provider
// rejection of a single send.
func NewDeliveryFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDeliveryFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDeliveryTimeoutError creates a retryable delivery timeout error.
func NewDeliveryTimeoutError(channel string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDeliveryTimeout,
		Message:   "Notification delivery timed out",
		Details:   fmt.Sprintf("channel: %s", channel),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNoAddressError creates a non-retryable error for a recipient with no
// address on the requested channel.
func NewNoAddressError(channel string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNoAddress,
		Message:   "Recipient has no address for channel",
		Details:   fmt.Sprintf("channel: %s", channel),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUserNotFoundError creates a non-retryable data error.
func NewUserNotFoundError(userID int64) *StandardError {
	return &StandardError{
		Code:      ErrCodeUserNotFound,
		Message:   "User not found",
		Details:   fmt.Sprintf("userId: %d", userID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSubscriptionUpdateFailedError creates a retryable database error.
func NewSubscriptionUpdateFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSubscriptionUpdateFailed,
		Message:   "Subscription update failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSubscriptionQueryFailedError creates a retryable database error.
func NewSubscriptionQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSubscriptionQueryFailed,
		Message:   "Subscription query failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewReminderStoreFailedError creates a retryable error for the idempotency
// guard store.
func NewReminderStoreFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeReminderStoreFailed,
		Message:   "Reminder record store error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// Generic constructors

func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "EXTERNAL_SERVICE_ERROR",
		Message:   fmt.Sprintf("External service '%s' error", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewResourceNotFoundError(service, details string) *StandardError {
	return &StandardError{
		Code:      "RESOURCE_NOT_FOUND",
		Message:   fmt.Sprintf("Resource not found in %s", service),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
