package errors

import (
	"encoding/json"
	"net/http"
	"time"
)

// ErrorHandler normalizes errors and writes them as JSON HTTP responses.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// WriteHTTPError normalizes err to a StandardError, logs it, and writes the
// JSON error envelope with a status code derived from the error code.
func (h *ErrorHandler) WriteHTTPError(w http.ResponseWriter, err error) {
	stdErr := h.normalizeError(err)

	h.logger.Error("request failed", map[string]interface{}{
		"errorCode":    stdErr.Code,
		"errorMessage": stdErr.Message,
		"errorDetails": stdErr.Details,
		"retryable":    stdErr.Retryable,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusForCode(stdErr.Code))
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success":   false,
		"message":   stdErr.Message,
		"code":      stdErr.Code,
		"timestamp": stdErr.Timestamp.Format(time.RFC3339),
	})
}

// normalizeError ensures we always have a StandardError.
func (h *ErrorHandler) normalizeError(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return &StandardError{
		Code:      "INTERNAL_ERROR",
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func statusForCode(code ErrorCode) int {
	switch code {
	case ErrCodeUserNotFound, ErrCodeTemplateNotFound, "RESOURCE_NOT_FOUND":
		return http.StatusNotFound
	case ErrCodeTemplateLanguageMissing, ErrCodeNoAddress:
		return http.StatusBadRequest
	case ErrCodeChannelDisabled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
