// Package errors provides the standardized error type shared by the
// verification pipeline and the HTTP layer.
package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidation  ErrorCode = "VALIDATION_ERROR"
	ErrCodeInvalidBody ErrorCode = "INVALID_REQUEST_BODY"

	ErrCodeUpstream   ErrorCode = "UPSTREAM_ERROR"
	ErrCodeNetwork    ErrorCode = "NETWORK_ERROR"
	ErrCodeLLMTimeout ErrorCode = "LLM_TIMEOUT"

	ErrCodeParse           ErrorCode = "PARSE_ERROR"
	ErrCodeSchemaViolation ErrorCode = "SCHEMA_VIOLATION"

	ErrCodeSearchFailed     ErrorCode = "SEARCH_FAILED"
	ErrCodeWebSearchTimeout ErrorCode = "WEB_SEARCH_TIMEOUT"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code       ErrorCode              `json:"code"`
	Message    string                 `json:"message"`
	Details    string                 `json:"details,omitempty"`
	Retryable  bool                   `json:"retryable"`
	StatusCode int                    `json:"statusCode,omitempty"` // upstream HTTP status, when there was one
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	Timestamp  time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// Is matches another *StandardError by code, so errors.Is(err, &StandardError{Code: c})
// works across wrapping.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// ==========================
// 2. Error Constructors
// ==========================

// NewValidationError creates a non-retryable client error.
func NewValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidation,
		Message:   "Missing required fields: data, type, or apiKey",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidBodyError reports a request body that is not decodable JSON.
func NewInvalidBodyError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidBody,
		Message:   "Invalid request body",
		Details:   errString(err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewUpstreamError reports a non-success HTTP status from an upstream API.
// Only 429 and 5xx are retryable.
func NewUpstreamError(service string, status int, details string) *StandardError {
	return &StandardError{
		Code:       ErrCodeUpstream,
		Message:    fmt.Sprintf("%s returned status %d", service, status),
		Details:    details,
		Retryable:  status == http.StatusTooManyRequests || status >= http.StatusInternalServerError,
		StatusCode: status,
		Metadata:   map[string]interface{}{"service": service},
		Timestamp:  time.Now().UTC(),
	}
}

// NewNetworkError reports a transport-level failure talking to an upstream API.
func NewNetworkError(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNetwork,
		Message:   fmt.Sprintf("%s request failed", service),
		Details:   errString(err),
		Retryable: true,
		Metadata:  map[string]interface{}{"service": service},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewLLMTimeoutError is the NetworkError variant for an expired model call.
func NewLLMTimeoutError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeLLMTimeout,
		Message:   "Model call timed out",
		Details:   errString(err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewParseError reports model output that could not be turned into a result.
// Parse failures are deterministic for a given reply and never retried.
func NewParseError(message string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeParse,
		Message:   message,
		Details:   errString(err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewSchemaViolationError reports a synthesized record that failed its schema.
func NewSchemaViolationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSchemaViolation,
		Message:   "Result does not match its schema",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchFailedError reports a failed web search.
func NewSearchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchFailed,
		Message:   "Web search failed",
		Details:   errString(err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewWebSearchTimeoutError reports an expired web search.
func NewWebSearchTimeoutError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeWebSearchTimeout,
		Message:   "Web search timed out",
		Details:   errString(err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewInternalError wraps anything unexpected, including recovered panics.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   errString(err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// ==========================
// 3. Classification
// ==========================

// GetRetryCount returns the recommended number of extra attempts for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeNetwork, ErrCodeUpstream:
		return 1
	case ErrCodeLLMTimeout:
		return 1
	default:
		return 0
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// IsRetryable reports whether err is a transient upstream failure.
func IsRetryable(err error) bool {
	var stdErr *StandardError
	if !stderrors.As(err, &stdErr) {
		return false
	}
	return stdErr.Retryable && IsRetryableErrorCode(stdErr.Code)
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code ErrorCode) bool {
	return stderrors.Is(err, &StandardError{Code: code})
}

// HTTPStatus maps an error code to the status the HTTP layer answers with.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeValidation, ErrCodeInvalidBody:
		return http.StatusBadRequest
	case ErrCodeParse, ErrCodeSearchFailed, ErrCodeWebSearchTimeout:
		// recovered in-band
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	case strings.Contains(codeStr, "LLM") || code == ErrCodeUpstream || code == ErrCodeNetwork:
		return "UPSTREAM"
	case strings.Contains(codeStr, "PARSE") || strings.Contains(codeStr, "SCHEMA"):
		return "PARSE"
	case strings.Contains(codeStr, "SEARCH"):
		return "SEARCH"
	default:
		return "OTHER"
	}
}

// Normalize ensures we always have a StandardError. Context expiry maps to
// a network error so callers see one failure path for timeouts.
func Normalize(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return NewNetworkError("upstream", err)
	}
	return NewInternalError(err)
}
