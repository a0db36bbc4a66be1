package llm

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies model invocation failures.
type ErrorKind string

const (
	KindTimeout           ErrorKind = "timeout"
	KindAuthFailure       ErrorKind = "auth_failure"
	KindRateLimited       ErrorKind = "rate_limited"
	KindMalformedResponse ErrorKind = "malformed_response"
	KindUnknown           ErrorKind = "unknown"
)

// Error is a structured model invocation error.
type Error struct {
	Kind       ErrorKind // classification of the failure
	Message    string    // human-readable message
	Retryable  bool      // whether the operation can be retried
	Cause      error     // underlying error
	StatusCode int       // HTTP status code if applicable
	Model      string    // model name if known
	Endpoint   string    // endpoint URL if known
}

// Error implements the error interface.
func (e *Error) Error() string {
	var parts []string
	parts = append(parts, string(e.Kind))

	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("HTTP %d", e.StatusCode))
	}
	if e.Model != "" {
		parts = append(parts, fmt.Sprintf("model=%s", e.Model))
	}

	parts = append(parts, e.Message)

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", strings.Join(parts, " "), e.Cause)
	}
	return strings.Join(parts, " ")
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsRetryable implements the retry.RetryableError interface.
func (e *Error) IsRetryable() bool {
	return e.Retryable
}

// NewError creates a new structured model error.
func NewError(kind ErrorKind, message string, retryable bool, cause error) *Error {
	return &Error{
		Kind:      kind,
		Message:   message,
		Retryable: retryable,
		Cause:     cause,
	}
}

// ClassifyError categorizes an error into a structured Error so every layer
// above the client sees one failure shape.
func ClassifyError(err error) *Error {
	if err == nil {
		return nil
	}

	var llmErr *Error
	if errors.As(err, &llmErr) {
		return llmErr
	}

	errStr := err.Error()
	lower := strings.ToLower(errStr)

	statusCode := 0
	for _, code := range []int{400, 401, 403, 404, 429, 500, 502, 503, 504} {
		if strings.Contains(errStr, fmt.Sprintf("%d", code)) {
			statusCode = code
			break
		}
	}

	classified := func(kind ErrorKind, message string, retryable bool) *Error {
		e := NewError(kind, message, retryable, err)
		e.StatusCode = statusCode
		return e
	}

	// Authentication errors (not retryable without new credentials)
	if strings.Contains(errStr, "401") || strings.Contains(lower, "unauthorized") ||
		strings.Contains(lower, "invalid api key") || strings.Contains(lower, "authentication") {
		return classified(KindAuthFailure, "authentication failed", false)
	}

	// Rate limiting (retryable after backoff)
	if strings.Contains(errStr, "429") || strings.Contains(lower, "rate limit") ||
		strings.Contains(lower, "too many requests") {
		return classified(KindRateLimited, "rate limited", true)
	}

	// Timeout and cancellation (retryable; cancellation aborts upstream)
	if strings.Contains(lower, "timeout") ||
		strings.Contains(lower, "deadline exceeded") ||
		strings.Contains(lower, "context canceled") {
		return classified(KindTimeout, "request timeout", true)
	}

	// Connection failures behave like timeouts from the caller's viewpoint
	if strings.Contains(lower, "connection refused") || strings.Contains(lower, "no such host") ||
		strings.Contains(lower, "connection reset") {
		return classified(KindTimeout, "connection failed", true)
	}

	// Empty or unusable response bodies
	if strings.Contains(lower, "no choices") || strings.Contains(lower, "empty response") ||
		strings.Contains(lower, "unmarshal") {
		return classified(KindMalformedResponse, "unusable response", false)
	}

	// 5xx server errors (retryable)
	if statusCode >= 500 {
		return classified(KindUnknown, "server error", true)
	}

	return classified(KindUnknown, "model invocation failed", false)
}

// IsRetryable reports whether the error is retryable.
func IsRetryable(err error) bool {
	var llmErr *Error
	if errors.As(err, &llmErr) {
		return llmErr.Retryable
	}
	return false
}

// GetErrorKind extracts the ErrorKind from an error.
func GetErrorKind(err error) ErrorKind {
	var llmErr *Error
	if errors.As(err, &llmErr) {
		return llmErr.Kind
	}
	return KindUnknown
}
