package providers

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrEmptyText is returned when there is nothing to extract from.
	ErrEmptyText = errors.New("text to extract is empty")
	// ErrNoNamesFound is returned when the extractor ran but produced no names.
	ErrNoNamesFound = errors.New("no player names found in text")
	// ErrExtractorUnavailable is returned when no extractor is configured.
	ErrExtractorUnavailable = errors.New("extractor unavailable")
)

// ExternalServiceError wraps a failed call to an upstream extraction service.
// Callers should surface it as retryable; it never affects existing teams.
type ExternalServiceError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *ExternalServiceError) Error() string {
	msg := "external service failed"
	if e.Provider != "" {
		msg = e.Provider + ": " + msg
	}
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

// Temporary reports whether retrying the call may succeed.
func (e *ExternalServiceError) Temporary() bool {
	return e.StatusCode == 0 || e.StatusCode >= 500
}

// AsExternalServiceError attempts to unwrap an error into an ExternalServiceError.
func AsExternalServiceError(err error) (*ExternalServiceError, bool) {
	var extErr *ExternalServiceError
	if errors.As(err, &extErr) {
		return extErr, true
	}
	return nil, false
}

// RateLimitError captures rate limit responses from upstream providers.
type RateLimitError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "provider rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}

// Retryable reports whether err is worth another attempt.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if _, ok := AsRateLimitError(err); ok {
		return true
	}
	if extErr, ok := AsExternalServiceError(err); ok {
		return extErr.Temporary()
	}
	return false
}
