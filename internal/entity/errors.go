package entity

import (
	"errors"
	"fmt"
	"net/http"
)

// Validation errors
var (
	ErrEmptyPrompt   = errors.New("prompt must not be empty")
	ErrPromptTooLong = errors.New("prompt is too long")
	ErrInvalidFormat = errors.New("invalid format")
	ErrInvalidBody   = errors.New("invalid request body")
)

// ConfigError is returned at startup when the process configuration is unusable.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s: %s", e.Field, e.Reason)
}

// UpstreamStatusError carries the HTTP status and message reported by the
// text-generation service. Status 500 is also used for unexpected failures
// during a call.
type UpstreamStatusError struct {
	Status  int
	Message string
	Err     error
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("upstream error %d: %s", e.Status, e.Message)
}

func (e *UpstreamStatusError) Unwrap() error {
	return e.Err
}

// NewUnexpectedUpstreamError wraps a failure that is neither a status error
// nor a transport error.
func NewUnexpectedUpstreamError(err error) *UpstreamStatusError {
	return &UpstreamStatusError{
		Status:  http.StatusInternalServerError,
		Message: fmt.Sprintf("Unexpected error contacting upstream: %v", err),
		Err:     err,
	}
}

// NetworkError is returned once all attempts failed at the transport level.
type NetworkError struct {
	Attempts uint
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error contacting upstream after %d attempts: %v", e.Attempts, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
