package errors

import "errors"

// RateLimitError represents a rate limit error from any API
type RateLimitError struct {
	Service string
	Message string
}

func (e *RateLimitError) Error() string {
	if e.Service == "" {
		return e.Message
	}
	return e.Service + ": " + e.Message
}

// NewRateLimitError creates a new RateLimitError for the given service
func NewRateLimitError(service, message string) *RateLimitError {
	return &RateLimitError{Service: service, Message: message}
}

// IsRateLimitError reports whether err is a RateLimitError (even when wrapped).
func IsRateLimitError(err error) bool {
	var rlErr *RateLimitError
	return errors.As(err, &rlErr)
}
