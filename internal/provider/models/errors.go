package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for common provider failures.
var (
	ErrAuthentication = errors.New("authentication failed")
	ErrRateLimit      = errors.New("rate limit exceeded")
	ErrInvalidModel   = errors.New("invalid model")
	ErrEmptyResponse  = errors.New("model returned an empty response")
)

// ProviderError wraps a backend failure with provider context.
type ProviderError struct {
	Provider   string
	Message    string
	Underlying error
}

func (e *ProviderError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Provider, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Underlying }
