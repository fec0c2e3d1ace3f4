package ai

import (
	"errors"
	"fmt"
)

// ErrUnconfigured is returned, without any network attempt, when a provider has no API key.
var ErrUnconfigured = errors.New("provider is not configured")

// ProviderError reports a failed provider call: transport failure, non-2xx
// status, or a response that could not be used.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	if e == nil {
		return ""
	}

	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, msg)
	}
	if e.Err != nil && e.Message != "" {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Provider, msg)
}

// Unwrap exposes the underlying error.
func (e *ProviderError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func unconfigured(provider string) error {
	return fmt.Errorf("%s: %w", provider, ErrUnconfigured)
}
