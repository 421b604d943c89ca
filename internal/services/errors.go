package services

import (
	"errors"
	"fmt"
	"strings"
)

// ConnectionErrorMarker marks an upstream failure as a transient connectivity problem.
const ConnectionErrorMarker = "Connection error"

var (
	ErrProfileRequired  = errors.New("profile must be saved first")
	ErrAnalysisRequired = errors.New("clothing analysis required before recommendation")
	ErrNotRecognized    = errors.New("personal color diagnosis was not recognized")
	ErrSpeechDisabled   = errors.New("speech synthesis is disabled")
)

// ServiceError reports an upstream dependency that was unavailable or rejected the call.
type ServiceError struct {
	Provider string
	Err      error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s service error: %v", e.Provider, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// TransientNetworkError is a ServiceError that may succeed when retried.
type TransientNetworkError struct {
	ServiceError
}

func NewTransientNetworkError(provider string, err error) *TransientNetworkError {
	return &TransientNetworkError{ServiceError{Provider: provider, Err: err}}
}

func (e *TransientNetworkError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Provider, ConnectionErrorMarker, e.Err)
}

func (e *TransientNetworkError) Unwrap() error {
	return &e.ServiceError
}

// MalformedResponseError keeps the raw response for diagnostics.
type MalformedResponseError struct {
	Reason string
	Raw    string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed response: %s", e.Reason)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ProviderError surfaces the weather provider's own result message unmodified.
type ProviderError struct {
	Code    string
	Message string
}

func (e *ProviderError) Error() string {
	return e.Message
}

// IsTransient reports whether err is eligible for retry.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var tne *TransientNetworkError
	if errors.As(err, &tne) {
		return true
	}
	return strings.Contains(err.Error(), ConnectionErrorMarker)
}
