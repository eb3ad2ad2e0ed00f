package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a referenced entity as absent. Handlers map it to 404.
var ErrNotFound = errors.New("not found")

// ValidationError is a client fault, surfaced as 422 with field detail.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Fields)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: reason}}
}

// ProviderError is an external AI call failure. It never reaches the API
// caller: the recommendation engine absorbs it through the fallback path.
// Transient errors (timeout, 5xx, connection reset) are worth one retry,
// permanent ones (4xx, unconfigured provider) are not.
type ProviderError struct {
	Transient bool
	Err       error
}

func (e *ProviderError) Error() string {
	kind := "permanent"
	if e.Transient {
		kind = "transient"
	}
	return fmt.Sprintf("provider error (%s): %v", kind, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
