package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrRemote         = errors.New("remote error")
	ErrMalformedInput = errors.New("malformed input")
	ErrInvalidRequest = errors.New("invalid request")
	ErrConfiguration  = errors.New("configuration error")
	ErrUnauthorized   = errors.New("unauthorized")
)

// maxBodyInError caps how much of an upstream body ends up in error messages.
const maxBodyInError = 512

// RemoteError is a non-2xx answer from the termbase service.
type RemoteError struct {
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	body := e.Body
	if len(body) > maxBodyInError {
		body = body[:maxBodyInError] + "..."
	}
	return fmt.Sprintf("remote: status %d: %s", e.StatusCode, body)
}

func (e *RemoteError) Unwrap() error { return ErrRemote }

// MalformedInputError reports a payload that does not have the expected shape.
type MalformedInputError struct {
	Format string
	Err    error
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed %s input: %v", e.Format, e.Err)
}

func (e *MalformedInputError) Unwrap() []error { return []error{ErrMalformedInput, e.Err} }

// NewMalformedInput wraps err as a MalformedInputError for the given wire format.
func NewMalformedInput(format string, err error) *MalformedInputError {
	return &MalformedInputError{Format: format, Err: err}
}

// ConfigurationError reports a profile id that is not configured.
type ConfigurationError struct {
	ProfileID int
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: profile %d is not configured", e.ProfileID)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("invalid request: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("invalid request: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidRequest }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}
