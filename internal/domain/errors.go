package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
var (
	// ErrInvalidFilter indicates that a caller-supplied filter specification
	// violates a constraint. Surfaced before any upstream call is attempted.
	ErrInvalidFilter = errors.New("invalid filter")

	// ErrUpstreamRequest indicates that the upstream metadata source failed.
	ErrUpstreamRequest = errors.New("upstream request failed")

	// ErrMalformedRecord indicates that the normalizer received input that is
	// not a structured record at all. This is a programming-contract violation,
	// not a data-quality issue: missing or null subfields are absorbed silently.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrNotFound indicates that a requested work was not found upstream.
	ErrNotFound = errors.New("not found")
)

// InvalidFilterError describes which filter field failed validation and why.
type InvalidFilterError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *InvalidFilterError) Error() string {
	return fmt.Sprintf("invalid filter: %s: %s", e.Field, e.Message)
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *InvalidFilterError) Unwrap() error {
	return ErrInvalidFilter
}

// UpstreamRequestError wraps a failure raised by the upstream client.
// The original cause is preserved for diagnostics and errors.Is/As matching.
type UpstreamRequestError struct {
	Source  string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *UpstreamRequestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s request failed: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s request failed: %s", e.Source, e.Message)
}

// Unwrap returns the original cause error.
func (e *UpstreamRequestError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the ErrUpstreamRequest sentinel, so callers can
// match with errors.Is without losing the wrapped cause chain.
func (e *UpstreamRequestError) Is(target error) bool {
	return target == ErrUpstreamRequest
}

// MalformedRecordError describes a normalizer input that is not a record.
type MalformedRecordError struct {
	Reason string
}

// Error implements the error interface.
func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record: %s", e.Reason)
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *MalformedRecordError) Unwrap() error {
	return ErrMalformedRecord
}

// NotFoundError provides details about a work that was not found upstream.
type NotFoundError struct {
	Entity string
	ID     string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ExternalAPIError provides details about a non-success upstream API response.
type ExternalAPIError struct {
	Source     string
	StatusCode int
	Message    string
	Cause      error
}

// Error implements the error interface.
func (e *ExternalAPIError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Source, e.StatusCode, e.Message)
}

// Unwrap returns the underlying cause error.
func (e *ExternalAPIError) Unwrap() error {
	return e.Cause
}

// NewInvalidFilterError creates a new InvalidFilterError.
func NewInvalidFilterError(field, message string) *InvalidFilterError {
	return &InvalidFilterError{
		Field:   field,
		Message: message,
	}
}

// NewUpstreamRequestError creates a new UpstreamRequestError.
func NewUpstreamRequestError(source, message string, cause error) *UpstreamRequestError {
	return &UpstreamRequestError{
		Source:  source,
		Message: message,
		Cause:   cause,
	}
}

// NewMalformedRecordError creates a new MalformedRecordError.
func NewMalformedRecordError(reason string) *MalformedRecordError {
	return &MalformedRecordError{
		Reason: reason,
	}
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{
		Entity: entity,
		ID:     id,
	}
}

// NewExternalAPIError creates a new ExternalAPIError.
func NewExternalAPIError(source string, statusCode int, message string, cause error) *ExternalAPIError {
	return &ExternalAPIError{
		Source:     source,
		StatusCode: statusCode,
		Message:    message,
		Cause:      cause,
	}
}
