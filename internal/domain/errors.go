package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError is implemented by typed errors that know their HTTP status.
// Plain sentinel errors are mapped by the handlers instead.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// Content and editing errors. All of them are validation failures from the
// caller's point of view, so they match ErrValidation as well.
var (
	ErrInvalidNodeKind          = fmt.Errorf("invalid node kind: %w", ErrValidation)
	ErrMissingRequiredAttribute = fmt.Errorf("missing required attribute: %w", ErrValidation)
	ErrIndexOutOfRange          = fmt.Errorf("index out of range: %w", ErrValidation)
	ErrUnsupportedBlockKind     = fmt.Errorf("unsupported block kind: %w", ErrValidation)
	ErrPublishValidationFailed  = fmt.Errorf("publish validation failed: %w", ErrValidation)
)

// ErrDeserializeParseFailure is recorded on a record whose stored content could
// not be parsed. It is never returned from a listing.
var ErrDeserializeParseFailure = errors.New("content parse failure")

// ErrUpstreamFailure matches every UpstreamError.
var ErrUpstreamFailure = errors.New("upstream collaborator failure")

// UpstreamError wraps a failure of an external collaborator (store, media host,
// identity provider). The cause is passed through untouched.
type UpstreamError struct {
	Collaborator string
	Op           string
	Err          error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Collaborator, e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Is allows errors.Is() to match against ErrUpstreamFailure
func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstreamFailure
}

// StatusCode implements the HTTPError interface
func (e *UpstreamError) StatusCode() int { return http.StatusBadGateway }

// ConflictError represents a resource conflict with details about the existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (project)
	ResourceID   string // ID of the existing/conflicting resource
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// ProblemExtras names the conflicting resource in the problem body
func (e *ConflictError) ProblemExtras() map[string]any {
	return map[string]any{
		"resource_type": e.ResourceType,
		"resource_id":   e.ResourceID,
	}
}
