package api

import (
	"errors"
	"fmt"
)

// NotFoundError represents a resource not found error with contextual
// information. It is returned by backend collaborators when a requested
// server or tool does not exist.
type NotFoundError struct {
	// ResourceType categorizes the type of resource that was not found
	// (e.g., "MCP server", "tool").
	ResourceType string

	// ResourceName is the specific identifier of the resource.
	ResourceName string
}

// Error implements the error interface for NotFoundError.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.ResourceType, e.ResourceName)
}

// IsNotFound checks if an error is a NotFoundError using error unwrapping.
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// NewServerNotFoundError creates a not found error for an MCP server.
func NewServerNotFoundError(name string) *NotFoundError {
	return &NotFoundError{ResourceType: "MCP server", ResourceName: name}
}

// NewToolNotFoundError creates a not found error for a tool.
func NewToolNotFoundError(name string) *NotFoundError {
	return &NotFoundError{ResourceType: "tool", ResourceName: name}
}

// ValidationError reports a form field that failed client-side validation.
// It blocks submission and is rendered inline next to the field, never as
// a transient notification.
type ValidationError struct {
	// Field is the form field that failed validation.
	Field string

	// Reason is the human-readable explanation shown next to the field.
	Reason string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// IsValidation checks if an error is a ValidationError using error
// unwrapping.
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// Errors returned by dashboard components when a collaborator is missing
// or an operation is rejected by local state.
var (
	// ErrActionInFlight indicates another action is still running; the
	// disabled-state guard rejects the new request instead of queuing it.
	ErrActionInFlight = errors.New("another action is already in flight")

	// ErrActionNotAllowed indicates the action is disabled for the
	// server's current connection status.
	ErrActionNotAllowed = errors.New("action not allowed in current connection status")

	// ErrNoActionHandler indicates no ActionFunc collaborator was supplied.
	ErrNoActionHandler = errors.New("no action handler registered")

	// ErrNoPersistHandler indicates no PersistFunc collaborator was supplied.
	ErrNoPersistHandler = errors.New("no persist handler registered")

	// ErrSubmitInFlight indicates a form submission is still pending.
	ErrSubmitInFlight = errors.New("submission already in flight")

	// ErrFormClosed indicates the form modal is not open.
	ErrFormClosed = errors.New("form is not open")
)
