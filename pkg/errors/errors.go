package errors

import (
	"errors"
	"fmt"
)

// ResourceNotFoundError is returned when a looked-up resource does not exist.
type ResourceNotFoundError struct {
	Resource string
	ID       string
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

func NewResourceNotFoundError(resource, id string) *ResourceNotFoundError {
	return &ResourceNotFoundError{Resource: resource, ID: id}
}

func NewAlarmNotFoundError(id string) *ResourceNotFoundError {
	return NewResourceNotFoundError("alarm", id)
}

func NewFunnelItemNotFoundError(id string) *ResourceNotFoundError {
	return NewResourceNotFoundError("funnel item", id)
}

func IsResourceNotFoundError(err error) bool {
	var e *ResourceNotFoundError
	return errors.As(err, &e)
}

// InvalidStateError is returned when an operation does not fit the current
// state of a resource, like pausing an alarm that is already ringing.
type InvalidStateError struct {
	Resource  string
	State     string
	Operation string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s %s in state %q", e.Operation, e.Resource, e.State)
}

func NewInvalidStateError(resource, state, operation string) *InvalidStateError {
	return &InvalidStateError{Resource: resource, State: state, Operation: operation}
}

func IsInvalidStateError(err error) bool {
	var e *InvalidStateError
	return errors.As(err, &e)
}

// ValidationError wraps a rejected input value.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func NewValidationError(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Err: err}
}

func IsValidationError(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}
