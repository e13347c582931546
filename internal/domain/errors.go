// Package domain holds error kinds shared across the service layers.
// A *Error marks an expected business failure; anything else bubbling out
// of a repository or broker is treated as a system fault.
package domain

import (
	"errors"
	"fmt"
)

// Kind classifies an expected domain failure.
type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindForbidden  Kind = "forbidden"
	KindConflict   Kind = "conflict"
)

// Error is an expected business-rule failure with a caller-safe message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// NewValidationError creates a validation-kind domain error.
func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NewNotFoundError creates a not-found domain error for a resource.
func NewNotFoundError(resource, id string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s %s not found", resource, id)}
}

// NewForbiddenError creates a forbidden-kind domain error.
func NewForbiddenError(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NewConflictError creates a conflict-kind domain error.
func NewConflictError(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// AsDomainError unwraps err into a *Error if it carries one.
func AsDomainError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
