// Package apperrors defines the error taxonomy shared by every screen.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error by how the user is expected to react to it.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindPrecondition Kind = "precondition"
	KindInternal     Kind = "internal"
)

// Error is a user-facing error with a stable code.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target has the same kind and code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

// WithMessage returns a copy of the error with a custom message.
func (e *Error) WithMessage(message string) *Error {
	return &Error{Kind: e.Kind, Code: e.Code, Message: message}
}

// NewValidationError creates a validation error for a specific field.
func NewValidationError(field, message string) *Error {
	return &Error{Kind: KindValidation, Code: "invalid_" + field, Message: message}
}

// NewNotFoundError creates a not found error for a specific resource type.
func NewNotFoundError(resource string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Code:    resource + "_not_found",
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewConflictError creates a conflict error with a custom message.
func NewConflictError(code, message string) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: message}
}

// NewPreconditionError creates an error for an action attempted in the wrong state.
func NewPreconditionError(code, message string) *Error {
	return &Error{Kind: KindPrecondition, Code: code, Message: message}
}

// KindOf returns the kind of the first *Error in err's chain,
// or KindInternal when there is none.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// UserMessage returns the message meant for the user. Errors that are not
// part of the taxonomy are reported generically.
func UserMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "An error occurred. Please try again."
}
