// Package errors provides the coded domain errors returned by the draft layer.
//
// Usage:
//
//	// In the repository - return typed errors
//	if missing {
//	    return nil, errors.NotFoundf("meal plan draft %s not found", id)
//	}
//
//	// In callers - check with errors.Is
//	if errors.Is(err, errors.ErrNotFound) {
//	    // offer to start a new draft
//	}
//
//	// Or switch on the Code
//	var domainErr *errors.Error
//	if errors.As(err, &domainErr) {
//	    switch domainErr.Code {
//	    case errors.CodeCorruptDraft:
//	    case errors.CodeStorageFailure:
//	    }
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the application.
const (
	CodeNotFound            Code = "NOT_FOUND"
	CodeStorageFailure      Code = "STORAGE_FAILURE"
	CodeCorruptDraft        Code = "CORRUPT_DRAFT"
	CodeRecipeUnavailable   Code = "RECIPE_UNAVAILABLE"
	CodeIDGenerationFailure Code = "ID_GENERATION_FAILURE"
	CodeValidation          Code = "VALIDATION"
	CodeInternal            Code = "INTERNAL"
)

// HTTPStatus returns the appropriate HTTP status code for an error code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound, CodeRecipeUnavailable:
		return http.StatusNotFound
	case CodeValidation:
		return http.StatusBadRequest
	case CodeCorruptDraft:
		return http.StatusUnprocessableEntity
	case CodeStorageFailure:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error.
// Matches if target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// GetStatus satisfies huma.StatusError so handlers can return domain errors directly.
func (e *Error) GetStatus() int {
	return e.HTTPStatus()
}

// WithDetails returns a new error with additional details.
func (e *Error) WithDetails(details any) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		cause:   e.cause,
	}
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		cause:   err,
	}
}

// Sentinel errors for use with errors.Is().
var (
	ErrNotFound            = &Error{Code: CodeNotFound, Message: "not found"}
	ErrStorageFailure      = &Error{Code: CodeStorageFailure, Message: "storage failure"}
	ErrCorruptDraft        = &Error{Code: CodeCorruptDraft, Message: "corrupt draft"}
	ErrRecipeUnavailable   = &Error{Code: CodeRecipeUnavailable, Message: "recipe unavailable"}
	ErrIDGenerationFailure = &Error{Code: CodeIDGenerationFailure, Message: "id generation failure"}
	ErrValidation          = &Error{Code: CodeValidation, Message: "validation error"}
	ErrInternal            = &Error{Code: CodeInternal, Message: "internal error"}
)

// CodeOf returns the code carried by err, or CodeInternal when err is not a domain error.
func CodeOf(err error) Code {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return CodeInternal
}

// NotFound creates a not found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// NotFoundf creates a not found error with formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// StorageFailure wraps a blob store error.
func StorageFailure(err error, msg string) *Error {
	return &Error{Code: CodeStorageFailure, Message: msg, cause: err}
}

// StorageFailuref wraps a blob store error with formatted message.
func StorageFailuref(err error, format string, args ...any) *Error {
	return &Error{Code: CodeStorageFailure, Message: fmt.Sprintf(format, args...), cause: err}
}

// CorruptDraftf reports a blob that exists but cannot be decoded.
func CorruptDraftf(err error, format string, args ...any) *Error {
	return &Error{Code: CodeCorruptDraft, Message: fmt.Sprintf(format, args...), cause: err}
}

// RecipeUnavailablef reports a recipe whose ingredients cannot be resolved.
func RecipeUnavailablef(err error, format string, args ...any) *Error {
	return &Error{Code: CodeRecipeUnavailable, Message: fmt.Sprintf(format, args...), cause: err}
}

// IDGenerationFailuref reports exhausted id generation attempts.
func IDGenerationFailuref(format string, args ...any) *Error {
	return &Error{Code: CodeIDGenerationFailure, Message: fmt.Sprintf(format, args...)}
}

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// Validationf creates a validation error with formatted message.
func Validationf(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// ValidationWithDetails creates a validation error with details.
func ValidationWithDetails(msg string, details any) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

// Internalf creates an internal error with formatted message.
func Internalf(format string, args ...any) *Error {
	return &Error{Code: CodeInternal, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}
