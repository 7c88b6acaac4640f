// Package errors provides coded domain errors for the beatmap server.
//
// Usage:
//
//	// In the conversion core - return typed errors
//	if !ok {
//	    return nil, errors.RulesetNotFoundf("ruleset %d is not installed", id)
//	}
//
//	// In callers - check with errors.Is
//	if errors.Is(err, errors.ErrRulesetNotFound) {
//	    ...
//	}
//
//	// Or switch on the code
//	var domainErr *errors.Error
//	if errors.As(err, &domainErr) {
//	    switch domainErr.Code {
//	    case errors.CodeMalformedPayload:
//	        ...
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
	CodeNotFound         Code = "NOT_FOUND"
	CodeValidation       Code = "VALIDATION"
	CodeInternal         Code = "INTERNAL"
	CodeMalformedPayload Code = "MALFORMED_PAYLOAD"
	CodeRulesetNotFound  Code = "RULESET_NOT_FOUND"
	CodeUnsupported      Code = "UNSUPPORTED"
	CodeUpstream         Code = "UPSTREAM"
	CodeRateLimited      Code = "RATE_LIMITED"
)

// HTTPStatus returns the appropriate HTTP status code for an error code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeValidation:
		return http.StatusBadRequest
	case CodeMalformedPayload, CodeUpstream:
		return http.StatusBadGateway
	case CodeRulesetNotFound:
		return http.StatusUnprocessableEntity
	case CodeUnsupported:
		return http.StatusNotImplemented
	case CodeRateLimited:
		return http.StatusTooManyRequests
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
	ErrNotFound         = &Error{Code: CodeNotFound, Message: "not found"}
	ErrValidation       = &Error{Code: CodeValidation, Message: "validation error"}
	ErrInternal         = &Error{Code: CodeInternal, Message: "internal error"}
	ErrMalformedPayload = &Error{Code: CodeMalformedPayload, Message: "malformed payload"}
	ErrRulesetNotFound  = &Error{Code: CodeRulesetNotFound, Message: "ruleset not found"}
	ErrUnsupported      = &Error{Code: CodeUnsupported, Message: "unsupported operation"}
	ErrUpstream         = &Error{Code: CodeUpstream, Message: "upstream error"}
	ErrRateLimited      = &Error{Code: CodeRateLimited, Message: "rate limited"}
)

// NotFound creates a not found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// NotFoundf creates a not found error with formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// Validationf creates a validation error with formatted message.
func Validationf(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// Internal creates an internal error.
func Internal(msg string) *Error {
	return &Error{Code: CodeInternal, Message: msg}
}

// RulesetNotFoundf creates a ruleset not found error with formatted message.
func RulesetNotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeRulesetNotFound, Message: fmt.Sprintf(format, args...)}
}

// Unsupportedf creates an unsupported operation error with formatted message.
func Unsupportedf(format string, args ...any) *Error {
	return &Error{Code: CodeUnsupported, Message: fmt.Sprintf(format, args...)}
}

// Upstream creates an error for a failed call to the online service.
func Upstream(msg string) *Error {
	return &Error{Code: CodeUpstream, Message: msg}
}

// RateLimited creates a rate limited error.
func RateLimited(msg string) *Error {
	return &Error{Code: CodeRateLimited, Message: msg}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}
