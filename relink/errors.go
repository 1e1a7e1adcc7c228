package relink

import (
	"errors"
	"fmt"
)

// ErrorCode represents a categorized error type.
type ErrorCode int

const (
	ErrorUnknown ErrorCode = iota
	ErrorInvalidConfig
	ErrorDial
	ErrorRead
	ErrorWrite
	ErrorTimeout
)

// String returns the string representation of an ErrorCode.
func (e ErrorCode) String() string {
	switch e {
	case ErrorUnknown:
		return "unknown"
	case ErrorInvalidConfig:
		return "invalid_config"
	case ErrorDial:
		return "dial_error"
	case ErrorRead:
		return "read_error"
	case ErrorWrite:
		return "write_error"
	case ErrorTimeout:
		return "timeout"
	default:
		return fmt.Sprintf("unknown_code_%d", e)
	}
}

// Error is a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %s (wrapped: %v)", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error for errors.Unwrap support.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is support; two Errors match when their codes match.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewError creates a new Error with the given code and message.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with an Error.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Wrapped: err,
	}
}

// IsConnectionError checks if an error is a connection-related error.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var re *Error
	if !errors.As(err, &re) {
		return false
	}
	switch re.Code {
	case ErrorDial, ErrorRead, ErrorWrite, ErrorTimeout:
		return true
	default:
		return false
	}
}
