// Package errors provides structured error handling with typed error codes.
//
// Error codes are organized into categories:
//   - General errors (1-99): Unknown and general errors
//   - Validation errors (100-199): Malformed specs, invalid parameters and configuration
//   - Account errors (200-299): Balance, position and price lookups
//   - Order errors (500-599): Order creation, chaining and sizing logic errors
//   - Wait errors (600-699): Completion waiter timeouts, cancellations and read races
//
// Usage:
//
//	// Create a new error
//	err := errors.New(errors.ErrCodeInvalidArgument, "spec cannot be empty")
//
//	// Create a formatted error
//	err := errors.Newf(errors.ErrCodeInvalidArgument, "invalid spec %q", spec)
//
//	// Wrap an existing error
//	err := errors.Wrap(errors.ErrCodeAccountUnavailable, "failed to read balance", originalErr)
//
//	// Check error code
//	if errors.HasCode(err, errors.ErrCodeWaitTimeout) { ... }
package errors

import (
	"context"
	"errors"
	"fmt"
)

// Error represents a structured error with an error code and message.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   nil,
	}
}

// Wrap wraps an existing error with a new Error containing the given code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an existing error with a new Error containing the given code and formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard errors.Is function.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard errors.As function.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode extracts the ErrorCode from an error if it's an *Error type.
// Returns ErrCodeUnknown if the error is not an *Error type.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return ErrCodeUnknown
}

// HasCode checks if an error has a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// InvalidArgumentf creates an ErrCodeInvalidArgument error with a formatted message.
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(ErrCodeInvalidArgument, format, args...)
}

// NewWaitTimeout creates the error returned when a wait deadline elapses.
// The cause is context.DeadlineExceeded so callers can test with errors.Is.
func NewWaitTimeout(message string) *Error {
	return Wrap(ErrCodeWaitTimeout, message, context.DeadlineExceeded)
}

// NewWaitCancelled creates the error returned when a wait is interrupted or forbidden.
// The cause is context.Canceled so callers can test with errors.Is.
func NewWaitCancelled(message string) *Error {
	return Wrap(ErrCodeWaitCancelled, message, context.Canceled)
}

// IsWaitInterrupted reports whether err means "stop waiting": a timeout or a cancellation.
func IsWaitInterrupted(err error) bool {
	code := GetCode(err)

	return code == ErrCodeWaitTimeout || code == ErrCodeWaitCancelled
}
