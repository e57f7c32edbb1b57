// Package errors provides structured errors with stable codes for lsstpkg.
// Codes map onto the process exit statuses the surrounding build tooling
// inspects, so they must stay stable across releases.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown    ErrorCode = "UNKNOWN"
	ErrInternal   ErrorCode = "INTERNAL"
	ErrFileAccess ErrorCode = "FILE_ACCESS"

	// Resolution errors
	ErrMissingArgument ErrorCode = "MISSING_ARGUMENT"
	ErrCommandNotFound ErrorCode = "COMMAND_NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
)

// Exit statuses reported to the invoking build logic.
const (
	ExitOK              = 0
	ExitMissingArgument = 1
	ExitCommandNotFound = 5
)

// LsstError represents a structured error with code and message
type LsstError struct {
	Code    ErrorCode
	Message string
	Wrapped error
}

// Error implements the error interface
func (e *LsstError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *LsstError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *LsstError) Is(target error) bool {
	var targetErr *LsstError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new LsstError with the given code and message
func New(code ErrorCode, message string) *LsstError {
	return &LsstError{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new LsstError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *LsstError {
	return &LsstError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with a LsstError
func Wrap(err error, code ErrorCode, message string) *LsstError {
	if err == nil {
		return nil
	}
	return &LsstError{
		Code:    code,
		Message: message,
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *LsstError {
	if err == nil {
		return nil
	}
	return &LsstError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Wrapped: err,
	}
}

// GetCode extracts the error code from an error, returning ErrUnknown
// for errors that are not LsstErrors.
func GetCode(err error) ErrorCode {
	var lsstErr *LsstError
	if errors.As(err, &lsstErr) {
		return lsstErr.Code
	}
	return ErrUnknown
}

// Message returns the human-readable message without the code prefix.
// The CLI prints this to stderr as "<program>: <message>".
func Message(err error) string {
	var lsstErr *LsstError
	if errors.As(err, &lsstErr) {
		if lsstErr.Wrapped != nil {
			return fmt.Sprintf("%s: %v", lsstErr.Message, lsstErr.Wrapped)
		}
		return lsstErr.Message
	}
	return err.Error()
}

// ExitCode maps an error to the process exit status expected by callers:
// 0 on nil, 5 when a required external command is missing, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if GetCode(err) == ErrCommandNotFound {
		return ExitCommandNotFound
	}
	return ExitMissingArgument
}
