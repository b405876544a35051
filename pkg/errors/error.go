// Package errors provides structured error handling with typed error codes.
//
// Error codes are organized into categories:
//   - General errors (1-99): Unknown and general errors
//   - Validation errors (100-199): Invalid parameters, configuration and versions
//   - Data errors (200-299): Unparseable input, insufficient history, missing state
//   - Forecasting errors (300-399): Trainable model fit/predict failures
//   - Benchmark errors (400-499): Evaluator misuse
//   - Source errors (500-599): Raw byte acquisition failures
//   - Storage and report errors (600-699): Archive and report output failures
//
// Three conditions get their own error types because callers branch on them:
//
//	FormatError            no valid row survived parsing; fatal to the load attempt
//	InsufficientDataError  too little history; recoverable by acquiring more data
//	LengthMismatchError    evaluator called with series of different lengths
//
// Usage:
//
//	err := errors.Newf(errors.ErrCodeInvalidWindowSize, "window size must be positive, got %d", size)
//	if errors.IsInsufficientDataError(err) { ... }
package errors

import (
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

// GetCode extracts the ErrorCode from an error.
// The typed errors of this package map to their dedicated codes.
// Returns ErrCodeUnknown for any other error.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	switch {
	case IsFormatError(err):
		return ErrCodeFormat
	case IsInsufficientDataError(err):
		return ErrCodeInsufficientData
	case IsLengthMismatchError(err):
		return ErrCodeLengthMismatch
	}

	return ErrCodeUnknown
}

// HasCode checks if an error has a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// FormatError is returned when raw input yields no usable observation.
type FormatError struct {
	Message string
}

// NewFormatError creates a new FormatError.
func NewFormatError(message string) *FormatError {
	return &FormatError{Message: message}
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	return "format error: " + e.Message
}

// IsFormatError checks if an error is a FormatError.
func IsFormatError(err error) bool {
	var formatErr *FormatError

	return errors.As(err, &formatErr)
}

// InsufficientDataError represents an error when there is not enough data
// for a calculation (e.g., too few windowed samples to train on).
type InsufficientDataError struct {
	Required int    // Minimum data points required
	Actual   int    // Actual data points available
	Symbol   string // Optional: symbol context
	Message  string // Human-readable message
}

// NewInsufficientDataError creates a new InsufficientDataError.
func NewInsufficientDataError(required, actual int, symbol, message string) *InsufficientDataError {
	return &InsufficientDataError{
		Required: required,
		Actual:   actual,
		Symbol:   symbol,
		Message:  message,
	}
}

// NewInsufficientDataErrorf creates a new InsufficientDataError with a formatted message.
func NewInsufficientDataErrorf(required, actual int, symbol, format string, args ...any) *InsufficientDataError {
	return &InsufficientDataError{
		Required: required,
		Actual:   actual,
		Symbol:   symbol,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (e *InsufficientDataError) Error() string {
	return e.Message
}

// IsInsufficientDataError checks if an error is an InsufficientDataError.
// It uses errors.As to check the error chain.
func IsInsufficientDataError(err error) bool {
	var insufficientErr *InsufficientDataError

	return errors.As(err, &insufficientErr)
}

// LengthMismatchError is returned when actual and predicted series differ in length.
type LengthMismatchError struct {
	Actual    int
	Predicted int
}

// NewLengthMismatchError creates a new LengthMismatchError.
func NewLengthMismatchError(actual, predicted int) *LengthMismatchError {
	return &LengthMismatchError{
		Actual:    actual,
		Predicted: predicted,
	}
}

// Error implements the error interface.
func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("length mismatch: actual has %d values, predicted has %d", e.Actual, e.Predicted)
}

// IsLengthMismatchError checks if an error is a LengthMismatchError.
func IsLengthMismatchError(err error) bool {
	var mismatchErr *LengthMismatchError

	return errors.As(err, &mismatchErr)
}
