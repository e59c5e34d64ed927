package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeInternal      = "INTERNAL_ERROR"
	ErrCodePersistence   = "PERSISTENCE_ERROR"
	ErrCodeCorruptRecord = "CORRUPT_RECORD"
)

// AppError represents an application error with a machine-readable code
type AppError struct {
	Code    string // Error code (e.g., "VALIDATION_ERROR", "PERSISTENCE_ERROR")
	Message string // Human-readable error message
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal error",
		Err:     err,
	}
}

// NewPersistenceError creates a new PERSISTENCE_ERROR for a failed load or save
func NewPersistenceError(op, location string, err error) *AppError {
	return &AppError{
		Code:    ErrCodePersistence,
		Message: fmt.Sprintf("could not %s profiles at %s", op, location),
		Err:     err,
	}
}

// NewCorruptRecordError creates a new CORRUPT_RECORD error for one unparseable record
func NewCorruptRecordError(line int, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeCorruptRecord,
		Message: fmt.Sprintf("record on line %d: %s", line, reason),
	}
}

// HasCode reports whether err, or any error it wraps, is an AppError with the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// UserMessage returns the text shown to a player for err. Unknown errors are
// reported as internal errors.
func UserMessage(err error) string {
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		appErr = NewInternalError(err)
	}
	if appErr.Err != nil {
		return fmt.Sprintf("%s: %v", appErr.Message, appErr.Err)
	}
	return appErr.Message
}
