package errors

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrPermission   ErrorCode = "PERMISSION"

	// Configuration errors
	ErrConfigLoad      ErrorCode = "CONFIG_LOAD"
	ErrConfigParse     ErrorCode = "CONFIG_PARSE"
	ErrConfigValid     ErrorCode = "CONFIG_INVALID"
	ErrProfileNotFound ErrorCode = "PROFILE_NOT_FOUND"

	// Engine errors. ErrRootMissing is the only code that aborts a run.
	ErrRootMissing        ErrorCode = "ROOT_MISSING"
	ErrUnsupportedPattern ErrorCode = "UNSUPPORTED_PATTERN"

	// FileSystem errors
	ErrFileCopy        ErrorCode = "FILE_COPY"
	ErrFileDelete      ErrorCode = "FILE_DELETE"
	ErrLinkUnsupported ErrorCode = "LINK_UNSUPPORTED"
	ErrDirCreate       ErrorCode = "DIR_CREATE"
)

// EnvtrimError represents a structured error with code and details
type EnvtrimError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *EnvtrimError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *EnvtrimError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *EnvtrimError) Is(target error) bool {
	var targetErr *EnvtrimError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new EnvtrimError with the given code and message
func New(code ErrorCode, message string) *EnvtrimError {
	return &EnvtrimError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new EnvtrimError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *EnvtrimError {
	return &EnvtrimError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an EnvtrimError
func Wrap(err error, code ErrorCode, message string) *EnvtrimError {
	if err == nil {
		return nil
	}
	return &EnvtrimError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *EnvtrimError {
	if err == nil {
		return nil
	}
	return &EnvtrimError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *EnvtrimError) WithDetail(key string, value interface{}) *EnvtrimError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var envErr *EnvtrimError
	if errors.As(err, &envErr) {
		return envErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an EnvtrimError
func GetErrorCode(err error) ErrorCode {
	var envErr *EnvtrimError
	if errors.As(err, &envErr) {
		return envErr.Code
	}
	return ErrUnknown
}

// Classify maps a raw filesystem error onto an error code. fallback is
// returned for anything that is neither a missing path nor a permission
// problem.
func Classify(err error, fallback ErrorCode) ErrorCode {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	case errors.Is(err, fs.ErrPermission):
		return ErrPermission
	}
	var envErr *EnvtrimError
	if errors.As(err, &envErr) {
		return envErr.Code
	}
	return fallback
}

// IsMissing reports whether err means the path vanished or never existed.
func IsMissing(err error) bool {
	return err != nil && errors.Is(err, fs.ErrNotExist)
}
