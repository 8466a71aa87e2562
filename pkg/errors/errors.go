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
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"
	ErrPermission    ErrorCode = "PERMISSION"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Update pipeline errors. Each one is local to a single archive.
	ErrArchiveRead   ErrorCode = "ARCHIVE_READ"
	ErrConfigMissing ErrorCode = "CONFIG_MISSING"
	ErrRemoval       ErrorCode = "REMOVAL"
	ErrMove          ErrorCode = "MOVE"

	// ErrUpdateFailed is returned by commands whose report holds failures
	ErrUpdateFailed ErrorCode = "UPDATE_FAILED"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// kindNames maps pipeline error codes to the names operators see in reports.
var kindNames = map[ErrorCode]string{
	ErrArchiveRead:   "ArchiveReadError",
	ErrConfigMissing: "ConfigMissingError",
	ErrRemoval:       "RemovalError",
	ErrMove:          "MoveError",
}

// ModupError represents a structured error with code and details
type ModupError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ModupError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ModupError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ModupError) Is(target error) bool {
	var targetErr *ModupError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ModupError with the given code and message
func New(code ErrorCode, message string) *ModupError {
	return &ModupError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ModupError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ModupError {
	return &ModupError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ModupError
func Wrap(err error, code ErrorCode, message string) *ModupError {
	if err == nil {
		return nil
	}
	return &ModupError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ModupError {
	if err == nil {
		return nil
	}
	return &ModupError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ModupError) WithDetail(key string, value interface{}) *ModupError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *ModupError) WithDetails(details map[string]interface{}) *ModupError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var modupErr *ModupError
	if errors.As(err, &modupErr) {
		return modupErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ModupError
func GetErrorCode(err error) ErrorCode {
	var modupErr *ModupError
	if errors.As(err, &modupErr) {
		return modupErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a ModupError
func GetErrorDetails(err error) map[string]interface{} {
	var modupErr *ModupError
	if errors.As(err, &modupErr) {
		return modupErr.Details
	}
	return nil
}

// Kind returns the operator-facing name of the error's kind, such as
// "ArchiveReadError". Codes without a dedicated kind fall back to the code.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	code := GetErrorCode(err)
	if name, ok := kindNames[code]; ok {
		return name
	}
	return string(code)
}

// Annotate adds details to a ModupError found in err's chain without
// overwriting keys that are already set. Other errors are returned as is.
func Annotate(err error, details map[string]interface{}) error {
	var modupErr *ModupError
	if !errors.As(err, &modupErr) {
		return err
	}
	if modupErr.Details == nil {
		modupErr.Details = make(map[string]interface{})
	}
	for k, v := range details {
		if _, exists := modupErr.Details[k]; !exists {
			modupErr.Details[k] = v
		}
	}
	return err
}
