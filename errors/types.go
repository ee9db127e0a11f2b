package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Input errors
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// Resolution errors
	ErrCodeUnsupportedFile ErrorCode = "UNSUPPORTED_FILE"
	ErrCodeNoProject       ErrorCode = "NO_PROJECT"

	// Command execution errors
	ErrCodeCommandNotFound ErrorCode = "COMMAND_NOT_FOUND"
	ErrCodeCommandFailed   ErrorCode = "COMMAND_FAILED"
	ErrCodeCommandTimeout  ErrorCode = "COMMAND_TIMEOUT"

	// Session store errors
	ErrCodeSessionStore ErrorCode = "SESSION_STORE"

	// Configuration errors
	ErrCodeConfigNotFound ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  ErrorCode = "CONFIG_INVALID"

	// General errors
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// HookError represents a structured error with context
type HookError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *HookError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *HookError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *HookError) WithDetail(key string, value interface{}) *HookError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *HookError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new HookError
func New(code ErrorCode, message string) *HookError {
	return &HookError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a HookError
func Wrap(err error, code ErrorCode, message string) *HookError {
	return &HookError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific HookError code
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	hookErr, ok := err.(*HookError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	return hookErr.Code == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	hookErr, ok := err.(*HookError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return hookErr.Code
}
