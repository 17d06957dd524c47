package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Document errors
	ErrCodeParse       ErrorCode = "PARSE_ERROR"
	ErrCodeEmptyInput  ErrorCode = "EMPTY_INPUT"
	ErrCodeInvalidPath ErrorCode = "INVALID_PATH"

	// Edit errors
	ErrCodeInvalidEditTarget ErrorCode = "INVALID_EDIT_TARGET"
	ErrCodeEditNotActive     ErrorCode = "EDIT_NOT_ACTIVE"

	// Host transport errors
	ErrCodeInvalidMessage ErrorCode = "INVALID_MESSAGE"
	ErrCodeTransport      ErrorCode = "TRANSPORT"
	ErrCodeClipboard      ErrorCode = "CLIPBOARD"

	// Configuration errors
	ErrCodeConfigNotFound   ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid    ErrorCode = "CONFIG_INVALID"
	ErrCodeConfigValidation ErrorCode = "CONFIG_VALIDATION"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// ViewError represents a structured error with context
type ViewError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *ViewError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ViewError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *ViewError) WithDetail(key string, value interface{}) *ViewError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *ViewError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new ViewError
func New(code ErrorCode, message string) *ViewError {
	return &ViewError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a ViewError
func Wrap(err error, code ErrorCode, message string) *ViewError {
	return &ViewError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific ViewError code
func Is(err error, code ErrorCode) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	viewErr, ok := err.(*ViewError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return viewErr.Code
}
