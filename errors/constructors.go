package errors

import (
	"fmt"
)

// ParseFailed creates a JSON syntax error. offset is the byte offset reported by
// the decoder, or -1 when unknown.
func ParseFailed(cause error, offset int64) *ViewError {
	msg := "invalid JSON"
	if cause != nil {
		msg = fmt.Sprintf("invalid JSON: %v", cause)
	}
	err := Wrap(cause, ErrCodeParse, msg)
	if offset >= 0 {
		err = err.WithDetail("offset", offset)
	}
	return err
}

// EmptyInput creates an error for blank document text
func EmptyInput() *ViewError {
	return New(ErrCodeEmptyInput, "input is empty or contains only whitespace")
}

// InvalidPath creates an error for a path step that does not resolve
func InvalidPath(path string, reason string) *ViewError {
	return New(ErrCodeInvalidPath, fmt.Sprintf("path %s: %s", path, reason)).
		WithDetail("path", path)
}

// InvalidEditTarget creates an error for an edit on a line that cannot be edited
func InvalidEditTarget(lineID int, reason string) *ViewError {
	return New(ErrCodeInvalidEditTarget, fmt.Sprintf("line %d cannot be edited: %s", lineID, reason)).
		WithDetail("line", lineID)
}

// EditNotActive creates an error for a commit without a pending edit
func EditNotActive() *ViewError {
	return New(ErrCodeEditNotActive, "no edit in progress")
}

// InvalidMessage creates an error for an undecodable host message
func InvalidMessage(msgType string, reason string) *ViewError {
	return New(ErrCodeInvalidMessage, fmt.Sprintf("invalid host message %q: %s", msgType, reason)).
		WithDetail("type", msgType)
}

// TransportFailed wraps a host transport failure
func TransportFailed(op string, err error) *ViewError {
	return Wrap(err, ErrCodeTransport, fmt.Sprintf("host transport %s failed", op)).
		WithDetail("op", op)
}

// ClipboardUnavailable wraps a system clipboard failure
func ClipboardUnavailable(err error) *ViewError {
	return Wrap(err, ErrCodeClipboard, "system clipboard unavailable")
}

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *ViewError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *ViewError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}
