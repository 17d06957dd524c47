package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/grovetools/jsonview/errors"
)

// ErrorHandler turns errors into user-facing messages.
type ErrorHandler struct {
	Verbose bool
	Out     io.Writer
}

// NewErrorHandler creates an error handler writing to stderr.
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
		Out:     os.Stderr,
	}
}

// Handle prints a message for err based on its code and returns err.
func (h *ErrorHandler) Handle(err error) error {
	if err == nil {
		return nil
	}
	out := h.Out
	if out == nil {
		out = os.Stderr
	}

	viewErr, _ := err.(*errors.ViewError)

	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(out, "❌ Configuration not found. Create jsonview.yml or run 'jsonview config schema' for the format.\n")

	case errors.ErrCodeConfigInvalid, errors.ErrCodeConfigValidation:
		fmt.Fprintf(out, "❌ Invalid configuration: %v\n", err)
		if viewErr != nil && viewErr.Details["path"] != nil {
			fmt.Fprintf(out, "Check %v\n", viewErr.Details["path"])
		}

	case errors.ErrCodeParse:
		fmt.Fprintf(out, "❌ %v\n", err)
		if viewErr != nil && viewErr.Details["offset"] != nil {
			fmt.Fprintf(out, "Near byte offset %v\n", viewErr.Details["offset"])
		}

	case errors.ErrCodeEmptyInput:
		fmt.Fprintf(out, "❌ No JSON input. Pass a file or pipe a document on stdin.\n")

	case errors.ErrCodeTransport:
		fmt.Fprintf(out, "❌ Bridge connection failed: %v\n", err)
		fmt.Fprintf(out, "Is 'jsonview view --listen' running at that address?\n")

	default:
		fmt.Fprintf(out, "❌ Error: %v\n", err)
	}

	if h.Verbose && viewErr != nil {
		fmt.Fprintf(out, "\nError details:\n%s\n", viewErr.ToJSON())
	}
	return err
}
