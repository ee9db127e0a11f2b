package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/grovetools/hooklint/errors"
	"github.com/grovetools/hooklint/logging"
	"github.com/grovetools/hooklint/response"
)

// ErrorHandler turns internal failures into a Continue decision so a broken
// hook never blocks the host.
type ErrorHandler struct {
	Verbose bool
	// Out receives error details in verbose mode. Defaults to stderr.
	Out io.Writer
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
		Out:     os.Stderr,
	}
}

// Handle maps err to the decision reported for it. The logger is looked up
// on each call so it follows the logging configuration in effect.
func (h *ErrorHandler) Handle(err error) response.Decision {
	logging.NewLogger("cli").WithError(err).WithField("code", errors.GetCode(err)).Warn("Hook failed")

	if h.Verbose {
		if hookErr, ok := err.(*errors.HookError); ok {
			fmt.Fprintf(h.Out, "Error details:\n%s\n", hookErr.ToJSON())
		}
	}

	switch errors.GetCode(err) {
	case errors.ErrCodeSessionStore:
		return response.Continuef("lint hook error: session store unavailable: %v", err)
	case errors.ErrCodeConfigNotFound, errors.ErrCodeConfigInvalid:
		return response.Continuef("lint hook error: configuration problem: %v", err)
	default:
		return response.Continuef("lint hook error: %v", err)
	}
}

// Recover converts a panic into a Continue decision stored in d. It must be
// deferred directly.
func (h *ErrorHandler) Recover(d *response.Decision) {
	if r := recover(); r != nil {
		var err error
		if e, ok := r.(error); ok {
			err = errors.Wrap(e, errors.ErrCodeInternal, "panic")
		} else {
			err = errors.New(errors.ErrCodeInternal, fmt.Sprintf("panic: %v", r))
		}
		*d = h.Handle(err)
	}
}
