package executor

import (
	"fmt"
	"strings"
	"time"

	"github.com/tk-425/caller-cli/internal/apperr"
)

// Outcome is either a completed process (with its exit code) or a launch
// failure (with the OS error text).
type Outcome struct {
	launched bool
	ExitCode int
	Reason   string
	Duration time.Duration
}

// Completed is the outcome of a process that ran and exited with code.
func Completed(code int) Outcome {
	return Outcome{launched: true, ExitCode: code}
}

// LaunchFailed is the outcome of a process that could not be started.
func LaunchFailed(reason string) Outcome {
	return Outcome{ExitCode: -1, Reason: reason}
}

// Launched reports whether the process started at all.
func (o Outcome) Launched() bool { return o.launched }

// Success reports a zero exit.
func (o Outcome) Success() bool { return o.launched && o.ExitCode == 0 }

// Message renders the user-facing line for req.
func (o Outcome) Message(req Request) string {
	switch {
	case o.Success():
		return req.SuccessMessage
	case o.launched:
		msg := fmt.Sprintf("Command failed with exit code %d", o.ExitCode)
		if req.FailureMessage != "" {
			msg = strings.TrimSuffix(req.FailureMessage, ".") + ": " + msg
		}
		return msg
	default:
		head := req.FailureMessage
		if head == "" {
			head = fmt.Sprintf("Failed to start '%s'", req.Program)
		}
		return strings.TrimSuffix(head, ".") + ": " + o.Reason
	}
}

// Err converts a failed outcome into a classified error; it is nil on success.
func (o Outcome) Err(req Request) error {
	switch {
	case o.Success():
		return nil
	case o.launched:
		return apperr.New(apperr.NonZeroExit, "%s", o.Message(req))
	default:
		return apperr.New(apperr.LaunchFailed, "%s", o.Message(req))
	}
}
