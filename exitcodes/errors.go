package exitcodes

import (
	"errors"
	"fmt"
)

// UnknownExitCodeError is returned by Parse for integers that are not a
// defined Code.
type UnknownExitCodeError struct {
	Value int
}

func (e *UnknownExitCodeError) Error() string {
	return fmt.Sprintf("unknown exit code: %d", e.Value)
}

// Error attaches an exit code to an error so it can travel up the call stack
// and be turned into the process status at the edge of the program.
type Error struct {
	Code  Code
	Cause error
}

func (e Error) Error() string {
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return fmt.Sprintf("exit %d", e.Code)
}

func (e Error) Unwrap() error {
	return e.Cause
}

// ExitCode returns the status the program should exit with.
func (e Error) ExitCode() int {
	return int(e.Code)
}

var (
	ErrNotOK             = Error{Code: NotOK}
	ErrUsageError        = Error{Code: UsageError}
	ErrUnknownSubcommand = Error{Code: UnknownSubcommand}
	ErrRequirementNotMet = Error{Code: RequirementNotMet}
	ErrForbidden         = Error{Code: Forbidden}
	ErrMovedPermanently  = Error{Code: MovedPermanently}
	ErrInternalError     = Error{Code: InternalError}
	ErrUnavailable       = Error{Code: Unavailable}
)

// Wrap tags err with code. The outermost code wins in FromError.
func Wrap(err error, code Code) error {
	return Error{Code: code, Cause: err}
}

// Wrapf is Wrap around fmt.Errorf.
func Wrapf(code Code, format string, args ...any) error {
	return Error{Code: code, Cause: fmt.Errorf(format, args...)}
}

type exitCoder interface {
	ExitCode() int
}

// FromError returns the process status that corresponds to err.
//
// nil maps to 0. The outermost error in the chain exposing ExitCode() (an
// Error, or an *exec.ExitError from a child process) supplies the status; a
// child killed by a signal reports -1 there, which is translated to 128+n
// where the platform allows it. Any other error maps to 1.
func FromError(err error) int {
	if err == nil {
		return int(OK)
	}

	var coded exitCoder
	if !errors.As(err, &coded) {
		return int(NotOK)
	}
	if status := coded.ExitCode(); status >= 0 {
		return status
	}
	if status, ok := signalStatus(err); ok {
		return status
	}
	return int(NotOK)
}
