// Package exitcodes defines semantic exit codes which command line tools can
// use to aid in debugging and instrumentation.
//
// Codes are grouped in two ranges. Exit codes 80-99 indicate a user error of
// some sort. Exit codes 100-119 indicate a software or system error of some
// sort. Statuses above 128 are, by shell convention, 128 plus the number of
// the signal that terminated the process.
package exitcodes

import (
	"fmt"
	"sort"
)

// Code is the exit code passed to the exit system call when the program
// terminates. Conventionally zero indicates success and all other values
// (1-255) indicate failure.
type Code int

const (
	OK    Code = 0 // Program exited successfully
	NotOK Code = 1 // Program failed without further context
)

// Exit codes 80-99 are reserved for user errors.
const (
	// UsageError indicates the program was used incorrectly, e.g. a required
	// argument was omitted or a flag got an invalid value.
	UsageError Code = 80

	// UnknownSubcommand indicates an unrecognized subcommand of a CLI
	// multi-tool was invoked. The shell exits 127 when a command does not
	// exist; 81 means the command exists but the subcommand does not.
	UnknownSubcommand Code = 81

	// RequirementNotMet indicates a precondition wasn't satisfied, e.g. the
	// user must be on a VPN or have a minimum version of a tool installed.
	RequirementNotMet Code = 82

	Forbidden        Code = 83 // User isn't authorized to perform the action
	MovedPermanently Code = 84 // Program has been migrated to a new location
)

// Exit codes 100-119 are reserved for software or system errors.
const (
	// InternalError indicates a problem in the program's own code or its
	// dependencies. Used instead of 1 when the fault is known to be internal.
	InternalError Code = 100

	// Unavailable indicates a service the program depends on was not
	// available: a daemon did not respond, a connection was closed, an HTTP
	// service responded with 503.
	Unavailable Code = 101
)

// Range bounds. Signal bounds are exclusive on both ends.
const (
	UserErrorMin     = 80
	UserErrorMax     = 99
	SoftwareErrorMin = 100
	SoftwareErrorMax = 119
	signalBase       = 128
	signalCeiling    = 255
)

type definition struct {
	name        string
	description string
}

var definitions = map[Code]definition{
	OK:                {"OK", "The program exited successfully."},
	NotOK:             {"NotOK", "The program exited unsuccessfully but gives no extra context as to what the failure was."},
	UsageError:        {"UsageError", "The program exited unsuccessfully because it was used incorrectly."},
	UnknownSubcommand: {"UnknownSubcommand", "The program exited unsuccessfully because an unrecognized subcommand was invoked."},
	RequirementNotMet: {"RequirementNotMet", "The program exited unsuccessfully because a precondition wasn't satisfied."},
	Forbidden:         {"Forbidden", "The program exited unsuccessfully because the user isn't authorized to perform the requested action."},
	MovedPermanently:  {"MovedPermanently", "The program exited unsuccessfully because it has been migrated to a new location."},
	InternalError:     {"InternalError", "The program exited unsuccessfully because of a problem in its own code."},
	Unavailable:       {"Unavailable", "The program exited unsuccessfully because a service it depends on was not available."},
}

// Reverse lookups, built once.
var (
	byValue = make(map[int]Code, len(definitions))
	byName  = make(map[string]Code, len(definitions))
	ordered = make([]Code, 0, len(definitions))
)

func init() {
	for c, d := range definitions {
		byValue[int(c)] = c
		byName[d.name] = c
		ordered = append(ordered, c)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })
}

// Parse converts an integer to the Code with exactly that value.
// Integers outside the enumeration yield an *UnknownExitCodeError.
func Parse(value int) (Code, error) {
	c, ok := byValue[value]
	if !ok {
		return 0, &UnknownExitCodeError{Value: value}
	}
	return c, nil
}

// Lookup returns the Code whose name is name.
func Lookup(name string) (Code, bool) {
	c, ok := byName[name]
	return c, ok
}

// All returns every defined Code in ascending order.
func All() []Code {
	out := make([]Code, len(ordered))
	copy(out, ordered)
	return out
}

// Int returns the integer value handed to the operating system.
func (c Code) Int() int {
	return int(c)
}

// Valid reports whether c is one of the defined constants.
func (c Code) Valid() bool {
	_, ok := definitions[c]
	return ok
}

func (c Code) String() string {
	if d, ok := definitions[c]; ok {
		return d.name
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

// Description is the human readable meaning of c, empty for undefined codes.
func (c Code) Description() string {
	return definitions[c].description
}

// IsOK reports whether an exit code is 0.
func IsOK(code Code) bool {
	return code == OK
}

// IsError reports whether an exit code is anything but 0.
func IsError(code Code) bool {
	return code != OK
}

// IsUserError reports whether an exit code is a user error.
// It returns true if the code is in the range 80-99 and false if not.
func IsUserError(code Code) bool {
	return code >= UserErrorMin && code <= UserErrorMax
}

// IsSoftwareError reports whether an exit code is a software error.
// It returns true if the code is in the range 100-119 and false if not.
func IsSoftwareError(code Code) bool {
	return code >= SoftwareErrorMin && code <= SoftwareErrorMax
}

// IsSignal reports whether an exit code is derived from a signal.
// It returns true if the code is strictly between 128 and 255.
func IsSignal(code Code) bool {
	return code > signalBase && code < signalCeiling
}
