//go:build !plan9

package exitcodes

import "syscall"

// FromSignal returns the exit status of a program that exits in response to
// signal. It is 128+n with no bounds checking, so the result is an OS status
// and not necessarily a defined Code.
func FromSignal(signal syscall.Signal) int {
	// https://tldp.org/LDP/abs/html/exitcodes.html
	return signalBase + int(signal)
}
