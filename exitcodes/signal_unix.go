//go:build unix

package exitcodes

import (
	"errors"
	"os/exec"
	"syscall"
)

func signalStatus(err error) (int, bool) {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return 0, false
	}
	ws, ok := exitErr.Sys().(syscall.WaitStatus)
	if !ok || !ws.Signaled() {
		return 0, false
	}
	return FromSignal(ws.Signal()), true
}
