package exitcodes

import "os"

// osExit is swapped out in tests.
var osExit = os.Exit

// Exit terminates the current process with code as its status.
// Deferred functions are not run.
func Exit(code Code) {
	osExit(int(code))
}

// ExitWithError terminates the current process with FromError(err).
func ExitWithError(err error) {
	osExit(FromError(err))
}
