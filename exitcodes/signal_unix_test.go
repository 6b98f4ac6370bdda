//go:build unix

package exitcodes

import (
	"os/exec"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromSignal(t *testing.T) {
	tests := []struct {
		signal syscall.Signal
		want   int
	}{
		{syscall.SIGINT, 130},
		{syscall.SIGKILL, 137},
		{syscall.SIGTERM, 143},
		{syscall.Signal(0), 128},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FromSignal(tt.signal), "FromSignal(%d)", tt.signal)
	}

	_, err := Parse(FromSignal(syscall.SIGINT))
	assert.Error(t, err, "130 is an OS status, not a defined code")
	assert.True(t, IsSignal(Code(FromSignal(syscall.SIGINT))))
}

func TestFromErrorChildProcess(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"exit status", exec.Command("sh", "-c", "exit 3").Run(), 3},
		{"killed by signal", exec.Command("sh", "-c", "kill -TERM $$").Run(), 143},
		{"wrapped start failure", Wrap(exec.Command("exit 3").Run(), NotOK), 1},
		{"wrapped exit status", Wrap(exec.Command("sh", "-c", "exit 3").Run(), Unavailable), 101},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromError(tt.err))
		})
	}
}
