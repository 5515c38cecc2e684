//go:build !windows

package audio

import (
	"os/exec"
	"syscall"
)

// detach puts the player in its own session with no inherited stdio so
// the hook runner does not wait for playback to finish.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	quiet(cmd)
}
