//go:build windows

package audio

import (
	"os/exec"
	"syscall"
)

// detach hides the player window and drops stdio so the hook runner
// does not wait for playback to finish.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true, CreationFlags: 0x00000008} // DETACHED_PROCESS
	quiet(cmd)
}
