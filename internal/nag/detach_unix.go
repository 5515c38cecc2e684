//go:build !windows

package nag

import (
	"os/exec"
	"syscall"
)

// detachWorker puts the worker in its own session so it is not killed
// with the hook runner's process group.
func detachWorker(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}
