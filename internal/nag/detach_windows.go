//go:build windows

package nag

import (
	"os/exec"
	"syscall"
)

// detachWorker starts the worker detached from the hook runner's console.
func detachWorker(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true, CreationFlags: 0x00000008} // DETACHED_PROCESS
}
