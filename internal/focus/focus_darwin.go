//go:build darwin

package focus

import (
	"os/exec"
	"strconv"
	"strings"
)

// foregroundPID asks System Events for the frontmost process id.
func foregroundPID() (int, bool) {
	out, err := exec.Command("osascript", "-e",
		`tell application "System Events" to get unix id of first process whose frontmost is true`).Output()
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(out)))
	if err != nil {
		return 0, false
	}
	return pid, true
}
