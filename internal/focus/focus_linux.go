//go:build linux

package focus

import (
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// foregroundPID asks the X server for the active window's pid via
// xdotool. Wayland sessions and headless machines report not-ok.
func foregroundPID() (int, bool) {
	if os.Getenv("DISPLAY") == "" {
		return 0, false
	}
	out, err := exec.Command("xdotool", "getactivewindow", "getwindowpid").Output()
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(out)))
	if err != nil {
		return 0, false
	}
	return pid, true
}
