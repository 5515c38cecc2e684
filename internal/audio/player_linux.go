//go:build linux

package audio

import (
	"context"
	"fmt"
	"os/exec"
)

// playerCmd builds a player invocation from whichever backend is
// installed, preferring ones that honor a volume argument. Returns nil
// when no player is available.
func playerCmd(ctx context.Context, path string, volume float64) *exec.Cmd {
	if _, err := exec.LookPath("paplay"); err == nil {
		// paplay volume is linear, 0..65536.
		vol := int(volume * 65536)
		return exec.CommandContext(ctx, "paplay", fmt.Sprintf("--volume=%d", vol), path)
	}
	if _, err := exec.LookPath("ffplay"); err == nil {
		vol := int(volume * 100)
		return exec.CommandContext(ctx, "ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet",
			"-volume", fmt.Sprintf("%d", vol), path)
	}
	if _, err := exec.LookPath("aplay"); err == nil {
		// aplay has no volume control; plays at system volume.
		return exec.CommandContext(ctx, "aplay", "-q", path)
	}
	return nil
}
