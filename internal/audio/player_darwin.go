//go:build darwin

package audio

import (
	"context"
	"fmt"
	"os/exec"
)

// playerCmd builds the afplay invocation. afplay ships with macOS.
func playerCmd(ctx context.Context, path string, volume float64) *exec.Cmd {
	return exec.CommandContext(ctx, "afplay", "-v", fmt.Sprintf("%g", volume), path)
}
