//go:build windows

package audio

import (
	"context"
	"fmt"
	"os/exec"
)

// playerCmd builds a PowerShell MediaPlayer invocation. MediaPlayer is
// used over SoundPlayer because it supports volume and non-WAV formats.
func playerCmd(ctx context.Context, path string, volume float64) *exec.Cmd {
	script := fmt.Sprintf(
		`$p = New-Object System.Windows.Media.MediaPlayer; `+
			`$p.Open([uri]%q); $p.Volume = %g; $p.Play(); `+
			`Start-Sleep -Milliseconds 200; `+
			`while ($p.Position -lt $p.NaturalDuration.TimeSpan) { Start-Sleep -Milliseconds 100 }`,
		path, volume)
	return exec.CommandContext(ctx, "powershell", "-NoProfile", "-NonInteractive", "-Command", script)
}
