// Package audio plays sound files through whatever command-line player
// the platform provides. Playback is best effort: a missing file, a
// missing player, or a player failure all resolve as a silent no-op.
package audio

import (
	"context"
	"os"
	"os/exec"
)

// Player starts or awaits sound playback.
type Player interface {
	// Play starts playback detached and returns immediately. The sound
	// keeps playing after the calling process exits.
	Play(path string, volume float64)

	// PlayWait plays the sound and blocks until playback finishes or
	// ctx is done.
	PlayWait(ctx context.Context, path string, volume float64)
}

// ExecPlayer shells out to the platform player. The zero value is ready
// to use.
type ExecPlayer struct{}

func (ExecPlayer) Play(path string, volume float64) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	cmd := playerCmd(context.Background(), path, volume)
	if cmd == nil {
		return
	}
	detach(cmd)
	_ = cmd.Start()
}

func (ExecPlayer) PlayWait(ctx context.Context, path string, volume float64) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	cmd := playerCmd(ctx, path, volume)
	if cmd == nil {
		return
	}
	quiet(cmd)
	_ = cmd.Run()
}

// quiet drops the player's stdio so it cannot pollute hook output.
func quiet(cmd *exec.Cmd) {
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
}
