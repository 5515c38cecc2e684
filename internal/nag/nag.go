// Package nag implements the escalating-reminder subsystem for
// unanswered permission prompts.
//
// The coordinator (the hook process) writes a self-sufficient campaign
// file and spawns a detached worker that outlives it. The file's
// existence is the only synchronization primitive between the two:
// deleting it cancels the campaign, and the worker re-checks it before
// every reminder.
package nag

import (
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"time"

	"github.com/dotcommander/chime/internal/state"
)

// MaxCampaignAge is the safety ceiling on a campaign's total runtime,
// measured from the campaign start. The worker exits once exceeded even
// if ticks remain.
const MaxCampaignAge = 10 * time.Minute

// Campaign is the durable handoff record between coordinator and worker.
type Campaign struct {
	SoundPaths  []string `json:"sound_paths"`
	Timeouts    []int    `json:"timeouts"`
	StartedAtMs int64    `json:"started_at_ms"`
	TerminalPID int      `json:"terminal_pid,omitempty"`
}

// StartedAt returns the campaign start as a time.Time.
func (c Campaign) StartedAt() time.Time {
	return time.UnixMilli(c.StartedAtMs)
}

// sessionSanitizer strips characters that do not belong in a file name.
var sessionSanitizer = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// stateName returns the per-session state record name.
func stateName(sessionID string) string {
	return "nag-" + sessionSanitizer.ReplaceAllString(sessionID, "_")
}

// StatePath returns the campaign file path for a session.
func StatePath(sessionID string) string {
	return state.Path(stateName(sessionID))
}

// Start writes the campaign file for sessionID and spawns the detached
// worker. No-op when soundPaths or timeouts is empty. Any existing
// campaign for the session is superseded.
func Start(sessionID string, soundPaths []string, timeouts []int, terminalPID int) error {
	if len(soundPaths) == 0 || len(timeouts) == 0 {
		return nil
	}

	// The newest notification always supersedes a running campaign.
	Cancel(sessionID)

	c := Campaign{
		SoundPaths:  soundPaths,
		Timeouts:    timeouts,
		StartedAtMs: time.Now().UnixMilli(),
		TerminalPID: terminalPID,
	}
	if err := state.Save(stateName(sessionID), &c); err != nil {
		return fmt.Errorf("write nag state: %w", err)
	}

	return spawnWorker(StatePath(sessionID))
}

// Cancel deletes the campaign file for sessionID. The worker notices
// before its next reminder. A missing file is normal, not exceptional.
func Cancel(sessionID string) {
	state.Remove(stateName(sessionID))
}

// spawnWorker launches `chime nag-worker <path>` fully detached. The
// worker must survive the coordinator's exit; the coordinator neither
// waits on nor tracks it.
func spawnWorker(statePath string) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}

	devNull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("open %s: %w", os.DevNull, err)
	}
	defer devNull.Close()

	cmd := exec.Command(exe, "nag-worker", statePath)
	cmd.Stdin = devNull
	cmd.Stdout = devNull
	cmd.Stderr = devNull
	detachWorker(cmd)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("spawn nag worker: %w", err)
	}
	// Release the process handle; the worker owns its own lifetime.
	_ = cmd.Process.Release()
	return nil
}
