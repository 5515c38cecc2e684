package commands

import (
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dotcommander/chime/internal/app"
	"github.com/dotcommander/chime/internal/audio"
	"github.com/dotcommander/chime/internal/flags"
	"github.com/dotcommander/chime/internal/focus"
	"github.com/dotcommander/chime/internal/history"
	"github.com/dotcommander/chime/internal/hook"
	"github.com/dotcommander/chime/internal/nag"
	"github.com/dotcommander/chime/internal/persona"
	"github.com/dotcommander/chime/internal/resolver"
	"github.com/dotcommander/chime/internal/spam"
	"github.com/dotcommander/chime/internal/transcript"
)

const (
	// maxHookStdinBytes caps stdin reads. Hook payloads are small JSON
	// objects; 1 MB is generous headroom against unbounded allocation.
	maxHookStdinBytes = 1 << 20

	// handleDeadline bounds the whole hook invocation. If anything
	// downstream hangs (player, transcript read), the process still
	// exits cleanly before the hook runner times us out.
	handleDeadline = 5 * time.Second
)

// NewHandleCmd creates the hook entry point. It reads the event payload
// from stdin, resolves it, and plays at most one sound. It never fails:
// the worst outcome of any fault is no sound played.
func NewHandleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "handle",
		Short: "Handle one hook event from stdin",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			flagsScan, _ := cmd.Flags().GetBool("flags-scan")
			runHandle(flagsScan)
		},
	}
	cmd.Flags().Bool("flags-scan", false, "Scan the assistant's last message for persona flag markers")
	return cmd
}

func runHandle(flagsScan bool) {
	// Hard upper bound on the invocation, independent of all logic below.
	watchdog := time.AfterFunc(handleDeadline, func() {
		os.Exit(0)
	})
	defer watchdog.Stop()

	input, err := io.ReadAll(io.LimitReader(os.Stdin, maxHookStdinBytes))
	if err != nil || len(input) == 0 {
		return
	}
	payload, ok := hook.ParsePayload(input)
	if !ok {
		return
	}

	settings, err := app.LoadSettings()
	if err != nil || !settings.IsEnabled() {
		return
	}

	personasDir, err := app.PersonasDir()
	if err != nil {
		return
	}
	table, err := persona.Load(personasDir, settings.ActivePersona)
	if err != nil {
		// Missing or malformed persona configuration is a silent no-op.
		slog.Debug("persona unavailable", "error", err.Error())
		return
	}

	threshold, windowMs := settings.EffectiveSpamDefaults()
	terminalPID := os.Getppid()
	player := audio.ExecPlayer{}

	r := &resolver.Resolver{
		Table:  table,
		Spam:   spam.New(),
		Nag:    naggerAdapter{},
		Player: player,
		Volume: func() float64 {
			return focus.Volume(settings.EffectiveVolume(), terminalPID)
		},
		ScanFlags:            flags.Scan,
		ReadTranscript:       transcript.LastAssistantText,
		Record:               recordFiring,
		Sleep:                time.Sleep,
		Rand:                 rand.New(rand.NewSource(time.Now().UnixNano())),
		TerminalPID:          terminalPID,
		DefaultSpamThreshold: threshold,
		DefaultSpamWindowMs:  windowMs,
		Paused:               isPaused(),
	}

	r.Handle(payload, flagsScan)
}

// naggerAdapter binds the resolver's Nagger interface to package nag.
type naggerAdapter struct{}

func (naggerAdapter) Start(sessionID string, soundPaths []string, timeouts []int, terminalPID int) error {
	return nag.Start(sessionID, soundPaths, timeouts, terminalPID)
}

func (naggerAdapter) Cancel(sessionID string) {
	nag.Cancel(sessionID)
}

// recordFiring persists the firing to history, best effort.
func recordFiring(f resolver.Firing) {
	db, closeDB, err := openDB()
	if err != nil {
		slog.Debug("history unavailable", "error", err.Error())
		return
	}
	defer closeDB()

	if err := history.RecordFiring(db, history.Firing{
		SessionID: f.SessionID,
		Event:     f.Event,
		Situation: f.Situation,
		Mode:      f.Mode,
		Sound:     f.Sound,
	}); err != nil {
		slog.Debug("history write failed", "error", err.Error())
	}
}

func isPaused() bool {
	path, err := app.PausedPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}
