// Package resolver maps one hook event, plus the spam / flag /
// permission-timeout signals, to at most one fired situation and sound.
//
// It is the single decision point of the program: everything it touches
// (spam window, flag dedup, nagger, playback, history) is injected so
// the decision procedure stays deterministic under test.
package resolver

import (
	"math/rand"
	"time"

	"github.com/dotcommander/chime/internal/hook"
	"github.com/dotcommander/chime/internal/persona"
)

// Firing modes recorded with each resolved situation.
const (
	ModeNormal = "normal"
	ModeSpam   = "spam"
	ModeFlag   = "flag"
)

// flagScanGrace is how long the flags-scan invocation lingers after
// starting playback, so the detached player has time to open the file
// before the process tree is torn down.
const flagScanGrace = 1500 * time.Millisecond

// Player starts detached playback.
type Player interface {
	Play(path string, volume float64)
}

// Nagger is the coordinator side of the reminder subsystem.
type Nagger interface {
	Start(sessionID string, soundPaths []string, timeouts []int, terminalPID int) error
	Cancel(sessionID string)
}

// SpamChecker records one prompt submission and reports spamming.
type SpamChecker interface {
	Check(threshold, windowMs int) bool
}

// Firing describes one resolved situation, handed to the recorder.
type Firing struct {
	SessionID string
	Event     string
	Situation string
	Mode      string
	Sound     string
}

// Resolver holds the collaborators for one hook invocation.
type Resolver struct {
	Table  *persona.Table
	Spam   SpamChecker
	Nag    Nagger
	Player Player

	// Volume returns the focus-adjusted playback volume.
	Volume func() float64

	// ScanFlags matches text against the valid flag names with dedup.
	ScanFlags func(text string, valid []string) string

	// ReadTranscript returns the last assistant message at path.
	ReadTranscript func(path string) string

	// Record persists a firing, best effort. May be nil.
	Record func(Firing)

	// Sleep is the grace-period hook; time.Sleep in production.
	Sleep func(time.Duration)

	// Rand drives every uniform choice (situation and sound).
	Rand *rand.Rand

	// TerminalPID identifies the invoking terminal for nag campaigns.
	TerminalPID int

	// DefaultSpamThreshold and DefaultSpamWindowMs back situations
	// without overrides.
	DefaultSpamThreshold int
	DefaultSpamWindowMs  int

	// Paused suppresses playback and nag starts; cancels still run.
	Paused bool
}

// Handle resolves one event. It never returns an error: every failure
// mode inside degrades to "no sound played".
func (r *Resolver) Handle(p hook.Payload, flagsScan bool) {
	if r.Table == nil {
		return
	}
	if flagsScan {
		r.handleFlagsScan(p)
		return
	}

	r.driveNagger(p)

	situation, mode, ok := r.resolveSituation(p)
	if !ok || len(situation.Sounds) == 0 {
		return
	}
	if r.Paused {
		return
	}

	sound := situation.Sounds[r.Rand.Intn(len(situation.Sounds))]
	path := r.Table.ResolveSound(sound)
	r.Player.Play(path, r.Volume())
	r.record(Firing{
		SessionID: p.SessionID,
		Event:     p.HookEventName,
		Situation: situation.Name,
		Mode:      mode,
		Sound:     sound,
	})
}

// handleFlagsScan looks for a persona flag marker in the assistant's
// last message and plays the matching situation's sound. The process is
// expected to terminate shortly after this returns regardless of match.
func (r *Resolver) handleFlagsScan(p hook.Payload) {
	valid := r.Table.FlagNames()
	if len(valid) == 0 {
		return
	}

	text := p.Message
	if text == "" {
		text = r.ReadTranscript(p.TranscriptPath)
	}
	if text == "" {
		return
	}

	token := r.ScanFlags(text, valid)
	if token == "" {
		return
	}

	situation, ok := r.Table.SituationByName(token)
	if !ok || len(situation.Sounds) == 0 {
		return
	}
	if r.Paused {
		return
	}

	sound := situation.Sounds[r.Rand.Intn(len(situation.Sounds))]
	r.Player.Play(r.Table.ResolveSound(sound), r.Volume())
	r.record(Firing{
		SessionID: p.SessionID,
		Event:     p.HookEventName,
		Situation: situation.Name,
		Mode:      ModeFlag,
		Sound:     sound,
	})
	r.Sleep(flagScanGrace)
}

// driveNagger starts or cancels the reminder campaign for this session.
// It never suppresses normal resolution: a Notification may both start
// a nagger and fire a "Notification" situation in the same invocation.
func (r *Resolver) driveNagger(p hook.Payload) {
	if !r.Table.HasPermissionTimeoutSituation() || p.SessionID == "" {
		return
	}

	switch {
	case p.IsPermissionPrompt():
		if r.Paused {
			return
		}
		candidates := r.Table.SituationsForTrigger(persona.TriggerPermissionTimeout)
		s := candidates[r.Rand.Intn(len(candidates))]
		paths := make([]string, 0, len(s.Sounds))
		for _, sound := range s.Sounds {
			paths = append(paths, r.Table.ResolveSound(sound))
		}
		_ = r.Nag.Start(p.SessionID, paths, s.Timeouts, r.TerminalPID)

	case p.HookEventName == hook.EventUserPromptSubmit, p.HookEventName == hook.EventSessionEnd:
		// The user responded or the session is over; stop reminding.
		r.Nag.Cancel(p.SessionID)
	}
}

// resolveSituation picks the situation for a plain event: spam first on
// prompt submission, then literal trigger match. Selection among equal
// candidates is uniformly random, never first-match.
func (r *Resolver) resolveSituation(p hook.Payload) (persona.Situation, string, bool) {
	if p.HookEventName == hook.EventUserPromptSubmit && r.Table.HasSpamSituation() {
		candidates := r.Table.SituationsForTrigger(persona.TriggerSpam)
		s := candidates[r.Rand.Intn(len(candidates))]
		threshold, windowMs := r.spamParams(s)
		// Check always records the submission, spam or not.
		if r.Spam.Check(threshold, windowMs) {
			return s, ModeSpam, true
		}
	}

	matches := r.Table.SituationsForTrigger(p.HookEventName)
	if len(matches) == 0 {
		return persona.Situation{}, "", false
	}
	return matches[r.Rand.Intn(len(matches))], ModeNormal, true
}

func (r *Resolver) spamParams(s persona.Situation) (threshold, windowMs int) {
	threshold = r.DefaultSpamThreshold
	windowMs = r.DefaultSpamWindowMs
	if s.SpamThreshold > 0 {
		threshold = s.SpamThreshold
	}
	if s.SpamWindowMs > 0 {
		windowMs = s.SpamWindowMs
	}
	return threshold, windowMs
}

func (r *Resolver) record(f Firing) {
	if r.Record != nil {
		r.Record(f)
	}
}
