package nag

import (
	"context"
	"encoding/json"
	"math/rand"
	"os"
	"time"
)

// PlayFunc plays one sound at the given volume and returns when playback
// completes (or ctx ends).
type PlayFunc func(ctx context.Context, path string, volume float64)

// VolumeFunc resolves the playback volume for the campaign's terminal.
type VolumeFunc func(terminalPID int) float64

// Worker runs one reminder campaign to completion. It owns no state
// beyond the campaign it reads once at startup; the campaign file is
// only ever deleted by it, never rewritten.
type Worker struct {
	StatePath string
	Play      PlayFunc
	Volume    VolumeFunc

	// SleepUnit scales the campaign's timeout entries. Production uses
	// time.Second; tests shrink it to keep campaigns fast.
	SleepUnit time.Duration

	// MaxAge overrides the campaign safety ceiling when non-zero.
	MaxAge time.Duration

	// Rand is the sound-selection source. Defaults to a time-seeded one.
	Rand *rand.Rand

	now   func() time.Time
	sleep func(time.Duration)
}

// Run executes the escalation schedule. For each timeout entry it
// sleeps, then re-checks the campaign file (gone means cancelled) and
// the safety deadline before playing one random reminder. After the
// final tick it deletes the campaign file.
func (w *Worker) Run(ctx context.Context) {
	w.fillDefaults()

	c, ok := w.readCampaign()
	if !ok || len(c.SoundPaths) == 0 || len(c.Timeouts) == 0 {
		return
	}

	deadline := c.StartedAt().Add(w.MaxAge)

	for _, t := range c.Timeouts {
		if t <= 0 {
			continue
		}
		w.sleep(time.Duration(t) * w.SleepUnit)

		// Existence of the file is the cancellation signal; checked
		// before every tick, not only at startup.
		if _, err := os.Stat(w.StatePath); err != nil {
			return
		}
		if w.now().After(deadline) {
			// Stale campaign: clean up the handoff file on the way out.
			_ = os.Remove(w.StatePath)
			return
		}

		sound := c.SoundPaths[w.Rand.Intn(len(c.SoundPaths))]
		w.Play(ctx, sound, w.Volume(c.TerminalPID))
	}

	// Natural completion: the campaign is spent, drop the handoff file.
	_ = os.Remove(w.StatePath)
}

func (w *Worker) readCampaign() (Campaign, bool) {
	data, err := os.ReadFile(w.StatePath)
	if err != nil || len(data) == 0 {
		return Campaign{}, false
	}
	var c Campaign
	if err := json.Unmarshal(data, &c); err != nil {
		return Campaign{}, false
	}
	return c, true
}

func (w *Worker) fillDefaults() {
	if w.SleepUnit == 0 {
		w.SleepUnit = time.Second
	}
	if w.MaxAge == 0 {
		w.MaxAge = MaxCampaignAge
	}
	if w.Rand == nil {
		w.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if w.now == nil {
		w.now = time.Now
	}
	if w.sleep == nil {
		w.sleep = time.Sleep
	}
	if w.Play == nil {
		w.Play = func(context.Context, string, float64) {}
	}
	if w.Volume == nil {
		w.Volume = func(int) float64 { return 1.0 }
	}
}
