// Package spam detects abnormally fast prompt submission using a shared
// sliding window of timestamps.
package spam

import (
	"time"

	"github.com/dotcommander/chime/internal/state"
)

// stateName is the shared timestamp-window record. One global window is
// kept across all sessions; spamming is a property of the user, not of a
// single conversation.
const stateName = "spam"

// window is the persisted record: recent submission instants in epoch
// milliseconds.
type window struct {
	Timestamps []int64 `json:"timestamps"`
}

// Detector checks prompt-submission rates. The zero value is not usable;
// construct with New.
type Detector struct {
	now func() time.Time
}

// New returns a Detector using the wall clock.
func New() *Detector {
	return &Detector{now: time.Now}
}

// NewWithClock returns a Detector with an injected clock for tests.
func NewWithClock(now func() time.Time) *Detector {
	return &Detector{now: now}
}

// Check records one submission and reports whether the user has submitted
// at least threshold prompts within the past windowMs milliseconds,
// counting this one. Every call rewrites the shared window, including
// calls that report false. Corrupt or missing prior state counts as empty.
func (d *Detector) Check(threshold int, windowMs int) bool {
	now := d.now().UnixMilli()
	cutoff := now - int64(windowMs)

	var w window
	state.Load(stateName, &w)

	kept := make([]int64, 0, len(w.Timestamps)+1)
	for _, t := range w.Timestamps {
		if t > cutoff && t <= now {
			kept = append(kept, t)
		}
	}
	kept = append(kept, now)
	w.Timestamps = kept

	// Best effort; a failed write only widens the race already accepted here.
	_ = state.Save(stateName, &w)

	return len(kept) >= threshold
}
