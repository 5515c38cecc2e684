// Package persona loads sound personas and answers situation lookups.
//
// A persona is a directory under the personas dir containing a
// persona.json and a sounds/ directory:
//
//	personas/peon/persona.json
//	personas/peon/sounds/ready1.mp3
//
// persona.json binds named situations to triggers and candidate sounds.
package persona

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Synthetic triggers. Any other trigger value is matched literally
// against the incoming hook event name.
const (
	TriggerFlag              = "flag"
	TriggerSpam              = "spam"
	TriggerPermissionTimeout = "permission_timeout"
)

// Situation is one named rule binding a trigger to candidate sounds.
type Situation struct {
	Name    string   `json:"name"`
	Trigger string   `json:"trigger"`
	Sounds  []string `json:"sounds"`

	// Spam overrides, meaningful only when Trigger == "spam".
	SpamThreshold int `json:"spam_threshold,omitempty"`
	SpamWindowMs  int `json:"spam_window_ms,omitempty"`

	// Escalation schedule in seconds, meaningful only when
	// Trigger == "permission_timeout".
	Timeouts []int `json:"timeouts,omitempty"`
}

// personaFile is the on-disk schema of persona.json.
type personaFile struct {
	Name        string      `json:"name"`
	DisplayName string      `json:"display_name"`
	Situations  []Situation `json:"situations"`
}

// Table is a loaded persona's situation lookup surface.
type Table struct {
	Name        string
	DisplayName string
	dir         string
	situations  []Situation
}

// Load reads the persona named name from personasDir.
func Load(personasDir, name string) (*Table, error) {
	if name == "" {
		return nil, fmt.Errorf("no active persona configured")
	}
	dir := filepath.Join(personasDir, name)
	data, err := os.ReadFile(filepath.Join(dir, "persona.json"))
	if err != nil {
		return nil, fmt.Errorf("read persona %q: %w", name, err)
	}

	var pf personaFile
	if err := json.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse persona %q: %w", name, err)
	}
	if pf.Name == "" {
		pf.Name = name
	}

	return &Table{
		Name:        pf.Name,
		DisplayName: pf.DisplayName,
		dir:         dir,
		situations:  pf.Situations,
	}, nil
}

// NewTable builds a Table directly from situations. Used by tests and by
// callers that already have the configuration in hand.
func NewTable(name, dir string, situations []Situation) *Table {
	return &Table{Name: name, dir: dir, situations: situations}
}

// Situations returns all situations in configuration order.
func (t *Table) Situations() []Situation {
	return t.situations
}

// SituationsForTrigger returns the situations bound to trigger, in
// configuration order. Selection among them is the caller's concern.
func (t *Table) SituationsForTrigger(trigger string) []Situation {
	var out []Situation
	for _, s := range t.situations {
		if s.Trigger == trigger {
			out = append(out, s)
		}
	}
	return out
}

// SituationByName returns the situation with the given name.
func (t *Table) SituationByName(name string) (Situation, bool) {
	for _, s := range t.situations {
		if s.Name == name {
			return s, true
		}
	}
	return Situation{}, false
}

// FlagNames returns the names of all flag-triggered situations. A
// situation's name doubles as its marker token.
func (t *Table) FlagNames() []string {
	var out []string
	for _, s := range t.situations {
		if s.Trigger == TriggerFlag {
			out = append(out, s.Name)
		}
	}
	return out
}

// HasFlagSituations reports whether any flag situations are configured.
func (t *Table) HasFlagSituations() bool {
	return len(t.FlagNames()) > 0
}

// HasSpamSituation reports whether any spam situations are configured.
func (t *Table) HasSpamSituation() bool {
	return len(t.SituationsForTrigger(TriggerSpam)) > 0
}

// HasPermissionTimeoutSituation reports whether a permission-timeout
// situation is configured.
func (t *Table) HasPermissionTimeoutSituation() bool {
	return len(t.SituationsForTrigger(TriggerPermissionTimeout)) > 0
}

// ResolveSound maps a sound identifier from a situation to a playable
// path. Absolute identifiers pass through; everything else resolves
// inside the persona's sounds directory.
func (t *Table) ResolveSound(sound string) string {
	if filepath.IsAbs(sound) {
		return sound
	}
	return filepath.Join(t.dir, "sounds", sound)
}

// List returns the names of all personas installed under personasDir.
func List(personasDir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(personasDir, "*", "persona.json"))
	if err != nil {
		return nil, err
	}
	var names []string
	for _, m := range matches {
		names = append(names, filepath.Base(filepath.Dir(m)))
	}
	return names, nil
}
