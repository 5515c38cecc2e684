// Package flags scans assistant-authored text for persona flag markers.
//
// A marker is an HTML comment of the form:
//
//	<!-- persona: TOKEN -->
//
// Only tokens that the active persona has configured as flag situations
// are honored. A fingerprint of the scanned text is kept so the same
// message never fires twice.
package flags

import (
	"fmt"
	"regexp"

	"github.com/dotcommander/chime/internal/state"
)

// stateName is the persisted last-scanned fingerprint record.
const stateName = "flag"

// markerRe matches one flag marker. The token is any non-whitespace run.
var markerRe = regexp.MustCompile(`<!--\s*persona:\s*(\S+)\s*-->`)

type fingerprintRecord struct {
	Fingerprint string `json:"fingerprint"`
}

// Fingerprint derives a cheap content identity for dedup: length plus
// both 64-rune edges. Distinct messages sharing all three collide and
// are treated as the same message, which only costs a skipped sound.
func Fingerprint(text string) string {
	r := []rune(text)
	head := r
	if len(head) > 64 {
		head = head[:64]
	}
	tail := r
	if len(tail) > 64 {
		tail = tail[len(tail)-64:]
	}
	return fmt.Sprintf("%d:%s:%s", len(r), string(head), string(tail))
}

// Match returns the first marker token (in text order) that is present
// in valid, or "" if none. Markers with unlisted tokens are skipped and
// scanning continues.
func Match(text string, valid []string) string {
	for _, m := range markerRe.FindAllStringSubmatch(text, -1) {
		token := m[1]
		for _, v := range valid {
			if token == v {
				return token
			}
		}
	}
	return ""
}

// Scan matches text against the valid flag names with dedup: if the
// text's fingerprint equals the last successfully scanned one, Scan
// returns "" even when a valid marker is present. The stored fingerprint
// is only advanced on a successful match, so a message without flags
// never masks a later one.
func Scan(text string, valid []string) string {
	if text == "" || len(valid) == 0 {
		return ""
	}

	fp := Fingerprint(text)
	var prev fingerprintRecord
	if state.Load(stateName, &prev) && prev.Fingerprint == fp {
		return ""
	}

	token := Match(text, valid)
	if token == "" {
		return ""
	}

	_ = state.Save(stateName, &fingerprintRecord{Fingerprint: fp})
	return token
}
