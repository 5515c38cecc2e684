// Package transcript extracts assistant messages from Claude Code JSONL
// transcript files.
package transcript

import (
	"bufio"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// transcriptLine is the JSON structure of a single JSONL line.
type transcriptLine struct {
	Type    string          `json:"type"`
	Message *messagePayload `json:"message"`
}

type messagePayload struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
}

// maxLineBytes bounds a single transcript line. Assistant turns with
// large tool output can run long; 10 MB matches what the transcripts
// produce in practice.
const maxLineBytes = 10 * 1024 * 1024

// LastAssistantText returns the text of the most recent assistant entry
// in the transcript at path. A missing, empty, or unreadable transcript,
// or one with no assistant entry, yields "". Malformed lines are skipped.
//
// The hook can fire while the transcript is still being flushed, so a
// failed open is retried briefly before giving up.
func LastAssistantText(path string) string {
	if path == "" {
		return ""
	}

	var f *os.File
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 25 * time.Millisecond
	b.MaxElapsedTime = 300 * time.Millisecond
	err := backoff.Retry(func() error {
		var err error
		f, err = os.Open(path)
		return err
	}, b)
	if err != nil {
		return ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var last string
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var tl transcriptLine
		if err := json.Unmarshal(line, &tl); err != nil {
			continue
		}
		if tl.Message == nil || tl.Message.Role != "assistant" {
			continue
		}
		if text := extractText(tl.Message.Content); text != "" {
			last = text
		}
	}
	// A scanner error mid-file still leaves us with the last good entry.

	return last
}

// extractText pulls human-readable text from a message's content field.
// Content is either a plain string or an array of typed blocks; text
// blocks are concatenated space-joined.
func extractText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var blocks []json.RawMessage
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return ""
	}

	var parts []string
	for _, block := range blocks {
		var obj struct {
			Type string `json:"type"`
			Text string `json:"text"`
		}
		if err := json.Unmarshal(block, &obj); err != nil {
			continue
		}
		if obj.Type == "text" && obj.Text != "" {
			parts = append(parts, obj.Text)
		}
	}
	return strings.Join(parts, " ")
}
