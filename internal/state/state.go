// Package state persists chime's small cross-invocation records as JSON
// files in the OS temp directory, one file per purpose. Every record is
// read and rewritten in full; there is no locking, so concurrent hook
// invocations race last-writer-wins. That is acceptable for the advisory
// features built on top (spam window, flag fingerprint).
package state

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// filePrefix namespaces chime's files in the shared temp directory so
// they can be enumerated (and cleaned up) by prefix.
const filePrefix = "chime-"

// Path returns the absolute path of the named state file.
func Path(name string) string {
	return filepath.Join(os.TempDir(), filePrefix+name+".json")
}

// Load reads the named record into v. A missing, empty, or corrupt file
// leaves v untouched and reports ok=false; it is never an error.
func Load(name string, v any) (ok bool) {
	data, err := os.ReadFile(Path(name))
	if err != nil || len(data) == 0 {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

// Save replaces the named record atomically (temp file + rename).
func Save(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	path := Path(name)
	tmp, err := os.CreateTemp(filepath.Dir(path), filePrefix+"*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Remove deletes the named record. A missing file is not an error.
func Remove(name string) {
	_ = os.Remove(Path(name))
}

// Exists reports whether the named record is present.
func Exists(name string) bool {
	_, err := os.Stat(Path(name))
	return err == nil
}
