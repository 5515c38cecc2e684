package app

import (
	"os"
	"path/filepath"
)

// ConfigDir returns ~/.config/chime/ on all platforms.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "chime"), nil
}

// PersonasDir returns the directory holding installed personas.
func PersonasDir() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "personas"), nil
}

// PausedPath returns the flag file that suppresses playback when present.
func PausedPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".paused"), nil
}

// EnsureConfigDir creates the config directory and default settings.yaml if missing.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Join(dir, "personas"), 0750); err != nil {
		return err
	}

	settingsFile := filepath.Join(dir, "settings.yaml")
	if _, err := os.Stat(settingsFile); os.IsNotExist(err) {
		return os.WriteFile(settingsFile, []byte(defaultSettingsFile), 0600)
	}
	return nil
}

const defaultSettingsFile = `# chime configuration
# Run: chime --help

# Persona to play sounds from (directory name under personas/).
# active_persona: peon

# Playback volume, 0.0 - 1.0.
# volume: 0.5

# Optional: override the firing-history database location.
# Can also be set via CHIME_DB_PATH or --db-path.
# db_path: ~/.config/chime/chime.db
`
