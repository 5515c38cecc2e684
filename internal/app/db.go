package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDBPath resolves the firing-history database path.
// Order of precedence:
// 1) CLI override (--db-path)
// 2) Environment variable: CHIME_DB_PATH
// 3) settings.yaml: db_path
// 4) Default: ~/.config/chime/chime.db
// Ensures the parent directory exists.
func GetDBPath() (string, error) {
	if override := getDBPathOverride(); override != "" {
		return EnsureDBDir(override)
	}

	if envPath := os.Getenv("CHIME_DB_PATH"); envPath != "" {
		return EnsureDBDir(envPath)
	}

	cfg, err := LoadSettings()
	if err != nil {
		return "", fmt.Errorf("failed to load settings: %w", err)
	}
	if cfg.DBPath != "" {
		return EnsureDBDir(cfg.DBPath)
	}

	configDir, err := ConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine config directory: %w", err)
	}
	return EnsureDBDir(filepath.Join(configDir, "chime.db"))
}

// EnsureDBDir expands and absolutizes dbPath and creates its parent directory.
// The in-memory token is passed through untouched for tests.
func EnsureDBDir(dbPath string) (string, error) {
	if dbPath == ":memory:" {
		return dbPath, nil
	}

	if len(dbPath) >= 2 && dbPath[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dbPath = filepath.Join(home, dbPath[2:])
	}

	abs, err := filepath.Abs(dbPath)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0750); err != nil {
		return "", err
	}
	return abs, nil
}
