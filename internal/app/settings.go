package app

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Settings represents configuration loaded from settings.yaml.
// Field names match snake_case YAML keys.
type Settings struct {
	ActivePersona string  `yaml:"active_persona"`
	Volume        float64 `yaml:"volume"`
	Enabled       *bool   `yaml:"enabled"`
	SpamThreshold int     `yaml:"spam_threshold"`
	SpamWindowMs  int     `yaml:"spam_window_ms"`
	DBPath        string  `yaml:"db_path"`
}

const (
	defaultVolume        = 0.5
	defaultSpamThreshold = 5
	defaultSpamWindowMs  = 10_000
)

// EffectiveVolume returns the configured volume clamped to 0..1,
// falling back to the default when unset.
func (s Settings) EffectiveVolume() float64 {
	v := s.Volume
	if v <= 0 {
		return defaultVolume
	}
	if v > 1 {
		return 1
	}
	return v
}

// EffectiveSpamDefaults returns validated global spam-detection defaults.
// Per-situation overrides take precedence over these at resolution time.
func (s Settings) EffectiveSpamDefaults() (threshold int, windowMs int) {
	threshold = defaultSpamThreshold
	windowMs = defaultSpamWindowMs
	if s.SpamThreshold > 0 {
		threshold = s.SpamThreshold
	}
	if s.SpamWindowMs > 0 {
		windowMs = s.SpamWindowMs
	}
	return threshold, windowMs
}

// IsEnabled reports whether sound playback is enabled. Missing key defaults to true.
func (s Settings) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// settingsOnce, settings, settingsErr implement the sync.Once lazy-load singleton for config.
// dbPathOverrideMu and dbPathOverride implement a mutex-protected process-wide override for CLI --db-path.
//
//nolint:gochecknoglobals // sync.Once singleton + RWMutex override are intentional process-wide state
var (
	settingsOnce sync.Once
	settings     Settings
	settingsErr  error

	dbPathOverrideMu sync.RWMutex
	dbPathOverride   string
)

// SetDBPathOverride sets a process-wide database path override.
// Intended for CLI flag support (e.g. --db-path).
func SetDBPathOverride(path string) {
	dbPathOverrideMu.Lock()
	dbPathOverride = path
	dbPathOverrideMu.Unlock()
}

func getDBPathOverride() string {
	dbPathOverrideMu.RLock()
	v := dbPathOverride
	dbPathOverrideMu.RUnlock()
	return v
}

// LoadSettings loads configuration once using the documented lookup order.
// Lookup order (first found wins):
// 1) ~/.config/chime/settings.yaml
// 2) /etc/chime/settings.yaml
// Environment variables are handled separately.
func LoadSettings() (Settings, error) {
	settingsOnce.Do(func() {
		settings = Settings{}

		dir, err := ConfigDir()
		if err != nil {
			settingsErr = err
			return
		}
		if s, err := loadSettingsFile(filepath.Join(dir, "settings.yaml")); err == nil {
			settings = s
			return
		} else if !errors.Is(err, os.ErrNotExist) {
			settingsErr = err
			return
		}

		if s, err := loadSettingsFile(filepath.Join(string(os.PathSeparator), "etc", "chime", "settings.yaml")); err == nil {
			settings = s
			return
		} else if !errors.Is(err, os.ErrNotExist) {
			settingsErr = err
			return
		}
	})

	return settings, settingsErr
}

func loadSettingsFile(path string) (Settings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, err
	}

	var s Settings
	if err := yaml.Unmarshal(b, &s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// resetSettingsStateForTest clears the sync.Once singleton so tests can reload.
func resetSettingsStateForTest() {
	settingsOnce = sync.Once{}
	settings = Settings{}
	settingsErr = nil
	SetDBPathOverride("")
}
