package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadSettings_ReadsUserConfig(t *testing.T) {
	resetSettingsStateForTest()
	t.Cleanup(resetSettingsStateForTest)

	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(home, ".config", "chime", "settings.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("active_persona: peon\nvolume: 0.7\n"), 0o600))

	s, err := LoadSettings()
	require.NoError(t, err)
	require.Equal(t, "peon", s.ActivePersona)
	require.InDelta(t, 0.7, s.Volume, 1e-9)
}

func TestLoadSettings_MissingFilesYieldZeroSettings(t *testing.T) {
	resetSettingsStateForTest()
	t.Cleanup(resetSettingsStateForTest)

	t.Setenv("HOME", t.TempDir())

	s, err := LoadSettings()
	require.NoError(t, err)
	require.Empty(t, s.ActivePersona)
	require.True(t, s.IsEnabled(), "enabled defaults to true")
}

func TestLoadSettings_InvalidYAMLReturnsError(t *testing.T) {
	resetSettingsStateForTest()
	t.Cleanup(resetSettingsStateForTest)

	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(home, ".config", "chime", "settings.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("volume: ["), 0o600))

	_, err := LoadSettings()
	require.Error(t, err)
}

func TestEffectiveVolume_DefaultsAndClamps(t *testing.T) {
	require.InDelta(t, 0.5, Settings{}.EffectiveVolume(), 1e-9)
	require.InDelta(t, 0.5, Settings{Volume: -1}.EffectiveVolume(), 1e-9)
	require.InDelta(t, 1.0, Settings{Volume: 3}.EffectiveVolume(), 1e-9)
	require.InDelta(t, 0.25, Settings{Volume: 0.25}.EffectiveVolume(), 1e-9)
}

func TestEffectiveSpamDefaults(t *testing.T) {
	threshold, windowMs := Settings{}.EffectiveSpamDefaults()
	require.Equal(t, 5, threshold)
	require.Equal(t, 10_000, windowMs)

	threshold, windowMs = Settings{SpamThreshold: 3, SpamWindowMs: 15_000}.EffectiveSpamDefaults()
	require.Equal(t, 3, threshold)
	require.Equal(t, 15_000, windowMs)

	threshold, windowMs = Settings{SpamThreshold: -1, SpamWindowMs: 0}.EffectiveSpamDefaults()
	require.Equal(t, 5, threshold)
	require.Equal(t, 10_000, windowMs)
}

func TestIsEnabled(t *testing.T) {
	on, off := true, false
	require.True(t, Settings{}.IsEnabled())
	require.True(t, Settings{Enabled: &on}.IsEnabled())
	require.False(t, Settings{Enabled: &off}.IsEnabled())
}

func TestEnsureConfigDir_CreatesLayoutAndDefaultSettings(t *testing.T) {
	resetSettingsStateForTest()
	t.Cleanup(resetSettingsStateForTest)

	home := t.TempDir()
	t.Setenv("HOME", home)

	require.NoError(t, EnsureConfigDir())

	require.DirExists(t, filepath.Join(home, ".config", "chime", "personas"))
	require.FileExists(t, filepath.Join(home, ".config", "chime", "settings.yaml"))

	// A second call must not clobber an edited settings file.
	path := filepath.Join(home, ".config", "chime", "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("volume: 0.9\n"), 0o600))
	require.NoError(t, EnsureConfigDir())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "volume: 0.9\n", string(data))
}

func TestEnsureDBDir_ExpandsTildeAndCreatesParent(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := EnsureDBDir("~/dbs/chime.db")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, "dbs", "chime.db"), path)
	require.DirExists(t, filepath.Join(home, "dbs"))
}

func TestEnsureDBDir_MemoryTokenPassesThrough(t *testing.T) {
	path, err := EnsureDBDir(":memory:")
	require.NoError(t, err)
	require.Equal(t, ":memory:", path)
}
