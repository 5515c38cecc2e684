package persona

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPersonaJSON = `{
	"name": "peon",
	"display_name": "Peon",
	"situations": [
		{"name": "ready", "trigger": "SessionStart", "sounds": ["ready1.mp3"]},
		{"name": "task-complete", "trigger": "Stop", "sounds": ["done1.mp3", "done2.mp3"]},
		{"name": "task-complete-alt", "trigger": "Stop", "sounds": ["alt.mp3"]},
		{"name": "annoyed", "trigger": "spam", "sounds": ["whyme.mp3"], "spam_threshold": 3, "spam_window_ms": 15000},
		{"name": "needs-you", "trigger": "permission_timeout", "sounds": ["hello.mp3"], "timeouts": [15, 30, 60]},
		{"name": "alarm", "trigger": "flag", "sounds": ["alarm.mp3"]},
		{"name": "celebrate", "trigger": "flag", "sounds": ["yay.mp3"]}
	]
}`

func writePersona(t *testing.T, name, content string) string {
	t.Helper()
	personasDir := t.TempDir()
	dir := filepath.Join(personasDir, name)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sounds"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "persona.json"), []byte(content), 0o600))
	return personasDir
}

func TestLoad_ParsesPersona(t *testing.T) {
	personasDir := writePersona(t, "peon", testPersonaJSON)

	table, err := Load(personasDir, "peon")
	require.NoError(t, err)
	assert.Equal(t, "peon", table.Name)
	assert.Equal(t, "Peon", table.DisplayName)
	assert.Len(t, table.Situations(), 7)
}

func TestLoad_MissingPersonaErrors(t *testing.T) {
	_, err := Load(t.TempDir(), "ghost")
	require.Error(t, err)
}

func TestLoad_EmptyNameErrors(t *testing.T) {
	_, err := Load(t.TempDir(), "")
	require.Error(t, err)
}

func TestLoad_MalformedJSONErrors(t *testing.T) {
	personasDir := writePersona(t, "bad", `{"situations": [`)
	_, err := Load(personasDir, "bad")
	require.Error(t, err)
}

func TestSituationsForTrigger_ReturnsAllMatchesInOrder(t *testing.T) {
	personasDir := writePersona(t, "peon", testPersonaJSON)
	table, err := Load(personasDir, "peon")
	require.NoError(t, err)

	stops := table.SituationsForTrigger("Stop")
	require.Len(t, stops, 2)
	assert.Equal(t, "task-complete", stops[0].Name)
	assert.Equal(t, "task-complete-alt", stops[1].Name)

	assert.Empty(t, table.SituationsForTrigger("PreToolUse"))
}

func TestSituationByName(t *testing.T) {
	personasDir := writePersona(t, "peon", testPersonaJSON)
	table, err := Load(personasDir, "peon")
	require.NoError(t, err)

	s, ok := table.SituationByName("annoyed")
	require.True(t, ok)
	assert.Equal(t, 3, s.SpamThreshold)
	assert.Equal(t, 15000, s.SpamWindowMs)

	_, ok = table.SituationByName("nope")
	assert.False(t, ok)
}

func TestDerivedQueries(t *testing.T) {
	personasDir := writePersona(t, "peon", testPersonaJSON)
	table, err := Load(personasDir, "peon")
	require.NoError(t, err)

	assert.True(t, table.HasFlagSituations())
	assert.True(t, table.HasSpamSituation())
	assert.True(t, table.HasPermissionTimeoutSituation())
	assert.Equal(t, []string{"alarm", "celebrate"}, table.FlagNames())
}

func TestDerivedQueries_EmptyPersona(t *testing.T) {
	table := NewTable("empty", "", nil)
	assert.False(t, table.HasFlagSituations())
	assert.False(t, table.HasSpamSituation())
	assert.False(t, table.HasPermissionTimeoutSituation())
}

func TestResolveSound(t *testing.T) {
	personasDir := writePersona(t, "peon", testPersonaJSON)
	table, err := Load(personasDir, "peon")
	require.NoError(t, err)

	assert.Equal(t,
		filepath.Join(personasDir, "peon", "sounds", "done1.mp3"),
		table.ResolveSound("done1.mp3"))

	abs := filepath.Join(string(filepath.Separator), "opt", "sounds", "x.mp3")
	assert.Equal(t, abs, table.ResolveSound(abs))
}

func TestList_FindsInstalledPersonas(t *testing.T) {
	personasDir := writePersona(t, "peon", testPersonaJSON)
	require.NoError(t, os.MkdirAll(filepath.Join(personasDir, "notapersona"), 0o750))

	names, err := List(personasDir)
	require.NoError(t, err)
	assert.Equal(t, []string{"peon"}, names)
}
