package nag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotcommander/chime/internal/state"
)

func TestStart_EmptySoundsOrTimeoutsWritesNothing(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())

	require.NoError(t, Start("sess-1", nil, []int{15}, 0))
	assert.NoFileExists(t, StatePath("sess-1"))

	require.NoError(t, Start("sess-1", []string{"/a.mp3"}, nil, 0))
	assert.NoFileExists(t, StatePath("sess-1"))
}

func TestCancel_RemovesTheCampaignFile(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())

	require.NoError(t, state.Save(stateName("sess-2"), &Campaign{
		SoundPaths: []string{"/a.mp3"},
		Timeouts:   []int{15},
	}))
	require.FileExists(t, StatePath("sess-2"))

	Cancel("sess-2")
	assert.NoFileExists(t, StatePath("sess-2"))
}

func TestCancel_MissingFileIsNotAnError(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())
	Cancel("never-started")
}

func TestStatePath_SanitizesSessionIDs(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())

	p := StatePath("weird/../id with spaces")
	assert.NotContains(t, p[strings.LastIndexByte(p, '/')+1:], " ")
	assert.True(t, strings.HasPrefix(p, state.Path("nag-")[:len(state.Path("nag-"))-len(".json")]),
		"nag files share the enumerable prefix")
}

func TestStatePath_DistinctSessionsGetDistinctFiles(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())
	assert.NotEqual(t, StatePath("sess-a"), StatePath("sess-b"))
}
