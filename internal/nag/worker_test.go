package nag

import (
	"context"
	"encoding/json"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCampaignFile(t *testing.T, c Campaign) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "campaign.json")
	data, err := json.Marshal(c)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func testWorker(path string, played *[]string) *Worker {
	return &Worker{
		StatePath: path,
		SleepUnit: time.Millisecond,
		Rand:      rand.New(rand.NewSource(1)),
		Play: func(_ context.Context, sound string, _ float64) {
			*played = append(*played, sound)
		},
	}
}

func TestWorker_PlaysOneReminderPerTimeoutThenDeletesFile(t *testing.T) {
	path := writeCampaignFile(t, Campaign{
		SoundPaths:  []string{"/sounds/a.mp3", "/sounds/b.mp3"},
		Timeouts:    []int{1, 1},
		StartedAtMs: time.Now().UnixMilli(),
	})

	var played []string
	testWorker(path, &played).Run(context.Background())

	require.Len(t, played, 2, "one reminder per timeout entry")
	for _, p := range played {
		assert.Contains(t, []string{"/sounds/a.mp3", "/sounds/b.mp3"}, p)
	}
	assert.NoFileExists(t, path, "campaign file is deleted on natural completion")
}

func TestWorker_CancellationBetweenTicksStopsTheCampaign(t *testing.T) {
	path := writeCampaignFile(t, Campaign{
		SoundPaths:  []string{"/sounds/a.mp3"},
		Timeouts:    []int{1, 1, 1},
		StartedAtMs: time.Now().UnixMilli(),
	})

	var played []string
	w := testWorker(path, &played)
	w.Play = func(_ context.Context, sound string, _ float64) {
		played = append(played, sound)
		// Simulate the coordinator cancelling after the first reminder.
		require.NoError(t, os.Remove(path))
	}
	w.Run(context.Background())

	assert.Len(t, played, 1, "no reminder may play after cancellation is observed")
}

func TestWorker_SafetyDeadlineStopsStaleCampaigns(t *testing.T) {
	path := writeCampaignFile(t, Campaign{
		SoundPaths:  []string{"/sounds/a.mp3"},
		Timeouts:    []int{1, 1},
		StartedAtMs: time.Now().Add(-time.Hour).UnixMilli(),
	})

	var played []string
	testWorker(path, &played).Run(context.Background())

	assert.Empty(t, played, "campaigns older than the safety ceiling must not play")
	assert.NoFileExists(t, path, "deadline exit cleans up the handoff file")
}

func TestWorker_MissingFileExitsImmediately(t *testing.T) {
	var played []string
	w := testWorker(filepath.Join(t.TempDir(), "gone.json"), &played)
	w.Run(context.Background())
	assert.Empty(t, played)
}

func TestWorker_EmptySoundsOrTimeoutsExitsImmediately(t *testing.T) {
	var played []string

	path := writeCampaignFile(t, Campaign{Timeouts: []int{1}, StartedAtMs: time.Now().UnixMilli()})
	testWorker(path, &played).Run(context.Background())
	assert.Empty(t, played)

	path = writeCampaignFile(t, Campaign{SoundPaths: []string{"/a.mp3"}, StartedAtMs: time.Now().UnixMilli()})
	testWorker(path, &played).Run(context.Background())
	assert.Empty(t, played)
}

func TestWorker_CorruptFileExitsImmediately(t *testing.T) {
	path := filepath.Join(t.TempDir(), "campaign.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	var played []string
	testWorker(path, &played).Run(context.Background())
	assert.Empty(t, played)
}

func TestWorker_TicksAreSpacedByTheSchedule(t *testing.T) {
	path := writeCampaignFile(t, Campaign{
		SoundPaths:  []string{"/a.mp3"},
		Timeouts:    []int{20, 30},
		StartedAtMs: time.Now().UnixMilli(),
	})

	var played []string
	w := testWorker(path, &played)

	start := time.Now()
	w.Run(context.Background())
	elapsed := time.Since(start)

	require.Len(t, played, 2)
	assert.GreaterOrEqual(t, elapsed, 50*time.Millisecond, "sleeps must sum to the schedule")
}
