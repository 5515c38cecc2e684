package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dotcommander/chime/internal/app"
	"github.com/dotcommander/chime/internal/audio"
	"github.com/dotcommander/chime/internal/focus"
	"github.com/dotcommander/chime/internal/nag"
)

// NewNagWorkerCmd creates the detached escalation worker. It is spawned
// by the hook process with the campaign file path as its sole argument
// and owns nothing beyond that file and its own lifetime.
func NewNagWorkerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nag-worker <state-file>",
		Short: "Run one reminder campaign (internal)",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			base := 0.5
			if settings, err := app.LoadSettings(); err == nil {
				base = settings.EffectiveVolume()
			}

			player := audio.ExecPlayer{}
			w := &nag.Worker{
				StatePath: args[0],
				Play:      player.PlayWait,
				Volume: func(terminalPID int) float64 {
					return focus.Volume(base, terminalPID)
				},
			}
			w.Run(context.Background())
		},
	}
}
