package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dotcommander/chime/internal/app"
	"github.com/dotcommander/chime/internal/output"
	"github.com/dotcommander/chime/internal/persona"
	"github.com/dotcommander/chime/internal/state"
)

// NewStatusCmd creates the status command.
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "status",
		Short:         "Show active persona and playback state",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := app.LoadSettings()
			if err != nil {
				return cmdErr(err)
			}

			type resp struct {
				ActivePersona string  `json:"active_persona"`
				Enabled       bool    `json:"enabled"`
				Paused        bool    `json:"paused"`
				Volume        float64 `json:"volume"`
				Situations    int     `json:"situations"`
				ActiveNags    int     `json:"active_nags"`
			}

			r := resp{
				ActivePersona: settings.ActivePersona,
				Enabled:       settings.IsEnabled(),
				Paused:        isPaused(),
				Volume:        settings.EffectiveVolume(),
			}

			if personasDir, err := app.PersonasDir(); err == nil {
				if table, err := persona.Load(personasDir, settings.ActivePersona); err == nil {
					r.Situations = len(table.Situations())
				}
			}

			// Pending reminder campaigns, by state-file prefix.
			if matches, err := filepath.Glob(state.Path("nag-*")); err == nil {
				r.ActiveNags = len(matches)
			}

			return output.PrintSuccess(r)
		},
	}
}
