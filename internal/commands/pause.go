package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dotcommander/chime/internal/app"
	"github.com/dotcommander/chime/internal/output"
)

// NewPauseCmd creates the pause command. Paused state suppresses
// playback and new nag campaigns; cancellations still apply.
func NewPauseCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "pause",
		Short:         "Suppress sounds until resumed",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := app.PausedPath()
			if err != nil {
				return cmdErr(err)
			}
			if err := os.WriteFile(path, []byte{}, 0600); err != nil {
				return cmdErr(err)
			}
			type resp struct {
				Paused bool `json:"paused"`
			}
			return output.PrintSuccess(resp{Paused: true})
		},
	}
}

// NewResumeCmd creates the resume command.
func NewResumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "resume",
		Short:         "Re-enable sounds after a pause",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := app.PausedPath()
			if err != nil {
				return cmdErr(err)
			}
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				return cmdErr(err)
			}
			type resp struct {
				Paused bool `json:"paused"`
			}
			return output.PrintSuccess(resp{Paused: false})
		},
	}
}
