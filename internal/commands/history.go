package commands

import (
	"github.com/spf13/cobra"

	"github.com/dotcommander/chime/internal/history"
	"github.com/dotcommander/chime/internal/output"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "history",
		Short:         "Show recent sound firings",
		Long:          `Lists recently fired situations, newest first, from the firing-history database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			sessionID, _ := cmd.Flags().GetString("session")

			var firings []history.Firing
			if err := withDB(func(db *DB) error {
				var err error
				firings, err = history.ListFirings(db, limit, sessionID)
				return err
			}); err != nil {
				return err
			}

			type resp struct {
				Firings []history.Firing `json:"firings"`
				Count   int              `json:"count"`
			}
			return output.PrintSuccess(resp{Firings: firings, Count: len(firings)})
		},
	}

	cmd.Flags().Int("limit", 50, "Maximum number of firings to return")
	cmd.Flags().String("session", "", "Filter to one session id")
	return cmd
}
