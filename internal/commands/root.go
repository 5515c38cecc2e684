// Package commands wires the chime CLI.
package commands

import (
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dotcommander/chime/internal/app"
	"github.com/dotcommander/chime/internal/output"
)

// Execute runs the CLI application.
func Execute(version string) error {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(),
	})))

	root := &cobra.Command{
		Use:           "chime",
		Short:         "Audio cues for Claude Code hook events",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			showVersion, _ := cmd.Flags().GetBool("version")
			if showVersion {
				type resp struct {
					Version string `json:"version"`
				}
				return output.PrintSuccess(resp{Version: version})
			}
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := app.EnsureConfigDir(); err != nil {
				return err
			}
			if dbPath, err := cmd.Flags().GetString("db-path"); err == nil && dbPath != "" {
				app.SetDBPathOverride(dbPath)
			}
			return nil
		},
	}

	// Accept snake_case spellings of multi-word flags (--db_path).
	root.PersistentFlags().SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	root.PersistentFlags().String("db-path", "", "Override firing-history database path")
	root.Flags().BoolP("version", "v", false, "version for chime")

	root.AddCommand(NewHistoryCmd())
	root.AddCommand(NewStatusCmd())
	root.AddCommand(NewPauseCmd())
	root.AddCommand(NewResumeCmd())
	root.AddCommand(NewPersonasCmd())

	// Hook-facing subcommands — called by the hook system, not humans.
	// Hidden from help output to reduce command surface noise.
	for _, sub := range []*cobra.Command{
		NewHandleCmd(),
		NewNagWorkerCmd(),
	} {
		sub.Hidden = true
		root.AddCommand(sub)
	}

	err := root.Execute()
	if err != nil {
		var pe printedError
		if !errors.As(err, &pe) {
			slog.Error("command failed", "error", err.Error())
		}
	}
	return err
}

// logLevel reads CHIME_LOG_LEVEL; hooks default to warn so stderr stays
// quiet under the hook runner.
func logLevel() slog.Level {
	switch os.Getenv("CHIME_LOG_LEVEL") {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
