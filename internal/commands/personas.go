package commands

import (
	"github.com/spf13/cobra"

	"github.com/dotcommander/chime/internal/app"
	"github.com/dotcommander/chime/internal/output"
	"github.com/dotcommander/chime/internal/persona"
)

// NewPersonasCmd creates the personas command.
func NewPersonasCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "personas",
		Short:         "List installed personas",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			personasDir, err := app.PersonasDir()
			if err != nil {
				return cmdErr(err)
			}
			names, err := persona.List(personasDir)
			if err != nil {
				return cmdErr(err)
			}

			settings, _ := app.LoadSettings()

			type personaInfo struct {
				Name   string `json:"name"`
				Active bool   `json:"active"`
			}
			infos := make([]personaInfo, 0, len(names))
			for _, n := range names {
				infos = append(infos, personaInfo{Name: n, Active: n == settings.ActivePersona})
			}

			type resp struct {
				Personas []personaInfo `json:"personas"`
			}
			return output.PrintSuccess(resp{Personas: infos})
		},
	}
}
