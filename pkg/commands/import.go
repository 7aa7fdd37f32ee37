package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/journey/pkg/commands/options"
	"tableflip.dev/journey/pkg/runner/imports"
)

func addImport(topLevel *cobra.Command) {
	imo := &options.ImportOptions{}

	cmd := &cobra.Command{
		Use:   "import <export name or path>",
		Short: "read a shared JSON file back into journey YAML and notes",
		Example: `
journey import journey_2024-03-07_at_09.05.01.json
journey import ~/Downloads/shared.json --journey-out trip.yaml --notes-out trip.md
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: exportCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(false)
			if err != nil {
				return oo.HandleError(err)
			}
			s := imports.Import{
				Library:    e.lib,
				Name:       args[0],
				JourneyOut: imo.JourneyOut,
				NotesOut:   imo.NotesOut,
				Log:        e.log,
				Stdout:     cmd.OutOrStdout(),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddImportArgs(cmd, imo)
	topLevel.AddCommand(cmd)
}
