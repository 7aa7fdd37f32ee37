package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/journey/pkg/commands/options"
	"tableflip.dev/journey/pkg/runner/export"
)

func addExport(topLevel *cobra.Command) {
	eo := &options.ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "write a journey and its notes as a shareable JSON file",
		Example: `
journey export
journey export --in trip.yaml --notes trip.md
journey export --in trip.yaml --out -
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(false)
			if err != nil {
				return oo.HandleError(err)
			}
			s := export.Export{
				Library: e.lib,
				In:      eo.In,
				Notes:   eo.Notes,
				Out:     eo.Out,
				Log:     e.log,
				Stdout:  cmd.OutOrStdout(),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddExportArgs(cmd, eo)
	topLevel.AddCommand(cmd)
}
