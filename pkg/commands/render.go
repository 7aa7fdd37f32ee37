package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/journey/pkg/commands/options"
	"tableflip.dev/journey/pkg/runner/mapview"
)

func addRender(topLevel *cobra.Command) {
	ro := &options.RenderOptions{}

	cmd := &cobra.Command{
		Use:   "render [journey.yaml | export]",
		Short: "draw the journey map in the terminal",
		Example: `
journey render
journey render trip.yaml --width 100
journey render journey_2024-03-07_at_09.05.01.json --notes
`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: exportCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(false)
			if err != nil {
				return oo.HandleError(err)
			}
			from := ""
			if len(args) == 1 {
				from = args[0]
			}
			s := mapview.MapView{
				Library:    e.lib,
				From:       from,
				Width:      ro.Width,
				Color:      ro.Color(),
				Notes:      ro.Notes,
				NotesStyle: ro.Style,
				Stdout:     cmd.OutOrStdout(),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddRenderArgs(cmd, ro)
	topLevel.AddCommand(cmd)
}
