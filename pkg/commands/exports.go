package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/journey/pkg/runner/exports"
	"tableflip.dev/journey/pkg/timeutil"
)

func addExports(topLevel *cobra.Command) {
	since := ""
	cmd := &cobra.Command{
		Use:   "exports",
		Short: "list files in the exports directory, newest first",
		Example: `
journey exports
journey exports --since 1w
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(false)
			if err != nil {
				return oo.HandleError(err)
			}
			window, _, err := timeutil.ParseWindow(since)
			if err != nil {
				return oo.HandleError(err)
			}
			s := exports.Exports{Library: e.lib, Since: window, Stdout: cmd.OutOrStdout()}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&since, "since", "", "Only list exports newer than this window, e.g. 3d or 1w2d.")
	topLevel.AddCommand(cmd)
}
