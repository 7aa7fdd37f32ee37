package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/journey/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about configuration and where exports are stored.",
		Example: `
journey info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(false)
			if err != nil {
				return oo.HandleError(err)
			}
			s := info.Info{
				Config:  e.cfg,
				Library: e.lib,
				Stdout:  cmd.OutOrStdout(),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
