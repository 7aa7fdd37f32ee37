package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/journey/pkg/commands/options"
	"tableflip.dev/journey/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	style := "dark"
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
journey ui
journey ui --style light
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(true)
			if err != nil {
				return err
			}
			defer func() { _ = e.log.Sync() }()
			i := ui.UI{Config: e.cfg, Library: e.lib, Log: e.log, NotesStyle: style}
			return i.Do(cmd.Context())
		},
	}

	options.AddStyleArg(cmd, &style)
	topLevel.AddCommand(cmd)
}
