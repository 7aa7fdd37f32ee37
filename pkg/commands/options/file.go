package options

import (
	"github.com/spf13/cobra"
)

// ExportOptions
type ExportOptions struct {
	In    string
	Notes string
	Out   string
}

func AddExportArgs(cmd *cobra.Command, o *ExportOptions) {
	cmd.Flags().StringVarP(&o.In, "in", "i", "",
		"YAML journey to export. Defaults to the built-in sample.")
	cmd.Flags().StringVarP(&o.Notes, "notes", "n", "",
		"Notes file or http(s) URL to include.")
	cmd.Flags().StringVarP(&o.Out, "out", "o", "",
		"Write to this path instead of the exports directory. Use - for stdout.")
}

// ImportOptions
type ImportOptions struct {
	JourneyOut string
	NotesOut   string
}

func AddImportArgs(cmd *cobra.Command, o *ImportOptions) {
	cmd.Flags().StringVar(&o.JourneyOut, "journey-out", "",
		"Write the journey YAML to this path instead of stdout.")
	cmd.Flags().StringVar(&o.NotesOut, "notes-out", "",
		"Write the notes to this path instead of trailing the YAML as comments.")
}
