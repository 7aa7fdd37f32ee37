package options

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// RenderOptions
type RenderOptions struct {
	Width   int
	NoColor bool
	Notes   bool
	Style   string
}

func AddRenderArgs(cmd *cobra.Command, o *RenderOptions) {
	cmd.Flags().IntVarP(&o.Width, "width", "w", 0,
		"Map width in columns. Defaults to 120.")
	cmd.Flags().BoolVar(&o.NoColor, "no-color", false,
		"Disable colour even on a terminal.")
	cmd.Flags().BoolVar(&o.Notes, "notes", false,
		"Render the notes below the map.")
	AddStyleArg(cmd, &o.Style)
}

// AddStyleArg registers the markdown style flag shared by render and ui.
func AddStyleArg(cmd *cobra.Command, style *string) {
	cmd.Flags().StringVar(style, "style", "dark",
		"Markdown style for notes: dark, light, notty, ascii, pink or dracula.")
}

// Color reports whether output should be coloured: stdout must be a
// terminal and --no-color unset.
func (o *RenderOptions) Color() bool {
	if o.NoColor {
		return false
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
