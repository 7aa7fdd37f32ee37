package options

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// OutputOptions controls how command results and errors are written.
type OutputOptions struct {
	JSON bool
	// Out receives JSON errors. Defaults to color.Output.
	Out io.Writer
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.PersistentFlags().BoolVar(&po.JSON, "json", false,
		"Output errors as JSON.")
}

// HandleError prints err as a JSON object when --json is set and swallows
// it; otherwise err is returned for cobra to report.
func (o *OutputOptions) HandleError(err error) error {
	if o.JSON && err != nil {
		payload := map[string]string{
			"error": err.Error(),
		}
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		w := o.Out
		if w == nil {
			w = color.Output
		}
		_, _ = fmt.Fprintln(w, string(b))
		return nil
	}
	return err
}
