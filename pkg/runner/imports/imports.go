// Package imports reads an exchange file back into YAML and notes.
package imports

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"tableflip.dev/journey/pkg/app"
	"tableflip.dev/journey/pkg/codec"
	"tableflip.dev/journey/pkg/document"
	"tableflip.dev/journey/pkg/journey"
	"tableflip.dev/journey/pkg/store"
)

// Import applies an exchange file and writes the journey as YAML. Notes go to
// NotesOut when set, otherwise they trail the YAML as comment lines so the
// output still parses as a journey.
type Import struct {
	Library    store.Library
	Name       string
	JourneyOut string
	NotesOut   string

	Log    *zap.Logger
	Stdout io.Writer
}

// Do reads the named export and writes its journey and notes.
func (i *Import) Do(ctx context.Context) error {
	shell := &app.Shell{
		Store:   document.New(journey.Journey{}, "", document.WithLogger(i.logger())),
		Library: i.Library,
		Log:     i.Log,
	}
	if err := shell.Import(ctx, i.Name); err != nil {
		return err
	}
	text, err := codec.Serialize(shell.Store.Journey())
	if err != nil {
		return err
	}
	n := shell.Store.Notes()

	if i.NotesOut != "" {
		if err := os.WriteFile(i.NotesOut, []byte(n), 0o644); err != nil {
			return fmt.Errorf("import: write %s: %w", i.NotesOut, err)
		}
	} else if n != "" {
		text += commented(n)
	}

	if i.JourneyOut != "" {
		if err := os.WriteFile(i.JourneyOut, []byte(text), 0o644); err != nil {
			return fmt.Errorf("import: write %s: %w", i.JourneyOut, err)
		}
		return nil
	}
	_, err = io.WriteString(i.out(), text)
	return err
}

func (i *Import) out() io.Writer {
	if i.Stdout == nil {
		return color.Output
	}
	return i.Stdout
}

func (i *Import) logger() *zap.Logger {
	if i.Log == nil {
		return zap.NewNop()
	}
	return i.Log
}

func commented(text string) string {
	var b strings.Builder
	b.WriteString("# notes:\n")
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		b.WriteString("# ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
