// Package export writes a journey and its notes as an exchange file.
package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"tableflip.dev/journey/pkg/app"
	"tableflip.dev/journey/pkg/codec"
	"tableflip.dev/journey/pkg/document"
	"tableflip.dev/journey/pkg/exchange"
	"tableflip.dev/journey/pkg/journey"
	"tableflip.dev/journey/pkg/notes"
	"tableflip.dev/journey/pkg/store"
)

// Export builds an exchange file from a YAML journey and a notes source.
type Export struct {
	Library store.Library
	// In is a YAML journey file. Empty uses the built-in sample.
	In string
	// Notes is a notes file or http(s) URL. Empty exports empty notes.
	Notes string
	// Out writes the file here instead of the exports library. "-" is stdout.
	Out string

	Log    *zap.Logger
	Now    func() time.Time
	Stdout io.Writer
}

// Do writes the envelope to Out, stdout or the exports library.
func (e *Export) Do(ctx context.Context) error {
	j, err := LoadJourney(e.In)
	if err != nil {
		return err
	}
	text := ""
	if e.Notes != "" {
		if text, err = notes.Fetch(ctx, e.Notes); err != nil {
			return err
		}
	}
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	out := e.Stdout
	if out == nil {
		out = color.Output
	}

	if e.Out != "" {
		data, err := exchange.Export(j, text, now())
		if err != nil {
			return err
		}
		if e.Out == "-" {
			_, err = out.Write(data)
			return err
		}
		if err := os.WriteFile(e.Out, data, 0o644); err != nil {
			return fmt.Errorf("export: write %s: %w", e.Out, err)
		}
		_, _ = fmt.Fprintf(out, "exported %s\n", e.Out)
		return nil
	}

	shell := &app.Shell{
		Store:   document.New(j, text),
		Library: e.Library,
		Log:     e.Log,
		Now:     e.Now,
	}
	name, err := shell.Export(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "exported %s\n", e.Library.Path(name))
	return nil
}

// LoadJourney reads a YAML journey file. An empty path yields the sample.
func LoadJourney(path string) (journey.Journey, error) {
	if path == "" {
		return journey.Sample(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return journey.Journey{}, fmt.Errorf("export: read %s: %w", path, err)
	}
	return codec.Parse(string(b)).Unwrap()
}
