// Package mapview paints a journey map to the terminal.
package mapview

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/muesli/termenv"

	"tableflip.dev/journey/pkg/exchange"
	"tableflip.dev/journey/pkg/journey"
	"tableflip.dev/journey/pkg/notes"
	"tableflip.dev/journey/pkg/render"
	"tableflip.dev/journey/pkg/runner/export"
	"tableflip.dev/journey/pkg/store"
)

// MapView prints the map for a YAML journey or an exchange file.
type MapView struct {
	Library store.Library
	// From is a YAML journey, an exchange file, or an export name in the
	// library. Empty paints the built-in sample.
	From       string
	Width      int
	Color      bool
	Notes      bool
	NotesStyle string

	Stdout io.Writer
}

// Do paints the map, followed by the notes when requested.
func (v *MapView) Do(ctx context.Context) error {
	j, text, err := v.load()
	if err != nil {
		return err
	}
	profile := termenv.Ascii
	if v.Color {
		profile = termenv.ANSI256
	}
	opts := []render.Option{render.WithProfile(profile)}
	if v.Width > 0 {
		opts = append(opts, render.WithWidth(v.Width))
	}

	out := v.Stdout
	if out == nil {
		out = color.Output
	}
	if _, err := fmt.Fprintln(out, render.Paint(render.Render(j), opts...)); err != nil {
		return err
	}
	if !v.Notes || strings.TrimSpace(text) == "" {
		return nil
	}
	style := v.NotesStyle
	if !v.Color {
		style = "notty"
	}
	preview, err := notes.Preview(text, v.Width, style)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(out, preview)
	return err
}

func (v *MapView) load() (journey.Journey, string, error) {
	switch {
	case v.From == "":
		return journey.Sample(), "", nil
	case v.Library != nil && v.Library.Has(v.From):
		data, err := v.Library.Read(v.From)
		if err != nil {
			return journey.Journey{}, "", err
		}
		return fromExchange(data)
	case strings.EqualFold(filepath.Ext(v.From), exchange.Extension):
		data, err := os.ReadFile(v.From)
		if err != nil {
			return journey.Journey{}, "", fmt.Errorf("mapview: read %s: %w", v.From, err)
		}
		return fromExchange(data)
	default:
		j, err := export.LoadJourney(v.From)
		return j, "", err
	}
}

func fromExchange(data []byte) (journey.Journey, string, error) {
	st, err := exchange.Import(data)
	if err != nil {
		return journey.Journey{}, "", err
	}
	return st.Journey, st.Notes, nil
}
