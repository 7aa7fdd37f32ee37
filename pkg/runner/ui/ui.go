// Package ui launches the interactive editor.
package ui

import (
	"context"

	"github.com/muesli/termenv"
	"go.uber.org/zap"

	"tableflip.dev/journey/pkg/app"
	"tableflip.dev/journey/pkg/document"
	"tableflip.dev/journey/pkg/journey"
	"tableflip.dev/journey/pkg/notes"
	"tableflip.dev/journey/pkg/store"
	teaui "tableflip.dev/journey/pkg/tui/app"
)

// UI runs the Bubble Tea editor over the built-in sample journey.
type UI struct {
	Config     store.Config
	Library    store.Library
	Log        *zap.Logger
	NotesStyle string
}

// Do runs the editor until the user quits or ctx is cancelled.
func (u *UI) Do(ctx context.Context) error {
	log := u.Log
	if log == nil {
		log = zap.NewNop()
	}
	source := ""
	if u.Config != nil {
		source = u.Config.NotesSource()
	}
	shell := &app.Shell{
		Store:       document.New(journey.Sample(), "", document.WithLogger(log)),
		Library:     u.Library,
		Fetcher:     &notes.Fetcher{},
		NotesSource: source,
		Log:         log,
	}
	log.Info("starting editor", zap.String("notes", source))
	return teaui.Run(ctx, shell,
		teaui.WithLogger(log),
		teaui.WithProfile(termenv.ColorProfile()),
		teaui.WithNotesStyle(u.NotesStyle),
	)
}
