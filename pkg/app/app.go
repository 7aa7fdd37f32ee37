// Package app wires the document store, the exchange codec and the exports
// library into the operations behind the toolbar.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/journey/pkg/document"
	"tableflip.dev/journey/pkg/exchange"
	"tableflip.dev/journey/pkg/notes"
	"tableflip.dev/journey/pkg/store"
)

// Shell provides the toolbar operations shared by the TUI and the CLI:
// exporting, importing and bootstrapping notes.
type Shell struct {
	Store       *document.Store
	Library     store.Library
	Fetcher     *notes.Fetcher
	NotesSource string
	Log         *zap.Logger
	Now         func() time.Time

	mu     sync.Mutex
	latest Ticket
	source string
}

// Ticket identifies one import request. Only the most recently issued ticket
// may apply its result.
type Ticket uint64

var (
	// ErrNoStore is returned when the shell has no document store.
	ErrNoStore = errors.New("app: no document store configured")
	// ErrNoLibrary is returned when an operation needs the exports library.
	ErrNoLibrary = errors.New("app: no exports library configured")
	// ErrStaleImport is returned when a newer import superseded this one.
	ErrStaleImport = errors.New("app: import superseded by a newer request")
)

func (s *Shell) log() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

func (s *Shell) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Export writes the current journey and notes into the exports library and
// returns the generated file name.
func (s *Shell) Export(_ context.Context) (string, error) {
	if s.Store == nil {
		return "", ErrNoStore
	}
	if s.Library == nil {
		return "", ErrNoLibrary
	}
	at := s.now()
	data, err := exchange.Export(s.Store.Journey(), s.Store.Notes(), at)
	if err != nil {
		return "", err
	}
	name := exchange.Filename(at)
	if err := s.Library.Write(name, data); err != nil {
		return "", err
	}
	s.log().Info("exported journey", zap.String("file", s.Library.Path(name)))
	return name, nil
}

// BeginImport issues a new ticket, superseding any import still in flight.
func (s *Shell) BeginImport() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest++
	return s.latest
}

// CompleteImport applies the outcome of a read started with BeginImport.
// Results for superseded tickets are discarded. Failed reads and invalid
// envelopes leave the store untouched.
func (s *Shell) CompleteImport(t Ticket, name string, data []byte, readErr error) error {
	if s.Store == nil {
		return ErrNoStore
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if t != s.latest {
		s.log().Info("discarding stale import",
			zap.String("file", name),
			zap.Uint64("ticket", uint64(t)),
			zap.Uint64("latest", uint64(s.latest)))
		return ErrStaleImport
	}
	if readErr != nil {
		s.log().Warn("import read failed", zap.String("file", name), zap.Error(readErr))
		return fmt.Errorf("app: read %s: %w", name, readErr)
	}
	state, err := exchange.Import(data)
	if err != nil {
		s.log().Warn("import rejected", zap.String("file", name), zap.Error(err))
		return err
	}

	s.Store.Apply(state.Journey, state.Notes, document.SourceImport)
	s.source = filepath.Base(name)
	s.log().Info("imported journey", zap.String("file", name), zap.String("title", state.Journey.Title))
	return nil
}

// ReadImport reads an import candidate. Bare names found in the exports
// library are read from there; anything else is treated as a file path.
func (s *Shell) ReadImport(name string) ([]byte, error) {
	if s.Library != nil && s.Library.Has(name) {
		return s.Library.Read(name)
	}
	return os.ReadFile(name)
}

// Import reads and applies name synchronously.
func (s *Shell) Import(_ context.Context, name string) error {
	t := s.BeginImport()
	data, err := s.ReadImport(name)
	return s.CompleteImport(t, name, data, err)
}

// Source returns the file name of the last successful import, for display.
func (s *Shell) Source() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source
}

// LoadNotes seeds the notes from NotesSource once. A failed fetch is logged
// and leaves the notes as they are.
func (s *Shell) LoadNotes(ctx context.Context) error {
	if s.Store == nil {
		return ErrNoStore
	}
	if s.NotesSource == "" {
		return nil
	}
	f := s.Fetcher
	if f == nil {
		f = &notes.Fetcher{}
	}
	text, err := f.Fetch(ctx, s.NotesSource)
	if err != nil {
		s.log().Warn("notes bootstrap failed", zap.String("source", s.NotesSource), zap.Error(err))
		return err
	}
	s.Store.SetNotes(text, document.SourceBoot)
	return nil
}

// Exports lists the exports library.
func (s *Shell) Exports(ctx context.Context) ([]store.Item, error) {
	if s.Library == nil {
		return nil, ErrNoLibrary
	}
	return s.Library.List(ctx), nil
}
