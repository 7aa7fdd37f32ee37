// Package exports lists the exchange files in the exports library.
package exports

import (
	"context"
	"errors"
	"io"
	"time"

	"tableflip.dev/journey/pkg/printers"
	"tableflip.dev/journey/pkg/store"
)

// Exports lists the exports library, newest first.
type Exports struct {
	Library store.Library
	// Since limits the listing to exports modified within this window. Zero
	// lists everything.
	Since   time.Duration
	Now     func() time.Time
	Stdout  io.Writer
}

// Do prints the exports newer than Since, or all of them when Since is zero.
func (e *Exports) Do(ctx context.Context) error {
	if e.Library == nil {
		return errors.New("exports: no library configured")
	}
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	pp := &printers.PrettyPrint{Out: e.Stdout}
	items := e.Library.List(ctx)
	if e.Since > 0 {
		cutoff := now().Add(-e.Since)
		recent := items[:0]
		for _, it := range items {
			if it.ModTime.After(cutoff) {
				recent = append(recent, it)
			}
		}
		items = recent
	}
	pp.Exports(items, now())
	return nil
}
