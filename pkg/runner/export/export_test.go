package export

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tableflip.dev/journey/pkg/codec"
	"tableflip.dev/journey/pkg/exchange"
	"tableflip.dev/journey/pkg/journey"
	"tableflip.dev/journey/pkg/store"
)

func fixedNow() time.Time {
	return time.Date(2024, time.January, 2, 3, 4, 5, 0, time.Local)
}

func TestExportToLibrary(t *testing.T) {
	lib, err := store.Load(store.StaticConfig{Exports: t.TempDir()})
	require.NoError(t, err)

	dir := t.TempDir()
	in := filepath.Join(dir, "trip.yaml")
	require.NoError(t, os.WriteFile(in, []byte("title: Trip\nchapters:\n  - title: Go\n    events:\n      - title: Leave\n"), 0o644))
	notesPath := filepath.Join(dir, "trip.md")
	require.NoError(t, os.WriteFile(notesPath, []byte("# Packing\n"), 0o644))

	var out bytes.Buffer
	e := Export{Library: lib, In: in, Notes: notesPath, Now: fixedNow, Stdout: &out}
	require.NoError(t, e.Do(context.Background()))

	name := "journey_2024-01-02_at_03.04.05.json"
	require.True(t, lib.Has(name))
	require.Contains(t, out.String(), name)

	data, err := lib.Read(name)
	require.NoError(t, err)
	st, err := exchange.Import(data)
	require.NoError(t, err)
	require.Equal(t, "Trip", st.Journey.Title)
	require.Equal(t, []string{}, st.Journey.Chapters[0].Events[0].Tags)
	require.Equal(t, "# Packing\n", st.Notes)
}

func TestExportToStdout(t *testing.T) {
	var out bytes.Buffer
	e := Export{Out: "-", Now: fixedNow, Stdout: &out}
	require.NoError(t, e.Do(context.Background()))

	st, err := exchange.Import(out.Bytes())
	require.NoError(t, err)
	require.True(t, st.Journey.Equal(journey.Sample()))
	require.Equal(t, "", st.Notes)
}

func TestExportToPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shared.json")
	var out bytes.Buffer
	e := Export{Out: path, Now: fixedNow, Stdout: &out}
	require.NoError(t, e.Do(context.Background()))
	require.FileExists(t, path)
	require.True(t, strings.HasPrefix(out.String(), "exported "))
}

func TestExportRejectsInvalidYAML(t *testing.T) {
	in := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(in, []byte("chapters: nope\n"), 0o644))

	e := Export{In: in, Out: "-", Stdout: &bytes.Buffer{}}
	err := e.Do(context.Background())
	var perr *codec.ParseError
	require.True(t, errors.As(err, &perr), "got %v", err)
}
