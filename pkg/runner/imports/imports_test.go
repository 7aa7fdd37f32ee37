package imports

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tableflip.dev/journey/pkg/codec"
	"tableflip.dev/journey/pkg/exchange"
	"tableflip.dev/journey/pkg/journey"
	"tableflip.dev/journey/pkg/store"
)

func writeExport(t *testing.T, lib store.Library, notes string) string {
	t.Helper()
	now := time.Date(2024, time.May, 1, 10, 0, 0, 0, time.Local)
	data, err := exchange.Export(journey.Sample(), notes, now)
	require.NoError(t, err)
	name := exchange.Filename(now)
	require.NoError(t, lib.Write(name, data))
	return name
}

func TestImportPrintsYAMLWithCommentedNotes(t *testing.T) {
	lib, err := store.Load(store.StaticConfig{Exports: t.TempDir()})
	require.NoError(t, err)
	name := writeExport(t, lib, "# Notes\nline two\n")

	var out bytes.Buffer
	i := Import{Library: lib, Name: name, Stdout: &out}
	require.NoError(t, i.Do(context.Background()))

	require.Contains(t, out.String(), "title: Fake Journey")
	require.Contains(t, out.String(), "# notes:\n# # Notes\n# line two\n")

	// The comments must not break the journey.
	j, err := codec.Parse(out.String()).Unwrap()
	require.NoError(t, err)
	require.True(t, j.Equal(journey.Sample()))
}

func TestImportWritesFiles(t *testing.T) {
	lib, err := store.Load(store.StaticConfig{Exports: t.TempDir()})
	require.NoError(t, err)
	name := writeExport(t, lib, "hello")

	dir := t.TempDir()
	i := Import{
		Library:    lib,
		Name:       name,
		JourneyOut: filepath.Join(dir, "j.yaml"),
		NotesOut:   filepath.Join(dir, "n.md"),
		Stdout:     &bytes.Buffer{},
	}
	require.NoError(t, i.Do(context.Background()))

	notes, err := os.ReadFile(filepath.Join(dir, "n.md"))
	require.NoError(t, err)
	require.Equal(t, "hello", string(notes))

	yml, err := os.ReadFile(filepath.Join(dir, "j.yaml"))
	require.NoError(t, err)
	require.Equal(t, codec.MustSerialize(journey.Sample()), string(yml))
}

func TestImportRejectsBadEnvelope(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"journey":{}}`), 0o644))

	var out bytes.Buffer
	err := (&Import{Name: path, Stdout: &out}).Do(context.Background())
	var ierr *exchange.ImportError
	require.True(t, errors.As(err, &ierr), "got %v", err)
	require.Empty(t, out.String())
}
