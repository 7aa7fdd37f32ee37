package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLibraryWriteReadList(t *testing.T) {
	base := filepath.Join(t.TempDir(), "exports")
	lib, err := Load(StaticConfig{Exports: base})
	if err != nil {
		t.Fatalf("load library: %v", err)
	}

	if got := lib.List(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty list before directory exists, got %v", got)
	}

	older := "journey_2024-03-07_at_09.05.01.json"
	newer := "journey_2024-03-08_at_10.00.00.json"
	for _, name := range []string{older, newer, "notes.md"} {
		if err := lib.Write(name, []byte(`{"name":"`+name+`"}`)); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	items := lib.List(context.Background())
	if len(items) != 2 {
		t.Fatalf("expected 2 exports, got %d: %+v", len(items), items)
	}
	if items[0].Name != newer || items[1].Name != older {
		t.Fatalf("expected newest first, got %q, %q", items[0].Name, items[1].Name)
	}
	if items[0].Size == 0 || items[0].ModTime.IsZero() {
		t.Fatalf("expected file metadata, got %+v", items[0])
	}

	data, err := lib.Read(older)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != `{"name":"`+older+`"}` {
		t.Fatalf("unexpected content %q", data)
	}
	if _, err := os.Stat(lib.Path(older)); err != nil {
		t.Fatalf("expected file at %s: %v", lib.Path(older), err)
	}
	if !lib.Has(older) || lib.Has("missing.json") {
		t.Fatalf("Has() mismatch")
	}

	if err := lib.Delete(older); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if lib.Has(older) {
		t.Fatalf("expected export removed")
	}
}

func TestLibraryRejectsPaths(t *testing.T) {
	lib, err := Load(StaticConfig{Exports: t.TempDir()})
	if err != nil {
		t.Fatalf("load library: %v", err)
	}
	for _, name := range []string{"", "..", "../escape.json", "a/b.json", `a\b.json`, ".hidden"} {
		if err := lib.Write(name, []byte("x")); !errors.Is(err, ErrInvalidName) {
			t.Errorf("Write(%q) error = %v, want ErrInvalidName", name, err)
		}
		if _, err := lib.Read(name); !errors.Is(err, ErrInvalidName) {
			t.Errorf("Read(%q) error = %v, want ErrInvalidName", name, err)
		}
		if lib.Has(name) {
			t.Errorf("Has(%q) = true", name)
		}
	}
}

func TestLoadRequiresPath(t *testing.T) {
	if _, err := Load(StaticConfig{}); err == nil {
		t.Fatalf("expected error for empty exports path")
	}
}
