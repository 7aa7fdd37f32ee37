// Package store keeps exported journey files on disk and resolves the
// application configuration.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/journey/pkg/exchange"
)

// ErrInvalidName is returned for export names that are not plain file names.
var ErrInvalidName = errors.New("store: invalid export name")

// Item describes one exported file.
type Item struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// Library defines the contract for the exports directory.
type Library interface {
	List(ctx context.Context) []Item
	Read(name string) ([]byte, error)
	Write(name string, data []byte) error
	Delete(name string) error
	Has(name string) bool
	Path(name string) string
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Library backed by diskv rooted at cfg.ExportsPath().
func Load(cfg Config) (Library, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.ExportsPath()
	if basePath == "" {
		return nil, errors.New("store: exports path unknown")
	}
	return &library{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type library struct {
	d        *diskv.Diskv
	basePath string
}

// List returns exported files, newest name first. Files that do not follow
// the export naming convention are skipped.
func (l *library) List(ctx context.Context) []Item {
	all := make([]Item, 0)
	if _, err := os.Stat(l.basePath); err != nil {
		return all
	}
	for key := range l.d.Keys(ctx.Done()) {
		if !exchange.IsExportName(key) {
			continue
		}
		item := Item{Name: key}
		if info, err := os.Stat(l.Path(key)); err == nil {
			item.Size = info.Size()
			item.ModTime = info.ModTime()
		}
		all = append(all, item)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Name > all[j].Name
	})
	return all
}

func (l *library) Read(name string) ([]byte, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	return l.d.Read(name)
}

func (l *library) Write(name string, data []byte) error {
	if err := validName(name); err != nil {
		return err
	}
	if err := os.MkdirAll(l.basePath, 0o755); err != nil {
		return fmt.Errorf("store: ensure exports path: %w", err)
	}
	if err := l.d.Write(name, data); err != nil {
		return fmt.Errorf("store: write %s: %w", name, err)
	}
	return nil
}

func (l *library) Delete(name string) error {
	if err := validName(name); err != nil {
		return err
	}
	return l.d.Erase(name)
}

func (l *library) Has(name string) bool {
	if validName(name) != nil {
		return false
	}
	return l.d.Has(name)
}

func (l *library) Path(name string) string {
	return filepath.Join(l.basePath, name)
}

func validName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Exports live directly in the base directory.
func keyToPathTransform(s string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{},
		FileName: s,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return pathKey.FileName
}
