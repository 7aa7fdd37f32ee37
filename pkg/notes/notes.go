// Package notes loads the markdown notes that seed the notes pane and renders
// them for preview.
package notes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/mitchellh/go-homedir"
)

const (
	maxNotesSize   = 4 << 20
	defaultTimeout = 10 * time.Second
)

// ErrTooLarge is wrapped by a FetchError when notes exceed the size limit.
var ErrTooLarge = errors.New("notes exceed 4 MiB")

// FetchError reports a notes source that could not be loaded.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("notes: fetch %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher loads notes text from a URL or a file path.
type Fetcher struct {
	Client *http.Client
}

// Fetch loads source once. An empty source yields empty notes.
func (f *Fetcher) Fetch(ctx context.Context, source string) (string, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return "", nil
	}
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return f.fetchURL(ctx, source)
	}
	return readFile(source)
}

// Fetch loads source with a default Fetcher.
func Fetch(ctx context.Context, source string) (string, error) {
	return (&Fetcher{}).Fetch(ctx, source)
}

func (f *Fetcher) fetchURL(ctx context.Context, source string) (string, error) {
	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return "", &FetchError{Source: source, Err: err}
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", &FetchError{Source: source, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &FetchError{Source: source, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	return readLimited(source, resp.Body)
}

// readLimited reads all of r, failing rather than truncating past maxNotesSize.
func readLimited(source string, r io.Reader) (string, error) {
	b, err := io.ReadAll(io.LimitReader(r, maxNotesSize+1))
	if err != nil {
		return "", &FetchError{Source: source, Err: err}
	}
	if len(b) > maxNotesSize {
		return "", &FetchError{Source: source, Err: ErrTooLarge}
	}
	return string(b), nil
}

func readFile(source string) (string, error) {
	path, err := homedir.Expand(source)
	if err != nil {
		return "", &FetchError{Source: source, Err: err}
	}
	f, err := os.Open(path)
	if err != nil {
		return "", &FetchError{Source: source, Err: err}
	}
	defer f.Close()
	return readLimited(source, f)
}

// Preview renders markdown for the terminal at the given width. style is a
// glamour standard style name such as "dark", "light" or "notty".
func Preview(markdown string, width int, style string) (string, error) {
	if style == "" {
		style = "dark"
	}
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("notes: preview renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("notes: render preview: %w", err)
	}
	return out, nil
}
