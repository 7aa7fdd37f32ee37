package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"tableflip.dev/journey/pkg/exchange"
)

// EventType describes the nature of a library change notification.
type EventType int

const (
	// EventExportChanged indicates the named export was written or replaced.
	EventExportChanged EventType = iota

	// EventExportRemoved indicates the named export was deleted or renamed
	// away.
	EventExportRemoved

	// EventLibraryInvalidated signals that callers should re-list the whole
	// library.
	EventLibraryInvalidated
)

func (t EventType) String() string {
	switch t {
	case EventExportChanged:
		return "changed"
	case EventExportRemoved:
		return "removed"
	default:
		return "invalidated"
	}
}

// Event is emitted by Library.Watch when the exports directory changes.
type Event struct {
	Type EventType
	Name string
}

// Watch streams change events until ctx is cancelled. Callers should drain the
// returned channel to avoid dropped events. The channel is closed once ctx is
// done or the watcher fails.
func (l *library) Watch(ctx context.Context) (<-chan Event, error) {
	if l.basePath == "" {
		return nil, errors.New("store: exports path unknown")
	}
	if err := os.MkdirAll(l.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure exports path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	if err := watcher.Add(l.basePath); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("store: watch %s: %w", l.basePath, err)
	}

	events := make(chan Event, 64)

	go func() {
		defer close(events)
		defer func() { _ = watcher.Close() }()

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// Drop when the consumer is not ready; a later re-list
				// catches up.
			}
		}

		throttle := newEventThrottle(100*time.Millisecond, send)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				throttle.Enqueue(Event{Type: EventLibraryInvalidated})
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				name := filepath.Base(evt.Name)
				if !exchange.IsExportName(name) {
					continue
				}
				switch {
				case evt.Has(fsnotify.Remove), evt.Has(fsnotify.Rename):
					throttle.Enqueue(Event{Type: EventExportRemoved, Name: name})
				case evt.Has(fsnotify.Create), evt.Has(fsnotify.Write):
					throttle.Enqueue(Event{Type: EventExportChanged, Name: name})
				}
			}
		}
	}()

	return events, nil
}

// eventThrottle coalesces rapid change notifications so listeners refresh
// once per burst of filesystem activity.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[Event]struct{}
	order   []Event
	delay   time.Duration
	send    func(Event)
	stopped bool
}

func newEventThrottle(delay time.Duration, send func(Event)) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		send:    send,
		pending: make(map[Event]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	if _, ok := t.pending[ev]; !ok {
		t.pending[ev] = struct{}{}
		t.order = append(t.order, ev)
	}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, t.flush)
	}
}

func (t *eventThrottle) flush() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	order := t.order
	t.pending = make(map[Event]struct{})
	t.order = nil
	t.timer = nil
	// send never blocks, so it is safe to call while holding the lock; Stop
	// relies on this to guarantee no send after it returns.
	for _, ev := range order {
		t.send(ev)
	}
	t.mu.Unlock()
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
