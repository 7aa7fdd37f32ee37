package store

import (
	"context"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestLibraryWatchEmitsExportChanges(t *testing.T) {
	defer goleak.VerifyNone(t)

	lib, err := Load(StaticConfig{Exports: t.TempDir()})
	if err != nil {
		t.Fatalf("load library: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := lib.Watch(ctx)
	if err != nil {
		cancel()
		t.Fatalf("watch: %v", err)
	}

	// Allow the watcher goroutine to start before writing.
	time.Sleep(50 * time.Millisecond)

	name := "journey_2024-03-07_at_09.05.01.json"
	if err := lib.Write(name, []byte(`{}`)); err != nil {
		cancel()
		t.Fatalf("write: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for done := false; !done; {
		select {
		case evt := <-ch:
			if evt.Type == EventLibraryInvalidated {
				done = true
				continue
			}
			if evt.Type == EventExportChanged {
				if evt.Name != name {
					t.Errorf("expected %q, got %q", name, evt.Name)
				}
				done = true
			}
		case <-deadline:
			t.Error("timed out waiting for export change event")
			done = true
		}
	}

	cancel()
	for range ch {
	}
}

func TestLibraryWatchIgnoresForeignFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	lib, err := Load(StaticConfig{Exports: t.TempDir()})
	if err != nil {
		t.Fatalf("load library: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := lib.Watch(ctx)
	if err != nil {
		cancel()
		t.Fatalf("watch: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	if err := lib.Write("scratch.txt", []byte("x")); err != nil {
		cancel()
		t.Fatalf("write: %v", err)
	}

	select {
	case evt := <-ch:
		t.Errorf("unexpected event %+v", evt)
	case <-time.After(300 * time.Millisecond):
	}

	cancel()
	for range ch {
	}
}

func TestEventThrottleCoalesces(t *testing.T) {
	got := make(chan Event, 8)
	th := newEventThrottle(10*time.Millisecond, func(ev Event) { got <- ev })
	defer th.Stop()

	th.Enqueue(Event{Type: EventExportChanged, Name: "a"})
	th.Enqueue(Event{Type: EventExportChanged, Name: "a"})
	th.Enqueue(Event{Type: EventExportRemoved, Name: "b"})

	want := []Event{{Type: EventExportChanged, Name: "a"}, {Type: EventExportRemoved, Name: "b"}}
	for i, w := range want {
		select {
		case ev := <-got:
			if ev != w {
				t.Fatalf("event %d = %+v, want %+v", i, ev, w)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for event %d", i)
		}
	}
	select {
	case ev := <-got:
		t.Fatalf("unexpected extra event %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestEventThrottleStopDropsPending(t *testing.T) {
	got := make(chan Event, 1)
	th := newEventThrottle(20*time.Millisecond, func(ev Event) { got <- ev })
	th.Enqueue(Event{Type: EventLibraryInvalidated})
	th.Stop()
	th.Enqueue(Event{Type: EventLibraryInvalidated})

	select {
	case ev := <-got:
		t.Fatalf("unexpected event after stop %+v", ev)
	case <-time.After(60 * time.Millisecond):
	}
}
