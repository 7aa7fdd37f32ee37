package document

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"tableflip.dev/journey/pkg/codec"
	"tableflip.dev/journey/pkg/journey"
)

func TestSetJourneyFromTextReplacesWholesale(t *testing.T) {
	s := New(journey.Sample(), "")
	changes, cancel := s.Subscribe()
	defer cancel()

	if err := s.SetJourneyFromText("title: T\ndescription: D\nchapters:\n- title: C1\n  events:\n  - title: E1\n    tags: [X]\n"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := journey.Journey{
		Title:       "T",
		Description: "D",
		Chapters:    []journey.Chapter{{Title: "C1", Events: []journey.Event{{Title: "E1", Tags: []string{"X"}}}}},
	}
	if diff := cmp.Diff(want, s.Journey()); diff != "" {
		t.Fatalf("journey mismatch (-want +got):\n%s", diff)
	}

	select {
	case c := <-changes:
		if c.Kind != JourneyChanged || c.Source != SourceEditor {
			t.Fatalf("unexpected change %+v", c)
		}
	default:
		t.Fatalf("expected a change notification")
	}
}

func TestSetJourneyFromTextFailureLeavesStoreUntouched(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := New(journey.Sample(), "notes", WithLogger(zap.New(core)))
	changes, cancel := s.Subscribe()
	defer cancel()

	before := s.Journey()
	err := s.SetJourneyFromText("title: T\n  description: D\n")
	if err == nil {
		t.Fatalf("expected parse error")
	}
	var perr *codec.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *codec.ParseError, got %T", err)
	}
	if diff := cmp.Diff(before, s.Journey()); diff != "" {
		t.Fatalf("store changed on failure (-before +after):\n%s", diff)
	}
	if s.Notes() != "notes" {
		t.Fatalf("notes changed on failure")
	}
	if s.LastError() == nil {
		t.Fatalf("expected diagnostic to be recorded")
	}
	if logs.FilterMessage("journey text rejected").Len() != 1 {
		t.Fatalf("expected one warning, got %v", logs.All())
	}
	select {
	case c := <-changes:
		t.Fatalf("unexpected notification %+v", c)
	default:
	}

	if err := s.SetJourneyFromText("title: ok\n"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.LastError() != nil {
		t.Fatalf("expected diagnostic cleared after success")
	}
}

func TestWrongShapeIsRejected(t *testing.T) {
	s := New(journey.Sample(), "")
	if err := s.SetJourneyFromText("chapters: 3\n"); err == nil {
		t.Fatalf("expected shape error")
	}
	if s.Journey().Title != "Fake Journey" {
		t.Fatalf("store changed on shape error")
	}
}

func TestSnapshotsAreIsolated(t *testing.T) {
	s := New(journey.Sample(), "")
	snap := s.Journey()
	snap.Chapters[0].Events[0].Tags[0] = "mutated"
	if s.Journey().Chapters[0].Events[0].Tags[0] == "mutated" {
		t.Fatalf("snapshot aliases store state")
	}
}

func TestApplyNotifiesOnce(t *testing.T) {
	s := New(journey.Sample(), "old")
	changes, cancel := s.Subscribe()
	defer cancel()

	s.Apply(journey.Journey{Title: "Imported"}, "new notes", SourceImport)

	if got := s.Journey().Title; got != "Imported" {
		t.Fatalf("Title = %q", got)
	}
	if got := s.Notes(); got != "new notes" {
		t.Fatalf("Notes = %q", got)
	}
	c := <-changes
	if !c.Kind.Has(JourneyChanged) || !c.Kind.Has(NotesChanged) || c.Source != SourceImport {
		t.Fatalf("unexpected change %+v", c)
	}
	select {
	case extra := <-changes:
		t.Fatalf("unexpected second notification %+v", extra)
	default:
	}
}

func TestSetNotes(t *testing.T) {
	s := New(journey.Journey{}, "")
	changes, cancel := s.Subscribe()
	defer cancel()

	s.SetNotes("# hello", SourceNotes)
	if s.Notes() != "# hello" {
		t.Fatalf("notes not stored")
	}
	if c := <-changes; c.Kind != NotesChanged {
		t.Fatalf("unexpected change %+v", c)
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	s := New(journey.Journey{}, "")
	changes, cancel := s.Subscribe()
	cancel()
	cancel()

	if _, ok := <-changes; ok {
		t.Fatalf("expected closed channel")
	}
	// Writes after unsubscribe must not panic.
	s.SetNotes("x", SourceNotes)
}

func TestSlowSubscriberDoesNotBlock(t *testing.T) {
	s := New(journey.Journey{}, "")
	_, cancel := s.Subscribe()
	defer cancel()

	for i := 0; i < subscriberBuffer*4; i++ {
		s.SetNotes("x", SourceNotes)
	}
}

func TestChangeKindString(t *testing.T) {
	tests := map[ChangeKind]string{
		JourneyChanged:                "journey",
		NotesChanged:                  "notes",
		JourneyChanged | NotesChanged: "journey+notes",
		0:                             "none",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", k, got, want)
		}
	}
}
