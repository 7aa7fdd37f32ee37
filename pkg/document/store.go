// Package document holds the committed journey and notes for an editing
// session and notifies subscribers whenever either one is replaced.
package document

import (
	"sync"

	"go.uber.org/zap"

	"tableflip.dev/journey/pkg/codec"
	"tableflip.dev/journey/pkg/journey"
)

// ChangeKind describes what a Change replaced.
type ChangeKind int

const (
	// JourneyChanged means the committed journey was replaced.
	JourneyChanged ChangeKind = 1 << iota
	// NotesChanged means the notes were replaced.
	NotesChanged
)

// Has reports whether k includes other.
func (k ChangeKind) Has(other ChangeKind) bool {
	return k&other != 0
}

func (k ChangeKind) String() string {
	switch k {
	case JourneyChanged:
		return "journey"
	case NotesChanged:
		return "notes"
	case JourneyChanged | NotesChanged:
		return "journey+notes"
	default:
		return "none"
	}
}

// Source identifies who triggered a change.
type Source string

const (
	SourceEditor Source = "editor"
	SourceNotes  Source = "notes"
	SourceImport Source = "import"
	SourceBoot   Source = "boot"
)

// Change is delivered to subscribers after the store is mutated. It carries
// no document; subscribers read a fresh snapshot.
type Change struct {
	Kind   ChangeKind
	Source Source
}

const subscriberBuffer = 16

// Store owns the committed journey and notes. Only successful mutations
// reach it; invalid editor text never does.
type Store struct {
	mu      sync.RWMutex
	journey journey.Journey
	notes   string
	lastErr error

	subs   map[int]chan Change
	nextID int

	log *zap.Logger
}

// Option customises a Store.
type Option func(*Store)

// WithLogger routes diagnostics to l.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates a store seeded with j and notes.
func New(j journey.Journey, notes string, opts ...Option) *Store {
	s := &Store{
		journey: j.Normalize(),
		notes:   notes,
		subs:    make(map[int]chan Change),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Journey returns a snapshot of the committed journey. Callers may modify it
// freely.
func (s *Store) Journey() journey.Journey {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.journey.Clone()
}

// Notes returns the current notes text.
func (s *Store) Notes() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notes
}

// LastError returns the diagnostic recorded by the most recent failed parse,
// or nil once a later parse succeeded.
func (s *Store) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// SetJourneyFromText parses text and, on success, replaces the committed
// journey. On failure the store is left untouched, the diagnostic is
// recorded and logged, and the *codec.ParseError is returned.
func (s *Store) SetJourneyFromText(text string) error {
	res := codec.Parse(text)
	if !res.OK() {
		s.mu.Lock()
		s.lastErr = res.Err
		s.mu.Unlock()
		s.log.Warn("journey text rejected",
			zap.Int("line", res.Err.Line),
			zap.Int("column", res.Err.Column),
			zap.String("reason", res.Err.Reason))
		return res.Err
	}

	s.mu.Lock()
	s.journey = res.Journey
	s.lastErr = nil
	s.mu.Unlock()
	s.notify(Change{Kind: JourneyChanged, Source: SourceEditor})
	return nil
}

// SetJourney replaces the committed journey with j.
func (s *Store) SetJourney(j journey.Journey, src Source) {
	s.mu.Lock()
	s.journey = j.Normalize()
	s.mu.Unlock()
	s.notify(Change{Kind: JourneyChanged, Source: src})
}

// SetNotes replaces the notes. It cannot fail.
func (s *Store) SetNotes(text string, src Source) {
	s.mu.Lock()
	s.notes = text
	s.mu.Unlock()
	s.notify(Change{Kind: NotesChanged, Source: src})
}

// Apply replaces journey and notes together with a single notification, so
// subscribers never observe one without the other.
func (s *Store) Apply(j journey.Journey, notes string, src Source) {
	s.mu.Lock()
	s.journey = j.Normalize()
	s.notes = notes
	s.lastErr = nil
	s.mu.Unlock()
	s.notify(Change{Kind: JourneyChanged | NotesChanged, Source: src})
}

// Subscribe registers for change notifications. The returned function
// unsubscribes and closes the channel. A subscriber that falls behind misses
// notifications rather than blocking writers; snapshots are always current.
func (s *Store) Subscribe() (<-chan Change, func()) {
	ch := make(chan Change, subscriberBuffer)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			close(ch)
		})
	}
}

func (s *Store) notify(c Change) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subs {
		select {
		case ch <- c:
		default:
			s.log.Debug("subscriber behind, dropping change", zap.Stringer("kind", c.Kind))
		}
	}
}
