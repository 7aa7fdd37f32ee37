package document

import (
	"tableflip.dev/journey/pkg/codec"
	"tableflip.dev/journey/pkg/journey"
)

// Draft is the text currently in the descriptor editor. It may be invalid
// and is allowed to disagree with the committed journey in the Store.
type Draft struct {
	text  string
	dirty bool
	err   error
}

// NewDraft seeds a draft from the committed journey.
func NewDraft(j journey.Journey) *Draft {
	d := &Draft{}
	d.Reset(j)
	return d
}

// Text returns the draft text.
func (d *Draft) Text() string {
	return d.text
}

// Dirty reports whether the draft was edited since the last Reset.
func (d *Draft) Dirty() bool {
	return d.dirty
}

// Valid reports whether the draft text was last accepted by the store.
func (d *Draft) Valid() bool {
	return d.err == nil
}

// Err returns the error from the last commit attempt.
func (d *Draft) Err() error {
	return d.err
}

// Reset replaces the draft with the serialized form of j. It is used when
// the journey changes from outside the editor, for example on import.
func (d *Draft) Reset(j journey.Journey) {
	text, err := codec.Serialize(j)
	d.text = text
	d.err = err
	d.dirty = false
}

// Edit records new editor text and tries to commit it to s. The draft keeps
// the text whether or not the store accepted it.
func (d *Draft) Edit(text string, s *Store) error {
	if text == d.text && d.dirty {
		return d.err
	}
	d.text = text
	d.dirty = true
	d.err = s.SetJourneyFromText(text)
	return d.err
}
