// Package journey defines the journey document: a titled, described sequence
// of chapters, each holding an ordered list of events.
package journey

// Event is a single step within a chapter. It has no identity beyond its
// position in the chapter.
type Event struct {
	Title string   `json:"title" yaml:"title"`
	Tags  []string `json:"tags" yaml:"tags"`
}

// Chapter is a named phase of a journey. Order is significant and is the only
// ordering key.
type Chapter struct {
	Title  string  `json:"title" yaml:"title"`
	Events []Event `json:"events" yaml:"events"`
}

// Journey is the root document.
type Journey struct {
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Chapters    []Chapter `json:"chapters" yaml:"chapters"`
}

// Clone returns a deep copy so receivers can never mutate the original.
func (j Journey) Clone() Journey {
	out := Journey{
		Title:       j.Title,
		Description: j.Description,
	}
	if j.Chapters != nil {
		out.Chapters = make([]Chapter, len(j.Chapters))
		for i, c := range j.Chapters {
			out.Chapters[i] = c.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the chapter.
func (c Chapter) Clone() Chapter {
	out := Chapter{Title: c.Title}
	if c.Events != nil {
		out.Events = make([]Event, len(c.Events))
		for i, e := range c.Events {
			out.Events[i] = e.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the event.
func (e Event) Clone() Event {
	out := Event{Title: e.Title}
	if e.Tags != nil {
		out.Tags = append(make([]string, 0, len(e.Tags)), e.Tags...)
	}
	return out
}

// Normalize returns a deep copy where every absent sequence is replaced by an
// empty one. Absent tags and empty tags mean the same thing; the canonical
// form is always present, possibly empty.
func (j Journey) Normalize() Journey {
	out := j.Clone()
	if out.Chapters == nil {
		out.Chapters = []Chapter{}
	}
	for i := range out.Chapters {
		if out.Chapters[i].Events == nil {
			out.Chapters[i].Events = []Event{}
		}
		for k := range out.Chapters[i].Events {
			if out.Chapters[i].Events[k].Tags == nil {
				out.Chapters[i].Events[k].Tags = []string{}
			}
		}
	}
	return out
}

// Equal reports whether two journeys are structurally equal, treating absent
// and empty sequences as the same.
func (j Journey) Equal(other Journey) bool {
	if j.Title != other.Title || j.Description != other.Description {
		return false
	}
	if len(j.Chapters) != len(other.Chapters) {
		return false
	}
	for i := range j.Chapters {
		a, b := j.Chapters[i], other.Chapters[i]
		if a.Title != b.Title || len(a.Events) != len(b.Events) {
			return false
		}
		for k := range a.Events {
			if !a.Events[k].Equal(b.Events[k]) {
				return false
			}
		}
	}
	return true
}

// Equal compares two events, treating nil and empty tags as equal.
func (e Event) Equal(other Event) bool {
	if e.Title != other.Title || len(e.Tags) != len(other.Tags) {
		return false
	}
	for i := range e.Tags {
		if e.Tags[i] != other.Tags[i] {
			return false
		}
	}
	return true
}

// EventCount returns the number of events across all chapters.
func (j Journey) EventCount() int {
	n := 0
	for _, c := range j.Chapters {
		n += len(c.Events)
	}
	return n
}

// Tags returns the distinct tags used by the journey in first-seen order.
func (j Journey) Tags() []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, c := range j.Chapters {
		for _, e := range c.Events {
			for _, t := range e.Tags {
				if _, ok := seen[t]; ok {
					continue
				}
				seen[t] = struct{}{}
				tags = append(tags, t)
			}
		}
	}
	return tags
}
