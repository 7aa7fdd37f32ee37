package codec

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/journey/pkg/journey"
)

func TestRoundTrip(t *testing.T) {
	tests := map[string]journey.Journey{
		"sample": journey.Sample(),
		"empty":  {},
		"absent tags": {
			Title:       "T",
			Description: "D",
			Chapters: []journey.Chapter{
				{Title: "C1", Events: []journey.Event{{Title: "E1"}, {Title: "E2", Tags: []string{"X", "Y"}}}},
				{Title: "C2"},
			},
		},
		"scalar lookalikes": {
			Title:       "2024",
			Description: "true",
			Chapters: []journey.Chapter{
				{Title: "null", Events: []journey.Event{{Title: "- dash: colon", Tags: []string{"1.5", "~"}}}},
			},
		},
		"multiline": {
			Title:       "Journey",
			Description: "line one\nline two\n",
		},
		"line breaks only": {
			Title:       "\n",
			Description: "\n\n",
			Chapters:    []journey.Chapter{{Title: "\r\n", Events: []journey.Event{{Title: "\nlead", Tags: []string{"trail\n\n"}}}}},
		},
		"invalid utf-8": {
			Title:       "\xff\xfe bad",
			Description: strings.Repeat("\xff", 120),
			Chapters:    []journey.Chapter{{Title: "C", Events: []journey.Event{{Title: "E", Tags: []string{"\xc3"}}}}},
		},
	}

	for name, j := range tests {
		t.Run(name, func(t *testing.T) {
			text, err := Serialize(j)
			if err != nil {
				t.Fatalf("Serialize() error: %v", err)
			}
			res := Parse(text)
			if !res.OK() {
				t.Fatalf("Parse(Serialize()) error: %v\n%s", res.Err, text)
			}
			if diff := cmp.Diff(j.Normalize(), res.Journey); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s\ntext:\n%s", diff, text)
			}
		})
	}
}

func TestSerializeIsDeterministic(t *testing.T) {
	a := MustSerialize(journey.Sample())
	b := MustSerialize(journey.Sample())
	if a != b {
		t.Fatalf("expected identical output")
	}
	if !strings.HasPrefix(a, "title: Fake Journey\ndescription: ") {
		t.Fatalf("unexpected key order:\n%s", a)
	}
}

func TestSerializeEmitsEmptyTags(t *testing.T) {
	j := journey.Journey{Chapters: []journey.Chapter{{Title: "C", Events: []journey.Event{{Title: "E"}}}}}
	text := MustSerialize(j)
	if !strings.Contains(text, "tags: []") {
		t.Fatalf("expected empty tags list to be emitted:\n%s", text)
	}
}

func TestParseTreatsAbsentTagsAsEmpty(t *testing.T) {
	res := Parse(`
title: T
description: D
chapters:
- title: C1
  events:
  - title: E1
  - title: E2
    tags:
  - title: E3
    tags: []
`)
	if !res.OK() {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	for i, e := range res.Journey.Chapters[0].Events {
		if e.Tags == nil || len(e.Tags) != 0 {
			t.Fatalf("event %d: expected empty non-nil tags, got %#v", i, e.Tags)
		}
	}
}

func TestParseAcceptsUnindentedSequences(t *testing.T) {
	res := Parse(`
title: T
chapters:
- title: C1
  events:
  - title: E1
    tags:
    - X
`)
	j, err := res.Unwrap()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := journey.Journey{
		Title: "T",
		Chapters: []journey.Chapter{
			{Title: "C1", Events: []journey.Event{{Title: "E1", Tags: []string{"X"}}}},
		},
	}
	if diff := cmp.Diff(want, j); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseIgnoresUnknownKeysAndFollowsAliases(t *testing.T) {
	res := Parse(`
title: T
owner: someone
shared: &shared
  - A
chapters:
- title: C1
  color: red
  events:
  - title: E1
    tags: *shared
`)
	if !res.OK() {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if got := res.Journey.Chapters[0].Events[0].Tags; len(got) != 1 || got[0] != "A" {
		t.Fatalf("expected alias to resolve, got %#v", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		reason string
		line   int
	}{
		{name: "empty", text: "", reason: "empty document"},
		{name: "comment only", text: "# nothing here\n", reason: "empty document"},
		{name: "null", text: "~\n", reason: "empty document"},
		{name: "bad indentation", text: "title: T\n  description: D\n", line: 2},
		{name: "unterminated list", text: "title: T\nchapters: [\n", line: 0},
		{name: "scalar root", text: "just a string\n", reason: "journey must be a mapping", line: 1},
		{name: "list root", text: "- a\n- b\n", reason: "journey must be a mapping", line: 1},
		{name: "title mapping", text: "title:\n  nested: x\n", reason: "title must be a string", line: 2},
		{name: "chapters scalar", text: "chapters: nope\n", reason: "chapters must be a list", line: 1},
		{name: "chapter scalar", text: "chapters:\n- nope\n", reason: "chapter 1 must be a mapping", line: 2},
		{name: "events mapping", text: "chapters:\n- title: C\n  events:\n    a: b\n", reason: "chapter 1 events must be a list", line: 4},
		{name: "tags mapping", text: "chapters:\n- events:\n  - title: E\n    tags: {a: b}\n", reason: "chapter 1 event 1 tags must be a list", line: 4},
		{name: "tag list of lists", text: "chapters:\n- events:\n  - tags: [[a]]\n", reason: "chapter 1 event 1 tags must be strings", line: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Parse(tt.text)
			if res.OK() {
				t.Fatalf("expected error, got %#v", res.Journey)
			}
			_, err := res.Unwrap()
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected *ParseError, got %T", err)
			}
			if tt.reason != "" && perr.Reason != tt.reason {
				t.Fatalf("Reason = %q, want %q", perr.Reason, tt.reason)
			}
			if tt.line > 0 && perr.Line != tt.line {
				t.Fatalf("Line = %d, want %d (%v)", perr.Line, tt.line, perr)
			}
		})
	}
}

func TestResultUnwrapNilError(t *testing.T) {
	res := Parse("title: T\n")
	_, err := res.Unwrap()
	if err != nil {
		t.Fatalf("expected nil error interface, got %v", err)
	}
}

func FuzzRoundTrip(f *testing.F) {
	for _, s := range []string{
		"", " ", "\n", "\n\n", "\r\n", "\r", "\t", " lead", "trail ", "\nlead", "trail\n", "trail\n\n",
		"a\n b", "a \nb", "# hash", "key: value", "- item", "[flow]", "{map}", "'quote'", "\"dq\"",
		"null", "~", "true", "no", "0x1F", "1e3", ".inf", "&anchor", "*alias", "!tag", "|", ">",
		"\xff\xfe bad", "ok \xc3", "\ufeff", "é ✓ 中",
	} {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, s string) {
		j := journey.Journey{
			Title:       s,
			Description: s + "\n" + s,
			Chapters:    []journey.Chapter{{Title: s, Events: []journey.Event{{Title: s, Tags: []string{s}}}}},
		}
		text, err := Serialize(j)
		if err != nil {
			t.Fatalf("Serialize(%q) error: %v", s, err)
		}
		res := Parse(text)
		if !res.OK() {
			t.Fatalf("Parse(Serialize(%q)) error: %v\n%s", s, res.Err, text)
		}
		if !j.Normalize().Equal(res.Journey) {
			t.Fatalf("round trip of %q changed the journey:\n%s\ngot %#v", s, text, res.Journey)
		}
	})
}

func TestParseRejectsBadBinary(t *testing.T) {
	res := Parse("title: !!binary '%%%'\n")
	if res.OK() {
		t.Fatalf("expected an error, got %#v", res.Journey)
	}
	if !strings.Contains(res.Err.Error(), "title is not valid base64") {
		t.Fatalf("unexpected error %v", res.Err)
	}
}
