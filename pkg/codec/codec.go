// Package codec converts journeys to and from the YAML text edited in the
// descriptor pane.
package codec

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"tableflip.dev/journey/pkg/journey"
)

const indent = 2

// ParseError reports editor text that is not valid YAML or does not describe
// a journey. Line and Column are 1-based and zero when unknown.
type ParseError struct {
	Line   int
	Column int
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("codec: line %d, column %d: %s", e.Line, e.Column, e.Reason)
	case e.Line > 0:
		return fmt.Sprintf("codec: line %d: %s", e.Line, e.Reason)
	default:
		return "codec: " + e.Reason
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Result holds either a parsed journey or the reason parsing failed.
type Result struct {
	Journey journey.Journey
	Err     *ParseError
}

// OK reports whether the text parsed into a journey.
func (r Result) OK() bool {
	return r.Err == nil
}

// Unwrap returns the result in the conventional (value, error) form.
func (r Result) Unwrap() (journey.Journey, error) {
	if r.Err != nil {
		return journey.Journey{}, r.Err
	}
	return r.Journey, nil
}

// Serialize renders j as YAML. Output is deterministic and always carries the
// tags key, using an empty list when an event has no tags.
func Serialize(j journey.Journey) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(journeyNode(j.Normalize())); err != nil {
		return "", fmt.Errorf("codec: encode journey: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("codec: encode journey: %w", err)
	}
	return buf.String(), nil
}

func journeyNode(j journey.Journey) *yaml.Node {
	chapters := seqNode()
	for _, c := range j.Chapters {
		events := seqNode()
		for _, e := range c.Events {
			tags := seqNode()
			for _, t := range e.Tags {
				tags.Content = append(tags.Content, strNode(t))
			}
			events.Content = append(events.Content, mapNode("title", strNode(e.Title), "tags", tags))
		}
		chapters.Content = append(chapters.Content, mapNode("title", strNode(c.Title), "events", events))
	}
	return mapNode(
		"title", strNode(j.Title),
		"description", strNode(j.Description),
		"chapters", chapters,
	)
}

func seqNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
}

// mapNode builds a mapping from alternating key names and value nodes.
func mapNode(kv ...interface{}) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i := 0; i+1 < len(kv); i += 2 {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: kv[i].(string)}
		n.Content = append(n.Content, key, kv[i+1].(*yaml.Node))
	}
	return n
}

// strNode encodes s as a string scalar. Invalid UTF-8 is left untagged so the
// encoder writes it as !!binary.
func strNode(s string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode, Value: s}
	if !utf8.ValidString(s) {
		return n
	}
	n.Tag = "!!str"
	if fragileBlock(s) {
		n.Style = yaml.DoubleQuotedStyle
	}
	return n
}

// fragileBlock reports strings that a literal block scalar cannot carry back
// unchanged: carriage returns, leading line breaks, runs of trailing line
// breaks and strings made only of line breaks.
func fragileBlock(s string) bool {
	if !strings.ContainsAny(s, "\r\n") {
		return false
	}
	return strings.Contains(s, "\r") ||
		strings.Trim(s, "\n") == "" ||
		strings.HasPrefix(s, "\n") ||
		strings.HasSuffix(s, "\n\n")
}

// MustSerialize is Serialize for values known to encode, such as the sample.
func MustSerialize(j journey.Journey) string {
	s, err := Serialize(j)
	if err != nil {
		panic(err)
	}
	return s
}

// Parse decodes editor text into a journey. It never panics; malformed YAML
// and documents with the wrong shape are both reported through Result.Err.
func Parse(text string) Result {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return Result{Err: syntaxError(err)}
	}
	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return Result{Err: &ParseError{Reason: "empty document"}}
		}
		root = root.Content[0]
	}
	root = resolve(root)
	if root.Kind == 0 || isNull(root) {
		return Result{Err: &ParseError{Line: root.Line, Reason: "empty document"}}
	}

	j, perr := decodeJourney(root)
	if perr != nil {
		return Result{Err: perr}
	}
	return Result{Journey: j}
}

var lineRE = regexp.MustCompile(`^yaml: line (\d+): (.*)$`)

func syntaxError(err error) *ParseError {
	msg := err.Error()
	if m := lineRE.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return &ParseError{Line: line, Reason: m[2], Err: err}
	}
	return &ParseError{Reason: strings.TrimPrefix(msg, "yaml: "), Err: err}
}

func shapeError(n *yaml.Node, format string, args ...interface{}) *ParseError {
	return &ParseError{Line: n.Line, Column: n.Column, Reason: fmt.Sprintf(format, args...)}
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

// fields walks a mapping node and calls fn with each key and resolved value.
func fields(n *yaml.Node, fn func(key string, value *yaml.Node) *ParseError) *ParseError {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if err := fn(n.Content[i].Value, resolve(n.Content[i+1])); err != nil {
			return err
		}
	}
	return nil
}

// text reads a string-valued field. Any scalar is accepted as its literal
// text; null means absent.
func text(n *yaml.Node, field string) (string, *ParseError) {
	if isNull(n) {
		return "", nil
	}
	if n.Kind != yaml.ScalarNode {
		return "", shapeError(n, "%s must be a string", field)
	}
	return scalar(n, field)
}

// scalar returns the text of a scalar node, decoding !!binary values back to
// the raw bytes they carry.
func scalar(n *yaml.Node, field string) (string, *ParseError) {
	if n.Tag != "!!binary" {
		return n.Value, nil
	}
	b, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(n.Value), ""))
	if err != nil {
		return "", &ParseError{Line: n.Line, Column: n.Column, Reason: field + " is not valid base64", Err: err}
	}
	return string(b), nil
}

// sequence checks that n is a list, treating null as an empty list.
func sequence(n *yaml.Node, field string) ([]*yaml.Node, *ParseError) {
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, shapeError(n, "%s must be a list", field)
	}
	out := make([]*yaml.Node, len(n.Content))
	for i, c := range n.Content {
		out[i] = resolve(c)
	}
	return out, nil
}

func decodeJourney(n *yaml.Node) (journey.Journey, *ParseError) {
	j := journey.Journey{Chapters: []journey.Chapter{}}
	if n.Kind != yaml.MappingNode {
		return j, shapeError(n, "journey must be a mapping")
	}
	err := fields(n, func(key string, v *yaml.Node) *ParseError {
		var perr *ParseError
		switch key {
		case "title":
			j.Title, perr = text(v, "title")
		case "description":
			j.Description, perr = text(v, "description")
		case "chapters":
			var items []*yaml.Node
			if items, perr = sequence(v, "chapters"); perr != nil {
				return perr
			}
			j.Chapters = make([]journey.Chapter, 0, len(items))
			for i, item := range items {
				c, cerr := decodeChapter(item, i+1)
				if cerr != nil {
					return cerr
				}
				j.Chapters = append(j.Chapters, c)
			}
		}
		return perr
	})
	return j, err
}

func decodeChapter(n *yaml.Node, pos int) (journey.Chapter, *ParseError) {
	c := journey.Chapter{Events: []journey.Event{}}
	if n.Kind != yaml.MappingNode {
		return c, shapeError(n, "chapter %d must be a mapping", pos)
	}
	err := fields(n, func(key string, v *yaml.Node) *ParseError {
		var perr *ParseError
		switch key {
		case "title":
			c.Title, perr = text(v, fmt.Sprintf("chapter %d title", pos))
		case "events":
			var items []*yaml.Node
			if items, perr = sequence(v, fmt.Sprintf("chapter %d events", pos)); perr != nil {
				return perr
			}
			c.Events = make([]journey.Event, 0, len(items))
			for i, item := range items {
				e, eerr := decodeEvent(item, pos, i+1)
				if eerr != nil {
					return eerr
				}
				c.Events = append(c.Events, e)
			}
		}
		return perr
	})
	return c, err
}

func decodeEvent(n *yaml.Node, chapter, pos int) (journey.Event, *ParseError) {
	e := journey.Event{Tags: []string{}}
	if n.Kind != yaml.MappingNode {
		return e, shapeError(n, "chapter %d event %d must be a mapping", chapter, pos)
	}
	err := fields(n, func(key string, v *yaml.Node) *ParseError {
		var perr *ParseError
		switch key {
		case "title":
			e.Title, perr = text(v, fmt.Sprintf("chapter %d event %d title", chapter, pos))
		case "tags":
			var items []*yaml.Node
			if items, perr = sequence(v, fmt.Sprintf("chapter %d event %d tags", chapter, pos)); perr != nil {
				return perr
			}
			for _, item := range items {
				if item.Kind != yaml.ScalarNode || isNull(item) {
					return shapeError(item, "chapter %d event %d tags must be strings", chapter, pos)
				}
				tag, terr := scalar(item, fmt.Sprintf("chapter %d event %d tag", chapter, pos))
				if terr != nil {
					return terr
				}
				e.Tags = append(e.Tags, tag)
			}
		}
		return perr
	})
	return e, err
}
