// Package exchange implements the versioned JSON envelope used to export and
// import the whole editor state.
package exchange

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"tableflip.dev/journey/pkg/journey"
)

const (
	// Version is the envelope schema written by Export.
	Version = "0.1"

	// TimestampLayout is the ISO-8601 UTC form used for UpdatedAt. It sorts
	// lexicographically in time order.
	TimestampLayout = "2006-01-02T15:04:05.000Z"

	filenameLayout = "2006-01-02_at_15.04.05"
	// Extension is the file extension of exported envelopes.
	Extension = ".json"
	prefix    = "journey_"
)

// Envelope is the on-disk exchange format.
type Envelope struct {
	Version   string           `json:"version" validate:"omitempty,eq=0.1"`
	UpdatedAt string           `json:"updatedAt"`
	Journey   *journey.Journey `json:"journey" validate:"required"`
	Notes     *string          `json:"notes" validate:"required"`
}

// State is the decoded content of an envelope.
type State struct {
	Journey   journey.Journey
	Notes     string
	UpdatedAt time.Time
}

// ImportError reports an exchange file that could not be applied. Nothing in
// an envelope that fails to import is usable.
type ImportError struct {
	Reason string
	Err    error
}

func (e *ImportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("exchange: %s: %v", e.Reason, e.Err)
	}
	return "exchange: " + e.Reason
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

var validate = validator.New()

// ErrInvalidUTF8 is returned by Export when a field is not valid UTF-8. JSON
// would replace those bytes, so the file could not be imported unchanged.
var ErrInvalidUTF8 = errors.New("text is not valid UTF-8")

// Export serializes the journey and notes into an envelope stamped with now.
// Every string must be valid UTF-8.
func Export(j journey.Journey, notes string, now time.Time) ([]byte, error) {
	if field := invalidText(j, notes); field != "" {
		return nil, fmt.Errorf("exchange: %s: %w", field, ErrInvalidUTF8)
	}
	normalized := j.Normalize()
	env := Envelope{
		Version:   Version,
		UpdatedAt: Timestamp(now),
		Journey:   &normalized,
		Notes:     &notes,
	}
	b, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("exchange: encode envelope: %w", err)
	}
	return append(b, '\n'), nil
}

// invalidText names the first field that is not valid UTF-8, or returns "".
func invalidText(j journey.Journey, notes string) string {
	switch {
	case !utf8.ValidString(j.Title):
		return "journey title"
	case !utf8.ValidString(j.Description):
		return "journey description"
	case !utf8.ValidString(notes):
		return "notes"
	}
	for ci, c := range j.Chapters {
		if !utf8.ValidString(c.Title) {
			return fmt.Sprintf("chapter %d title", ci+1)
		}
		for ei, e := range c.Events {
			if !utf8.ValidString(e.Title) {
				return fmt.Sprintf("chapter %d event %d title", ci+1, ei+1)
			}
			for _, tag := range e.Tags {
				if !utf8.ValidString(tag) {
					return fmt.Sprintf("chapter %d event %d tags", ci+1, ei+1)
				}
			}
		}
	}
	return ""
}

// Import decodes an envelope. Either both journey and notes are returned or
// an *ImportError is.
func Import(data []byte) (State, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return State{}, &ImportError{Reason: "empty file"}
	}

	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return State{}, &ImportError{Reason: "malformed envelope", Err: err}
	}
	if err := validate.Struct(env); err != nil {
		return State{}, &ImportError{Reason: describe(err), Err: err}
	}

	state := State{
		Journey: env.Journey.Normalize(),
		Notes:   *env.Notes,
	}
	if env.UpdatedAt != "" {
		if t, err := ParseTimestamp(env.UpdatedAt); err == nil {
			state.UpdatedAt = t
		}
	}
	return state, nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid envelope"
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "eq":
			msgs = append(msgs, fmt.Sprintf("unsupported %s %q", field, fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}
	return strings.Join(msgs, "; ")
}

// Timestamp formats t as the envelope's UpdatedAt value.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp accepts UpdatedAt values written by Export and any RFC 3339
// timestamp.
func ParseTimestamp(v string) (time.Time, error) {
	if t, err := time.Parse(TimestampLayout, v); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, v)
}

// Filename returns the export file name for t in local time, for example
// journey_2024-03-07_at_09.05.01.json. Months are numbered 1 to 12.
func Filename(t time.Time) string {
	return prefix + t.Local().Format(filenameLayout) + Extension
}

// IsExportName reports whether name looks like a file produced by Filename.
func IsExportName(name string) bool {
	if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, Extension) {
		return false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, prefix), Extension)
	_, err := time.ParseInLocation(filenameLayout, stamp, time.Local)
	return err == nil
}
