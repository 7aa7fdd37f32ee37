package printers

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/journey/pkg/journey"
	"tableflip.dev/journey/pkg/store"
	"tableflip.dev/journey/pkg/timeutil"
)

// PrettyPrint writes human-oriented summaries for the CLI.
type PrettyPrint struct {
	Out io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

// TitleWithCount prints a title followed by a faint count of noun.
func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d %s", count, noun)
	if count != 1 {
		_, _ = c.Fprint(pp.out(), "s")
	}
	_, _ = fmt.Fprintln(pp.out(), "")
}

// Fields prints aligned key/value rows.
func (pp *PrettyPrint) Fields(rows ...[2]string) {
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, r := range rows {
		tbl.AddRow(bold.Sprint(r[0]), r[1])
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Journey prints an outline of j: chapters, their event counts and the tags
// used across the journey.
func (pp *PrettyPrint) Journey(j journey.Journey) {
	pp.TitleWithCount(j.Title, j.EventCount(), "event")
	if j.Description != "" {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprintln(pp.out(), j.Description)
	}
	if len(j.Chapters) == 0 {
		pp.none()
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	y := color.New(color.FgHiYellow, color.Faint)
	for i, c := range j.Chapters {
		tbl.AddRow(y.Sprintf("%d", i+1), c.Title, fmt.Sprintf("%d", len(c.Events)))
	}
	tbl.RightAlign(0)
	tbl.RightAlign(2)
	_, _ = fmt.Fprintln(pp.out(), tbl)

	if tags := j.Tags(); len(tags) > 0 {
		c := color.New(color.FgCyan)
		_, _ = fmt.Fprintf(pp.out(), "tags: %s\n", c.Sprint(strings.Join(tags, ", ")))
	}
}

// Exports prints the exports library listing, newest first.
func (pp *PrettyPrint) Exports(items []store.Item, now time.Time) {
	pp.TitleWithCount("Exports", len(items), "file")
	if len(items) == 0 {
		pp.none()
		return
	}
	faint := color.New(color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, it := range items {
		tbl.AddRow(it.Name, faint.Sprint(humanSize(it.Size)), faint.Sprint(timeutil.Ago(now, it.ModTime)))
	}
	tbl.RightAlign(1)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

func humanSize(n int64) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KiB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1024*1024))
	}
}
