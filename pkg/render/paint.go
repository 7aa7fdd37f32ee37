package render

import (
	"hash/fnv"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"
)

const (
	defaultWidth   = 120
	minColumnWidth = 18
	columnGap      = 1
)

// Option customises Paint.
type Option func(*paintOptions)

type paintOptions struct {
	width   int
	profile termenv.Profile
	header  bool
}

// WithWidth sets the total width available to the map.
func WithWidth(w int) Option {
	return func(o *paintOptions) {
		if w > 0 {
			o.width = w
		}
	}
}

// WithProfile sets the colour profile; termenv.Ascii strips all styling.
func WithProfile(p termenv.Profile) Option {
	return func(o *paintOptions) {
		o.profile = p
	}
}

// WithoutHeader omits the title and description block.
func WithoutHeader() Option {
	return func(o *paintOptions) {
		o.header = false
	}
}

type styles struct {
	title       lipgloss.Style
	description lipgloss.Style
	column      lipgloss.Style
	heading     lipgloss.Style
	card        lipgloss.Style
	position    lipgloss.Style
	chip        lipgloss.Style
	empty       lipgloss.Style
	r           *lipgloss.Renderer
}

func newStyles(p termenv.Profile) styles {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(p)
	return styles{
		r:           r,
		title:       r.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Padding(0, 1),
		description: r.NewStyle().Faint(true),
		column:      r.NewStyle().MarginRight(columnGap),
		heading:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Background(lipgloss.Color("60")).Padding(0, 1),
		card:        r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("245")).Padding(0, 1),
		position:    r.NewStyle().Foreground(lipgloss.Color("189")).Faint(true),
		chip:        r.NewStyle().Foreground(lipgloss.Color("255")).Padding(0, 1),
		empty:       r.NewStyle().Faint(true).Italic(true),
	}
}

// Paint lays the tree out for a terminal.
func Paint(t Tree, opts ...Option) string {
	o := &paintOptions{width: defaultWidth, profile: termenv.ANSI256, header: true}
	for _, opt := range opts {
		opt(o)
	}
	st := newStyles(o.profile)

	var blocks []string
	if o.header {
		blocks = append(blocks, paintHeader(t, o.width, st))
	}
	if t.Empty() {
		blocks = append(blocks, st.empty.Render("no chapters"))
		return lipgloss.JoinVertical(lipgloss.Left, blocks...)
	}

	colWidth := columnWidth(o.width, len(t.Columns))
	cols := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		cols[i] = paintColumn(col, colWidth, st)
	}
	blocks = append(blocks, lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func columnWidth(total, n int) int {
	if n == 0 {
		return total
	}
	w := total/n - columnGap
	if w < minColumnWidth {
		w = minColumnWidth
	}
	return w
}

func paintHeader(t Tree, width int, st styles) string {
	lines := []string{st.title.Render(truncate.StringWithTail(t.Title, uint(max(width-2, 1)), "…"))}
	if t.Description != "" {
		lines = append(lines, st.description.Render(wordwrap.String(t.Description, width)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}

func paintColumn(col Column, width int, st styles) string {
	heading := st.heading.Width(width).Render(truncate.StringWithTail(col.Title, uint(max(width-2, 1)), "…"))
	parts := []string{heading}
	// border (2) + padding (2)
	inner := width - 4
	for _, c := range col.Cards {
		parts = append(parts, st.card.Width(width-2).Render(paintCard(c, inner, st)))
	}
	if len(col.Cards) == 0 {
		parts = append(parts, st.empty.Render("no events"))
	}
	return st.column.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func paintCard(c Card, width int, st styles) string {
	title := wordwrap.String(c.Title, width)
	chips := make([]string, len(c.Chips))
	for i, chip := range c.Chips {
		chips[i] = st.chip.Background(lipgloss.Color(ChipColor(chip.Label))).Render(chip.Label)
	}
	chipRow := strings.Join(chips, " ")
	pos := st.position.Render(c.Position)
	gap := width - lipgloss.Width(chipRow) - lipgloss.Width(pos)
	if gap < 1 {
		return lipgloss.JoinVertical(lipgloss.Left, title, chipRow, pos)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, chipRow+strings.Repeat(" ", gap)+pos)
}

// ChipColor returns a stable hex colour for a tag label so the same actor
// always gets the same chip colour.
func ChipColor(label string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(label))
	hue := float64(h.Sum32()%360)
	return colorful.Hsv(hue, 0.55, 0.6).Hex()
}
