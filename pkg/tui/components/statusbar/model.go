package statusbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/journey/pkg/tui/theme"
)

// Model tracks footer help and status rendering state.
type Model struct {
	theme  theme.FooterTheme
	focus  string
	help   string
	status string
	err    string
}

// New returns a footer using the provided styles.
func New(th theme.FooterTheme) Model {
	return Model{theme: th}
}

// SetFocus names the pane that currently receives keys.
func (m *Model) SetFocus(name string) {
	m.focus = name
}

// SetHelp sets the contextual help line.
func (m *Model) SetHelp(help string) {
	m.help = help
}

// SetStatus sets the status message and clears any error.
func (m *Model) SetStatus(status string) {
	m.status = status
	m.err = ""
}

// SetError shows err in place of the status message. A nil error clears it.
func (m *Model) SetError(err error) {
	if err == nil {
		m.err = ""
		return
	}
	m.err = err.Error()
}

// Status returns the current status message.
func (m Model) Status() string { return m.status }

// Error returns the current error text, if any.
func (m Model) Error() string { return m.err }

// View renders the footer as a single line no wider than width.
func (m Model) View(width int) string {
	var segments []string
	if m.focus != "" {
		segments = append(segments, m.theme.Focus.Render("["+m.focus+"]"))
	}
	switch {
	case m.err != "":
		segments = append(segments, m.theme.Error.Render(m.err))
	case m.status != "":
		segments = append(segments, m.theme.Status.Render(m.status))
	}
	if m.help != "" {
		segments = append(segments, m.theme.Help.Render(m.help))
	}
	if len(segments) == 0 {
		return " "
	}
	line := strings.Join(segments, "  ")
	if width > 0 && lipgloss.Width(line) > width {
		line = truncate.StringWithTail(line, uint(width), "…")
	}
	return line
}
