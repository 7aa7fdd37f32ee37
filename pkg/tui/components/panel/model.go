// Package panel frames the editor, map and notes panes.
package panel

import (
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/journey/pkg/tui/theme"
)

// Model renders a titled, bordered pane whose border highlights on focus.
type Model struct {
	title        string
	invalid      bool
	frameStyle   lipgloss.Style
	focusedStyle lipgloss.Style
	titleStyle   lipgloss.Style
	invalidStyle lipgloss.Style
}

// New returns a panel model using the pane styles from th.
func New(th theme.PaneTheme, title string) Model {
	return Model{
		title:        title,
		frameStyle:   th.Frame,
		focusedStyle: th.FocusedFrame,
		titleStyle:   th.Title,
		invalidStyle: th.InvalidTitle,
	}
}

// SetTitle updates the pane title. invalid switches to the warning style.
func (m *Model) SetTitle(title string, invalid bool) {
	m.title = title
	m.invalid = invalid
}

// Title returns the current title.
func (m Model) Title() string { return m.title }

// Inner returns the body size available inside a pane of the given outer
// size: the border takes two columns and rows, the title one row.
func Inner(width, height int) (int, int) {
	return max(width-2, 1), max(height-3, 1)
}

// View frames body at exactly width x height cells.
func (m Model) View(body string, width, height int, focused bool) string {
	frame := m.frameStyle
	if focused {
		frame = m.focusedStyle
	}
	title := m.titleStyle.Render(m.title)
	if m.invalid {
		title = m.invalidStyle.Render(m.title)
	}
	return frame.
		Width(max(width-2, 1)).
		Height(max(height-2, 1)).
		MaxHeight(height).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, body))
}
