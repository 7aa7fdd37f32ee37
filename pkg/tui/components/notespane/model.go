// Package notespane hosts the free-form notes editor and its markdown preview.
package notespane

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/journey/pkg/notes"
)

// Model edits notes in a textarea and can switch to a glamour preview.
type Model struct {
	editor     textarea.Model
	preview    viewport.Model
	previewing bool
	style      string
	width      int
	height     int
	err        error
}

// New constructs a notes pane. style is a glamour standard style name.
func New(style string) Model {
	ta := textarea.New()
	ta.Placeholder = "Notes (markdown)"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.Prompt = ""
	return Model{
		editor:  ta,
		preview: viewport.New(1, 1),
		style:   style,
	}
}

// SetSize sizes both the editor and the preview.
func (m *Model) SetSize(width, height int) {
	m.width = max(width, 1)
	m.height = max(height, 1)
	m.editor.SetWidth(m.width)
	m.editor.SetHeight(m.height)
	m.preview.Width = m.width
	m.preview.Height = m.height
	if m.previewing {
		m.renderPreview()
	}
}

// Value returns the notes text.
func (m Model) Value() string { return m.editor.Value() }

// SetValue replaces the notes text without emitting an edit.
func (m *Model) SetValue(text string) {
	m.editor.SetValue(text)
	if m.previewing {
		m.renderPreview()
	}
}

// Focus gives the editor keyboard focus.
func (m *Model) Focus() tea.Cmd { return m.editor.Focus() }

// Blur removes keyboard focus.
func (m *Model) Blur() { m.editor.Blur() }

// Previewing reports whether the preview is shown instead of the editor.
func (m Model) Previewing() bool { return m.previewing }

// PreviewErr returns the error from the last preview render.
func (m Model) PreviewErr() error { return m.err }

// TogglePreview switches between editing and the rendered preview.
func (m *Model) TogglePreview() {
	m.previewing = !m.previewing
	if m.previewing {
		m.renderPreview()
	}
}

func (m *Model) renderPreview() {
	out, err := notes.Preview(m.editor.Value(), m.width, m.style)
	m.err = err
	if err != nil {
		m.preview.SetContent("preview unavailable: " + err.Error())
		return
	}
	m.preview.SetContent(strings.TrimRight(out, "\n"))
	m.preview.GotoTop()
}

// Update routes keys to the preview viewport or to the editor.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.previewing {
		m.preview, cmd = m.preview.Update(msg)
		return m, cmd
	}
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// View renders the active half of the pane.
func (m Model) View() string {
	if m.previewing {
		return m.preview.View()
	}
	return m.editor.View()
}
