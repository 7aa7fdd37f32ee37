package exportlist

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/journey/pkg/store"
	"tableflip.dev/journey/pkg/timeutil"
	"tableflip.dev/journey/pkg/tui/theme"
)

// SubmitMsg is emitted when the user picks a file to import.
type SubmitMsg struct {
	Name string
}

// CancelMsg is emitted when the prompt is dismissed.
type CancelMsg struct{}

// Model is the import prompt: a path input above the most recent exports.
type Model struct {
	theme    theme.PromptTheme
	input    textinput.Model
	items    []store.Item
	selected int
	limit    int
	active   bool
	now      func() time.Time
}

// New returns an inactive prompt.
func New(th theme.PromptTheme) Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "export name or path (enter picks the highlighted export)"
	ti.CharLimit = 1024
	return Model{theme: th, input: ti, limit: 8, now: time.Now}
}

// Open activates the prompt with a fresh input.
func (m *Model) Open() tea.Cmd {
	m.active = true
	m.selected = 0
	m.input.Reset()
	return m.input.Focus()
}

// Close deactivates the prompt.
func (m *Model) Close() {
	m.active = false
	m.input.Blur()
}

// Active reports whether the prompt is open.
func (m Model) Active() bool { return m.active }

// SetItems replaces the listed exports, newest first.
func (m *Model) SetItems(items []store.Item) {
	m.items = items
	if m.selected >= len(m.visible()) {
		m.selected = max(len(m.visible())-1, 0)
	}
}

// Items returns the listed exports.
func (m Model) Items() []store.Item { return m.items }

// SetWidth sizes the path input.
func (m *Model) SetWidth(w int) {
	m.input.Width = max(w-4, 10)
}

func (m Model) visible() []store.Item {
	if len(m.items) > m.limit {
		return m.items[:m.limit]
	}
	return m.items
}

// Update handles keys while the prompt is active.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.active {
		return m, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.Close()
			return m, func() tea.Msg { return CancelMsg{} }
		case "up":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down":
			if m.selected < len(m.visible())-1 {
				m.selected++
			}
			return m, nil
		case "enter":
			name := strings.TrimSpace(m.input.Value())
			if name == "" {
				vis := m.visible()
				if len(vis) == 0 {
					return m, nil
				}
				name = vis[m.selected].Name
			}
			m.Close()
			return m, func() tea.Msg { return SubmitMsg{Name: name} }
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the prompt. It returns "" when inactive.
func (m Model) View() string {
	if !m.active {
		return ""
	}
	lines := []string{m.theme.Label.Render("import: ") + m.input.View()}
	vis := m.visible()
	if len(vis) == 0 {
		lines = append(lines, m.theme.Meta.Render("no exports yet"))
	}
	for i, it := range vis {
		style := m.theme.Item
		if i == m.selected {
			style = m.theme.Selected
		}
		lines = append(lines, style.Render(it.Name)+"  "+m.theme.Meta.Render(timeutil.Ago(m.now(), it.ModTime)))
	}
	return m.theme.Frame.Render(strings.Join(lines, "\n"))
}
