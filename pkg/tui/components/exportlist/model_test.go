package exportlist

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/journey/pkg/store"
	"tableflip.dev/journey/pkg/tui/theme"
)

func items() []store.Item {
	now := time.Date(2024, time.March, 7, 12, 0, 0, 0, time.UTC)
	return []store.Item{
		{Name: "journey_2024-03-07_at_11.58.00.json", ModTime: now.Add(-2 * time.Minute)},
		{Name: "journey_2024-03-01_at_08.00.00.json", ModTime: now.Add(-6 * 24 * time.Hour)},
	}
}

func open(t *testing.T) Model {
	t.Helper()
	m := New(theme.Default().Prompt)
	m.now = func() time.Time { return time.Date(2024, time.March, 7, 12, 0, 0, 0, time.UTC) }
	m.SetItems(items())
	m.Open()
	return m
}

func TestEnterPicksHighlightedExport(t *testing.T) {
	m := open(t)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected submit command")
	}
	msg, ok := cmd().(SubmitMsg)
	if !ok {
		t.Fatalf("expected SubmitMsg")
	}
	if msg.Name != "journey_2024-03-01_at_08.00.00.json" {
		t.Fatalf("Name = %q", msg.Name)
	}
	if m.Active() {
		t.Fatalf("prompt should close after submit")
	}
}

func TestTypedPathWins(t *testing.T) {
	m := open(t)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(" /tmp/shared.json ")})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg := cmd().(SubmitMsg)
	if msg.Name != "/tmp/shared.json" {
		t.Fatalf("Name = %q", msg.Name)
	}
}

func TestEscCancels(t *testing.T) {
	m := open(t)
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := cmd().(CancelMsg); !ok {
		t.Fatalf("expected CancelMsg")
	}
	if m.Active() || m.View() != "" {
		t.Fatalf("prompt should be closed")
	}
}

func TestEnterWithoutExportsDoesNothing(t *testing.T) {
	m := New(theme.Default().Prompt)
	m.Open()
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil || !m.Active() {
		t.Fatalf("expected prompt to stay open without a command")
	}
	if !strings.Contains(m.View(), "no exports yet") {
		t.Fatalf("expected empty placeholder")
	}
}

func TestViewShowsAges(t *testing.T) {
	view := open(t).View()
	for _, want := range []string{"import:", "2m ago", "2024-03-01"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}
