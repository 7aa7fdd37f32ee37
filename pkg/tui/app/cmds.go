package teaui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/journey/pkg/app"
	"tableflip.dev/journey/pkg/document"
	"tableflip.dev/journey/pkg/store"
)

// messages
type changeMsg struct{ change document.Change }
type changesClosedMsg struct{}
type notesLoadedMsg struct{ err error }
type exportedMsg struct {
	name string
	err  error
}
type exportsLoadedMsg struct {
	items []store.Item
	err   error
}
type importReadMsg struct {
	ticket app.Ticket
	name   string
	data   []byte
	err    error
}

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event store.Event
}

type watchStoppedMsg struct{}

func (m *Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		if c, ok := <-ch; ok {
			return changeMsg{change: c}
		}
		return changesClosedMsg{}
	}
}

func (m *Model) loadNotesCmd() tea.Cmd {
	if m.shell == nil || m.shell.NotesSource == "" {
		return nil
	}
	shell, ctx := m.shell, m.ctx
	return func() tea.Msg {
		return notesLoadedMsg{err: shell.LoadNotes(ctx)}
	}
}

func (m *Model) exportCmd() tea.Cmd {
	shell, ctx := m.shell, m.ctx
	return func() tea.Msg {
		if shell == nil {
			return exportedMsg{err: errNoShell}
		}
		name, err := shell.Export(ctx)
		return exportedMsg{name: name, err: err}
	}
}

func (m *Model) loadExportsCmd() tea.Cmd {
	if m.shell == nil || m.shell.Library == nil {
		return nil
	}
	shell, ctx := m.shell, m.ctx
	return func() tea.Msg {
		items, err := shell.Exports(ctx)
		return exportsLoadedMsg{items: items, err: err}
	}
}

// importCmd issues a ticket now and reads the file off the event loop, so a
// slow read finishing after a newer request is discarded.
func (m *Model) importCmd(name string) tea.Cmd {
	if m.shell == nil {
		return nil
	}
	m.bottom.SetStatus("importing " + name + "…")
	shell := m.shell
	ticket := shell.BeginImport()
	return func() tea.Msg {
		data, err := shell.ReadImport(name)
		return importReadMsg{ticket: ticket, name: name, data: data, err: err}
	}
}

func startWatchCmd(parent context.Context, shell *app.Shell) tea.Cmd {
	if shell == nil || shell.Library == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := shell.Library.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}
