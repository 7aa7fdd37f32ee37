// Package teaui hosts the Bubble Tea program for the journey TUI.
package teaui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/termenv"
	"go.uber.org/zap"

	"tableflip.dev/journey/pkg/app"
	"tableflip.dev/journey/pkg/document"
	"tableflip.dev/journey/pkg/render"
	"tableflip.dev/journey/pkg/store"
	"tableflip.dev/journey/pkg/tui/components/exportlist"
	"tableflip.dev/journey/pkg/tui/components/help"
	"tableflip.dev/journey/pkg/tui/components/notespane"
	"tableflip.dev/journey/pkg/tui/components/panel"
	"tableflip.dev/journey/pkg/tui/components/statusbar"
	"tableflip.dev/journey/pkg/tui/theme"
)

type pane int

const (
	paneEditor pane = iota
	paneMap
	paneNotes
	paneCount
)

func (p pane) String() string {
	switch p {
	case paneEditor:
		return "editor"
	case paneMap:
		return "map"
	default:
		return "notes"
	}
}

const helpLine = "tab focus · ctrl+s export · ctrl+o import · ctrl+p preview · f1 help · ctrl+c quit"

var errNoShell = errors.New("no shell configured")

// Option customizes a Model.
type Option func(*Model)

// WithProfile sets the colour profile used to paint the journey map.
func WithProfile(p termenv.Profile) Option {
	return func(m *Model) { m.profile = p }
}

// WithNotesStyle sets the glamour style for the notes preview.
func WithNotesStyle(style string) Option {
	return func(m *Model) { m.notesStyle = style }
}

// WithLogger sets the logger for UI diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.log = l
		}
	}
}

// Model contains UI state
type Model struct {
	shell  *app.Shell
	ctx    context.Context
	cancel context.CancelFunc
	log    *zap.Logger

	theme      theme.Theme
	profile    termenv.Profile
	notesStyle string

	draft   *document.Draft
	editor  textarea.Model
	mapView viewport.Model
	notes   notespane.Model
	prompt  exportlist.Model
	bottom  statusbar.Model
	help    *help.Model
	panes   [paneCount]panel.Model

	showHelp bool

	focus      pane
	termWidth  int
	termHeight int
	mapWidth   int

	changes     <-chan document.Change
	unsubscribe func()
	watchCh     <-chan store.Event
	watchCancel context.CancelFunc
}

// New creates a new UI model backed by the Shell. Background work started by
// the model stops when ctx is done or the model shuts down.
func New(ctx context.Context, shell *app.Shell, opts ...Option) *Model {
	ctx, cancel := context.WithCancel(ctx)
	th := theme.Default()
	m := &Model{
		shell:      shell,
		ctx:        ctx,
		cancel:     cancel,
		log:        zap.NewNop(),
		theme:      th,
		profile:    termenv.ANSI256,
		notesStyle: "dark",
		termWidth:  120,
		termHeight: 40,
		bottom:     statusbar.New(th.Footer),
		prompt:     exportlist.New(th.Prompt),
		panes: [paneCount]panel.Model{
			panel.New(th.Pane, "journey.yaml"),
			panel.New(th.Pane, "map"),
			panel.New(th.Pane, "notes"),
		},
	}
	for _, opt := range opts {
		opt(m)
	}

	ed := textarea.New()
	ed.ShowLineNumbers = true
	ed.CharLimit = 0
	ed.MaxHeight = 0
	ed.Placeholder = "title: My journey"
	m.editor = ed
	m.mapView = viewport.New(1, 1)
	m.notes = notespane.New(m.notesStyle)
	m.help = help.New(m.termWidth, m.termHeight-2, m.notesStyle)

	if shell != nil && shell.Store != nil {
		m.draft = document.NewDraft(shell.Store.Journey())
		m.editor.SetValue(m.draft.Text())
		m.editor.CursorStart()
		m.notes.SetValue(shell.Store.Notes())
		m.changes, m.unsubscribe = shell.Store.Subscribe()
	}

	m.bottom.SetHelp(helpLine)
	m.setFocus(paneEditor)
	m.editor.Focus()
	m.applySizes()
	return m
}

// Init starts the store subscription, the notes bootstrap and the exports
// watch.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.waitForChange(),
		m.loadNotesCmd(),
		m.loadExportsCmd(),
		startWatchCmd(m.ctx, m.shell),
	)
}

// Run launches the interactive TUI program. Cancelling ctx ends it.
func Run(ctx context.Context, shell *app.Shell, opts ...Option) error {
	m := New(ctx, shell, opts...)
	defer m.shutdown()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m *Model) shutdown() {
	m.stopWatch()
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	m.cancel()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth, m.termHeight = msg.Width, msg.Height
		m.applySizes()
		return m, nil
	case changeMsg:
		m.applyChange(msg.change)
		cmds = append(cmds, m.waitForChange())
	case changesClosedMsg:
		m.changes = nil
	case notesLoadedMsg:
		if msg.err != nil {
			m.bottom.SetError(fmt.Errorf("notes: %w", msg.err))
		}
	case exportedMsg:
		if msg.err != nil {
			m.bottom.SetError(fmt.Errorf("export failed: %w", msg.err))
			break
		}
		m.bottom.SetStatus("exported " + msg.name)
		cmds = append(cmds, m.loadExportsCmd())
	case importReadMsg:
		m.completeImport(msg)
	case exportsLoadedMsg:
		if msg.err == nil {
			m.prompt.SetItems(msg.items)
		}
	case exportlist.SubmitMsg:
		m.applySizes()
		cmds = append(cmds, m.importCmd(msg.Name), m.focusCmd())
	case exportlist.CancelMsg:
		m.applySizes()
		m.bottom.SetStatus("import cancelled")
		cmds = append(cmds, m.focusCmd())
	case watchStartedMsg:
		if msg.err != nil {
			m.log.Warn("exports watch unavailable", zap.Error(msg.err))
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchEventMsg:
		cmds = append(cmds, m.loadExportsCmd())
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchStoppedMsg:
		m.stopWatch()
	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
		cmds = append(cmds, m.routeKey(msg))
	default:
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		m.shutdown()
		return tea.Quit, true
	}
	if m.prompt.Active() {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return cmd, true
	}
	if m.showHelp {
		switch msg.String() {
		case "f1", "esc", "q":
			m.showHelp = false
			return m.focusCmd(), true
		}
		return m.help.Update(msg), true
	}
	switch msg.String() {
	case "f1":
		m.showHelp = true
		m.editor.Blur()
		m.notes.Blur()
		return nil, true
	case "tab":
		m.setFocus((m.focus + 1) % paneCount)
		return m.focusCmd(), true
	case "shift+tab":
		m.setFocus((m.focus + paneCount - 1) % paneCount)
		return m.focusCmd(), true
	case "ctrl+s":
		m.bottom.SetStatus("exporting…")
		return m.exportCmd(), true
	case "ctrl+o":
		m.editor.Blur()
		m.notes.Blur()
		cmd := m.prompt.Open()
		m.applySizes()
		return tea.Batch(cmd, m.loadExportsCmd()), true
	case "ctrl+p":
		m.notes.TogglePreview()
		if err := m.notes.PreviewErr(); err != nil {
			m.bottom.SetError(err)
		}
		return nil, true
	}
	return nil, false
}

func (m *Model) routeKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case paneEditor:
		m.editor, cmd = m.editor.Update(msg)
		m.commitEditor()
	case paneNotes:
		m.notes, cmd = m.notes.Update(msg)
		m.commitNotes()
	case paneMap:
		m.mapView, cmd = m.mapView.Update(msg)
	}
	return cmd
}

// commitEditor pushes the editor text through the draft. Invalid text stays
// in the editor while the map keeps showing the last committed journey.
func (m *Model) commitEditor() {
	if m.draft == nil || m.shell == nil || m.shell.Store == nil {
		return
	}
	text := m.editor.Value()
	if text == m.draft.Text() {
		return
	}
	if err := m.draft.Edit(text, m.shell.Store); err != nil {
		m.bottom.SetError(err)
		return
	}
	m.bottom.SetError(nil)
	m.refreshMap()
}

func (m *Model) commitNotes() {
	if m.shell == nil || m.shell.Store == nil {
		return
	}
	text := m.notes.Value()
	if text == m.shell.Store.Notes() {
		return
	}
	m.shell.Store.SetNotes(text, document.SourceNotes)
}

func (m *Model) applyChange(c document.Change) {
	if m.shell == nil || m.shell.Store == nil {
		return
	}
	if c.Kind.Has(document.JourneyChanged) {
		if c.Source != document.SourceEditor && m.draft != nil {
			m.draft.Reset(m.shell.Store.Journey())
			m.editor.SetValue(m.draft.Text())
			m.editor.CursorStart()
		}
		m.refreshMap()
	}
	if c.Kind.Has(document.NotesChanged) && c.Source != document.SourceNotes {
		if text := m.shell.Store.Notes(); text != m.notes.Value() {
			m.notes.SetValue(text)
		}
	}
}

func (m *Model) completeImport(msg importReadMsg) {
	err := m.shell.CompleteImport(msg.ticket, msg.name, msg.data, msg.err)
	switch {
	case errors.Is(err, app.ErrStaleImport):
	case err != nil:
		m.bottom.SetError(fmt.Errorf("import failed: %w", err))
	default:
		m.bottom.SetStatus("imported " + m.shell.Source())
	}
}

func (m *Model) setFocus(p pane) {
	m.focus = p
	m.editor.Blur()
	m.notes.Blur()
	m.bottom.SetFocus(p.String())
}

func (m *Model) focusCmd() tea.Cmd {
	switch m.focus {
	case paneEditor:
		return m.editor.Focus()
	case paneNotes:
		return m.notes.Focus()
	}
	return nil
}

func (m *Model) refreshMap() {
	if m.shell == nil || m.shell.Store == nil {
		m.mapView.SetContent("")
		return
	}
	tree := render.Render(m.shell.Store.Journey())
	m.mapView.SetContent(render.Paint(tree,
		render.WithWidth(m.mapWidth),
		render.WithProfile(m.profile),
		render.WithoutHeader(),
	))
}

// layout returns the outer pane sizes for the current terminal.
func (m *Model) layout() (headerH, topH, notesH, leftW, rightW int) {
	headerH = lipgloss.Height(m.headerView())
	promptH := 0
	if v := m.prompt.View(); v != "" {
		promptH = lipgloss.Height(v)
	}
	body := max(m.termHeight-headerH-promptH-1, 8)
	topH = max(body*2/3, 5)
	notesH = max(body-topH, 3)
	leftW = max(m.termWidth*2/5, 20)
	rightW = max(m.termWidth-leftW, 20)
	return
}

// applySizes recalculates component sizes based on current terminal size.
func (m *Model) applySizes() {
	_, topH, notesH, leftW, rightW := m.layout()
	ew, eh := panel.Inner(leftW, topH)
	m.editor.SetWidth(ew)
	m.editor.SetHeight(eh)
	mw, mh := panel.Inner(rightW, topH)
	m.mapWidth = mw
	m.mapView.Width = mw
	m.mapView.Height = mh
	m.notes.SetSize(panel.Inner(m.termWidth, notesH))
	m.prompt.SetWidth(m.termWidth)
	m.help.SetSize(m.termWidth, max(m.termHeight-2, 1))
	m.refreshMap()
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.showHelp {
		return lipgloss.JoinVertical(lipgloss.Left, m.help.View(), m.bottom.View(m.termWidth))
	}
	_, topH, notesH, leftW, rightW := m.layout()

	if m.draft != nil && !m.draft.Valid() {
		m.panes[paneEditor].SetTitle("journey.yaml (invalid, map shows last valid)", true)
	} else {
		m.panes[paneEditor].SetTitle("journey.yaml", false)
	}
	if m.notes.Previewing() {
		m.panes[paneNotes].SetTitle("notes (preview)", false)
	} else {
		m.panes[paneNotes].SetTitle("notes", false)
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		m.paneView(paneEditor, m.editor.View(), leftW, topH),
		m.paneView(paneMap, m.mapView.View(), rightW, topH),
	)
	blocks := []string{
		m.headerView(),
		top,
		m.paneView(paneNotes, m.notes.View(), m.termWidth, notesH),
	}
	if v := m.prompt.View(); v != "" {
		blocks = append(blocks, v)
	}
	blocks = append(blocks, m.bottom.View(m.termWidth))
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func (m *Model) paneView(p pane, body string, width, height int) string {
	focused := p == m.focus && !m.prompt.Active()
	return m.panes[p].View(body, width, height, focused)
}

func (m *Model) headerView() string {
	if m.shell == nil || m.shell.Store == nil {
		return m.theme.Header.Title.Render("journey")
	}
	j := m.shell.Store.Journey()
	title := j.Title
	if strings.TrimSpace(title) == "" {
		title = "untitled journey"
	}
	line := m.theme.Header.Title.Render(title)
	if src := m.shell.Source(); src != "" {
		line += " " + m.theme.Header.Source.Render("from "+src)
	}
	lines := []string{truncate.StringWithTail(line, uint(max(m.termWidth, 1)), "…")}
	if desc := strings.TrimSpace(j.Description); desc != "" {
		lines = append(lines, m.theme.Header.Description.Render(
			truncate.StringWithTail(desc, uint(max(m.termWidth-2, 1)), "…")))
	}
	return strings.Join(lines, "\n")
}
