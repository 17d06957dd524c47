package jsontree

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/grovetools/jsonview/config"
	"github.com/grovetools/jsonview/logging"
	"github.com/grovetools/jsonview/pkg/bridge"
	"github.com/grovetools/jsonview/pkg/linemodel"
	"github.com/grovetools/jsonview/pkg/session"
	"github.com/grovetools/jsonview/tui/keymap"
	"github.com/grovetools/jsonview/tui/theme"
	"github.com/grovetools/jsonview/tui/utils/scrollbar"
)

var log = logging.NewLogger("jsonview-tui")

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeEdit
)

// Options configure the tree view.
type Options struct {
	Session session.Options
	// Sink also receives every outbound message, e.g. a bridge server.
	Sink bridge.Sink
	// Clipboard replaces the system clipboard; mostly for tests.
	Clipboard   func(string) error
	Keybindings config.KeybindingsConfig
	IndentWidth int
	JumpToFirst bool
	Title       string
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return Options{
		Session:     session.DefaultOptions(),
		IndentWidth: config.DefaultIndentWidth,
		JumpToFirst: true,
	}
}

// Model is the Bubble Tea model for the JSON tree viewer.
type Model struct {
	session   *session.Session
	host      *localHost
	clipboard func(string) error

	keys     KeyMap
	seq      *keymap.Sequence
	help     help.Model
	viewport viewport.Model

	searchInput textinput.Model
	editInput   textinput.Model
	mode        mode
	prevQuery   string

	// cursor is the id of the selected line.
	cursor    int
	visible   []int
	showInput bool

	width  int
	height int
	ready  bool

	indent      int
	jumpToFirst bool
	title       string

	status     string
	statusKind statusKind
	statusSeq  int
}

// New creates a new JSON tree model with no document.
func New(opts Options) Model {
	host := &localHost{forward: opts.Sink}

	keys := DefaultKeyMap()
	if unknown := keymap.ApplyOverrides(&keys, opts.Keybindings); len(unknown) > 0 {
		log.WithField("actions", strings.Join(unknown, ",")).Warn("Ignoring unknown keybinding actions")
	}

	si := textinput.New()
	si.Placeholder = "Search..."
	si.Prompt = theme.IconSearch + " "
	si.CharLimit = 256

	ei := textinput.New()
	ei.Prompt = ""
	ei.CharLimit = 0

	h := help.New()
	h.Styles.ShortKey = theme.DefaultTheme.Accent
	h.Styles.FullKey = theme.DefaultTheme.Accent
	h.Styles.ShortDesc = theme.DefaultTheme.Muted
	h.Styles.FullDesc = theme.DefaultTheme.Muted

	clip := opts.Clipboard
	if clip == nil {
		clip = systemClipboard
	}
	indent := opts.IndentWidth
	if indent <= 0 {
		indent = config.DefaultIndentWidth
	}

	return Model{
		session:     session.New(host, opts.Session),
		host:        host,
		clipboard:   clip,
		keys:        keys,
		seq:         keymap.NewSequence(500 * time.Millisecond),
		help:        h,
		searchInput: si,
		editInput:   ei,
		indent:      indent,
		jumpToFirst: opts.JumpToFirst,
		title:       opts.Title,
	}
}

// Session exposes the underlying session.
func (m Model) Session() *session.Session {
	return m.session
}

// Query is the active search query.
func (m Model) Query() string {
	return m.session.Query()
}

// CursorLine is the id of the selected line.
func (m Model) CursorLine() int {
	return m.cursor
}

// SetQuery sets the search query and, if configured, jumps to the first match.
func (m *Model) SetQuery(q string) {
	m.session.SetQuery(q)
	if m.jumpToFirst {
		m.nextMatch(linemodel.Forward)
	}
	m.refresh()
}

// SetSize sets the size of the component.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.searchInput.Width = max(10, width-4)
	m.editInput.Width = max(10, width/2)
	if !m.ready {
		m.viewport = viewport.New(width, 1)
		m.ready = true
	}
	m.layout()
}

// layout sizes the viewport around the header, status line and help.
func (m *Model) layout() {
	if !m.ready {
		return
	}
	helpHeight := lipgloss.Height(m.help.View(m.keys))
	m.viewport.Width = max(1, m.width-1)
	m.viewport.Height = max(1, m.height-2-helpHeight)
	m.updateContent()
}

// Init initializes the component.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and user input.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case LoadMsg:
		m.load(msg)
		return m, m.flush()

	case HostMsg:
		if err := m.session.Apply(msg.Msg); err != nil {
			log.WithError(err).Debug("Host message not applied")
		}
		if _, ok := msg.Msg.(bridge.ClearDocument); ok {
			m.cursor = 0
			m.mode = modeBrowse
		}
		m.refresh()
		return m, m.flush()

	case HostErrorMsg:
		return m, m.setStatus(statusError, msg.Err.Error())

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		var cmd tea.Cmd
		switch m.mode {
		case modeSearch:
			cmd = m.updateSearch(msg)
		case modeEdit:
			cmd = m.updateEdit(msg)
		default:
			cmd = m.updateBrowse(msg)
		}
		m.refresh()
		return m, tea.Batch(cmd, m.flush())
	}

	var cmd tea.Cmd
	switch m.mode {
	case modeSearch:
		m.searchInput, cmd = m.searchInput.Update(msg)
	case modeEdit:
		m.editInput, cmd = m.editInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) load(msg LoadMsg) {
	if err := m.session.Load(msg.Text); err != nil {
		return
	}
	if msg.Source != "" {
		m.title = msg.Source
	}
	m.mode = modeBrowse
	m.cursor = 0
	if m.jumpToFirst && m.session.Query() != "" {
		m.nextMatch(linemodel.Forward)
	}
	m.refresh()
}

func (m *Model) updateBrowse(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyRunes {
		switch result, idx := m.seq.Process(msg.String(), m.keys.sequences()...); result {
		case keymap.SequenceMatch:
			switch idx {
			case 0:
				m.top()
			case 1:
				m.session.SetAll(true)
			case 2:
				m.session.SetAll(false)
			}
			return nil
		case keymap.SequencePending:
			return nil
		}
	} else {
		m.seq.Clear()
	}

	lines := m.session.Lines()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()

	case key.Matches(msg, m.keys.Up):
		m.move(-1)

	case key.Matches(msg, m.keys.Down):
		m.move(1)

	case key.Matches(msg, m.keys.PageUp):
		m.move(-max(1, m.viewport.Height/2))

	case key.Matches(msg, m.keys.PageDown):
		m.move(max(1, m.viewport.Height/2))

	case key.Matches(msg, m.keys.Top):
		m.top()

	case key.Matches(msg, m.keys.ExpandAll):
		m.session.SetAll(true)

	case key.Matches(msg, m.keys.CollapseAll):
		m.session.SetAll(false)

	case key.Matches(msg, m.keys.Bottom):
		if len(m.visible) > 0 {
			m.cursor = m.visible[len(m.visible)-1]
		}

	case key.Matches(msg, m.keys.Toggle):
		if id := m.opener(); id >= 0 && lines[id].Foldable() {
			m.session.Toggle(id)
			m.cursor = id
		}

	case key.Matches(msg, m.keys.Fold):
		id := m.opener()
		switch {
		case id < 0:
		case id != m.cursor:
			m.cursor = id
		case lines[id].Foldable() && lines[id].Expanded:
			m.session.Toggle(id)
		default:
			if ancestors := linemodel.Ancestors(lines, id); len(ancestors) > 0 {
				m.cursor = ancestors[0]
			}
		}

	case key.Matches(msg, m.keys.Unfold):
		if id := m.opener(); id >= 0 && lines[id].Foldable() {
			if !lines[id].Expanded {
				m.session.Toggle(id)
			} else if id == m.cursor {
				m.move(1)
			}
		}

	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.prevQuery = m.session.Query()
		m.searchInput.SetValue(m.prevQuery)
		m.searchInput.CursorEnd()
		return m.searchInput.Focus()

	case key.Matches(msg, m.keys.NextMatch):
		m.nextMatch(linemodel.Forward)

	case key.Matches(msg, m.keys.PrevMatch):
		m.nextMatch(linemodel.Backward)

	case key.Matches(msg, m.keys.ClearSearch):
		if m.session.Query() != "" {
			m.session.SetQuery("")
		}

	case key.Matches(msg, m.keys.Edit):
		if m.session.BeginEdit(m.cursor) {
			m.mode = modeEdit
			m.showInput = false
			m.editInput.SetValue(m.session.EditDraft())
			m.editInput.CursorEnd()
			return m.editInput.Focus()
		}

	case key.Matches(msg, m.keys.Sync):
		if _, err := m.session.Sync(); err != nil {
			log.WithError(err).Debug("Nothing to sync")
		}

	case key.Matches(msg, m.keys.Format):
		m.session.FormatInput()
		m.showInput = true

	case key.Matches(msg, m.keys.Compact):
		m.session.CompactInput()
		m.showInput = true

	case key.Matches(msg, m.keys.Input):
		m.showInput = !m.showInput

	case key.Matches(msg, m.keys.CopyValue):
		if err := m.session.CopyValue(m.cursor); err != nil {
			log.WithError(err).Debug("Copy value skipped")
		}

	case key.Matches(msg, m.keys.CopyPath):
		if err := m.session.CopyPath(m.cursor); err != nil {
			log.WithError(err).Debug("Copy path skipped")
		}

	case key.Matches(msg, m.keys.CopyInput):
		m.session.CopyInput()
	}

	return nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		m.mode = modeBrowse
		m.searchInput.Blur()
		if m.jumpToFirst {
			m.nextMatch(linemodel.Forward)
		}
		return nil
	case tea.KeyEsc:
		m.mode = modeBrowse
		m.searchInput.Blur()
		m.session.SetQuery(m.prevQuery)
		return nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if q := m.searchInput.Value(); q != m.session.Query() {
		m.session.SetQuery(q)
	}
	return cmd
}

func (m *Model) updateEdit(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		m.mode = modeBrowse
		m.editInput.Blur()
		if _, err := m.session.CommitEdit(m.editInput.Value()); err != nil {
			return m.setStatus(statusError, err.Error())
		}
		return nil
	case tea.KeyEsc:
		m.mode = modeBrowse
		m.editInput.Blur()
		m.session.DiscardEdit()
		return nil
	}

	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	return cmd
}

// nextMatch steps the search cursor and selects the match's line.
func (m *Model) nextMatch(dir linemodel.Direction) {
	var (
		match linemodel.Match
		ok    bool
	)
	if dir == linemodel.Forward {
		match, ok = m.session.Next()
	} else {
		match, ok = m.session.Prev()
	}
	if ok {
		m.cursor = match.LineID
	}
}

// opener resolves the cursor to the line that owns its fold state: closing
// markers map to their opening line.
func (m *Model) opener() int {
	lines := m.session.Lines()
	if m.cursor < 0 || m.cursor >= len(lines) {
		return -1
	}
	if l := lines[m.cursor]; l.IsClosing() {
		return l.OpenLineID
	}
	return m.cursor
}

func (m *Model) top() {
	if len(m.visible) > 0 {
		m.cursor = m.visible[0]
	}
}

func (m *Model) position() int {
	for i, id := range m.visible {
		if id == m.cursor {
			return i
		}
	}
	return 0
}

func (m *Model) move(delta int) {
	if len(m.visible) == 0 {
		return
	}
	idx := m.position() + delta
	idx = max(0, min(idx, len(m.visible)-1))
	m.cursor = m.visible[idx]
}

// refresh recomputes the visible lines, keeps the cursor on a visible line
// and re-renders.
func (m *Model) refresh() {
	lines := m.session.Lines()
	m.visible = m.session.Visible()
	if len(m.visible) == 0 {
		m.cursor = 0
		m.updateContent()
		return
	}

	if m.cursor < 0 || m.cursor >= len(lines) {
		m.cursor = m.visible[0]
	} else if !linemodel.IsVisible(lines, m.cursor) {
		target := m.visible[0]
		id := m.cursor
		if lines[id].IsClosing() {
			id = lines[id].OpenLineID
		}
		if linemodel.IsVisible(lines, id) {
			target = id
		} else {
			// innermost visible ancestor
			for _, a := range linemodel.Ancestors(lines, id) {
				if linemodel.IsVisible(lines, a) {
					target = a
					break
				}
			}
		}
		m.cursor = target
	}
	m.updateContent()
}

// updateContent renders the tree and updates the viewport.
func (m *Model) updateContent() {
	if !m.ready {
		return
	}

	if m.showInput {
		m.viewport.SetContent(m.session.Input())
		return
	}

	rendered := make([]string, 0, len(m.visible))
	for _, id := range m.visible {
		rendered = append(rendered, m.renderLine(id, id == m.cursor))
	}
	m.viewport.SetContent(strings.Join(rendered, "\n"))

	pos := m.position()
	if pos < m.viewport.YOffset {
		m.viewport.SetYOffset(pos)
	} else if pos >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(pos - m.viewport.Height + 1)
	}
}

// View renders the JSON tree.
func (m Model) View() string {
	if !m.ready {
		return "Initializing JSON viewer..."
	}

	var body string
	if m.session.Empty() && !m.showInput {
		body = lipgloss.NewStyle().Height(m.viewport.Height).Render(
			theme.DefaultTheme.Muted.Render("No JSON data to display"))
	} else {
		body = scrollbar.Attach(m.viewport)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		body,
		m.statusView(),
		m.help.View(m.keys),
	)
}

func (m Model) headerView() string {
	t := theme.DefaultTheme
	parts := []string{}
	if m.title != "" {
		parts = append(parts, t.Title.Render(m.title))
	}
	parts = append(parts, t.Muted.Render(m.session.Status()))
	if m.session.Dirty() {
		parts = append(parts, t.Warning.Render(theme.IconEdit+" modified"))
	}
	if m.showInput {
		parts = append(parts, t.Info.Render("[input]"))
	}
	return strings.Join(parts, "  ")
}

func (m Model) statusView() string {
	t := theme.DefaultTheme
	switch {
	case m.mode == modeSearch:
		return m.searchInput.View() + "  " + t.Muted.Render(m.session.SearchSummary())
	case m.mode == modeEdit:
		return t.Info.Render(theme.IconEdit + " editing: enter to commit, esc to cancel")
	case m.status != "":
		switch m.statusKind {
		case statusError:
			return t.Error.Render(theme.IconError + " " + m.status)
		case statusSuccess:
			return t.Success.Render(theme.IconSuccess + " " + m.status)
		default:
			return t.Info.Render(theme.IconInfo + " " + m.status)
		}
	case m.session.Query() != "":
		return t.Muted.Render(theme.IconSearch + " " + m.session.Query() + "  " + m.session.SearchSummary())
	}
	return ""
}
