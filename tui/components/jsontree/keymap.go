package jsontree

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/grovetools/jsonview/tui/keymap"
)

// KeyMap defines the keybindings for the JSON tree viewer. Field names in
// snake_case are the action names used in the keybindings config section.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding

	Toggle      key.Binding
	Fold        key.Binding
	Unfold      key.Binding
	ExpandAll   key.Binding
	CollapseAll key.Binding

	Search      key.Binding
	NextMatch   key.Binding
	PrevMatch   key.Binding
	ClearSearch key.Binding

	Edit    key.Binding
	Sync    key.Binding
	Format  key.Binding
	Compact key.Binding
	Input   key.Binding

	CopyValue key.Binding
	CopyPath  key.Binding
	CopyInput key.Binding

	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default keybindings for the component.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       bind("k/↑", "up", "up", "k"),
		Down:     bind("j/↓", "down", "down", "j"),
		PageUp:   bind("ctrl+u", "half page up", "ctrl+u", "pgup"),
		PageDown: bind("ctrl+d", "half page down", "ctrl+d", "pgdown"),
		Top:      bind("gg", "go to top", "gg", "home"),
		Bottom:   bind("G", "go to end", "G", "end"),

		Toggle:      bind("space", "toggle", " ", "enter"),
		Fold:        bind("h", "fold / parent", "h", "left"),
		Unfold:      bind("l", "unfold", "l", "right"),
		ExpandAll:   bind("zR", "expand all", "zR"),
		CollapseAll: bind("zM", "collapse all", "zM"),

		Search:      bind("/", "search", "/"),
		NextMatch:   bind("n", "next match", "n"),
		PrevMatch:   bind("N", "previous match", "N"),
		ClearSearch: bind("esc", "clear search", "esc"),

		Edit:    bind("e", "edit value", "e"),
		Sync:    bind("s", "sync to input", "s"),
		Format:  bind("F", "format input", "F"),
		Compact: bind("C", "compact input", "C"),
		Input:   bind("tab", "tree / input", "tab"),

		CopyValue: bind("y", "copy value", "y"),
		CopyPath:  bind("p", "copy path", "p"),
		CopyInput: bind("Y", "copy input", "Y"),

		Help: bind("?", "help", "?"),
		Quit: bind("q", "quit", "q", "ctrl+c"),
	}
}

func bind(helpKey, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(helpKey, desc))
}

// sequences are the bindings that may span more than one key press,
// limited to their typed keys.
func (k KeyMap) sequences() []key.Binding {
	return []key.Binding{
		keymap.RuneKeys(k.Top),
		keymap.RuneKeys(k.ExpandAll),
		keymap.RuneKeys(k.CollapseAll),
	}
}

// Sections groups the bindings for the full help view.
func (k KeyMap) Sections() []keymap.Section {
	return []keymap.Section{
		keymap.NewSection(keymap.SectionNavigation, k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom),
		keymap.NewSection(keymap.SectionFold, k.Toggle, k.Fold, k.Unfold, k.ExpandAll, k.CollapseAll),
		keymap.NewSection(keymap.SectionSearch, k.Search, k.NextMatch, k.PrevMatch, k.ClearSearch),
		keymap.NewSection(keymap.SectionEdit, k.Edit, k.Sync, k.Format, k.Compact, k.Input),
		keymap.NewSection(keymap.SectionClipboard, k.CopyValue, k.CopyPath, k.CopyInput),
		keymap.NewSection(keymap.SectionSystem, k.Help, k.Quit),
	}
}

// ShortHelp returns the short help bindings.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Search, k.NextMatch, k.Edit, k.Sync, k.Help, k.Quit}
}

// FullHelp returns the full help bindings.
func (k KeyMap) FullHelp() [][]key.Binding {
	return keymap.FullHelp(k.Sections()...)
}
