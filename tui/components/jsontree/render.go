package jsontree

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/grovetools/jsonview/pkg/jsonvalue"
	"github.com/grovetools/jsonview/pkg/linemodel"
	"github.com/grovetools/jsonview/tui/theme"
)

// PlainLine renders a line without styles, fold icons or highlighting.
func PlainLine(l linemodel.Line, indent int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", l.Level*indent))
	if l.HasKey && !l.IsClosing() {
		b.WriteString(l.Key)
		b.WriteString(": ")
	}
	b.WriteString(ValueText(l))
	return b.String()
}

func closer(l linemodel.Line) string {
	if l.IsArray {
		return "]"
	}
	return "}"
}

// ValueText is the value column of a line: a bracket for open containers
// and closing markers, a summary for collapsed ones, or the scalar.
func ValueText(l linemodel.Line) string {
	switch {
	case l.IsClosing():
		return closer(l)
	case l.IsEmptyContainer():
		if l.IsArray {
			return "[]"
		}
		return "{}"
	case l.IsContainer && l.Expanded:
		if l.IsArray {
			return "["
		}
		return "{"
	case l.IsContainer:
		return jsonvalue.Summary(l.Value)
	}
	return jsonvalue.FormatScalar(l.Value)
}

func (m *Model) renderLine(id int, selected bool) string {
	t := theme.DefaultTheme
	l := m.session.Lines()[id]

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", l.Level*m.indent))

	switch {
	case l.Foldable() && l.Expanded:
		b.WriteString(t.Muted.Render(theme.IconExpanded) + " ")
	case l.Foldable():
		b.WriteString(t.Muted.Render(theme.IconCollapsed) + " ")
	default:
		b.WriteString("  ")
	}

	if l.IsClosing() {
		b.WriteString(t.Punctuation.Render(closer(l)))
		return m.selectLine(b.String(), selected)
	}

	if l.HasKey {
		b.WriteString(m.highlight(l.Key, id, linemodel.FieldKey, t.Key))
		b.WriteString(t.Punctuation.Render(": "))
	}

	editing, ok := m.session.Editing()
	switch {
	case m.mode == modeEdit && ok && editing == id:
		b.WriteString(m.editInput.View())
	case l.IsContainer && !l.IsEmptyContainer() && !l.Expanded:
		b.WriteString(t.Summary.Render(ValueText(l)))
	case l.IsContainer:
		b.WriteString(t.Punctuation.Render(ValueText(l)))
	default:
		b.WriteString(m.highlight(ValueText(l), id, linemodel.FieldValue, scalarStyle(l.Value)))
	}

	return m.selectLine(b.String(), selected)
}

func (m *Model) selectLine(s string, selected bool) string {
	if !selected {
		return s
	}
	return theme.DefaultTheme.Selected.Render(s)
}

// highlight styles text with base, marking search hits. The hit the search
// cursor points at gets the CurrentMatch style.
func (m *Model) highlight(text string, id int, field linemodel.Field, base lipgloss.Style) string {
	t := theme.DefaultTheme
	query := m.session.Query()
	if query == "" {
		return base.Render(text)
	}

	current, hasCurrent := m.session.Current()
	var b strings.Builder
	for _, seg := range linemodel.Highlight(text, query) {
		switch {
		case !seg.Matched:
			b.WriteString(base.Render(seg.Text))
		case hasCurrent && current.LineID == id && current.Field == field && current.Occurrence == seg.Occurrence:
			b.WriteString(t.CurrentMatch.Render(seg.Text))
		default:
			b.WriteString(t.Match.Render(seg.Text))
		}
	}
	return b.String()
}

func scalarStyle(v jsonvalue.Value) lipgloss.Style {
	t := theme.DefaultTheme
	switch jsonvalue.KindOf(v) {
	case jsonvalue.KindString:
		return t.String
	case jsonvalue.KindNumber:
		return t.Number
	case jsonvalue.KindBool:
		return t.Boolean
	default:
		return t.Null
	}
}
