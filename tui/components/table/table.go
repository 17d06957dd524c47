// Package table renders command output as themed lipgloss tables.
package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"github.com/grovetools/jsonview/tui/theme"
)

// Options configure a table.
type Options struct {
	Bordered      bool
	AlternateRows bool
	// MutedColumns are rendered in the muted style, e.g. ids.
	MutedColumns []int
	// Width caps the rendered width; 0 means unlimited.
	Width int
	Theme *theme.Theme
}

// DefaultOptions returns a bordered table with alternating rows.
func DefaultOptions() Options {
	return Options{
		Bordered:      true,
		AlternateRows: true,
		Theme:         theme.DefaultTheme,
	}
}

// New creates a table with headers styled per opts.
func New(opts Options, headers ...string) *ltable.Table {
	t := opts.Theme
	if t == nil {
		t = theme.DefaultTheme
	}

	muted := make(map[int]bool, len(opts.MutedColumns))
	for _, c := range opts.MutedColumns {
		muted[c] = true
	}

	tbl := ltable.New().Headers(headers...)
	if opts.Bordered {
		tbl = tbl.Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(t.Colors.Border))
	} else {
		tbl = tbl.Border(lipgloss.HiddenBorder())
	}
	if opts.Width > 0 {
		tbl = tbl.Width(opts.Width)
	}

	return tbl.StyleFunc(func(row, col int) lipgloss.Style {
		if row == ltable.HeaderRow {
			return t.Bold.Padding(0, 1)
		}
		style := lipgloss.NewStyle().Padding(0, 1)
		if opts.AlternateRows && row%2 == 1 {
			style = style.Background(t.Colors.VerySubtleBackground)
		}
		if muted[col] {
			style = style.Foreground(t.Colors.MutedText)
		}
		return style
	})
}

// Render builds and renders a table in one call.
func Render(opts Options, headers []string, rows [][]string) string {
	return New(opts, headers...).Rows(rows...).Render()
}

// TSV renders headers and rows as tab-separated lines for pipes.
func TSV(headers []string, rows [][]string) string {
	var b strings.Builder
	b.WriteString(strings.Join(headers, "\t"))
	b.WriteByte('\n')
	for _, r := range rows {
		b.WriteString(strings.Join(r, "\t"))
		b.WriteByte('\n')
	}
	return b.String()
}
