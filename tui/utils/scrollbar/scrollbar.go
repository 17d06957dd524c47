// Package scrollbar draws a one-column scroll indicator beside a viewport.
package scrollbar

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/grovetools/jsonview/tui/theme"
)

const (
	thumb = "█"
	track = "░"
)

// Column returns one cell per row of vp. It is blank when the content fits,
// otherwise a thumb sized to the visible share of the content and placed at
// the scroll position.
func Column(vp viewport.Model) []string {
	rows := vp.Height
	if rows <= 0 {
		return nil
	}
	cells := make([]string, rows)

	total := vp.TotalLineCount()
	if total <= rows {
		for i := range cells {
			cells[i] = " "
		}
		return cells
	}

	size := max(1, rows*rows/total)
	top := int(float64(rows-size)*clamp(vp.ScrollPercent()) + 0.5)
	top = min(max(top, 0), rows-size)

	muted := theme.DefaultTheme.Muted
	for i := range cells {
		if i >= top && i < top+size {
			cells[i] = muted.Render(thumb)
		} else {
			cells[i] = muted.Render(track)
		}
	}
	return cells
}

// Attach renders vp with its scrollbar column on the right.
func Attach(vp viewport.Model) string {
	lines := strings.Split(vp.View(), "\n")
	cells := Column(vp)
	for i := range lines {
		if i < len(cells) {
			lines[i] += cells[i]
		}
	}
	return strings.Join(lines, "\n")
}

func clamp(f float64) float64 {
	return min(max(f, 0), 1)
}
