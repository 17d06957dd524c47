package linemodel

// Toggle flips the fold state of a non-empty container line. Anything else,
// including an unknown id, is ignored.
func Toggle(lines []Line, id int) {
	if !valid(lines, id) || !lines[id].Foldable() {
		return
	}
	lines[id].Expanded = !lines[id].Expanded
}

// SetAll expands or collapses every container line.
func SetAll(lines []Line, expand bool) {
	for i := range lines {
		if lines[i].Kind == KindValue && lines[i].IsContainer {
			lines[i].Expanded = expand
		}
	}
}

// ExpandToDepth expands containers above depth and collapses the rest.
// A negative depth expands everything.
func ExpandToDepth(lines []Line, depth int) {
	if depth < 0 {
		SetAll(lines, true)
		return
	}
	for i := range lines {
		if lines[i].Kind == KindValue && lines[i].IsContainer {
			lines[i].Expanded = lines[i].Level < depth
		}
	}
}

// Visible returns the ids of the lines a renderer should draw, in order.
//
// A collapsed container hides every following line deeper than itself, and
// its own closing marker.
func Visible(lines []Line) []int {
	ids := make([]int, 0, len(lines))
	for i := 0; i < len(lines); i++ {
		l := lines[i]
		ids = append(ids, l.ID)
		if l.Expanded || !l.Foldable() {
			continue
		}

		j := i + 1
		for j < len(lines) && lines[j].Level > l.Level {
			j++
		}
		if j < len(lines) && lines[j].Kind == KindClosing && lines[j].OpenLineID == l.ID {
			j++
		}
		i = j - 1
	}
	return ids
}

// IsVisible reports whether id would be drawn under the current fold state.
func IsVisible(lines []Line, id int) bool {
	if !valid(lines, id) {
		return false
	}
	if l := lines[id]; l.Kind == KindClosing {
		if !valid(lines, l.OpenLineID) || !lines[l.OpenLineID].Expanded {
			return false
		}
		id = l.OpenLineID
	}
	for _, a := range Ancestors(lines, id) {
		if !lines[a].Expanded {
			return false
		}
	}
	return true
}

// Ancestors returns the container lines enclosing id, innermost first.
func Ancestors(lines []Line, id int) []int {
	if !valid(lines, id) {
		return nil
	}
	var out []int
	level := lines[id].Level
	for i := id - 1; i >= 0 && level > 0; i-- {
		l := lines[i]
		if l.Kind == KindValue && l.IsContainer && l.Level < level {
			out = append(out, i)
			level = l.Level
		}
	}
	return out
}

// ExpandAncestors force-expands every container enclosing id so it becomes visible.
func ExpandAncestors(lines []Line, id int) {
	for _, a := range Ancestors(lines, id) {
		lines[a].Expanded = true
	}
}
