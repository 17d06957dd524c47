package linemodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggle(t *testing.T) {
	lines := Build(mustParse(t, `{"a":1,"b":[2,3],"c":{}}`))
	// 0 { | 1 a | 2 b [ | 3 | 4 | 5 ] | 6 c {} | 7 }

	Toggle(lines, 2)
	assert.False(t, lines[2].Expanded)
	Toggle(lines, 2)
	assert.True(t, lines[2].Expanded)

	tests := []struct {
		name string
		id   int
	}{
		{"scalar", 1},
		{"closing marker", 5},
		{"empty container", 6},
		{"negative id", -1},
		{"unknown id", 99},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := append([]Line(nil), lines...)
			Toggle(lines, tt.id)
			assert.Equal(t, before, lines)
		})
	}
}

func TestVisibleHidesCollapsedSubtree(t *testing.T) {
	lines := Build(mustParse(t, `{"a":1,"b":[2,3],"c":4}`))
	// 0 { | 1 a | 2 b [ | 3 | 4 | 5 ] | 6 c | 7 }

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, Visible(lines))

	Toggle(lines, 2)
	assert.Equal(t, []int{0, 1, 2, 6, 7}, Visible(lines))
	assert.False(t, IsVisible(lines, 3))
	assert.False(t, IsVisible(lines, 5))
	assert.True(t, IsVisible(lines, 6))

	Toggle(lines, 0)
	assert.Equal(t, []int{0}, Visible(lines))
	assert.False(t, IsVisible(lines, 7))
	assert.False(t, IsVisible(lines, 1))
	assert.True(t, IsVisible(lines, 0))
	assert.False(t, IsVisible(lines, 42))
}

func TestVisibleNestedCollapse(t *testing.T) {
	lines := Build(mustParse(t, `[[1,[2]],3]`))
	// 0 [ | 1 [ | 2 1 | 3 [ | 4 2 | 5 ] | 6 ] | 7 3 | 8 ]

	Toggle(lines, 3)
	assert.Equal(t, []int{0, 1, 2, 3, 6, 7, 8}, Visible(lines))

	Toggle(lines, 1)
	assert.Equal(t, []int{0, 1, 7, 8}, Visible(lines))

	// inner fold state survives the outer one
	Toggle(lines, 1)
	assert.Equal(t, []int{0, 1, 2, 3, 6, 7, 8}, Visible(lines))
}

func TestSetAllRestoresInitialVisibility(t *testing.T) {
	for i, v := range corpus(t) {
		lines := Build(v)
		initial := Visible(lines)

		SetAll(lines, false)
		if lines[0].Foldable() {
			assert.Equal(t, []int{0}, Visible(lines), "document %d", i)
		}

		SetAll(lines, true)
		assert.Equal(t, initial, Visible(lines), "document %d", i)
	}
}

func TestVisibleAgreesWithIsVisible(t *testing.T) {
	for i, v := range corpus(t) {
		lines := Build(v)
		for id := range lines {
			if id%3 == 0 {
				Toggle(lines, id)
			}
		}

		visible := map[int]bool{}
		for _, id := range Visible(lines) {
			visible[id] = true
		}
		for id := range lines {
			assert.Equal(t, visible[id], IsVisible(lines, id), "document %d line %d", i, id)
		}
	}
}

func TestExpandAncestors(t *testing.T) {
	lines := Build(mustParse(t, `{"a":{"b":{"c":"deep"}},"z":0}`))
	// 0 { | 1 a { | 2 b { | 3 c | 4 } | 5 } | 6 z | 7 }
	SetAll(lines, false)
	require.False(t, IsVisible(lines, 3))

	assert.Equal(t, []int{2, 1, 0}, Ancestors(lines, 3))

	ExpandAncestors(lines, 3)
	assert.True(t, IsVisible(lines, 3))
	assert.True(t, lines[0].Expanded)
	assert.True(t, lines[1].Expanded)
	assert.True(t, lines[2].Expanded)

	ExpandAncestors(lines, -5)
}

func TestExpandToDepth(t *testing.T) {
	lines := Build(mustParse(t, `{"a":{"b":[1]},"c":[]}`))
	// 0 { | 1 a { | 2 b [ | 3 1 | 4 ] | 5 } | 6 c [] | 7 }

	ExpandToDepth(lines, 1)
	assert.True(t, lines[0].Expanded)
	assert.False(t, lines[1].Expanded)
	assert.False(t, lines[2].Expanded)
	assert.Equal(t, []int{0, 1, 6, 7}, Visible(lines))

	ExpandToDepth(lines, 0)
	assert.Equal(t, []int{0}, Visible(lines))

	ExpandToDepth(lines, -1)
	assert.Len(t, Visible(lines), len(lines))
}
