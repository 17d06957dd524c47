package linemodel

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/jsonview/pkg/jsonvalue"
)

func TestSearch(t *testing.T) {
	lines := Build(mustParse(t, `{"name":"Anna","banana":"nan","n":null,"list":[1.5,true,"NA"],"empty":{}}`))
	// 0 { | 1 name | 2 banana | 3 n | 4 list [ | 5 1.5 | 6 true | 7 "NA" | 8 ] | 9 empty | 10 }

	tests := []struct {
		name  string
		query string
		want  []Match
	}{
		{"empty query", "", nil},
		{"no hit", "zzz", nil},
		{
			"multiple occurrences keep position order, key before value",
			"na",
			[]Match{
				{LineID: 1, Field: FieldKey, Occurrence: 0, Start: 0, End: 2},
				{LineID: 1, Field: FieldValue, Occurrence: 0, Start: 3, End: 5},
				{LineID: 2, Field: FieldKey, Occurrence: 0, Start: 2, End: 4},
				{LineID: 2, Field: FieldKey, Occurrence: 1, Start: 4, End: 6},
				{LineID: 2, Field: FieldValue, Occurrence: 0, Start: 1, End: 3},
				{LineID: 7, Field: FieldValue, Occurrence: 0, Start: 1, End: 3},
			},
		},
		{
			"formatted scalars",
			"null",
			[]Match{{LineID: 3, Field: FieldValue, Occurrence: 0, Start: 0, End: 4}},
		},
		{
			"quote delimited string form",
			`"anna"`,
			[]Match{{LineID: 1, Field: FieldValue, Occurrence: 0, Start: 0, End: 6}},
		},
		{
			"regex metacharacters are literal",
			"1.5",
			[]Match{{LineID: 5, Field: FieldValue, Occurrence: 0, Start: 0, End: 3}},
		},
		{
			"container summaries never match",
			"object",
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Search(lines, tt.query))
		})
	}
}

func TestSearchIgnoresFoldState(t *testing.T) {
	lines := Build(mustParse(t, `{"a":1,"b":[2,3]}`))
	before := Search(lines, "2")

	SetAll(lines, false)
	assert.Equal(t, before, Search(lines, "2"))
}

func TestSearchCountsEveryOccurrence(t *testing.T) {
	for i, v := range corpus(t) {
		lines := Build(v)
		for _, q := range []string{"s1", "k", "2", "e", "TRUE"} {
			want := 0
			for _, l := range lines {
				if l.IsClosing() {
					continue
				}
				lower := strings.ToLower(q)
				if l.HasKey {
					want += strings.Count(strings.ToLower(l.Key), lower)
				}
				if !l.IsContainer {
					want += strings.Count(strings.ToLower(jsonvalue.FormatScalar(l.Value)), lower)
				}
			}

			got := Search(lines, q)
			assert.Len(t, got, want, "document %d query %q", i, q)
			for _, m := range got {
				assert.True(t, m.LineID >= 0 && m.LineID < len(lines))
			}
		}
	}
}

func TestNavigate(t *testing.T) {
	three := make([]Match, 3)

	tests := []struct {
		name    string
		matches []Match
		cursor  Cursor
		dir     Direction
		want    Cursor
	}{
		{"forward from none", three, NoCursor, Forward, 0},
		{"forward step", three, 0, Forward, 1},
		{"forward wraps", three, 2, Forward, 0},
		{"backward from none", three, NoCursor, Backward, 2},
		{"backward step", three, 2, Backward, 1},
		{"backward wraps", three, 0, Backward, 2},
		{"forward on empty", nil, NoCursor, Forward, NoCursor},
		{"backward on empty", nil, NoCursor, Backward, NoCursor},
		{"stale cursor forward", three, 9, Forward, 0},
		{"stale cursor backward", three, 9, Backward, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Navigate(tt.matches, tt.cursor, tt.dir))
		})
	}
}

func TestNavigateCycles(t *testing.T) {
	for n := 1; n <= 5; n++ {
		matches := make([]Match, n)
		c := NoCursor
		for i := 0; i < n+1; i++ {
			c = Navigate(matches, c, Forward)
		}
		assert.Equal(t, Cursor(0), c, "n=%d", n)
	}
}

func TestNextExpandsCollapsedAncestor(t *testing.T) {
	lines := Build(mustParse(t, `{"a":1,"b":[2,3]}`))
	Toggle(lines, 2)
	require.False(t, IsVisible(lines, 3))

	matches := Search(lines, "2")
	require.Len(t, matches, 1)
	assert.Equal(t, 3, matches[0].LineID)

	c := Next(lines, matches, NoCursor)
	assert.Equal(t, Cursor(0), c)
	assert.True(t, lines[2].Expanded)
	assert.True(t, IsVisible(lines, 3))
}

func TestPrevExpandsCollapsedAncestor(t *testing.T) {
	lines := Build(mustParse(t, `[[["x"]],"y"]`))
	SetAll(lines, false)

	matches := Search(lines, "x")
	c := Prev(lines, matches, NoCursor)
	assert.Equal(t, Cursor(0), c)
	assert.True(t, IsVisible(lines, matches[0].LineID))

	assert.Equal(t, NoCursor, Prev(lines, nil, NoCursor))
}

func TestCountSummary(t *testing.T) {
	assert.Equal(t, "0/0", CountSummary(NoCursor, 0))
	assert.Equal(t, "0/4", CountSummary(NoCursor, 4))
	assert.Equal(t, "1/4", CountSummary(0, 4))
	assert.Equal(t, "4/4", CountSummary(3, 4))
}

func TestHighlight(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		query string
		want  []Segment
	}{
		{"no query", "abc", "", []Segment{{Text: "abc", Occurrence: -1}}},
		{"no match", "abc", "z", []Segment{{Text: "abc", Occurrence: -1}}},
		{
			"interior matches",
			"Banana",
			"an",
			[]Segment{
				{Text: "B", Occurrence: -1},
				{Text: "an", Matched: true, Occurrence: 0},
				{Text: "an", Matched: true, Occurrence: 1},
				{Text: "a", Occurrence: -1},
			},
		},
		{
			"whole text",
			"AB",
			"ab",
			[]Segment{{Text: "AB", Matched: true, Occurrence: 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Highlight(tt.text, tt.query))
		})
	}
}
