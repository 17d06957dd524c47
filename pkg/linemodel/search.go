package linemodel

import (
	"fmt"
	"regexp"

	"github.com/grovetools/jsonview/pkg/jsonvalue"
)

// Field names the part of a line a match was found in.
type Field int

const (
	FieldKey Field = iota
	FieldValue
)

func (f Field) String() string {
	if f == FieldKey {
		return "key"
	}
	return "value"
}

// Match is one occurrence of the query. Start and End are byte offsets into
// the searched text: the key, or the value as FormatScalar renders it.
type Match struct {
	LineID     int
	Field      Field
	Occurrence int
	Start      int
	End        int
}

// Cursor indexes into a match list.
type Cursor int

// NoCursor means no match is selected.
const NoCursor Cursor = -1

// Direction of a navigation step.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Search finds every case-insensitive literal occurrence of query in line
// keys and scalar values. Matches are ordered by line, keys before values,
// then by position. Container summaries and closing markers never match.
// Fold state is ignored.
func Search(lines []Line, query string) []Match {
	if query == "" {
		return nil
	}
	re := queryPattern(query)

	var matches []Match
	for _, l := range lines {
		if l.Kind != KindValue {
			continue
		}
		if l.HasKey {
			matches = appendMatches(matches, re, l.ID, FieldKey, l.Key)
		}
		if !l.IsContainer {
			matches = appendMatches(matches, re, l.ID, FieldValue, jsonvalue.FormatScalar(l.Value))
		}
	}
	return matches
}

func queryPattern(query string) *regexp.Regexp {
	return regexp.MustCompile("(?i)" + regexp.QuoteMeta(query))
}

func appendMatches(matches []Match, re *regexp.Regexp, id int, field Field, text string) []Match {
	for i, loc := range re.FindAllStringIndex(text, -1) {
		matches = append(matches, Match{
			LineID:     id,
			Field:      field,
			Occurrence: i,
			Start:      loc[0],
			End:        loc[1],
		})
	}
	return matches
}

// Navigate moves cursor one step through matches, wrapping at both ends.
// From NoCursor, Forward lands on the first match and Backward on the last.
// With no matches the cursor stays at NoCursor.
func Navigate(matches []Match, cursor Cursor, dir Direction) Cursor {
	n := Cursor(len(matches))
	if n == 0 {
		return NoCursor
	}

	if dir == Backward {
		if cursor == NoCursor {
			return n - 1
		}
		next := cursor - 1
		if next < 0 || next >= n {
			return n - 1
		}
		return next
	}

	if cursor == NoCursor {
		return 0
	}
	next := cursor + 1
	if next < 0 || next >= n {
		return 0
	}
	return next
}

// Next advances the cursor and expands the folds hiding the new match.
func Next(lines []Line, matches []Match, cursor Cursor) Cursor {
	return step(lines, matches, cursor, Forward)
}

// Prev moves the cursor back and expands the folds hiding the new match.
func Prev(lines []Line, matches []Match, cursor Cursor) Cursor {
	return step(lines, matches, cursor, Backward)
}

func step(lines []Line, matches []Match, cursor Cursor, dir Direction) Cursor {
	c := Navigate(matches, cursor, dir)
	if c != NoCursor {
		ExpandAncestors(lines, matches[c].LineID)
	}
	return c
}

// CountSummary renders the match counter shown next to the search box.
func CountSummary(cursor Cursor, total int) string {
	if total == 0 {
		return "0/0"
	}
	return fmt.Sprintf("%d/%d", int(cursor)+1, total)
}

// Segment is a run of text that either matched the query or did not.
// Occurrence is the match number within the text, or -1 for plain runs.
type Segment struct {
	Text       string
	Matched    bool
	Occurrence int
}

// Highlight splits text into plain and matched segments for query.
func Highlight(text, query string) []Segment {
	if query == "" || text == "" {
		return []Segment{{Text: text, Occurrence: -1}}
	}

	var segs []Segment
	last := 0
	for i, loc := range queryPattern(query).FindAllStringIndex(text, -1) {
		if loc[0] > last {
			segs = append(segs, Segment{Text: text[last:loc[0]], Occurrence: -1})
		}
		segs = append(segs, Segment{Text: text[loc[0]:loc[1]], Matched: true, Occurrence: i})
		last = loc[1]
	}
	if last < len(text) || len(segs) == 0 {
		segs = append(segs, Segment{Text: text[last:], Occurrence: -1})
	}
	return segs
}
