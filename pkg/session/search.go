package session

import (
	"github.com/grovetools/jsonview/pkg/linemodel"
)

// SetQuery replaces the search query, re-indexes and clears the cursor.
func (s *Session) SetQuery(q string) {
	s.query = q
	s.reindex()
}

// Query is the active search text.
func (s *Session) Query() string { return s.query }

// Matches is the current match list.
func (s *Session) Matches() []linemodel.Match { return s.matches }

// Cursor is the selected match index, or NoCursor.
func (s *Session) Cursor() linemodel.Cursor { return s.cursor }

// Next selects the following match and unfolds its ancestors.
func (s *Session) Next() (linemodel.Match, bool) {
	s.cursor = linemodel.Next(s.lines, s.matches, s.cursor)
	return s.Current()
}

// Prev selects the preceding match and unfolds its ancestors.
func (s *Session) Prev() (linemodel.Match, bool) {
	s.cursor = linemodel.Prev(s.lines, s.matches, s.cursor)
	return s.Current()
}

// Current returns the selected match.
func (s *Session) Current() (linemodel.Match, bool) {
	if s.cursor == linemodel.NoCursor || int(s.cursor) >= len(s.matches) {
		return linemodel.Match{}, false
	}
	return s.matches[s.cursor], true
}

// SearchSummary is the "i/n" match counter.
func (s *Session) SearchSummary() string {
	return linemodel.CountSummary(s.cursor, len(s.matches))
}

func (s *Session) reindex() {
	s.matches = linemodel.Search(s.lines, s.query)
	s.cursor = linemodel.NoCursor
}
