package session

import (
	"github.com/grovetools/jsonview/errors"
	"github.com/grovetools/jsonview/pkg/bridge"
	"github.com/grovetools/jsonview/pkg/jsonvalue"
	"github.com/grovetools/jsonview/pkg/linemodel"
)

// BeginEdit starts editing line id. It returns false, changing nothing, when
// another edit is pending or the line is not an editable scalar.
func (s *Session) BeginEdit(id int) bool {
	if s.editing != linemodel.NoLine {
		return false
	}
	if id < 0 || id >= len(s.lines) || !s.lines[id].Editable() {
		return false
	}
	s.editing = id
	return true
}

// Editing returns the line being edited.
func (s *Session) Editing() (int, bool) {
	return s.editing, s.editing != linemodel.NoLine
}

// EditDraft is the text an edit starts from: strings without quotes, other
// scalars as displayed.
func (s *Session) EditDraft() string {
	if s.editing == linemodel.NoLine {
		return ""
	}
	return jsonvalue.EditText(s.lines[s.editing].Value)
}

// CommitEdit coerces raw into the edited line, re-runs the search and marks
// the document dirty.
func (s *Session) CommitEdit(raw string) (jsonvalue.Value, error) {
	if s.editing == linemodel.NoLine {
		return nil, errors.EditNotActive()
	}
	id := s.editing
	s.editing = linemodel.NoLine

	root, coerced, err := linemodel.Commit(s.root, s.lines, id, raw)
	if err != nil {
		s.log.WithError(err).Debug("Edit rejected")
		return nil, err
	}
	s.root = root
	s.dirty = true
	s.reindex()

	s.log.WithField("path", s.lines[id].Path.String()).Debug("Edit committed")
	s.sink.Send(bridge.NotifyInfo{Message: StagedMessage})
	return coerced, nil
}

// DiscardEdit abandons the pending edit without touching the document.
func (s *Session) DiscardEdit() {
	s.editing = linemodel.NoLine
}
