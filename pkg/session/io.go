package session

import (
	"github.com/grovetools/jsonview/errors"
	"github.com/grovetools/jsonview/pkg/bridge"
	"github.com/grovetools/jsonview/pkg/jsonvalue"
	"github.com/grovetools/jsonview/pkg/linemodel"
)

// Sync writes the edited document back into the input text.
func (s *Session) Sync() (string, error) {
	if s.root == nil {
		return s.input, errors.EmptyInput()
	}
	out, err := jsonvalue.MarshalIndent(s.root, s.opts.SyncIndent)
	if err != nil {
		return s.input, errors.Wrap(err, errors.ErrCodeInternal, "failed to encode document")
	}
	s.input = string(out)
	s.dirty = false
	s.sink.Send(bridge.NotifyInfo{Message: SyncedMessage})
	return s.input, nil
}

// FormatInput pretty-prints the input text. Invalid input is left alone.
func (s *Session) FormatInput() string {
	if formatted, err := jsonvalue.Format(s.input, s.opts.SyncIndent); err == nil {
		s.input = formatted
	}
	return s.input
}

// CompactInput strips whitespace from the input text. Invalid input is left alone.
func (s *Session) CompactInput() string {
	if compact, err := jsonvalue.Compact(s.input); err == nil {
		s.input = compact
	}
	return s.input
}

// CopyInput asks the host to copy the input text.
func (s *Session) CopyInput() {
	s.sink.Send(bridge.RequestCopyToClipboard{Text: s.input})
}

// CopyValue asks the host to copy the value on line id, containers as
// indented JSON.
func (s *Session) CopyValue(id int) error {
	l, err := s.valueLine(id)
	if err != nil {
		return err
	}

	var text string
	switch v := l.Value.(type) {
	case jsonvalue.String:
		text = string(v)
	default:
		out, err := jsonvalue.MarshalIndent(v, s.opts.SyncIndent)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeInternal, "failed to encode value")
		}
		text = string(out)
	}
	s.sink.Send(bridge.RequestCopyToClipboard{Text: text})
	return nil
}

// CopyPath asks the host to copy the path of line id.
func (s *Session) CopyPath(id int) error {
	l, err := s.valueLine(id)
	if err != nil {
		return err
	}
	s.sink.Send(bridge.RequestCopyToClipboard{Text: l.Path.String()})
	return nil
}

// valueLine resolves closing markers to their opening line.
func (s *Session) valueLine(id int) (linemodel.Line, error) {
	if id < 0 || id >= len(s.lines) {
		return linemodel.Line{}, errors.New(errors.ErrCodeInvalidInput, "no such line").WithDetail("line", id)
	}
	l := s.lines[id]
	if l.IsClosing() {
		l = s.lines[l.OpenLineID]
	}
	return l, nil
}
