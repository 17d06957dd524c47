// Package session holds the state of one viewer: the document, its lines,
// fold flags, the search query and cursor, and the pending edit. Every
// operation is synchronous; callers serialize access.
package session

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/jsonview/errors"
	"github.com/grovetools/jsonview/logging"
	"github.com/grovetools/jsonview/pkg/bridge"
	"github.com/grovetools/jsonview/pkg/jsonvalue"
	"github.com/grovetools/jsonview/pkg/linemodel"
)

var log = logging.NewLogger("jsonview-session")

const (
	// StagedMessage is sent after an edit is committed.
	StagedMessage = `Change staged. Sync to input to apply it.`
	// SyncedMessage is sent after the edited document is written back to the input.
	SyncedMessage = "Synced to input"
	// CopiedMessage is shown once text reaches the clipboard.
	CopiedMessage = "Copied to clipboard"
	// ParseErrorPrefix starts every parse failure notice.
	ParseErrorPrefix = "JSON parse error: "
)

// Options tune a Session.
type Options struct {
	// ExpandDepth is the fold depth applied after each load; negative expands all.
	ExpandDepth int
	// SyncIndent is the indent width used by Sync and FormatInput.
	SyncIndent int
}

// DefaultOptions expands everything and syncs with four spaces.
func DefaultOptions() Options {
	return Options{ExpandDepth: -1, SyncIndent: 4}
}

// Session is not safe for concurrent use.
type Session struct {
	opts Options
	sink bridge.Sink
	log  *logrus.Entry

	input string
	root  jsonvalue.Value
	lines []linemodel.Line

	query   string
	matches []linemodel.Match
	cursor  linemodel.Cursor

	editing int
	dirty   bool
}

// New creates an empty session. A nil sink discards outbound messages.
func New(sink bridge.Sink, opts Options) *Session {
	if sink == nil {
		sink = bridge.Discard
	}
	if opts.SyncIndent <= 0 {
		opts.SyncIndent = DefaultOptions().SyncIndent
	}
	return &Session{
		opts:    opts,
		sink:    sink,
		log:     log,
		cursor:  linemodel.NoCursor,
		editing: linemodel.NoLine,
	}
}

// Apply handles one inbound host message.
func (s *Session) Apply(msg bridge.Inbound) error {
	switch m := msg.(type) {
	case bridge.LoadDocument:
		return s.Load(m.Text)
	case bridge.ClearDocument:
		s.Clear()
		return nil
	default:
		return errors.InvalidMessage(fmt.Sprintf("%T", msg), "unsupported inbound message")
	}
}

// Load parses text and replaces the document. Blank text is ignored. On a
// parse failure the previous document stays and a NotifyError is sent.
func (s *Session) Load(text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	s.input = text

	root, err := jsonvalue.ParseString(text)
	if err != nil {
		s.log.WithError(err).Debug("Document rejected")
		s.sink.Send(bridge.NotifyError{Message: ParseErrorPrefix + parseReason(err)})
		return err
	}

	s.root = root
	s.lines = linemodel.Build(root)
	linemodel.ExpandToDepth(s.lines, s.opts.ExpandDepth)
	s.editing = linemodel.NoLine
	s.dirty = false
	s.reindex()

	s.log.WithFields(logrus.Fields{
		"type":  jsonvalue.TypeName(root),
		"lines": len(s.lines),
	}).Debug("Document loaded")
	return nil
}

// parseReason prefers the decoder's own message over the wrapped error text.
func parseReason(err error) string {
	var viewErr *errors.ViewError
	if !stderrors.As(err, &viewErr) {
		return err.Error()
	}
	if viewErr.Cause != nil {
		return viewErr.Cause.Error()
	}
	return viewErr.Message
}

// Clear drops the document, the input text and the query state.
func (s *Session) Clear() {
	s.input = ""
	s.root = nil
	s.lines = nil
	s.query = ""
	s.matches = nil
	s.cursor = linemodel.NoCursor
	s.editing = linemodel.NoLine
	s.dirty = false
}

// Empty reports whether no document is loaded.
func (s *Session) Empty() bool { return s.root == nil }

// Root is the current document, or nil.
func (s *Session) Root() jsonvalue.Value { return s.root }

// Lines is the current line model. Callers must not reslice it.
func (s *Session) Lines() []linemodel.Line { return s.lines }

// Input is the current input text.
func (s *Session) Input() string { return s.input }

// Dirty reports whether edits have not been synced to the input yet.
func (s *Session) Dirty() bool { return s.dirty }

// Toggle flips the fold state of line id.
func (s *Session) Toggle(id int) { linemodel.Toggle(s.lines, id) }

// SetAll expands or collapses every container.
func (s *Session) SetAll(expand bool) { linemodel.SetAll(s.lines, expand) }

// ExpandToDepth applies a fold depth to the current lines.
func (s *Session) ExpandToDepth(depth int) { linemodel.ExpandToDepth(s.lines, depth) }

// Visible returns the ids of the lines to draw.
func (s *Session) Visible() []int { return linemodel.Visible(s.lines) }

// Status describes the loaded document for the status line.
func (s *Session) Status() string {
	if s.root == nil {
		return "Ready"
	}
	compact, err := jsonvalue.Marshal(s.root)
	if err != nil {
		return fmt.Sprintf("Type: %s", jsonvalue.TypeName(s.root))
	}
	return fmt.Sprintf("Type: %s | Size: %d chars", jsonvalue.TypeName(s.root), len([]rune(string(compact))))
}
