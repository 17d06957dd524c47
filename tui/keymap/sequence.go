package keymap

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
)

// SequenceResult is the outcome of feeding one key to a Sequence.
type SequenceResult int

const (
	// SequenceNone means the buffer matches nothing and was cleared.
	SequenceNone SequenceResult = iota
	// SequencePending means the buffer is a prefix of a binding.
	SequencePending
	// SequenceMatch means the buffer equals a binding's key.
	SequenceMatch
)

func (r SequenceResult) String() string {
	switch r {
	case SequencePending:
		return "pending"
	case SequenceMatch:
		return "match"
	default:
		return "none"
	}
}

// Sequence tracks multi-key bindings such as "gg" or "zR". Keys older than
// the timeout are dropped before the next key is added.
type Sequence struct {
	buffer     string
	lastUpdate time.Time
	timeout    time.Duration
	now        func() time.Time
}

// NewSequence returns a Sequence with the given timeout; zero never expires.
func NewSequence(timeout time.Duration) *Sequence {
	return &Sequence{timeout: timeout, now: time.Now}
}

// Process appends keyStr and checks the buffer against bindings. On a match
// the index of the binding is returned and the buffer is cleared; on no match
// the buffer is cleared too.
func (s *Sequence) Process(keyStr string, bindings ...key.Binding) (SequenceResult, int) {
	now := s.now()
	if s.timeout > 0 && now.Sub(s.lastUpdate) > s.timeout {
		s.buffer = ""
	}
	s.lastUpdate = now
	s.buffer += keyStr

	for i, b := range bindings {
		if Matches(s.buffer, b) {
			s.buffer = ""
			return SequenceMatch, i
		}
	}
	for _, b := range bindings {
		if IsPrefix(s.buffer, b) {
			return SequencePending, -1
		}
	}
	s.buffer = ""
	return SequenceNone, -1
}

// Pending reports whether a partial sequence is buffered.
func (s *Sequence) Pending() bool {
	return s.buffer != ""
}

// Clear drops any buffered keys.
func (s *Sequence) Clear() {
	s.buffer = ""
}

// Matches reports whether one of binding's keys equals buffer.
func Matches(buffer string, binding key.Binding) bool {
	if !binding.Enabled() {
		return false
	}
	for _, k := range binding.Keys() {
		if k == buffer {
			return true
		}
	}
	return false
}

// IsPrefix reports whether buffer starts, but does not complete, one of binding's keys.
func IsPrefix(buffer string, binding key.Binding) bool {
	if buffer == "" || !binding.Enabled() {
		return false
	}
	for _, k := range binding.Keys() {
		if len(buffer) < len(k) && strings.HasPrefix(k, buffer) {
			return true
		}
	}
	return false
}

// namedKeys are key names that are typed as a single press.
var namedKeys = map[string]bool{
	"up": true, "down": true, "left": true, "right": true,
	"home": true, "end": true, "pgup": true, "pgdown": true,
	"enter": true, "esc": true, "tab": true, "space": true,
	"backspace": true, "delete": true, "insert": true,
}

// RuneKeys returns a copy of binding limited to keys typed as characters, so
// "h" is not taken for the start of "home".
func RuneKeys(binding key.Binding) key.Binding {
	var keys []string
	for _, k := range binding.Keys() {
		if namedKeys[k] || strings.Contains(k, "+") || (len(k) > 1 && k[0] == 'f' && k[1] >= '0' && k[1] <= '9') {
			continue
		}
		keys = append(keys, k)
	}
	b := key.NewBinding(key.WithKeys(keys...))
	if len(keys) == 0 || !binding.Enabled() {
		b.SetEnabled(false)
	}
	return b
}
