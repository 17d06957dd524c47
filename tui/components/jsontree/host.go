package jsontree

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/grovetools/jsonview/errors"
	"github.com/grovetools/jsonview/pkg/bridge"
	"github.com/grovetools/jsonview/pkg/session"
)

// statusTimeout is how long info messages stay on the status line.
const statusTimeout = 3 * time.Second

// localHost queues the session's outbound messages so the model can act on
// them after each update, and forwards them to an optional remote host.
type localHost struct {
	pending []bridge.Outbound
	forward bridge.Sink
}

func (h *localHost) Send(msg bridge.Outbound) {
	h.pending = append(h.pending, msg)
	if h.forward != nil {
		h.forward.Send(msg)
	}
}

func (h *localHost) drain() []bridge.Outbound {
	out := h.pending
	h.pending = nil
	return out
}

// systemClipboard writes to the OS clipboard.
func systemClipboard(text string) error {
	if clipboard.Unsupported {
		return errors.ClipboardUnavailable(fmt.Errorf("no clipboard utility found"))
	}
	if err := clipboard.WriteAll(text); err != nil {
		return errors.ClipboardUnavailable(err)
	}
	return nil
}

type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusError
)

// clearStatusMsg clears the status line if it still shows message seq.
type clearStatusMsg struct {
	seq int
}

// flush handles the outbound messages produced by the last session call.
func (m *Model) flush() tea.Cmd {
	var cmds []tea.Cmd
	for _, msg := range m.host.drain() {
		switch msg := msg.(type) {
		case bridge.RequestCopyToClipboard:
			if err := m.clipboard(msg.Text); err != nil {
				cmds = append(cmds, m.setStatus(statusError, fmt.Sprintf("Copy failed: %v", err)))
			} else {
				cmds = append(cmds, m.setStatus(statusSuccess, session.CopiedMessage))
			}
		case bridge.NotifyInfo:
			cmds = append(cmds, m.setStatus(statusInfo, msg.Message))
		case bridge.NotifyError:
			cmds = append(cmds, m.setStatus(statusError, msg.Message))
		}
	}
	return tea.Batch(cmds...)
}

// setStatus shows text on the status line. Errors stay until replaced.
func (m *Model) setStatus(kind statusKind, text string) tea.Cmd {
	m.statusSeq++
	m.status = text
	m.statusKind = kind
	if kind == statusError {
		return nil
	}
	seq := m.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}
