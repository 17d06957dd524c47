// Package bridge defines the messages exchanged between the viewer and its
// host, and carries them over a websocket.
package bridge

import (
	"encoding/json"
	"fmt"

	"github.com/grovetools/jsonview/errors"
)

// Wire type names.
const (
	TypeUpdateJSON      = "updateJSON"
	TypeClearView       = "clearView"
	TypeCopyToClipboard = "copyToClipboard"
	TypeShowInfo        = "showInfo"
	TypeShowError       = "showError"
)

// Inbound is a message from the host to the viewer.
type Inbound interface {
	inbound()
}

// LoadDocument asks the viewer to parse and show Text.
type LoadDocument struct {
	Text string
}

// ClearDocument resets the viewer to its empty state.
type ClearDocument struct{}

func (LoadDocument) inbound()  {}
func (ClearDocument) inbound() {}

// Outbound is a message from the viewer to the host.
type Outbound interface {
	outbound()
}

// RequestCopyToClipboard asks the host to place Text on the clipboard.
type RequestCopyToClipboard struct {
	Text string
}

// NotifyInfo is an informational notice for the user.
type NotifyInfo struct {
	Message string
}

// NotifyError is an error notice for the user.
type NotifyError struct {
	Message string
}

func (RequestCopyToClipboard) outbound() {}
func (NotifyInfo) outbound()             {}
func (NotifyError) outbound()            {}

// Envelope is the JSON shape of every message on the wire.
type Envelope struct {
	Type    string `json:"type"`
	Text    string `json:"text,omitempty"`
	Message string `json:"message,omitempty"`
}

// EncodeInbound renders a host message as an envelope.
func EncodeInbound(msg Inbound) ([]byte, error) {
	var env Envelope
	switch m := msg.(type) {
	case LoadDocument:
		env = Envelope{Type: TypeUpdateJSON, Text: m.Text}
	case ClearDocument:
		env = Envelope{Type: TypeClearView}
	default:
		return nil, errors.InvalidMessage(fmt.Sprintf("%T", msg), "not an inbound message")
	}
	return json.Marshal(env)
}

// Decode parses an inbound envelope. Unknown types are rejected.
func Decode(data []byte) (Inbound, error) {
	env, err := decodeEnvelope(data)
	if err != nil {
		return nil, err
	}
	switch env.Type {
	case TypeUpdateJSON:
		return LoadDocument{Text: env.Text}, nil
	case TypeClearView:
		return ClearDocument{}, nil
	default:
		return nil, errors.InvalidMessage(env.Type, "unknown inbound type")
	}
}

// EncodeOutbound renders a viewer message as an envelope.
func EncodeOutbound(msg Outbound) ([]byte, error) {
	var env Envelope
	switch m := msg.(type) {
	case RequestCopyToClipboard:
		env = Envelope{Type: TypeCopyToClipboard, Text: m.Text}
	case NotifyInfo:
		env = Envelope{Type: TypeShowInfo, Message: m.Message}
	case NotifyError:
		env = Envelope{Type: TypeShowError, Message: m.Message}
	default:
		return nil, errors.InvalidMessage(fmt.Sprintf("%T", msg), "not an outbound message")
	}
	return json.Marshal(env)
}

// DecodeOutbound parses an outbound envelope. Unknown types are rejected.
func DecodeOutbound(data []byte) (Outbound, error) {
	env, err := decodeEnvelope(data)
	if err != nil {
		return nil, err
	}
	switch env.Type {
	case TypeCopyToClipboard:
		return RequestCopyToClipboard{Text: env.Text}, nil
	case TypeShowInfo:
		return NotifyInfo{Message: env.Message}, nil
	case TypeShowError:
		return NotifyError{Message: env.Message}, nil
	default:
		return nil, errors.InvalidMessage(env.Type, "unknown outbound type")
	}
}

func decodeEnvelope(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return env, errors.Wrap(err, errors.ErrCodeInvalidMessage, "malformed envelope")
	}
	if env.Type == "" {
		return env, errors.InvalidMessage("", "missing type")
	}
	return env, nil
}
