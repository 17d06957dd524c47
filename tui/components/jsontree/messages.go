package jsontree

import "github.com/grovetools/jsonview/pkg/bridge"

// LoadMsg replaces the document with Text. Source names where it came from
// (a file path, "stdin", a follow line) and is shown in the header.
type LoadMsg struct {
	Text   string
	Source string
}

// HostMsg delivers a message from a remote host over the bridge.
type HostMsg struct {
	Msg bridge.Inbound
}

// HostErrorMsg reports a failure outside the model, such as a read error
// while reloading a watched file.
type HostErrorMsg struct {
	Err error
}
