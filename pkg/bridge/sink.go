package bridge

import (
	"context"
	"sync"
)

// Sink receives outbound messages.
type Sink interface {
	Send(msg Outbound)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(msg Outbound)

// Send calls f(msg).
func (f SinkFunc) Send(msg Outbound) { f(msg) }

// Discard drops every message.
var Discard Sink = SinkFunc(func(Outbound) {})

// Fanout delivers each message to every non-nil sink in order.
type Fanout []Sink

// Send implements Sink.
func (f Fanout) Send(msg Outbound) {
	for _, s := range f {
		if s != nil {
			s.Send(msg)
		}
	}
}

// Recorder keeps every message it is sent.
type Recorder struct {
	mu       sync.Mutex
	messages []Outbound
}

// Send implements Sink.
func (r *Recorder) Send(msg Outbound) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
}

// Messages returns a copy of everything recorded so far.
func (r *Recorder) Messages() []Outbound {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Outbound(nil), r.messages...)
}

// Last returns the most recent message, if any.
func (r *Recorder) Last() (Outbound, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.messages) == 0 {
		return nil, false
	}
	return r.messages[len(r.messages)-1], true
}

// Reset forgets recorded messages.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = nil
}

// Forward hands each inbound message to fn until in closes or ctx is done.
// It is how transport goroutines feed a single event loop.
func Forward(ctx context.Context, in <-chan Inbound, fn func(Inbound)) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-in:
			if !ok {
				return
			}
			fn(msg)
		}
	}
}
