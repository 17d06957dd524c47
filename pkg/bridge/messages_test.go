package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/jsonview/errors"
)

func TestDecodeInbound(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Inbound
		code errors.ErrorCode
	}{
		{"update", `{"type":"updateJSON","text":"{\"a\":1}"}`, LoadDocument{Text: `{"a":1}`}, ""},
		{"update without text", `{"type":"updateJSON"}`, LoadDocument{}, ""},
		{"clear", `{"type":"clearView"}`, ClearDocument{}, ""},
		{"unknown type", `{"type":"bogus"}`, nil, errors.ErrCodeInvalidMessage},
		{"outbound type is not inbound", `{"type":"showInfo","message":"x"}`, nil, errors.ErrCodeInvalidMessage},
		{"missing type", `{"text":"x"}`, nil, errors.ErrCodeInvalidMessage},
		{"not json", `nope`, nil, errors.ErrCodeInvalidMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.data))
			if tt.code != "" {
				assert.Equal(t, tt.code, errors.GetCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOutboundRoundTrip(t *testing.T) {
	tests := []struct {
		msg  Outbound
		wire string
	}{
		{RequestCopyToClipboard{Text: "[1]"}, `{"type":"copyToClipboard","text":"[1]"}`},
		{NotifyInfo{Message: "staged"}, `{"type":"showInfo","message":"staged"}`},
		{NotifyError{Message: "bad"}, `{"type":"showError","message":"bad"}`},
	}

	for _, tt := range tests {
		t.Run(tt.wire, func(t *testing.T) {
			data, err := EncodeOutbound(tt.msg)
			require.NoError(t, err)
			assert.JSONEq(t, tt.wire, string(data))

			back, err := DecodeOutbound(data)
			require.NoError(t, err)
			assert.Equal(t, tt.msg, back)
		})
	}
}

func TestEncodeInbound(t *testing.T) {
	data, err := EncodeInbound(LoadDocument{Text: "1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"updateJSON","text":"1"}`, string(data))

	data, err = EncodeInbound(ClearDocument{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"clearView"}`, string(data))
}

func TestFanoutAndRecorder(t *testing.T) {
	var a, b Recorder
	var calls int
	sink := Fanout{&a, nil, SinkFunc(func(Outbound) { calls++ }), &b}

	sink.Send(NotifyInfo{Message: "one"})
	sink.Send(NotifyError{Message: "two"})

	assert.Len(t, a.Messages(), 2)
	assert.Equal(t, a.Messages(), b.Messages())
	assert.Equal(t, 2, calls)

	last, ok := a.Last()
	require.True(t, ok)
	assert.Equal(t, NotifyError{Message: "two"}, last)

	a.Reset()
	_, ok = a.Last()
	assert.False(t, ok)

	Discard.Send(NotifyInfo{})
}

func TestURL(t *testing.T) {
	assert.Equal(t, "ws://127.0.0.1:7007/ws", URL("127.0.0.1:7007"))
	assert.Equal(t, "ws://127.0.0.1:7007/ws", URL(":7007"))
	assert.Equal(t, "wss://example.com/ws", URL("wss://example.com/ws"))
}
