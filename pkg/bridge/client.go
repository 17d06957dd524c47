package bridge

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/grovetools/jsonview/errors"
)

// Client is the host side of a bridge connection.
type Client struct {
	ws *websocket.Conn
	mu sync.Mutex
}

// URL turns a listen address such as "127.0.0.1:7007" into the viewer's
// websocket endpoint. Full ws:// or wss:// URLs are returned unchanged.
func URL(addr string) string {
	if strings.HasPrefix(addr, "ws://") || strings.HasPrefix(addr, "wss://") {
		return addr
	}
	if strings.HasPrefix(addr, ":") {
		addr = "127.0.0.1" + addr
	}
	return "ws://" + addr + "/ws"
}

// Dial connects to a viewer.
func Dial(ctx context.Context, url string) (*Client, error) {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	ws, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, errors.TransportFailed("dial", err).WithDetail("url", url)
	}
	return &Client{ws: ws}, nil
}

// Send writes one host message.
func (c *Client) Send(msg Inbound) error {
	data, err := EncodeInbound(msg)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
		return errors.TransportFailed("send", err)
	}
	return nil
}

// Receive blocks for the next viewer message.
func (c *Client) Receive() (Outbound, error) {
	_, data, err := c.ws.ReadMessage()
	if err != nil {
		return nil, errors.TransportFailed("receive", err)
	}
	return DecodeOutbound(data)
}

// Close sends a close frame and closes the connection.
func (c *Client) Close() error {
	c.mu.Lock()
	c.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	c.mu.Unlock()
	return c.ws.Close()
}
