package bridge

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc"

	"github.com/grovetools/jsonview/errors"
)

const (
	writeTimeout  = 5 * time.Second
	outboundQueue = 32
	inboundQueue  = 64
)

// Server accepts host connections on /ws. Every decoded inbound message is
// delivered on Inbound(); outbound messages sent to the server are broadcast
// to all connected hosts.
type Server struct {
	logger   *logrus.Entry
	server   *http.Server
	listener net.Listener
	upgrader websocket.Upgrader

	inbound     chan Inbound
	closing     chan struct{}
	closeOnce   sync.Once
	inboundOnce sync.Once

	mu    sync.Mutex
	conns map[string]*hostConn
	wg    conc.WaitGroup
}

type hostConn struct {
	id  string
	ws  *websocket.Conn
	out chan Outbound
}

// New creates a Server. allowedOrigins lists the browser origins accepted
// on upgrade; "*" accepts any, and an empty list only accepts same-host
// requests or clients that send no Origin.
func New(logger *logrus.Entry, allowedOrigins []string) *Server {
	s := &Server{
		logger:  logger,
		inbound: make(chan Inbound, inboundQueue),
		closing: make(chan struct{}),
		conns:   make(map[string]*hostConn),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     originChecker(allowedOrigins),
	}

	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", s.handleWebSocket)

	s.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return nil
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}
}

// Inbound delivers host messages. It is closed after Shutdown.
func (s *Server) Inbound() <-chan Inbound {
	return s.inbound
}

// Listen binds addr without serving yet.
func (s *Server) Listen(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.TransportFailed("listen", err).WithDetail("addr", addr)
	}
	s.listener = listener
	return nil
}

// Addr is the bound address, or "" before Listen.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Serve accepts connections on the bound listener. It blocks until the
// server stops and returns nil after a clean Shutdown.
func (s *Server) Serve() error {
	if s.listener == nil {
		return errors.New(errors.ErrCodeTransport, "server is not listening")
	}

	s.logger.WithField("addr", s.Addr()).Info("Bridge listening")
	if err := s.server.Serve(s.listener); err != nil && err != http.ErrServerClosed {
		return errors.TransportFailed("serve", err)
	}
	return nil
}

// Send broadcasts msg to every connected host. Hosts whose queue is full
// miss the message.
func (s *Server) Send(msg Outbound) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.conns {
		select {
		case c.out <- msg:
		default:
			s.logger.WithField("conn", c.id).Warn("Outbound queue full, dropping message")
		}
	}
}

// Connections returns the number of connected hosts.
func (s *Server) Connections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

// Shutdown stops accepting connections, closes every host connection and
// waits for their goroutines.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down bridge...")
	s.closeOnce.Do(func() { close(s.closing) })

	err := s.server.Shutdown(ctx)
	if s.listener != nil {
		// Serve may never have run; the listener is closed either way.
		_ = s.listener.Close()
	}

	s.mu.Lock()
	conns := make([]*hostConn, 0, len(s.conns))
	for _, c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()
	for _, c := range conns {
		s.drop(c)
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		s.inboundOnce.Do(func() { close(s.inbound) })
	case <-ctx.Done():
		return ctx.Err()
	}
	return err
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	select {
	case <-s.closing:
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	default:
	}

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.WithError(err).Debug("Websocket upgrade failed")
		return
	}

	c := &hostConn{
		id:  uuid.NewString(),
		ws:  ws,
		out: make(chan Outbound, outboundQueue),
	}

	if !s.register(c) {
		ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
			time.Now().Add(writeTimeout))
		ws.Close()
		return
	}
	s.logger.WithField("conn", c.id).Debug("Host connected")
}

// register adds c and starts its loops unless Shutdown has begun. Both
// happen under s.mu so a Shutdown snapshot either sees c or c never runs.
func (s *Server) register(c *hostConn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-s.closing:
		return false
	default:
	}
	s.conns[c.id] = c
	s.wg.Go(func() { s.readLoop(c) })
	s.wg.Go(func() { s.writeLoop(c) })
	return true
}

func (s *Server) readLoop(c *hostConn) {
	defer s.drop(c)
	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.WithField("conn", c.id).WithError(err).Debug("Host read ended")
			}
			return
		}

		msg, err := Decode(data)
		if err != nil {
			s.logger.WithField("conn", c.id).WithError(err).Warn("Rejected host message")
			s.reply(c, NotifyError{Message: err.Error()})
			continue
		}

		select {
		case s.inbound <- msg:
		case <-s.closing:
			return
		}
	}
}

func (s *Server) writeLoop(c *hostConn) {
	defer c.ws.Close()
	for msg := range c.out {
		data, err := EncodeOutbound(msg)
		if err != nil {
			s.logger.WithError(err).Warn("Dropping unencodable message")
			continue
		}
		c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
			s.logger.WithField("conn", c.id).WithError(err).Debug("Host write failed")
			return
		}
	}
	c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// reply queues msg for a single host.
func (s *Server) reply(c *hostConn, msg Outbound) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.conns[c.id]; !ok {
		return
	}
	select {
	case c.out <- msg:
	default:
	}
}

// drop unregisters c and closes its queue, which ends writeLoop and the socket.
func (s *Server) drop(c *hostConn) {
	s.mu.Lock()
	_, ok := s.conns[c.id]
	if ok {
		delete(s.conns, c.id)
		close(c.out)
	}
	s.mu.Unlock()
	if ok {
		s.logger.WithField("conn", c.id).Debug("Host disconnected")
	}
}
