// Package remote exposes a websocket endpoint that can replace the sphere
// configuration, request a reset and receive periodic stats.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pthm-cable/discosculpter/components"
	"github.com/pthm-cable/discosculpter/config"
	"github.com/pthm-cable/discosculpter/telemetry"
)

// Message types on the wire.
const (
	TypeConfig = "config"
	TypeReset  = "reset"
	TypeStats  = "stats"
	TypeError  = "error"
)

const (
	writeTimeout = 2 * time.Second
	sendBuffer   = 16 // queued outgoing messages per client
)

// Message is the JSON envelope for everything sent or received.
type Message struct {
	Type   string                   `json:"type"`
	Config *components.SphereConfig `json:"config,omitempty"`
	Stats  *telemetry.WindowStats   `json:"stats,omitempty"`
	Error  string                   `json:"error,omitempty"`
}

// CommandKind identifies what a Command asks the loop to do.
type CommandKind uint8

const (
	CommandConfig CommandKind = iota
	CommandReset
)

// Command is handed from connection goroutines to the simulation loop.
// A config command holds only the fields its message named.
type Command struct {
	Kind CommandKind

	patch  json.RawMessage
	ranges config.ControlsConfig
}

// Merge returns live with the fields named by a config command replaced,
// then clamped to the control ranges. Other kinds return live unchanged.
func (c Command) Merge(live components.SphereConfig) components.SphereConfig {
	if c.Kind != CommandConfig {
		return live
	}
	next := live
	if err := json.Unmarshal(c.patch, &next); err != nil {
		// decode validated the patch already
		return live
	}
	return c.ranges.Clamp(next)
}

// client is one websocket connection. Only its write loop writes to conn.
type client struct {
	conn *websocket.Conn
	send chan Message
}

// Server accepts websocket clients on /ws. Connection goroutines only
// enqueue commands; the loop applies them via Drain.
type Server struct {
	controls config.ControlsConfig
	commands chan Command
	dropped  atomic.Int64
	lagged   atomic.Int64
	upgrader websocket.Upgrader

	clientsMu sync.RWMutex
	clients   map[*client]struct{}

	httpServer *http.Server
	listener   net.Listener
}

// NewServer creates a server whose config messages are clamped to
// controls. buffer is the command queue length.
func NewServer(controls config.ControlsConfig, buffer int) *Server {
	if buffer < 1 {
		buffer = 1
	}
	return &Server{
		controls: controls,
		commands: make(chan Command, buffer),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
}

// Handler returns the HTTP handler serving /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

// Start listens on addr and serves in the background.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	s.listener = ln
	s.httpServer = &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("remote server stopped", "error", err)
		}
	}()
	slog.Info("remote server listening", "addr", ln.Addr().String())
	return nil
}

// Addr returns the listening address, or "" before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Shutdown stops accepting clients and closes open connections.
func (s *Server) Shutdown(ctx context.Context) error {
	s.clientsMu.Lock()
	for c := range s.clients {
		c.conn.Close()
	}
	s.clientsMu.Unlock()

	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// Drain applies every queued command without blocking and returns how
// many were applied.
func (s *Server) Drain(apply func(Command)) int {
	n := 0
	for {
		select {
		case cmd := <-s.commands:
			apply(cmd)
			n++
		default:
			return n
		}
	}
}

// Dropped returns how many commands were discarded because the queue was
// full.
func (s *Server) Dropped() int64 {
	return s.dropped.Load()
}

// Lagged returns how many outgoing messages were skipped because a
// client's send queue was full.
func (s *Server) Lagged() int64 {
	return s.lagged.Load()
}

// Clients returns the number of connected clients.
func (s *Server) Clients() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// enqueue adds cmd, discarding the oldest queued command when full.
func (s *Server) enqueue(cmd Command) {
	for {
		select {
		case s.commands <- cmd:
			return
		default:
		}
		select {
		case <-s.commands:
			s.dropped.Add(1)
		default:
		}
	}
}

// Broadcast queues window stats for every client without blocking. A
// client whose queue is full misses this message.
func (s *Server) Broadcast(stats telemetry.WindowStats) {
	msg := Message{Type: TypeStats, Stats: &stats}

	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	for c := range s.clients {
		s.queue(c, msg)
	}
}

// queue hands msg to c's write loop. Callers hold clientsMu.
func (s *Server) queue(c *client, msg Message) {
	select {
	case c.send <- msg:
	default:
		s.lagged.Add(1)
	}
}

// reply queues msg for c if it is still connected.
func (s *Server) reply(c *client, msg Message) {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	if _, ok := s.clients[c]; ok {
		s.queue(c, msg)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	c := &client{conn: conn, send: make(chan Message, sendBuffer)}
	s.clientsMu.Lock()
	s.clients[c] = struct{}{}
	s.clientsMu.Unlock()
	defer s.removeClient(c)
	go s.writeLoop(c)

	remoteAddr := conn.RemoteAddr().String()
	slog.Info("remote client connected", "remote", remoteAddr)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Warn("remote read failed", "remote", remoteAddr, "error", err)
			}
			break
		}

		cmd, err := s.decode(data)
		if err != nil {
			slog.Debug("remote message rejected", "remote", remoteAddr, "error", err)
			s.reply(c, Message{Type: TypeError, Error: err.Error()})
			continue
		}
		s.enqueue(cmd)
	}
	slog.Info("remote client disconnected", "remote", remoteAddr)
}

// writeLoop sends queued messages until the client is removed. A failed
// write closes the connection, which ends the read loop.
func (s *Server) writeLoop(c *client) {
	failed := false
	for msg := range c.send {
		if failed {
			continue
		}
		c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteJSON(msg); err != nil {
			slog.Warn("remote write failed", "remote", c.conn.RemoteAddr().String(), "error", err)
			c.conn.Close()
			failed = true
		}
	}
}

// decode parses one client message into a command.
func (s *Server) decode(data []byte) (Command, error) {
	var env struct {
		Type   string          `json:"type"`
		Config json.RawMessage `json:"config"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return Command{}, fmt.Errorf("invalid message: %w", err)
	}

	switch env.Type {
	case TypeReset:
		return Command{Kind: CommandReset}, nil
	case TypeConfig:
		if len(env.Config) == 0 {
			return Command{}, errors.New("config message without config")
		}
		var check components.SphereConfig
		if err := json.Unmarshal(env.Config, &check); err != nil {
			return Command{}, fmt.Errorf("invalid config: %w", err)
		}
		return Command{Kind: CommandConfig, patch: env.Config, ranges: s.controls}, nil
	}
	return Command{}, fmt.Errorf("unknown message type %q", env.Type)
}

// removeClient unregisters c and stops its write loop.
func (s *Server) removeClient(c *client) {
	s.clientsMu.Lock()
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.send)
	}
	s.clientsMu.Unlock()
}
