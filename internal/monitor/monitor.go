// Package monitor is an optional trace surface: while a plan plays back it
// streams each decoded plan.Action over WebSocket to any connected viewer,
// the way a browser devtool would watch a live session. It is not part of
// planning correctness — playback works with no viewer connected.
package monitor

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"drafter/internal/plan"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// MessageType discriminates the frames a viewer receives.
type MessageType string

const (
	// TypeAction announces one plan.Action as it is replayed.
	TypeAction MessageType = "action"
	// TypeStatus announces playback lifecycle transitions.
	TypeStatus MessageType = "status"
)

// Message is the generic container for all monitor WebSocket frames.
type Message struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// ActionPayload wraps one action with the index it occupies in the plan.
type ActionPayload struct {
	Index  int         `json:"index"`
	Action plan.Action `json:"action"`
}

// StatusPayload announces a playback lifecycle transition.
type StatusPayload struct {
	State string `json:"state"`
	Total int    `json:"total,omitempty"`
}

// client is a single connected viewer.
type client struct {
	manager *Server
	conn    *websocket.Conn
	send    chan []byte
	addr    string
}

// Server broadcasts a plan's action stream to connected viewers over
// WebSocket, and serves the upgrade endpoint itself.
type Server struct {
	Addr string

	clients    map[*client]bool
	clientsMu  sync.RWMutex
	broadcast  chan Message
	register   chan *client
	unregister chan *client
	shutdown   chan struct{}
}

// New returns a Server bound to addr (e.g. "127.0.0.1:8787"). Call Start to
// begin serving.
func New(addr string) *Server {
	return &Server{
		Addr:       addr,
		clients:    make(map[*client]bool),
		broadcast:  make(chan Message),
		register:   make(chan *client),
		unregister: make(chan *client),
		shutdown:   make(chan struct{}),
	}
}

// Start runs the broadcast loop and HTTP server. It blocks until the
// listener fails or Stop is called.
func (s *Server) Start() error {
	go s.loop()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)

	httpServer := &http.Server{Addr: s.Addr, Handler: mux}
	go func() {
		<-s.shutdown
		httpServer.Close()
	}()

	log.Printf("monitor: listening on %s", s.Addr)
	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop shuts the server down.
func (s *Server) Stop() {
	close(s.shutdown)
}

func (s *Server) loop() {
	for {
		select {
		case c := <-s.register:
			s.clientsMu.Lock()
			s.clients[c] = true
			s.clientsMu.Unlock()
			log.Printf("monitor: viewer connected from %s (%d total)", c.addr, len(s.clients))

		case c := <-s.unregister:
			s.clientsMu.Lock()
			if _, ok := s.clients[c]; ok {
				delete(s.clients, c)
				close(c.send)
			}
			s.clientsMu.Unlock()

		case msg := <-s.broadcast:
			s.broadcastMessage(msg)

		case <-s.shutdown:
			return
		}
	}
}

func (s *Server) broadcastMessage(msg Message) {
	jsonMsg, err := json.Marshal(msg)
	if err != nil {
		log.Printf("monitor: failed to marshal broadcast message: %v", err)
		return
	}

	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	for c := range s.clients {
		select {
		case c.send <- jsonMsg:
		default:
			close(c.send)
			delete(s.clients, c)
		}
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("monitor: failed to upgrade connection: %v", err)
		return
	}

	c := &client{manager: s, conn: conn, send: make(chan []byte, 256), addr: r.RemoteAddr}
	s.register <- c

	go c.writePump()
	go c.readPump()
}

func (c *client) readPump() {
	defer func() {
		c.manager.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(4096)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(50 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)
			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// BroadcastAction announces one action at the given index. Safe to call
// with no viewers connected.
func (s *Server) BroadcastAction(index int, a plan.Action) {
	s.broadcast <- Message{Type: TypeAction, Payload: ActionPayload{Index: index, Action: a}}
}

// BroadcastStatus announces a playback lifecycle transition, e.g.
// "playing", "done", "aborted".
func (s *Server) BroadcastStatus(state string, total int) {
	s.broadcast <- Message{Type: TypeStatus, Payload: StatusPayload{State: state, Total: total}}
}
