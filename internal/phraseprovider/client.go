// Package phraseprovider is the transport half of the remote phrase
// provider spec.md leaves as an external collaborator: it dials a
// paragraph-rephrase service over WebSocket and returns whatever
// alternatives come back, unvalidated. Callers must run the result through
// internal/phrase.Validate before a planner may act on it.
package phraseprovider

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"sync"
	"time"

	"drafter/internal/phrase"

	"github.com/gorilla/websocket"
)

// MessageType discriminates request/response frames on the wire.
type MessageType string

const (
	// TypeRephraseRequest asks the provider for alternatives to one paragraph.
	TypeRephraseRequest MessageType = "rephrase_req"
	// TypeRephraseResponse carries the provider's proposed alternatives.
	TypeRephraseResponse MessageType = "rephrase_resp"
)

// Message is the generic frame both directions use.
type Message struct {
	Type    MessageType `json:"type"`
	ID      uint64      `json:"id"`
	Payload interface{} `json:"payload,omitempty"`
}

// RephraseRequestPayload is the payload for TypeRephraseRequest.
type RephraseRequestPayload struct {
	Paragraph      string `json:"paragraph"`
	MaxSuggestions int    `json:"max_suggestions"`
}

// RephraseResponsePayload is the payload for TypeRephraseResponse.
type RephraseResponsePayload struct {
	Alternatives []phrase.Alternative `json:"alternatives"`
	Error        string               `json:"error,omitempty"`
}

// Client dials a remote rephrase service and exchanges one request/response
// pair at a time, reconnecting on failure the way the teacher's WSClient
// reconnects to a host.
type Client struct {
	addr string

	mu        sync.Mutex
	conn      *websocket.Conn
	nextID    uint64
	pending   map[uint64]chan RephraseResponsePayload
	closeOnce sync.Once
	done      chan struct{}
}

// New returns a Client that will dial addr (host:port, ws:// implied) on
// first use.
func New(addr string) *Client {
	return &Client{
		addr:    addr,
		pending: make(map[uint64]chan RephraseResponsePayload),
		done:    make(chan struct{}),
	}
}

func (c *Client) ensureConnected() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		return nil
	}

	u := url.URL{Scheme: "ws", Host: c.addr, Path: "/rephrase"}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return fmt.Errorf("phraseprovider: dial %s: %w", u.String(), err)
	}
	c.conn = conn
	go c.readPump(conn)
	return nil
}

func (c *Client) readPump(conn *websocket.Conn) {
	defer func() {
		c.mu.Lock()
		if c.conn == conn {
			c.conn = nil
		}
		c.mu.Unlock()
		conn.Close()
	}()

	conn.SetReadLimit(1 << 20)
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			log.Printf("phraseprovider: read error: %v", err)
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("phraseprovider: invalid message: %v", err)
			continue
		}
		if msg.Type != TypeRephraseResponse {
			continue
		}

		var payload RephraseResponsePayload
		raw, _ := json.Marshal(msg.Payload)
		if err := json.Unmarshal(raw, &payload); err != nil {
			log.Printf("phraseprovider: invalid response payload: %v", err)
			continue
		}

		c.mu.Lock()
		ch, ok := c.pending[msg.ID]
		if ok {
			delete(c.pending, msg.ID)
		}
		c.mu.Unlock()

		if ok {
			ch <- payload
		}
	}
}

// Rephrase requests alternatives for a single paragraph and blocks until
// the provider replies or timeout elapses. The returned alternatives are
// raw provider output: run them through internal/phrase.Validate before
// use.
func (c *Client) Rephrase(paragraph string, maxSuggestions int, timeout time.Duration) ([]phrase.Alternative, error) {
	if err := c.ensureConnected(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	id := c.nextID
	c.nextID++
	ch := make(chan RephraseResponsePayload, 1)
	c.pending[id] = ch
	conn := c.conn
	c.mu.Unlock()

	req := Message{
		Type: TypeRephraseRequest,
		ID:   id,
		Payload: RephraseRequestPayload{
			Paragraph:      paragraph,
			MaxSuggestions: maxSuggestions,
		},
	}
	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("phraseprovider: marshal request: %w", err)
	}

	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return nil, fmt.Errorf("phraseprovider: write request: %w", err)
	}

	select {
	case resp := <-ch:
		if resp.Error != "" {
			return nil, fmt.Errorf("phraseprovider: %s", resp.Error)
		}
		return resp.Alternatives, nil
	case <-time.After(timeout):
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
		return nil, fmt.Errorf("phraseprovider: timed out waiting for response")
	}
}

// Close terminates the underlying connection, if any.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.mu.Lock()
		if c.conn != nil {
			c.conn.Close()
		}
		c.mu.Unlock()
	})
}
