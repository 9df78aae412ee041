package hub

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeTimeout = 10 * time.Second
	pingInterval = 30 * time.Second
	readTimeout  = 60 * time.Second
)

// Conn is the subset of a websocket connection the hub writes to. Satisfied
// by *websocket.Conn; faked in tests.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Client is one live socket session of one user. Its ID doubles as the
// connection identifier persisted in the registry.
type Client struct {
	ID     string
	UserID int

	conn Conn
	send chan []byte

	mu     sync.RWMutex
	closed bool
	groups map[string]struct{}
}

func NewClient(conn Conn, userID int) *Client {
	return &Client{
		ID:     uuid.New().String(),
		UserID: userID,
		conn:   conn,
		send:   make(chan []byte, 256),
		groups: make(map[string]struct{}),
	}
}

// Send marshals the envelope onto the outbound queue without blocking. A
// client that cannot drain its queue loses frames rather than stalling the
// sender. Sends after closeQueue are dropped.
func (c *Client) Send(e Envelope) {
	payload, err := json.Marshal(e)
	if err != nil {
		return
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return
	}
	select {
	case c.send <- payload:
	default:
		// queue full, frame dropped
	}
}

// closeQueue closes the outbound queue exactly once. The read lock held by
// Send serializes in-flight sends against the close.
func (c *Client) closeQueue() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// WriteLoop drains the outbound queue and keeps the connection alive with
// pings. Returns when the context is cancelled or the queue is closed.
func (c *Client) WriteLoop(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.close()
			return
		case msg, ok := <-c.send:
			if !ok {
				c.close()
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.close()
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.close()
				return
			}
		}
	}
}

func (c *Client) close() {
	_ = c.conn.Close()
}

// readConn is the read-side surface of a websocket connection configured on
// accept.
type readConn interface {
	SetReadDeadline(t time.Time) error
	SetPongHandler(h func(string) error)
}

// armReadDeadline bounds how long a silent peer is considered alive. Each
// pong answering the write loop's pings extends the deadline.
func armReadDeadline(conn readConn) {
	_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readTimeout))
	})
}

func (c *Client) joinGroup(group string) {
	c.mu.Lock()
	c.groups[group] = struct{}{}
	c.mu.Unlock()
}

func (c *Client) leaveGroup(group string) {
	c.mu.Lock()
	delete(c.groups, group)
	c.mu.Unlock()
}

// Groups returns a copy of the client's group memberships.
func (c *Client) Groups() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	groups := make([]string, 0, len(c.groups))
	for g := range c.groups {
		groups = append(groups, g)
	}
	return groups
}
