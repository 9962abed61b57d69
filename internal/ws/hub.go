// Package ws pushes reservation and enrollment changes to connected
// dashboard clients so occupancy views refresh without polling.
package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
)

const (
	KindReservationCreated   = "reservation_created"
	KindReservationUpdated   = "reservation_updated"
	KindReservationCancelled = "reservation_cancelled"
	KindEventRegistered      = "event_registered"
	KindEventWithdrawn       = "event_withdrawn"
)

type Message struct {
	Kind    string    `json:"kind"`
	ID      int64     `json:"id"`
	At      time.Time `json:"at"`
	Payload any       `json:"payload,omitempty"`
}

// connection pairs a socket with its outbound queue. writePump is the
// only goroutine allowed to write to conn.
type connection struct {
	userID int64
	conn   *websocket.Conn
	send   chan []byte
}

type Hub struct {
	mu          sync.RWMutex
	connections map[int64]*connection // userID -> connection
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[int64]*connection),
	}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if old, ok := h.connections[c.userID]; ok {
		close(old.send)
	}
	h.connections[c.userID] = c
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if existing, ok := h.connections[c.userID]; ok && existing == c {
		delete(h.connections, c.userID)
		close(c.send)
	}
}

// Broadcast queues the message for every connected client.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.connections {
		select {
		case c.send <- data:
		default:
			// Client too slow; drop the update
		}
	}
}

func (h *Hub) OnlineCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for userID, c := range h.connections {
		delete(h.connections, userID)
		close(c.send)
	}
}

// ServeWS registers the connection and starts the read/write loops.
// Blocks until the client disconnects.
func (h *Hub) ServeWS(conn *websocket.Conn, userID int64) {
	c := &connection{
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, 256),
	}

	h.register(c)

	go h.writePump(c)
	h.readPump(c)
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Clients never send application frames; the loop only keeps the
	// pong handler running.
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
