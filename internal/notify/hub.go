package notify

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pingPeriod     = 30 * time.Second
	sendBufferSize = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type client struct {
	memberID string
	conn     *websocket.Conn
	send     chan []byte
}

// Hub fans notifications out to each member's live websocket connections.
// A member can hold several connections at once (multiple tabs).
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[*client]struct{})}
}

// Push sends payload to every live connection of memberID. Slow
// connections get dropped rather than blocking the caller.
func (h *Hub) Push(memberID string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[Notify] marshal failed: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[memberID] {
		select {
		case c.send <- data:
		default:
			go h.unregister(c)
		}
	}
}

// ServeWS upgrades the request and streams notifications for memberID
// until the connection closes.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, memberID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Notify] websocket upgrade failed: %v", err)
		return
	}

	c := &client{memberID: memberID, conn: conn, send: make(chan []byte, sendBufferSize)}
	h.register(c)

	go c.writeLoop(h)
	go c.readLoop(h)
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[c.memberID] == nil {
		h.clients[c.memberID] = make(map[*client]struct{})
	}
	h.clients[c.memberID][c] = struct{}{}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.clients[c.memberID]; ok {
		if _, ok := conns[c]; ok {
			delete(conns, c)
			close(c.send)
			c.conn.Close()
			if len(conns) == 0 {
				delete(h.clients, c.memberID)
			}
		}
	}
}

// readLoop drains client frames so pong handling works; incoming content
// is ignored, the stream is one-way.
func (c *client) readLoop(h *Hub) {
	defer h.unregister(c)
	c.conn.SetReadLimit(512)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writeLoop(h *Hub) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		h.unregister(c)
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
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
