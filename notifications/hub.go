package notifications

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const writeWait = 10 * time.Second

// Event names pushed over the socket
const (
	EventNewNotification = "new_notification"
)

type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

// Hub keeps the live websocket connections of every recipient. A recipient
// may be connected from several tabs at once.
type Hub struct {
	clients map[string]map[*client]struct{}
	mutex   sync.Mutex
}

// NewHub returns an empty Hub
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*client]struct{}),
	}
}

// Serve registers conn under key and blocks until the peer goes away
func (h *Hub) Serve(key string, conn *websocket.Conn) {
	c := &client{conn: conn}

	h.mutex.Lock()
	if h.clients[key] == nil {
		h.clients[key] = make(map[*client]struct{})
	}
	h.clients[key][c] = struct{}{}
	h.mutex.Unlock()
	zap.S().Debugw("websocket client connected", "recipient", key)

	defer func() {
		h.remove(key, c)
		zap.S().Debugw("websocket client disconnected", "recipient", key)
	}()

	// the client never sends anything useful; reading drives ping/pong and close
	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}

// Send pushes an event to every connection of key and returns how many got it
func (h *Hub) Send(key, event string, data interface{}) int {
	h.mutex.Lock()
	targets := make([]*client, 0, len(h.clients[key]))
	for c := range h.clients[key] {
		targets = append(targets, c)
	}
	h.mutex.Unlock()

	delivered := 0
	for _, c := range targets {
		c.writeMu.Lock()
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		err := c.conn.WriteJSON(map[string]interface{}{
			"event": event,
			"data":  data,
		})
		c.writeMu.Unlock()
		if err != nil {
			zap.S().Warnw("failed to push to websocket client", "recipient", key, "error", err)
			h.remove(key, c)
			continue
		}
		delivered++
	}
	return delivered
}

// Connected returns how many connections key has open
func (h *Hub) Connected(key string) int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients[key])
}

// Close drops every connection
func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for key, set := range h.clients {
		for c := range set {
			_ = c.conn.Close()
		}
		delete(h.clients, key)
	}
}

func (h *Hub) remove(key string, c *client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if set, ok := h.clients[key]; ok {
		if _, ok := set[c]; ok {
			delete(set, c)
			_ = c.conn.Close()
		}
		if len(set) == 0 {
			delete(h.clients, key)
		}
	}
}
