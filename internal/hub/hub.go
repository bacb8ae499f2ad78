package hub

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/soar/padoverlay/internal/display"
)

// Last messages are re-sent periodically so a client that missed one
// converges without a reconnect.
const resyncInterval = 5 * time.Second

// Hub manages WebSocket clients and broadcasts messages.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	mu   sync.RWMutex
	seq  int64
	last [display.NumCorners][]byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Register adds a new client to the hub.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		c.closeSend()
	}
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Publish stamps msg with the next sequence number, remembers it as the
// latest state of corner, and sends it to every client watching corner.
// It never blocks.
func (h *Hub) Publish(corner display.Corner, msg *WSMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.seq++
	msg.Seq = h.seq
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling %s message: %v", msg.Type, err)
		return
	}
	h.last[corner] = data

	for client := range h.clients {
		if client.watches(corner) {
			h.trySend(client, data)
		}
	}
}

// trySend queues data for c, dropping the client if its buffer is full.
// Callers hold h.mu.
func (h *Hub) trySend(c *Client, data []byte) {
	select {
	case c.send <- data:
	default:
		// Client send buffer full, disconnect
		go h.Unregister(c)
	}
}

// Select changes the corner a client watches, confirms the change and
// sends the latest state of the new selection. Unregistered clients are
// ignored.
func (h *Hub) Select(c *Client, corner display.Corner, all bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.clients[c] {
		return
	}
	c.corner, c.all = corner, all

	name := corner.String()
	if all {
		name = ""
	}
	data, err := json.Marshal(NewCornerSelectedMessage(name))
	if err != nil {
		log.Printf("Error marshaling %s message: %v", TypeCornerSelected, err)
		return
	}
	h.trySend(c, data)
	h.sendLatest(c)
}

func (h *Hub) sendLatest(c *Client) {
	for corner, data := range h.last {
		if data != nil && c.watches(display.Corner(corner)) {
			h.trySend(c, data)
		}
	}
}

// ClientCount returns the number of registered clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Run starts the hub's main loop and returns when ctx is cancelled, closing
// every client.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(resyncInterval)
	defer ticker.Stop()

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.sendLatest(client)
			n := len(h.clients)
			h.mu.Unlock()
			log.Printf("Client connected (total: %d)", n)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.closeSend()
			}
			n := len(h.clients)
			h.mu.Unlock()
			log.Printf("Client disconnected (total: %d)", n)

		case <-ticker.C:
			h.mu.RLock()
			for client := range h.clients {
				h.sendLatest(client)
			}
			h.mu.RUnlock()

		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				client.closeSend()
			}
			h.mu.Unlock()
			close(h.done)
			return
		}
	}
}
