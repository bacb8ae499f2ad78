package hub

import (
	"encoding/json"
	"log"
	"strings"
	"sync"

	"github.com/lxzan/gws"

	"github.com/soar/padoverlay/internal/display"
)

const sessionClientKey = "client"

// Client represents a connected WebSocket client watching one corner, or
// every corner.
type Client struct {
	hub  *Hub
	conn *gws.Conn
	send chan []byte

	// guarded by hub.mu
	corner display.Corner
	all    bool

	closeOnce sync.Once
}

// NewClient creates a new Client attached to the hub.
func NewClient(hub *Hub, conn *gws.Conn, corner display.Corner, all bool) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, 256),
		corner: corner,
		all:    all,
	}
}

func (c *Client) watches(corner display.Corner) bool {
	return c.all || c.corner == corner
}

func (c *Client) closeSend() {
	c.closeOnce.Do(func() { close(c.send) })
}

// WritePump sends messages from the send channel to the WebSocket connection.
func (c *Client) WritePump() {
	defer c.conn.WriteClose(1000, nil)

	for msg := range c.send {
		if err := c.conn.WriteMessage(gws.OpcodeText, msg); err != nil {
			break
		}
	}
}

// ParseSelection reads a corner selection. An empty value or "all" selects
// every corner.
func ParseSelection(s string) (corner display.Corner, all bool, ok bool) {
	if s == "" || strings.EqualFold(s, "all") {
		return 0, true, true
	}
	corner, ok = display.ParseCorner(s)
	return corner, false, ok
}

// Attach binds c to its connection. Call it before starting the read loop.
func Attach(conn *gws.Conn, c *Client) {
	conn.Session().Store(sessionClientKey, c)
}

func clientOf(conn *gws.Conn) (*Client, bool) {
	v, ok := conn.Session().Load(sessionClientKey)
	if !ok {
		return nil, false
	}
	c, ok := v.(*Client)
	return c, ok
}

// Handler receives gws connection events and feeds them to the hub.
type Handler struct {
	gws.BuiltinEventHandler
	hub *Hub
}

func NewHandler(h *Hub) *Handler {
	return &Handler{hub: h}
}

func (h *Handler) OnOpen(socket *gws.Conn) {
	c, ok := clientOf(socket)
	if !ok {
		log.Println("WebSocket opened without a client, closing")
		socket.WriteClose(1011, nil)
		return
	}
	h.hub.Register(c)
	go c.WritePump()
}

func (h *Handler) OnClose(socket *gws.Conn, err error) {
	if c, ok := clientOf(socket); ok {
		h.hub.Unregister(c)
	}
}

// OnMessage handles client commands.
func (h *Handler) OnMessage(socket *gws.Conn, message *gws.Message) {
	defer message.Close()

	c, ok := clientOf(socket)
	if !ok {
		return
	}

	var clientMsg ClientMessage
	if err := json.Unmarshal(message.Bytes(), &clientMsg); err != nil {
		log.Printf("Error parsing client message: %v", err)
		return
	}

	switch clientMsg.Type {
	case "select_corner":
		corner, all, ok := ParseSelection(clientMsg.Corner)
		if !ok {
			log.Printf("Failed to switch to corner %q: unknown corner", clientMsg.Corner)
			return
		}
		h.hub.Select(c, corner, all)
		log.Printf("Client switched to corner %s", clientMsg.Corner)
	}
}
