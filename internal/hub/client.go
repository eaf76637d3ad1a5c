package hub

import (
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
)

// SlotSelector reports whether a device slot exists.
type SlotSelector interface {
	HasSlot(int) bool
}

// Client represents a connected WebSocket client.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	slot atomic.Int64 // device slot this client is listening to

	mu     sync.Mutex // guards send against close
	closed bool
}

// NewClient creates a new Client attached to the hub, watching slot 0.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
	}
}

// Slot returns the device slot the client watches.
func (c *Client) Slot() int {
	return int(c.slot.Load())
}

// SetSlot sets the device slot the client watches.
func (c *Client) SetSlot(slot int) {
	c.slot.Store(int64(slot))
}

// trySend queues data without blocking. It reports false when the buffer is
// full or the client has been closed.
func (c *Client) trySend(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// close ends the send channel. It is safe to call more than once.
func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// WritePump sends messages from the send channel to the WebSocket connection.
func (c *Client) WritePump() {
	defer func() {
		c.conn.Close()
	}()

	for msg := range c.send {
		err := c.conn.WriteMessage(websocket.TextMessage, msg)
		if err != nil {
			break
		}
	}
}

// ReadPumpWithHandler reads messages from the WebSocket and handles client
// commands. onSelect is called after the client switched slots.
func (c *Client) ReadPumpWithHandler(slots SlotSelector, onSelect func(*Client)) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	l := c.hub.l
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var clientMsg ClientMessage
		if err := json.Unmarshal(message, &clientMsg); err != nil {
			l.Debug("Error parsing client message", "error", err)
			continue
		}

		switch clientMsg.Type {
		case "select_slot":
			if !slots.HasSlot(clientMsg.Slot) {
				l.Warn("Failed to switch slot: invalid index", "slot", clientMsg.Slot)
				continue
			}
			c.SetSlot(clientMsg.Slot)
			data, _ := json.Marshal(NewSlotSelectedMessage(clientMsg.Slot))
			c.trySend(data)
			l.Debug("Client switched slot", "slot", clientMsg.Slot)
			if onSelect != nil {
				onSelect(c)
			}
		}
	}
}
