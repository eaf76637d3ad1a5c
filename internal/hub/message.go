package hub

import "time"

// WSMessage represents a WebSocket message sent from server to client.
type WSMessage struct {
	Type      string `json:"type"`           // "state" or "slot_selected"
	Seq       int64  `json:"seq"`            // Sequence number for ordering
	Timestamp int64  `json:"timestamp"`      // Unix timestamp in milliseconds
	Slot      int    `json:"slot"`           // Device slot the message is about
	Text      string `json:"text,omitempty"` // Poll-format rendering of the slot
}

// NewStateMessage creates a "state" message carrying the rendered slot.
func NewStateMessage(seq int64, slot int, text string) *WSMessage {
	return &WSMessage{
		Type:      "state",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Slot:      slot,
		Text:      text,
	}
}

// NewSlotSelectedMessage creates a "slot_selected" confirmation message.
func NewSlotSelectedMessage(slot int) *WSMessage {
	return &WSMessage{
		Type:      "slot_selected",
		Timestamp: time.Now().UnixMilli(),
		Slot:      slot,
	}
}

// ClientMessage represents a message sent from the client to the server.
type ClientMessage struct {
	Type string `json:"type"`
	Slot int    `json:"slot"`
}
