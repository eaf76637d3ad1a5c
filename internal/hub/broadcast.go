package hub

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

const fullSyncInterval = 5 * time.Second

// Renderer renders the poll text of a device slot.
type Renderer interface {
	Render(slot int) (string, bool)
}

// Broadcaster listens for slot changes and broadcasts the re-rendered text
// to the hub. Unchanged renderings are suppressed.
type Broadcaster struct {
	hub      *Hub
	changes  <-chan int
	renderer Renderer

	mu       sync.Mutex
	lastText map[int]string
	seq      int64
}

func NewBroadcaster(h *Hub, r Renderer, changes <-chan int) *Broadcaster {
	return &Broadcaster{
		hub:      h,
		changes:  changes,
		renderer: r,
		lastText: make(map[int]string),
	}
}

// Run starts the broadcaster loop. Should be run in a goroutine.
func (b *Broadcaster) Run(ctx context.Context) {
	ticker := time.NewTicker(fullSyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case slot, ok := <-b.changes:
			if !ok {
				return
			}
			text, ok := b.renderer.Render(slot)
			if !ok {
				continue
			}

			b.mu.Lock()
			if b.lastText[slot] == text {
				b.mu.Unlock()
				continue
			}
			b.lastText[slot] = text
			b.mu.Unlock()

			b.send(slot, text)

		case <-ticker.C:
			b.mu.Lock()
			last := make(map[int]string, len(b.lastText))
			for slot, text := range b.lastText {
				last[slot] = text
			}
			b.mu.Unlock()
			for slot, text := range last {
				b.send(slot, text)
			}
		}
	}
}

// SendInitialState sends the current rendering of the client's slot.
func (b *Broadcaster) SendInitialState(c *Client) {
	text, ok := b.renderer.Render(c.Slot())
	if !ok {
		return
	}
	data, err := json.Marshal(NewStateMessage(b.nextSeq(), c.Slot(), text))
	if err != nil {
		b.hub.l.Error("Error marshaling initial state", "error", err)
		return
	}
	c.trySend(data)
}

func (b *Broadcaster) nextSeq() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	return b.seq
}

func (b *Broadcaster) send(slot int, text string) {
	data, err := json.Marshal(NewStateMessage(b.nextSeq(), slot, text))
	if err != nil {
		b.hub.l.Error("Error marshaling state message", "error", err)
		return
	}
	b.hub.BroadcastToSlot(data, slot)
}
