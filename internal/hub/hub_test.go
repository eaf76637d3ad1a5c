package hub

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

type fakeRenderer map[int]string

func (f fakeRenderer) Render(slot int) (string, bool) {
	text, ok := f[slot]
	return text, ok
}

func (f fakeRenderer) HasSlot(slot int) bool {
	_, ok := f[slot]
	return ok
}

func receive(t *testing.T, c *Client) *WSMessage {
	t.Helper()
	select {
	case data := <-c.send:
		var msg WSMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatal(err)
		}
		return &msg
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
	}
	return nil
}

func expectNothing(t *testing.T, c *Client) {
	t.Helper()
	select {
	case data := <-c.send:
		t.Fatalf("unexpected message %s", data)
	case <-time.After(20 * time.Millisecond):
	}
}

func waitLen(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.Len() != n {
		if time.Now().After(deadline) {
			t.Fatalf("hub has %d clients, want %d", h.Len(), n)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestBroadcasterRoutesBySlot(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHub(nil)
	go h.Run(ctx)

	r := fakeRenderer{0: "analog/0 true\n", 1: "analog/1 false\n"}
	changes := make(chan int, 4)
	b := NewBroadcaster(h, r, changes)
	go b.Run(ctx)

	c0 := NewClient(h, nil)
	c1 := NewClient(h, nil)
	c1.SetSlot(1)
	h.Register(c0)
	h.Register(c1)
	waitLen(t, h, 2)

	changes <- 1
	msg := receive(t, c1)
	if msg.Type != "state" || msg.Slot != 1 || msg.Text != "analog/1 false\n" {
		t.Errorf("got %+v", msg)
	}
	expectNothing(t, c0)

	// Unchanged text is not sent again.
	changes <- 1
	expectNothing(t, c1)

	r[1] = "analog/1 true\n"
	changes <- 1
	if msg := receive(t, c1); msg.Text != "analog/1 true\n" {
		t.Errorf("got %+v", msg)
	}

	// Unknown slots are ignored.
	changes <- 7
	expectNothing(t, c0)
	expectNothing(t, c1)
}

func TestSendInitialState(t *testing.T) {
	h := NewHub(nil)
	r := fakeRenderer{2: "analog/2 undefined\n"}
	b := NewBroadcaster(h, r, nil)

	c := NewClient(h, nil)
	c.SetSlot(2)
	b.SendInitialState(c)
	msg := receive(t, c)
	if msg.Slot != 2 || msg.Text != "analog/2 undefined\n" || msg.Seq != 1 {
		t.Errorf("got %+v", msg)
	}

	c.SetSlot(3)
	b.SendInitialState(c)
	expectNothing(t, c)
}

func TestHubUnregisterClosesSend(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHub(nil)
	go h.Run(ctx)

	c := NewClient(h, nil)
	h.Register(c)
	waitLen(t, h, 1)
	h.Unregister(c)
	select {
	case _, ok := <-c.send:
		if ok {
			t.Error("send channel still open")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("send channel not closed")
	}
}

func TestSendAfterUnregister(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHub(nil)
	go h.Run(ctx)
	b := NewBroadcaster(h, fakeRenderer{0: "analog/0 true\n"}, nil)

	c := NewClient(h, nil)
	h.Register(c)
	waitLen(t, h, 1)
	h.Unregister(c)
	waitLen(t, h, 0)

	// A client whose socket is still being read may select a slot after the
	// hub dropped it.
	b.SendInitialState(c)
	if c.trySend([]byte("{}")) {
		t.Error("send to a closed client succeeded")
	}
	h.BroadcastToSlot([]byte("{}"), 0)
}

func TestSendAfterHubStopped(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	h := NewHub(nil)
	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()
	b := NewBroadcaster(h, fakeRenderer{0: "analog/0 true\n"}, nil)

	c := NewClient(h, nil)
	h.Register(c)
	waitLen(t, h, 1)
	cancel()
	<-done

	b.SendInitialState(c)
	h.Unregister(c)
	for range c.send {
	}
}
