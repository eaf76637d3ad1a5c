package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-hclog"
	"github.com/soar/ScratchPadBridge/internal/gamepad"
	"github.com/soar/ScratchPadBridge/internal/hub"
)

const crossDomainPolicy = `<cross-domain-policy>
<allow-access-from domain="*" to-ports="*"/>
</cross-domain-policy>
`

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local use
	},
}

// handlePoll serves every slot in the Scratch 2.0 poll format.
func handlePoll(pool *gamepad.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = w.Write([]byte(pool.Poll()))
	}
}

// handleResetAll acknowledges Scratch's reset request. The adapter has no
// commands to cancel.
func handleResetAll(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func handleCrossDomain(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/xml")
	_, _ = w.Write([]byte(crossDomainPolicy))
}

func handleDescriptor(descriptor []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="gamepad.s2e"`)
		_, _ = w.Write(descriptor)
	}
}

func handleWebSocket(l hclog.Logger, h *hub.Hub, b *hub.Broadcaster, pool *gamepad.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			l.Warn("WebSocket upgrade failed", "error", err)
			return
		}

		client := hub.NewClient(h, conn)
		h.Register(client)

		// Send current state to the new client
		b.SendInitialState(client)

		go client.WritePump()
		go client.ReadPumpWithHandler(pool, b.SendInitialState)
	}
}
