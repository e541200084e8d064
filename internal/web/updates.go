package web

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const updateWriteTimeout = 5 * time.Second

// updateMessage is the outgoing WebSocket message format.
type updateMessage struct {
	Type string `json:"type"` // "content-updated"
}

// updateHub fans content-updated events out to connected browsers.
type updateHub struct {
	upgrader websocket.Upgrader
	logger   *log.Logger

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func newUpdateHub(logger *log.Logger) *updateHub {
	return &updateHub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
		conns:  make(map[*websocket.Conn]struct{}),
	}
}

func (h *updateHub) handle(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("updates: websocket upgrade: %v", err)
		return
	}

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()

	defer h.drop(conn)

	// Clients never send anything meaningful; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Printf("updates: websocket read: %v", err)
			}
			return
		}
	}
}

func (h *updateHub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	conn.Close()
}

// broadcast sends msg to every connection. Writes are serialised by the
// hub lock; a connection that fails a write is closed.
func (h *updateHub) broadcast(msg updateMessage) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	sent := 0
	for conn := range h.conns {
		conn.SetWriteDeadline(time.Now().Add(updateWriteTimeout))
		if err := conn.WriteJSON(msg); err != nil {
			delete(h.conns, conn)
			conn.Close()
			continue
		}
		sent++
	}
	return sent
}

func (h *updateHub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

func (h *updateHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		conn.Close()
		delete(h.conns, conn)
	}
}
