// Package events pushes change notifications to connected browsers over a
// websocket, so every open checklist view refreshes without polling.
package events

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event names sent to clients. The payload is {"event": <name>}; clients
// re-fetch whatever the event invalidates.
const (
	ItemsChanged      = "items.changed"
	OverrideChanged   = "override.changed"
	RecordsChanged    = "records.changed"
	CategoriesChanged = "categories.changed"
	SettingsChanged   = "settings.changed"
)

const writeTimeout = 5 * time.Second

type message struct {
	Event string `json:"event"`
}

// Hub tracks connected websocket clients and fans events out to them.
// All methods are safe for concurrent use, and safe on a nil receiver so
// callers without a hub (tests, CLI use) can skip the wiring.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Single-user app served from the same origin.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// HandleWebSocket upgrades the request and keeps the connection registered
// until the client goes away.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("Websocket upgrade failed", "error", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()
	slog.Debug("Websocket client connected", "remote", conn.RemoteAddr())

	// Drain incoming frames; clients never send anything meaningful, but
	// reading is what detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
	slog.Debug("Websocket client disconnected", "remote", conn.RemoteAddr())
}

// Broadcast sends an event to every connected client. Clients that fail the
// write are dropped.
func (h *Hub) Broadcast(event string) {
	if h == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(message{Event: event}); err != nil {
			slog.Warn("Dropping websocket client", "remote", conn.RemoteAddr(), "error", err)
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// Close disconnects every client.
func (h *Hub) Close() {
	if h == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
			time.Now().Add(writeTimeout))
		conn.Close()
		delete(h.clients, conn)
	}
}
