// Package realtime pushes pool-stat snapshots to connected dev dashboards.
package realtime

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Hub holds the active websocket connections.
type Hub struct {
	mu      sync.Mutex
	clients map[string]*websocket.Conn

	upgrader websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*websocket.Conn),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Public API, same stance as the HTTP CORS config.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Upgrade turns an HTTP request into a tracked websocket connection. The
// connection stays registered until the peer closes it or a write fails.
func (h *Hub) Upgrade(w http.ResponseWriter, r *http.Request) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	id := uuid.NewString()
	h.mu.Lock()
	h.clients[id] = conn
	h.mu.Unlock()
	log.Info().Str("client_id", id).Msg("stats websocket connected")

	// Drain reads so we notice the peer going away.
	go func() {
		defer h.remove(id)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	return nil
}

// Broadcast sends a JSON-encoded snapshot to every connected client. Clients
// whose write fails are dropped.
func (h *Hub) Broadcast(v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode stats broadcast")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for id, conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Warn().Err(err).Str("client_id", id).Msg("dropping stats websocket client")
			conn.Close()
			delete(h.clients, id)
		}
	}
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conn, ok := h.clients[id]; ok {
		conn.Close()
		delete(h.clients, id)
		log.Info().Str("client_id", id).Msg("stats websocket disconnected")
	}
}
