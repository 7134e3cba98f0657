// Package server provides the HTTP server for the volante controller.
package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/volante/internal/engine"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// StateHandler broadcasts the per-frame controller state via WebSocket.
// The game loop owns the camera, so frames are pushed into the handler
// with Publish instead of being pulled here.
type StateHandler struct {
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

// NewStateHandler creates a new StateHandler.
func NewStateHandler() *StateHandler {
	return &StateHandler{
		clients: make(map[*websocket.Conn]bool),
	}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *StateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// Publish sends the state of one processed frame to all connected
// clients. Clients whose connection broke are dropped when their read
// loop exits, so write errors are ignored here.
func (h *StateHandler) Publish(state engine.FrameState) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.clients) == 0 {
		return
	}

	msg, err := json.Marshal(map[string]any{
		"state":     state,
		"timestamp": time.Now().UnixMilli(),
	})
	if err != nil {
		return
	}

	for conn := range h.clients {
		conn.WriteMessage(websocket.TextMessage, msg)
	}
}
