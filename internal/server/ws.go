package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/sidmahajan/repcoach/internal/session"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// StateHandler broadcasts the active session's analysis state via WebSocket.
// The analysis pipeline writes into the session; this handler only reads the
// latest state, so clients see rep counts and feedback without an extra
// detection pass.
type StateHandler struct {
	sessions *session.Manager
	clients  map[*websocket.Conn]bool
	mu       sync.RWMutex
}

// NewStateHandler creates a new StateHandler for the given session manager.
func NewStateHandler(sessions *session.Manager) *StateHandler {
	h := &StateHandler{
		sessions: sessions,
		clients:  make(map[*websocket.Conn]bool),
	}
	go h.broadcast()
	return h
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

// broadcast sends session state to all connected clients.
func (h *StateHandler) broadcast() {
	ticker := time.NewTicker(66 * time.Millisecond) // ~15 FPS
	defer ticker.Stop()

	for range ticker.C {
		h.mu.RLock()
		if len(h.clients) == 0 {
			h.mu.RUnlock()
			continue
		}
		h.mu.RUnlock()

		sess := h.sessions.Current()
		if sess == nil {
			continue
		}

		last := sess.Last()
		msg, _ := json.Marshal(map[string]any{
			"session":   sess.ID,
			"exercise":  sess.Exercise,
			"reps":      last.Reps,
			"feedback":  last.Feedback,
			"status":    last.Status,
			"debug":     last.Debug,
			"timestamp": time.Now().UnixMilli(),
		})

		h.mu.RLock()
		for conn := range h.clients {
			conn.WriteMessage(websocket.TextMessage, msg)
		}
		h.mu.RUnlock()
	}
}
