// Package server provides the HTTP server for the repcoach workout coach.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sidmahajan/repcoach/internal/capture"
	"github.com/sidmahajan/repcoach/internal/server/api"
	"github.com/sidmahajan/repcoach/internal/session"
	"github.com/sidmahajan/repcoach/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Camera    capture.Camera
	Sessions  *session.Manager
}

// Server represents the HTTP server for the repcoach application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	// Register exercise API handler if Store is configured
	if s.config.Store != nil {
		exerciseHandler := api.NewExerciseHandler(s.config.Store)
		s.mux.Handle("/api/exercises", exerciseHandler)
		s.mux.Handle("/api/exercises/", exerciseHandler)
	}

	// Register session control endpoints if Sessions is configured
	if s.config.Sessions != nil {
		s.mux.HandleFunc("/api/session", s.handleSession)
		s.mux.HandleFunc("/api/session/reset", s.handleSessionReset)

		stateHandler := NewStateHandler(s.config.Sessions)
		s.mux.Handle("/api/state", stateHandler)
	}

	// Register camera stream endpoint if Camera is configured
	if s.config.Camera != nil {
		streamHandler := NewStreamHandler(s.config.Camera)
		s.mux.Handle("/api/stream", streamHandler)
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
