package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sidmahajan/repcoach/internal/session"
)

type startSessionRequest struct {
	Exercise string `json:"exercise"`
}

type sessionResponse struct {
	ID        string         `json:"id"`
	Exercise  string         `json:"exercise"`
	StartedAt string         `json:"started_at"`
	Reps      int            `json:"reps"`
	Feedback  string         `json:"feedback"`
	Status    string         `json:"status"`
	Debug     map[string]any `json:"debug,omitempty"`
}

func toSessionResponse(s *session.Session) sessionResponse {
	last := s.Last()
	return sessionResponse{
		ID:        s.ID,
		Exercise:  s.Exercise,
		StartedAt: s.StartedAt.Format(time.RFC3339),
		Reps:      last.Reps,
		Feedback:  last.Feedback,
		Status:    string(last.Status),
		Debug:     last.Debug,
	}
}

// handleSession routes /api/session: GET returns the active session, POST
// starts a session for the requested exercise, DELETE stops it.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.getSession(w, r)
	case http.MethodPost:
		s.startSession(w, r)
	case http.MethodDelete:
		s.stopSession(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sess := s.config.Sessions.Current()
	if sess == nil {
		writeJSONError(w, http.StatusNotFound, "No active session")
		return
	}
	writeJSONResponse(w, http.StatusOK, toSessionResponse(sess))
}

// startSession begins a session for the named exercise. Resolving an unknown
// exercise may call the generative service, so this request can take a few
// seconds on a cache miss.
func (s *Server) startSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Exercise == "" {
		writeJSONError(w, http.StatusBadRequest, "Exercise is required")
		return
	}

	sess := s.config.Sessions.Start(r.Context(), req.Exercise)
	writeJSONResponse(w, http.StatusCreated, toSessionResponse(sess))
}

func (s *Server) stopSession(w http.ResponseWriter, r *http.Request) {
	s.config.Sessions.Stop()
	w.WriteHeader(http.StatusNoContent)
}

// handleSessionReset zeroes the active session's rep counter.
func (s *Server) handleSessionReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sess := s.config.Sessions.Current()
	if sess == nil {
		writeJSONError(w, http.StatusNotFound, "No active session")
		return
	}

	sess.Reset()
	writeJSONResponse(w, http.StatusOK, toSessionResponse(sess))
}

func writeJSONResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSONResponse(w, status, map[string]string{"error": message})
}
