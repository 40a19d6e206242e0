// Package api provides HTTP API handlers for the repcoach workout coach.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/sidmahajan/repcoach/internal/exercise"
	"github.com/sidmahajan/repcoach/internal/store"
)

// ExerciseHandler handles HTTP requests for exercise resources.
type ExerciseHandler struct {
	store *store.Store
}

// NewExerciseHandler creates a new ExerciseHandler with the given store.
func NewExerciseHandler(s *store.Store) *ExerciseHandler {
	return &ExerciseHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *ExerciseHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/exercises or /api/exercises/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/exercises")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type createExerciseRequest struct {
	Name        string          `json:"name"`
	DisplayName string          `json:"display_name"`
	Config      json.RawMessage `json:"config"`
}

type updateExerciseRequest struct {
	DisplayName string          `json:"display_name"`
	Config      json.RawMessage `json:"config"`
}

type exerciseResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	DisplayName string           `json:"display_name"`
	Kind        string           `json:"kind"`
	Config      *exercise.Config `json:"config,omitempty"`
	CreatedAt   string           `json:"created_at"`
	UpdatedAt   string           `json:"updated_at"`
}

type listExercisesResponse struct {
	Exercises []exerciseResponse `json:"exercises"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a store.Exercise to an exerciseResponse.
func toResponse(e *store.Exercise) exerciseResponse {
	return exerciseResponse{
		ID:          e.ID,
		Name:        e.Name,
		DisplayName: e.DisplayName,
		Kind:        string(e.Kind),
		Config:      e.Config,
		CreatedAt:   e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:   e.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/exercises and returns all exercises.
func (h *ExerciseHandler) list(w http.ResponseWriter, r *http.Request) {
	exercises, err := h.store.Exercises().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list exercises")
		return
	}

	response := listExercisesResponse{
		Exercises: make([]exerciseResponse, 0, len(exercises)),
	}

	for _, e := range exercises {
		response.Exercises = append(response.Exercises, toResponse(e))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/exercises/{id} and returns a single exercise.
func (h *ExerciseHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	e, err := h.store.Exercises().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Exercise not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get exercise")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(e))
}

// create handles POST /api/exercises and creates a new exercise. A config
// payload, when present, goes through the same validation as generated
// configs; without one the exercise is registered as a built-in.
func (h *ExerciseHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	name := exercise.Normalize(req.Name)

	display := req.DisplayName
	if display == "" {
		display = req.Name
	}

	kind := store.KindBuiltin
	var cfg *exercise.Config
	if len(req.Config) > 0 {
		var err error
		cfg, err = exercise.Validate(req.Config)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid exercise config")
			return
		}
		kind = store.KindGenerated
	}

	e := &store.Exercise{
		ID:          uuid.New().String(),
		Name:        name,
		DisplayName: display,
		Kind:        kind,
		Config:      cfg,
	}

	if err := h.store.Exercises().Create(e); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create exercise")
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(e))
}

// update handles PUT /api/exercises/{id} and updates an existing exercise.
func (h *ExerciseHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	e, err := h.store.Exercises().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Exercise not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get exercise")
		return
	}

	var req updateExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.DisplayName != "" {
		e.DisplayName = req.DisplayName
	}
	if len(req.Config) > 0 {
		cfg, err := exercise.Validate(req.Config)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid exercise config")
			return
		}
		e.Config = cfg
	}

	if err := h.store.Exercises().Update(e); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update exercise")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(e))
}

// delete handles DELETE /api/exercises/{id} and removes an exercise.
func (h *ExerciseHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.store.Exercises().Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Exercise not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete exercise")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
