package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sidmahajan/repcoach/internal/analyzer"
	"github.com/sidmahajan/repcoach/internal/pose"
	"github.com/sidmahajan/repcoach/internal/session"
)

func newTestServer(t *testing.T) (*Server, *session.Manager) {
	t.Helper()

	sessions := session.NewManager(analyzer.NewFactory(nil))
	srv := New(Config{Sessions: sessions})
	return srv, sessions
}

func TestServer_Health(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response["status"] != "ok" {
		t.Errorf("expected status ok, got %v", response["status"])
	}
}

func TestServer_HealthMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/health", nil)
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
	}
}

func TestServer_SessionLifecycle(t *testing.T) {
	srv, sessions := newTestServer(t)

	// No session yet.
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/session", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d before start, got %d", http.StatusNotFound, rec.Code)
	}

	// Start a squat session.
	body, _ := json.Marshal(startSessionRequest{Exercise: "squat"})
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/session", bytes.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	var started sessionResponse
	if err := json.NewDecoder(rec.Body).Decode(&started); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if started.Exercise != "squat" {
		t.Errorf("expected exercise squat, got %q", started.Exercise)
	}
	if started.Status != string(analyzer.StatusWaiting) {
		t.Errorf("expected waiting status, got %q", started.Status)
	}

	// The current session is now visible.
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/session", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d after start, got %d", http.StatusOK, rec.Code)
	}

	var current sessionResponse
	if err := json.NewDecoder(rec.Body).Decode(&current); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if current.ID != started.ID {
		t.Errorf("expected session %s, got %s", started.ID, current.ID)
	}

	// Stop it.
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/session", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status %d on stop, got %d", http.StatusNoContent, rec.Code)
	}

	if sessions.Current() != nil {
		t.Error("expected no current session after stop")
	}
}

func TestServer_SessionStartRequiresExercise(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/session", bytes.NewReader([]byte(`{}`))))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestServer_SessionReset(t *testing.T) {
	srv, sessions := newTestServer(t)

	// Reset with no session is a 404.
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/session/reset", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d without session, got %d", http.StatusNotFound, rec.Code)
	}

	sess := sessions.Start(context.Background(), "squat")

	// Walk one squat rep so the counter is non-zero.
	sess.Analyze(pose.StandingFrame())
	sess.Analyze(pose.SquatBottomFrame())
	sess.Analyze(pose.StandingFrame())
	if sess.Last().Reps != 1 {
		t.Fatalf("expected 1 rep before reset, got %d", sess.Last().Reps)
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/session/reset", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var after sessionResponse
	if err := json.NewDecoder(rec.Body).Decode(&after); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if after.Reps != 0 {
		t.Errorf("expected 0 reps after reset, got %d", after.Reps)
	}
}
