package exercise

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// geminiReply wraps text in the Gemini candidates envelope.
func geminiReply(text string) string {
	return `{"candidates": [{"content": {"parts": [{"text": ` + jsonQuote(text) + `}]}}]}`
}

func jsonQuote(s string) string {
	out := make([]byte, 0, len(s)+2)
	out = append(out, '"')
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			out = append(out, '\\', '"')
		case '\\':
			out = append(out, '\\', '\\')
		case '\n':
			out = append(out, '\\', 'n')
		default:
			out = append(out, s[i])
		}
	}
	return string(append(out, '"'))
}

func TestGeminiGenerator_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(geminiReply("```json\n" + validPayload + "\n```")))
	}))
	defer srv.Close()

	gen := NewGemini(GeminiConfig{APIKey: "test", Endpoint: srv.URL})

	cfg, err := gen.Generate(context.Background(), "lunge")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.PrimaryAngle.Vertex != 25 {
		t.Errorf("expected vertex 25, got %d", cfg.PrimaryAngle.Vertex)
	}
}

func TestGeminiGenerator_FillsNameWhenAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(geminiReply(`{
			"primary_angle": {"point1": 11, "vertex": 13, "point3": 15},
			"down_threshold": 70, "up_threshold": 150
		}`)))
	}))
	defer srv.Close()

	gen := NewGemini(GeminiConfig{APIKey: "test", Endpoint: srv.URL})

	cfg, err := gen.Generate(context.Background(), "bicep curl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Name != "bicep curl" {
		t.Errorf("expected name filled from request, got %q", cfg.Name)
	}
	if cfg.Type != "template" {
		t.Errorf("expected default type 'template', got %q", cfg.Type)
	}
}

func TestGeminiGenerator_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"code": 429, "message": "quota"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	gen := NewGemini(GeminiConfig{APIKey: "test", Endpoint: srv.URL})

	if _, err := gen.Generate(context.Background(), "lunge"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestGeminiGenerator_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(geminiReply(validPayload)))
	}))
	defer srv.Close()

	gen := NewGemini(GeminiConfig{APIKey: "test", Endpoint: srv.URL})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := gen.Generate(ctx, "lunge"); err == nil {
		t.Fatal("expected error when context deadline passes")
	}
}
