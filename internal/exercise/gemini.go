package exercise

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Generator produces a validated exercise config for a free-text exercise
// name. Implementations talk to an external generative service; callers must
// treat failures as recoverable and fall back to a built-in analyzer.
type Generator interface {
	Generate(ctx context.Context, name string) (*Config, error)
}

// GeminiConfig holds configuration for the Gemini generator.
type GeminiConfig struct {
	APIKey   string // Gemini API key
	Model    string // Model name (e.g., "gemini-2.0-flash")
	Endpoint string // API endpoint override (empty = default)
	Timeout  time.Duration
}

// DefaultGeminiConfig returns a GeminiConfig with sensible defaults.
func DefaultGeminiConfig(apiKey string) GeminiConfig {
	return GeminiConfig{
		APIKey:   apiKey,
		Model:    "gemini-2.0-flash",
		Endpoint: "https://generativelanguage.googleapis.com/v1beta/models",
		Timeout:  30 * time.Second,
	}
}

// GeminiGenerator implements Generator using the Google Gemini API.
// This is the only type in the core that makes external network calls, and
// it is only invoked at exercise-selection time, never per frame.
type GeminiGenerator struct {
	config GeminiConfig
	client *http.Client
}

// NewGemini creates a new Gemini generator.
func NewGemini(cfg GeminiConfig) *GeminiGenerator {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://generativelanguage.googleapis.com/v1beta/models"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &GeminiGenerator{
		config: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Generate asks Gemini to describe the named exercise as a template config.
// The response is untrusted and passes through Parse/Validate before use.
func (g *GeminiGenerator) Generate(ctx context.Context, name string) (*Config, error) {
	response, err := g.call(ctx, BuildPrompt(name))
	if err != nil {
		return nil, fmt.Errorf("gemini API error: %w", err)
	}

	cfg, err := Parse(response)
	if err != nil {
		return nil, err
	}

	if cfg.Name == "" {
		cfg.Name = name
	}
	if cfg.Type == "" {
		cfg.Type = "template"
	}

	return cfg, nil
}

// geminiRequest is the Gemini API request body.
type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

// geminiResponse is the Gemini API response body.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// call sends a prompt to the Gemini API and returns the text response.
func (g *GeminiGenerator) call(ctx context.Context, prompt string) (string, error) {
	url := fmt.Sprintf("%s/%s:generateContent?key=%s",
		g.config.Endpoint, g.config.Model, g.config.APIKey)

	reqBody := geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{{Text: prompt}},
		}},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API returned %d: %.200s", resp.StatusCode, string(body))
	}

	var geminiResp geminiResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", fmt.Errorf("parse gemini response: %w", err)
	}

	if geminiResp.Error != nil {
		return "", fmt.Errorf("gemini error %d: %s", geminiResp.Error.Code, geminiResp.Error.Message)
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned empty response")
	}

	return geminiResp.Candidates[0].Content.Parts[0].Text, nil
}
