package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/sidmahajan/repcoach/internal/analyzer"
	"github.com/sidmahajan/repcoach/internal/app"
	"github.com/sidmahajan/repcoach/internal/exercise"
	"github.com/sidmahajan/repcoach/internal/server"
	"github.com/sidmahajan/repcoach/internal/session"
	"github.com/sidmahajan/repcoach/internal/store"
	"github.com/sidmahajan/repcoach/internal/tray"
)

func main() {
	fmt.Println("Repcoach - Workout Rep Counter")

	// Initialize the store
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dbDir := filepath.Join(homeDir, ".repcoach")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dbDir, "repcoach.db")
	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	// Wire the config service. Without an API key the generative path is
	// unavailable and unknown exercises degrade to the default analyzer.
	var svc *exercise.Service
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		gen := exercise.NewGemini(exercise.DefaultGeminiConfig(apiKey))
		svc = exercise.NewService(st.Exercises(), gen)
	} else {
		log.Println("GEMINI_API_KEY not set; only built-in exercises available")
	}

	var source analyzer.ConfigSource
	if svc != nil {
		source = svc
	}
	sessions := session.NewManager(analyzer.NewFactory(source))

	// Start the analysis pipeline
	application := app.New(app.Config{Store: st}, sessions)
	if err := application.Start(); err != nil {
		log.Printf("Failed to start analysis pipeline: %v", err)
	}
	application.SetEnabled(true)

	// Find web directory
	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	// Configure and start server
	cfg := server.Config{
		StaticDir: webDir,
		Store:     st,
		Camera:    application.Camera(),
		Sessions:  sessions,
	}

	srv := server.New(cfg)

	addr := ":8080"
	fmt.Printf("Starting server on %s\n", addr)
	go func() {
		if err := srv.ListenAndServe(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// System tray owns the main thread
	t := tray.New()
	t.OnToggle(func(enabled bool) {
		application.SetEnabled(enabled)
	})
	t.OnReset(func() {
		if sess := sessions.Current(); sess != nil {
			sess.Reset()
		}
	})
	t.OnQuit(func() {
		application.Stop()
	})

	// Keep the tray's exercise and rep display current
	go func() {
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			if sess := sessions.Current(); sess != nil {
				t.SetStatus(sess.Exercise, sess.Last().Reps)
			} else {
				t.SetStatus("", 0)
			}
		}
	}()

	t.Run()
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.repcoach/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	// Check relative paths from current working directory
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".repcoach", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
