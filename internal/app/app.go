// Package app wires the camera, pose detector and session manager into the
// frame driver that feeds the repetition analyzers.
package app

import (
	"log"
	"sync"
	"time"

	"github.com/sidmahajan/repcoach/internal/capture"
	"github.com/sidmahajan/repcoach/internal/pose"
	"github.com/sidmahajan/repcoach/internal/session"
	"github.com/sidmahajan/repcoach/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate while no activity is detected.
	IdleFPS = 5
	// ActiveFPS is the frame rate while a workout is in progress.
	ActiveFPS = 15
	// IdleTimeoutMs is how long without activity before dropping back to
	// the idle rate.
	IdleTimeoutMs = 2000
)

// Config holds configuration options for the application.
type Config struct {
	Store          *store.Store
	CameraID       int
	ActivityThresh float64
}

// App owns the per-frame analysis loop: it reads camera frames, runs pose
// detection, and feeds the active session's analyzer.
type App struct {
	config   Config
	camera   capture.Camera
	activity *capture.ActivityMonitor
	detector pose.Detector
	sessions *session.Manager
	enabled  bool
	mu       sync.RWMutex
	stopCh   chan struct{}
}

// New creates a new App instance with the given configuration.
func New(config Config, sessions *session.Manager) *App {
	threshold := config.ActivityThresh
	if threshold <= 0 {
		threshold = 1.0 // 1% pixel change
	}

	a := &App{
		config:   config,
		camera:   capture.NewCamera(config.CameraID),
		activity: capture.NewActivityMonitor(threshold),
		sessions: sessions,
	}

	// Try MediaPipe first, fall back to the mock detector so the rest of
	// the app stays usable without the Python service.
	if mp, err := pose.NewMediaPipeDetector(pose.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe pose detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = pose.NewMockDetector()
	}

	return a
}

// SetEnabled enables or disables frame analysis.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled reports whether frame analysis is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetCamera replaces the camera implementation. Used by tests.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// SetDetector replaces the pose detector implementation.
func (a *App) SetDetector(d pose.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// Detector returns the pose detector.
func (a *App) Detector() pose.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// Sessions returns the session manager driving the analyzers.
func (a *App) Sessions() *session.Manager {
	return a.sessions
}

// Start opens the camera and begins the analysis pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}

	a.camera.SetFPS(IdleFPS)

	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Analysis pipeline started")
	return nil
}

// Stop halts the pipeline and releases camera and detector resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.activity.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Analysis pipeline stopped")
}

// idleTimeout returns the idle switch-back duration.
func idleTimeout() time.Duration {
	return time.Duration(IdleTimeoutMs) * time.Millisecond
}
