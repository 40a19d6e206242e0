// Package session scopes analyzer ownership to a single exercise session.
// Exactly one session is active at a time; selecting a new exercise discards
// the previous session and its analyzer entirely.
package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sidmahajan/repcoach/internal/analyzer"
	"github.com/sidmahajan/repcoach/internal/pose"
)

// Session owns one analyzer for the duration of one exercise. The analyzer
// is constructed at selection time and never shared or pooled.
type Session struct {
	ID        string
	Exercise  string
	StartedAt time.Time

	mu       sync.Mutex
	analyzer analyzer.Analyzer
	last     analyzer.State
}

// newSession wraps a freshly constructed analyzer.
func newSession(exercise string, a analyzer.Analyzer) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Exercise:  exercise,
		StartedAt: time.Now(),
		analyzer:  a,
		last: analyzer.State{
			Status:   analyzer.StatusWaiting,
			Feedback: "Waiting for first frame",
		},
	}
}

// Analyze feeds one frame to the session's analyzer and records the result.
func (s *Session) Analyze(frame *pose.Frame) analyzer.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = s.analyzer.Analyze(frame)
	return s.last
}

// Reset zeroes the analyzer's counters. Safe to call at any point, including
// mid-repetition, and idempotent.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyzer.Reset()
	s.last = analyzer.State{
		Status:   analyzer.StatusWaiting,
		Feedback: "Counters reset",
	}
}

// Last returns the state from the most recently analyzed frame.
func (s *Session) Last() analyzer.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Manager resolves exercise selections into sessions through the analyzer
// factory and tracks the single active session.
type Manager struct {
	factory *analyzer.Factory

	mu      sync.RWMutex
	current *Session
}

// NewManager creates a Manager using the given factory.
func NewManager(factory *analyzer.Factory) *Manager {
	return &Manager{factory: factory}
}

// Start begins a session for the named exercise, discarding any session in
// progress. Resolving an unknown exercise may call the generative service;
// the context bounds that call. Start never fails: resolution errors degrade
// to the default built-in analyzer inside the factory.
func (m *Manager) Start(ctx context.Context, exercise string) *Session {
	a := m.factory.ForExercise(ctx, exercise)
	s := newSession(exercise, a)

	m.mu.Lock()
	m.current = s
	m.mu.Unlock()

	log.Printf("Session %s started for exercise %q", s.ID, exercise)
	return s
}

// Current returns the active session, or nil when none is running.
func (m *Manager) Current() *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Stop ends the active session, if any.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current != nil {
		log.Printf("Session %s stopped", m.current.ID)
		m.current = nil
	}
}
