// Package analyzer provides per-frame exercise repetition analysis. Each
// analyzer is a small state machine fed one pose frame at a time by an
// external frame driver; it returns a running rep count plus textual
// feedback and never performs I/O.
package analyzer

import "github.com/sidmahajan/repcoach/internal/pose"

// Status describes the analyzer's view of the most recent frame.
type Status string

const (
	// StatusWaiting means the frame could not be analyzed (no person, or
	// required landmarks below the visibility threshold). No phase changed.
	StatusWaiting Status = "waiting"
	// StatusActive means the frame was analyzed and the session continues.
	StatusActive Status = "active"
	// StatusComplete means the session owner marked the exercise finished.
	StatusComplete Status = "complete"
)

// State is the public analyzer output for one frame.
type State struct {
	Reps     int            `json:"reps"`
	Feedback string         `json:"feedback"`
	Status   Status         `json:"status"`
	Debug    map[string]any `json:"debug,omitempty"`
}

// Analyzer is the common contract for all exercise analyzers. An instance is
// exclusively owned by one session: Analyze is called once per video frame
// and Reset zeroes the counters at any time without affecting other
// analyzers. Implementations are not safe for concurrent use.
type Analyzer interface {
	Analyze(frame *pose.Frame) State
	Reset()
}

// phase is the analyzer-internal discrete motion state.
type phase string

const (
	phaseUp   phase = "up"
	phaseDown phase = "down"
)

// Gate failure feedback, shared across analyzers.
const (
	msgFullBody  = "Ensure your full body is visible"
	msgBothHands = "Ensure both hands are visible"
)

// waiting builds the no-mutation result for a frame that failed the
// visibility gate.
func waiting(reps int, msg string) State {
	return State{Reps: reps, Feedback: msg, Status: StatusWaiting}
}
