package analyzer

import "github.com/sidmahajan/repcoach/internal/pose"

// Squat depth thresholds in degrees for the hip-knee-ankle angle.
const (
	squatDownAngle  = 90  // below: deep enough, phase moves to down
	squatAlmostDown = 140 // between down and this: descending, keep going
	squatUpAngle    = 160 // above while down: stood back up, rep complete
)

// SquatAnalyzer counts squat repetitions from the left hip-knee-ankle angle.
// Only the left side is tracked; the right leg is assumed to mirror it.
type SquatAnalyzer struct {
	phase phase
	reps  int
}

// NewSquat creates a SquatAnalyzer in the standing (up) phase.
func NewSquat() *SquatAnalyzer {
	return &SquatAnalyzer{phase: phaseUp}
}

// Analyze advances the squat state machine by one frame.
func (s *SquatAnalyzer) Analyze(frame *pose.Frame) State {
	if !pose.Visible(frame, pose.LeftHip, pose.LeftKnee, pose.LeftAnkle) {
		return waiting(s.reps, msgFullBody)
	}

	angle := pose.AngleAt(
		frame.Points[pose.LeftHip],
		frame.Points[pose.LeftKnee],
		frame.Points[pose.LeftAnkle],
	)

	var feedback string
	switch s.phase {
	case phaseUp:
		switch {
		case angle < squatDownAngle:
			s.phase = phaseDown
			feedback = "Good depth! Now up."
		case angle < squatAlmostDown:
			feedback = "Go lower..."
		default:
			feedback = "Ready for next rep"
		}
	case phaseDown:
		if angle > squatUpAngle {
			s.phase = phaseUp
			s.reps++
			feedback = "Rep complete!"
		} else {
			feedback = "Push up!"
		}
	}

	return State{
		Reps:     s.reps,
		Feedback: feedback,
		Status:   StatusActive,
		Debug: map[string]any{
			"knee_angle": angle,
			"phase":      string(s.phase),
		},
	}
}

// Reset returns the analyzer to the standing phase with zero reps.
func (s *SquatAnalyzer) Reset() {
	s.phase = phaseUp
	s.reps = 0
}
