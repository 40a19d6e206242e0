package analyzer

import "github.com/sidmahajan/repcoach/internal/pose"

// LongCycleAnalyzer counts two-handed long cycle repetitions. Unlike the
// kettlebell press, the arms are synchronized: both wrists must rise above
// the shoulder line together, and both must return below the hip line
// together for the rep to count. A half-synchronized frame stays active with
// corrective feedback and no phase change.
type LongCycleAnalyzer struct {
	phase phase
	reps  int
}

// NewLongCycle creates a LongCycleAnalyzer in the down phase.
func NewLongCycle() *LongCycleAnalyzer {
	return &LongCycleAnalyzer{phase: phaseDown}
}

// Analyze advances the state machine by one frame.
func (l *LongCycleAnalyzer) Analyze(frame *pose.Frame) State {
	if !pose.Visible(frame,
		pose.LeftWrist, pose.RightWrist,
		pose.LeftShoulder, pose.RightShoulder,
		pose.LeftHip, pose.RightHip,
	) {
		return waiting(l.reps, msgBothHands)
	}

	leftWrist := frame.Points[pose.LeftWrist]
	rightWrist := frame.Points[pose.RightWrist]

	leftUp := leftWrist.Y < frame.Points[pose.LeftShoulder].Y
	rightUp := rightWrist.Y < frame.Points[pose.RightShoulder].Y
	leftDown := leftWrist.Y > frame.Points[pose.LeftHip].Y
	rightDown := rightWrist.Y > frame.Points[pose.RightHip].Y

	var feedback string
	switch l.phase {
	case phaseDown:
		switch {
		case leftUp && rightUp:
			l.phase = phaseUp
			feedback = "Good! Both hands up."
		case leftUp || rightUp:
			feedback = "Lift both hands!"
		default:
			feedback = "Drive both hands overhead"
		}
	case phaseUp:
		switch {
		case leftDown && rightDown:
			l.phase = phaseDown
			l.reps++
			feedback = "Rep complete!"
		case leftDown || rightDown:
			feedback = "Bring both down!"
		default:
			feedback = "Now bring both hands down"
		}
	}

	return State{
		Reps:     l.reps,
		Feedback: feedback,
		Status:   StatusActive,
		Debug: map[string]any{
			"phase": string(l.phase),
		},
	}
}

// Reset returns the analyzer to the down phase with zero reps.
func (l *LongCycleAnalyzer) Reset() {
	l.phase = phaseDown
	l.reps = 0
}
