package analyzer

import "github.com/sidmahajan/repcoach/internal/pose"

// KettlebellAnalyzer counts kettlebell presses with an independent phase per
// arm sharing one rep counter. An arm moves to up when its wrist rises above
// the shoulder line and scores a rep when the wrist returns below the hip
// line. Because the arms are counted independently, a simultaneous two-arm
// press scores two reps; the counter tracks arm-reps, not body cycles.
type KettlebellAnalyzer struct {
	left  phase
	right phase
	reps  int
}

// NewKettlebell creates a KettlebellAnalyzer with both arms in the down phase.
func NewKettlebell() *KettlebellAnalyzer {
	return &KettlebellAnalyzer{left: phaseDown, right: phaseDown}
}

// Analyze advances both arm state machines by one frame.
func (k *KettlebellAnalyzer) Analyze(frame *pose.Frame) State {
	if !pose.Visible(frame,
		pose.LeftWrist, pose.RightWrist,
		pose.LeftShoulder, pose.RightShoulder,
		pose.LeftHip, pose.RightHip,
	) {
		return waiting(k.reps, msgBothHands)
	}

	before := k.reps
	k.left = k.advanceArm(k.left,
		frame.Points[pose.LeftWrist], frame.Points[pose.LeftShoulder], frame.Points[pose.LeftHip])
	k.right = k.advanceArm(k.right,
		frame.Points[pose.RightWrist], frame.Points[pose.RightShoulder], frame.Points[pose.RightHip])

	var feedback string
	switch {
	case k.reps > before:
		feedback = "Rep complete!"
	case k.left == phaseUp || k.right == phaseUp:
		feedback = "Bring it back below the hips"
	default:
		feedback = "Drive up past the shoulders"
	}

	return State{
		Reps:     k.reps,
		Feedback: feedback,
		Status:   StatusActive,
		Debug: map[string]any{
			"left_phase":  string(k.left),
			"right_phase": string(k.right),
		},
	}
}

// advanceArm runs one arm's state machine. Image Y grows downward, so a
// smaller Y means higher in the frame.
func (k *KettlebellAnalyzer) advanceArm(p phase, wrist, shoulder, hip pose.Landmark) phase {
	switch p {
	case phaseDown:
		if wrist.Y < shoulder.Y {
			return phaseUp
		}
	case phaseUp:
		if wrist.Y > hip.Y {
			k.reps++
			return phaseDown
		}
	}
	return p
}

// Reset returns both arms to the down phase with zero reps.
func (k *KettlebellAnalyzer) Reset() {
	k.left = phaseDown
	k.right = phaseDown
	k.reps = 0
}
