package analyzer

import (
	"testing"

	"github.com/sidmahajan/repcoach/internal/exercise"
	"github.com/sidmahajan/repcoach/internal/pose"
)

func kneeConfig(down, up float64, leftSide bool) exercise.Config {
	return exercise.Config{
		Name:          "test exercise",
		Type:          "template",
		PrimaryAngle:  exercise.AngleSpec{Point1: pose.LeftHip, Vertex: pose.LeftKnee, Point3: pose.LeftAnkle},
		DownThreshold: down,
		UpThreshold:   up,
		UseLeftSide:   leftSide,
	}
}

func TestTemplate_FullRep(t *testing.T) {
	a := NewTemplate(kneeConfig(100, 150, true))

	for _, deg := range []float64{170, 95, 160} {
		if state := a.Analyze(frameWithKneeAngle(deg)); state.Status != StatusActive {
			t.Fatalf("angle %v: expected active, got %s", deg, state.Status)
		}
	}

	if got := a.Analyze(frameWithKneeAngle(170)).Reps; got != 1 {
		t.Errorf("expected exactly 1 rep, got %d", got)
	}
}

func TestTemplate_BetweenThresholdsNoTransition(t *testing.T) {
	a := NewTemplate(kneeConfig(100, 150, true))

	// The band between the thresholds belongs to whichever phase is current.
	for _, deg := range []float64{170, 120, 130, 110} {
		if state := a.Analyze(frameWithKneeAngle(deg)); state.Reps != 0 {
			t.Fatalf("angle %v: expected 0 reps, got %d", deg, state.Reps)
		}
	}
}

func TestTemplate_ExactThresholdDoesNotTransition(t *testing.T) {
	// Comparisons are strict: an angle exactly equal to the down threshold
	// keeps the up phase.
	f := frameWithKneeAngle(100)
	angle := pose.AngleAt(
		f.Points[pose.LeftHip],
		f.Points[pose.LeftKnee],
		f.Points[pose.LeftAnkle],
	)

	a := NewTemplate(kneeConfig(angle, 150, true))
	state := a.Analyze(f)
	if state.Feedback != "Keep going" {
		t.Errorf("expected up phase to survive an exact-threshold angle, got feedback %q", state.Feedback)
	}
}

func TestTemplate_MirrorsToRightSide(t *testing.T) {
	a := NewTemplate(kneeConfig(100, 150, false))

	// Left leg stays straight while the right leg bends deep. With
	// use_left_side false the analyzer must follow the right leg.
	f := frameWithKneeAngle(170)
	bent := frameWithKneeAngle(95)
	for _, i := range []int{pose.RightHip, pose.RightKnee, pose.RightAnkle} {
		f.Points[i] = bent.Points[i]
	}

	state := a.Analyze(f)
	if state.Feedback != "Good! Now return." {
		t.Errorf("expected down transition from the mirrored side, got feedback %q", state.Feedback)
	}
}

func TestTemplate_GateSkipsFrame(t *testing.T) {
	a := NewTemplate(kneeConfig(100, 150, true))
	a.Analyze(frameWithKneeAngle(95)) // down

	f := frameWithKneeAngle(170)
	f.Points[pose.LeftAnkle].Visibility = vis(0.1)

	state := a.Analyze(f)
	if state.Status != StatusWaiting {
		t.Fatalf("expected waiting, got %s", state.Status)
	}
	if state.Reps != 0 {
		t.Errorf("gated frame must not count, got %d reps", state.Reps)
	}

	if got := a.Analyze(frameWithKneeAngle(170)).Reps; got != 1 {
		t.Errorf("expected rep after visibility recovers, got %d", got)
	}
}

func TestTemplate_ResetIdempotent(t *testing.T) {
	a := NewTemplate(kneeConfig(100, 150, true))
	a.Analyze(frameWithKneeAngle(95))
	a.Analyze(frameWithKneeAngle(170))

	a.Reset()
	a.Reset()

	state := a.Analyze(frameWithKneeAngle(170))
	if state.Reps != 0 {
		t.Errorf("expected 0 reps after reset, got %d", state.Reps)
	}
	if state.Feedback != "Keep going" {
		t.Errorf("expected up phase after reset, got feedback %q", state.Feedback)
	}
}
