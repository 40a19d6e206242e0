package analyzer

import (
	"github.com/sidmahajan/repcoach/internal/exercise"
	"github.com/sidmahajan/repcoach/internal/pose"
)

// TemplateAnalyzer is the generic, data-driven analyzer: any exercise whose
// motion reduces to one joint angle crossing two thresholds can be expressed
// as an exercise.Config instead of new code. It starts in the up phase, like
// the squat, so the first full descent and return counts as one rep.
// Threshold comparisons are strict on both sides: an angle exactly equal to
// a threshold never transitions.
type TemplateAnalyzer struct {
	name    string
	p1      int
	vertex  int
	p3      int
	downAt  float64
	upAt    float64
	phase   phase
	reps    int
}

// NewTemplate creates a TemplateAnalyzer from a validated config. The config
// must have passed exercise.Validate; indices are assumed in range. When
// UseLeftSide is false the angle indices are mirrored to the opposite side
// of the body.
func NewTemplate(cfg exercise.Config) *TemplateAnalyzer {
	p1, vertex, p3 := cfg.PrimaryAngle.Point1, cfg.PrimaryAngle.Vertex, cfg.PrimaryAngle.Point3
	if !cfg.UseLeftSide {
		p1 = pose.MirrorIndex(p1)
		vertex = pose.MirrorIndex(vertex)
		p3 = pose.MirrorIndex(p3)
	}

	return &TemplateAnalyzer{
		name:   cfg.Name,
		p1:     p1,
		vertex: vertex,
		p3:     p3,
		downAt: cfg.DownThreshold,
		upAt:   cfg.UpThreshold,
		phase:  phaseUp,
	}
}

// Analyze advances the state machine by one frame.
func (t *TemplateAnalyzer) Analyze(frame *pose.Frame) State {
	if !pose.Visible(frame, t.p1, t.vertex, t.p3) {
		return waiting(t.reps, msgFullBody)
	}

	angle := pose.AngleAt(
		frame.Points[t.p1],
		frame.Points[t.vertex],
		frame.Points[t.p3],
	)

	var feedback string
	switch t.phase {
	case phaseUp:
		if angle < t.downAt {
			t.phase = phaseDown
			feedback = "Good! Now return."
		} else {
			feedback = "Keep going"
		}
	case phaseDown:
		if angle > t.upAt {
			t.phase = phaseUp
			t.reps++
			feedback = "Rep complete!"
		} else {
			feedback = "Return to start"
		}
	}

	return State{
		Reps:     t.reps,
		Feedback: feedback,
		Status:   StatusActive,
		Debug: map[string]any{
			"exercise": t.name,
			"angle":    angle,
			"phase":    string(t.phase),
		},
	}
}

// Reset returns the analyzer to the up phase with zero reps.
func (t *TemplateAnalyzer) Reset() {
	t.phase = phaseUp
	t.reps = 0
}
