package analyzer

import (
	"context"
	"errors"
	"testing"

	"github.com/sidmahajan/repcoach/internal/exercise"
)

// parseSource runs a canned service response through the real parser and
// validator, the way the production config pipeline does.
type parseSource struct {
	response string
}

func (s *parseSource) Config(ctx context.Context, name string) (*exercise.Config, error) {
	return exercise.Parse(s.response)
}

// errSource always fails, simulating a network outage.
type errSource struct{}

func (errSource) Config(ctx context.Context, name string) (*exercise.Config, error) {
	return nil, errors.New("generative service unreachable")
}

func TestFactory_BuiltinNames(t *testing.T) {
	f := NewFactory(nil)
	ctx := context.Background()

	if _, ok := f.ForExercise(ctx, "Squat").(*SquatAnalyzer); !ok {
		t.Error("expected SquatAnalyzer for 'Squat'")
	}
	if _, ok := f.ForExercise(ctx, "  kettlebell press ").(*KettlebellAnalyzer); !ok {
		t.Error("expected KettlebellAnalyzer for 'kettlebell press'")
	}
	if _, ok := f.ForExercise(ctx, "Long Cycle").(*LongCycleAnalyzer); !ok {
		t.Error("expected LongCycleAnalyzer for 'Long Cycle'")
	}
}

func TestFactory_GeneratedExercise(t *testing.T) {
	src := &parseSource{response: `{
		"name": "lunge",
		"primary_angle": {"point1": 23, "vertex": 25, "point3": 27},
		"down_threshold": 100,
		"up_threshold": 160,
		"use_left_side": true
	}`}

	a := NewFactory(src).ForExercise(context.Background(), "lunge")
	if _, ok := a.(*TemplateAnalyzer); !ok {
		t.Fatalf("expected TemplateAnalyzer, got %T", a)
	}
}

func TestFactory_InvalidConfigFallsBackToSquat(t *testing.T) {
	// Payload is missing primary_angle: the validator rejects it and the
	// factory substitutes the safe default without surfacing an error.
	src := &parseSource{response: `{"name": "lunge", "down_threshold": 90, "up_threshold": 160}`}

	a := NewFactory(src).ForExercise(context.Background(), "lunge")
	if _, ok := a.(*SquatAnalyzer); !ok {
		t.Fatalf("expected SquatAnalyzer fallback, got %T", a)
	}
}

func TestFactory_SourceErrorFallsBackToSquat(t *testing.T) {
	a := NewFactory(errSource{}).ForExercise(context.Background(), "lunge")
	if _, ok := a.(*SquatAnalyzer); !ok {
		t.Fatalf("expected SquatAnalyzer fallback, got %T", a)
	}
}

func TestFactory_NilSourceFallsBackToSquat(t *testing.T) {
	a := NewFactory(nil).ForExercise(context.Background(), "lunge")
	if _, ok := a.(*SquatAnalyzer); !ok {
		t.Fatalf("expected SquatAnalyzer fallback, got %T", a)
	}
}

func TestFactory_FreshInstancePerCall(t *testing.T) {
	f := NewFactory(nil)
	ctx := context.Background()

	a := f.ForExercise(ctx, "squat")
	b := f.ForExercise(ctx, "squat")
	if a == b {
		t.Error("factory must not reuse analyzer instances across sessions")
	}
}
