package analyzer

import (
	"context"
	"log"

	"github.com/sidmahajan/repcoach/internal/exercise"
)

// Built-in exercise names, matched after exercise.Normalize.
const (
	ExerciseSquat      = "squat"
	ExerciseKettlebell = "kettlebell press"
	ExerciseLongCycle  = "long cycle"
)

// ConfigSource produces a validated template config for an exercise name the
// factory does not recognize. This is the one asynchronous step in the
// subsystem and runs once, at selection time, never per frame.
type ConfigSource interface {
	Config(ctx context.Context, name string) (*exercise.Config, error)
}

// Factory resolves an exercise name to an analyzer exactly once, at
// selection time. Built-in names map to their dedicated state machines; any
// other name is sent to the config source and drives a template analyzer.
// Every failure on the generated path degrades to a squat analyzer so the
// frame loop never sees an error.
type Factory struct {
	source ConfigSource
}

// NewFactory creates a Factory. A nil source disables generated exercises.
func NewFactory(source ConfigSource) *Factory {
	return &Factory{source: source}
}

// ForExercise returns a fresh analyzer for the named exercise. The returned
// analyzer is owned by the caller and must not be shared across sessions.
func (f *Factory) ForExercise(ctx context.Context, name string) Analyzer {
	switch exercise.Normalize(name) {
	case ExerciseSquat:
		return NewSquat()
	case ExerciseKettlebell, "kettlebell":
		return NewKettlebell()
	case ExerciseLongCycle, "longcycle":
		return NewLongCycle()
	}

	if f.source == nil {
		log.Printf("No config source for exercise %q, falling back to squat", name)
		return NewSquat()
	}

	cfg, err := f.source.Config(ctx, name)
	if err != nil {
		log.Printf("Config for exercise %q unavailable (%v), falling back to squat", name, err)
		return NewSquat()
	}

	return NewTemplate(*cfg)
}
