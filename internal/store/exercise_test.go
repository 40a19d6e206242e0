package store

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/sidmahajan/repcoach/internal/exercise"
)

func lungeConfig() *exercise.Config {
	return &exercise.Config{
		Name:          "Lunge",
		Type:          "template",
		PrimaryAngle:  exercise.AngleSpec{Point1: 23, Vertex: 25, Point3: 27},
		DownThreshold: 100,
		UpThreshold:   160,
		UseLeftSide:   true,
	}
}

func TestExercises_CreateAndGet(t *testing.T) {
	s := newTestStore(t)

	e := &Exercise{
		ID:          uuid.NewString(),
		Name:        "lunge",
		DisplayName: "Lunge",
		Kind:        KindGenerated,
		Config:      lungeConfig(),
	}
	if err := s.Exercises().Create(e); err != nil {
		t.Fatalf("failed to create exercise: %v", err)
	}

	got, err := s.Exercises().GetByID(e.ID)
	if err != nil {
		t.Fatalf("failed to get exercise: %v", err)
	}
	if got.Name != "lunge" || got.Kind != KindGenerated {
		t.Errorf("unexpected exercise: %+v", got)
	}
	if got.Config == nil || got.Config.PrimaryAngle.Vertex != 25 {
		t.Errorf("config did not round-trip: %+v", got.Config)
	}

	byName, err := s.Exercises().GetByName("lunge")
	if err != nil {
		t.Fatalf("failed to get by name: %v", err)
	}
	if byName.ID != e.ID {
		t.Errorf("expected same exercise, got %s", byName.ID)
	}
}

func TestExercises_BuiltinHasNoConfig(t *testing.T) {
	s := newTestStore(t)

	e := &Exercise{
		ID:          uuid.NewString(),
		Name:        "squat",
		DisplayName: "Squat",
		Kind:        KindBuiltin,
	}
	if err := s.Exercises().Create(e); err != nil {
		t.Fatalf("failed to create exercise: %v", err)
	}

	got, err := s.Exercises().GetByID(e.ID)
	if err != nil {
		t.Fatalf("failed to get exercise: %v", err)
	}
	if got.Config != nil {
		t.Errorf("builtin exercise should have nil config, got %+v", got.Config)
	}
}

func TestExercises_GetMissing(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Exercises().GetByID("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestExercises_UpdateAndDelete(t *testing.T) {
	s := newTestStore(t)

	e := &Exercise{
		ID:          uuid.NewString(),
		Name:        "lunge",
		DisplayName: "Lunge",
		Kind:        KindGenerated,
		Config:      lungeConfig(),
	}
	if err := s.Exercises().Create(e); err != nil {
		t.Fatalf("failed to create exercise: %v", err)
	}

	e.DisplayName = "Forward Lunge"
	e.Config.UpThreshold = 155
	if err := s.Exercises().Update(e); err != nil {
		t.Fatalf("failed to update: %v", err)
	}

	got, _ := s.Exercises().GetByID(e.ID)
	if got.DisplayName != "Forward Lunge" || got.Config.UpThreshold != 155 {
		t.Errorf("update not persisted: %+v", got)
	}

	if err := s.Exercises().Delete(e.ID); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}
	if _, err := s.Exercises().GetByID(e.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	if err := s.Exercises().Delete(e.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for double delete, got %v", err)
	}
}

func TestExercises_ConfigCache(t *testing.T) {
	s := newTestStore(t)
	repo := s.Exercises()

	// Empty cache
	cfg, err := repo.GetConfig("lunge")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != nil {
		t.Fatalf("expected nil for uncached name, got %+v", cfg)
	}

	if err := repo.PutConfig("lunge", lungeConfig()); err != nil {
		t.Fatalf("failed to cache config: %v", err)
	}

	cfg, err = repo.GetConfig("lunge")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg == nil || cfg.DownThreshold != 100 {
		t.Fatalf("cached config did not round-trip: %+v", cfg)
	}

	// Re-caching the same name updates in place rather than failing the
	// unique constraint.
	updated := lungeConfig()
	updated.DownThreshold = 95
	if err := repo.PutConfig("lunge", updated); err != nil {
		t.Fatalf("failed to re-cache config: %v", err)
	}

	cfg, _ = repo.GetConfig("lunge")
	if cfg.DownThreshold != 95 {
		t.Errorf("expected updated threshold 95, got %f", cfg.DownThreshold)
	}
}
