package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sidmahajan/repcoach/internal/exercise"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ExerciseKind distinguishes built-in exercises from generated ones.
type ExerciseKind string

const (
	// KindBuiltin is an exercise with a dedicated analyzer.
	KindBuiltin ExerciseKind = "builtin"
	// KindGenerated is an exercise driven by a generated template config.
	KindGenerated ExerciseKind = "generated"
)

// Exercise represents an exercise definition stored in the database.
// Config is nil for built-in exercises.
type Exercise struct {
	ID          string
	Name        string // normalized, unique
	DisplayName string
	Kind        ExerciseKind
	Config      *exercise.Config
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ExerciseRepository provides CRUD operations for exercises.
type ExerciseRepository struct {
	db *sql.DB
}

// Exercises returns the exercise repository for this store.
func (s *Store) Exercises() *ExerciseRepository {
	return &ExerciseRepository{db: s.db}
}

// Create inserts a new exercise into the database.
func (r *ExerciseRepository) Create(e *Exercise) error {
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now

	configJSON, err := marshalConfig(e.Config)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(
		`INSERT INTO exercises (id, name, display_name, kind, config, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Name, e.DisplayName, string(e.Kind), configJSON, e.CreatedAt, e.UpdatedAt,
	)
	return err
}

// GetByID retrieves an exercise by its ID.
func (r *ExerciseRepository) GetByID(id string) (*Exercise, error) {
	return r.get(`SELECT id, name, display_name, kind, config, created_at, updated_at
		 FROM exercises WHERE id = ?`, id)
}

// GetByName retrieves an exercise by its normalized name.
func (r *ExerciseRepository) GetByName(name string) (*Exercise, error) {
	return r.get(`SELECT id, name, display_name, kind, config, created_at, updated_at
		 FROM exercises WHERE name = ?`, name)
}

func (r *ExerciseRepository) get(query string, arg any) (*Exercise, error) {
	e := &Exercise{}
	var kind string
	var configJSON sql.NullString

	err := r.db.QueryRow(query, arg).Scan(
		&e.ID, &e.Name, &e.DisplayName, &kind, &configJSON, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	e.Kind = ExerciseKind(kind)
	if e.Config, err = unmarshalConfig(configJSON); err != nil {
		return nil, err
	}
	return e, nil
}

// List retrieves all exercises from the database.
func (r *ExerciseRepository) List() ([]*Exercise, error) {
	rows, err := r.db.Query(
		`SELECT id, name, display_name, kind, config, created_at, updated_at
		 FROM exercises ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exercises []*Exercise
	for rows.Next() {
		e := &Exercise{}
		var kind string
		var configJSON sql.NullString

		if err := rows.Scan(&e.ID, &e.Name, &e.DisplayName, &kind, &configJSON, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}

		e.Kind = ExerciseKind(kind)
		if e.Config, err = unmarshalConfig(configJSON); err != nil {
			return nil, err
		}
		exercises = append(exercises, e)
	}

	return exercises, rows.Err()
}

// Update updates an exercise's display name and config.
func (r *ExerciseRepository) Update(e *Exercise) error {
	e.UpdatedAt = time.Now()

	configJSON, err := marshalConfig(e.Config)
	if err != nil {
		return err
	}

	result, err := r.db.Exec(
		`UPDATE exercises SET display_name = ?, config = ?, updated_at = ? WHERE id = ?`,
		e.DisplayName, configJSON, e.UpdatedAt, e.ID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an exercise by its ID.
func (r *ExerciseRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM exercises WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetConfig implements exercise.ConfigCache: it returns the cached template
// config for a normalized exercise name, or nil when none is stored.
func (r *ExerciseRepository) GetConfig(name string) (*exercise.Config, error) {
	e, err := r.GetByName(name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return e.Config, nil
}

// PutConfig implements exercise.ConfigCache: it stores a validated generated
// config under a normalized exercise name, updating any existing row.
func (r *ExerciseRepository) PutConfig(name string, cfg *exercise.Config) error {
	existing, err := r.GetByName(name)
	if err == nil {
		existing.Config = cfg
		return r.Update(existing)
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}

	display := cfg.Name
	if display == "" {
		display = name
	}

	return r.Create(&Exercise{
		ID:          newID(),
		Name:        name,
		DisplayName: display,
		Kind:        KindGenerated,
		Config:      cfg,
	})
}

func marshalConfig(cfg *exercise.Config) (sql.NullString, error) {
	if cfg == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshal config: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func unmarshalConfig(raw sql.NullString) (*exercise.Config, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	cfg := &exercise.Config{}
	if err := json.Unmarshal([]byte(raw.String), cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
