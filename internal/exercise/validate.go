package exercise

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/sidmahajan/repcoach/internal/pose"
)

// ErrInvalidConfig is returned when a generated config fails validation.
var ErrInvalidConfig = errors.New("invalid exercise config")

// rawConfig mirrors Config but keeps every field loose enough to inspect
// before trusting it: indices as floats (to catch non-integers) and
// thresholds as pointers (to catch absence).
type rawConfig struct {
	Name         string        `json:"name"`
	Type         string        `json:"type"`
	PrimaryAngle *rawAngleSpec `json:"primary_angle"`
	DownThresh   *float64      `json:"down_threshold"`
	UpThresh     *float64      `json:"up_threshold"`
	UseLeftSide  *bool         `json:"use_left_side"`
}

type rawAngleSpec struct {
	Point1 float64 `json:"point1"`
	Vertex float64 `json:"vertex"`
	Point3 float64 `json:"point3"`
}

// Validate bounds-checks an untrusted config payload and converts it into a
// Config safe to drive a template analyzer. Landmark indices are validated
// against the closed landmark schema before they may ever address a frame.
func Validate(payload json.RawMessage) (*Config, error) {
	var rc rawConfig
	if err := json.Unmarshal(payload, &rc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if rc.PrimaryAngle == nil {
		return nil, fmt.Errorf("%w: missing primary_angle", ErrInvalidConfig)
	}

	spec := AngleSpec{}
	for _, p := range []struct {
		name string
		val  float64
		dst  *int
	}{
		{"point1", rc.PrimaryAngle.Point1, &spec.Point1},
		{"vertex", rc.PrimaryAngle.Vertex, &spec.Vertex},
		{"point3", rc.PrimaryAngle.Point3, &spec.Point3},
	} {
		if p.val != math.Trunc(p.val) {
			return nil, fmt.Errorf("%w: %s is not an integer", ErrInvalidConfig, p.name)
		}
		idx := int(p.val)
		if !pose.ValidIndex(idx) {
			return nil, fmt.Errorf("%w: %s index %d out of range", ErrInvalidConfig, p.name, idx)
		}
		*p.dst = idx
	}

	if rc.DownThresh == nil || math.IsNaN(*rc.DownThresh) || math.IsInf(*rc.DownThresh, 0) {
		return nil, fmt.Errorf("%w: down_threshold is not a finite number", ErrInvalidConfig)
	}
	if rc.UpThresh == nil || math.IsNaN(*rc.UpThresh) || math.IsInf(*rc.UpThresh, 0) {
		return nil, fmt.Errorf("%w: up_threshold is not a finite number", ErrInvalidConfig)
	}

	cfg := &Config{
		Name:          rc.Name,
		Type:          rc.Type,
		PrimaryAngle:  spec,
		DownThreshold: *rc.DownThresh,
		UpThreshold:   *rc.UpThresh,
	}
	if rc.UseLeftSide != nil {
		cfg.UseLeftSide = *rc.UseLeftSide
	}

	return cfg, nil
}

// Parse extracts the JSON payload from a raw generative service response and
// validates it.
func Parse(response string) (*Config, error) {
	payload, err := extractPayload(response)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return Validate(payload)
}
