// Package exercise provides exercise configuration types, validation for
// externally generated configs, and the Gemini boundary that produces them.
package exercise

import "strings"

// AngleSpec is an ordered triple of landmark indices defining the joint
// angle an analyzer measures: the angle at Vertex formed by Point1 and
// Point3.
type AngleSpec struct {
	Point1 int `json:"point1"`
	Vertex int `json:"vertex"`
	Point3 int `json:"point3"`
}

// Config is a declarative parameter set that fully determines a template
// analyzer's behavior. Configs arrive from the generative service and are
// untrusted until they pass Validate.
type Config struct {
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	PrimaryAngle  AngleSpec `json:"primary_angle"`
	DownThreshold float64   `json:"down_threshold"`
	UpThreshold   float64   `json:"up_threshold"`
	UseLeftSide   bool      `json:"use_left_side"`
}

// Normalize canonicalizes a free-text exercise name for lookup and routing.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
