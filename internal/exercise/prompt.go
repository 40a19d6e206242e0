package exercise

import (
	"fmt"
	"strings"
)

// BuildPrompt generates the prompt asking the model to describe an exercise
// as a single-angle, two-threshold config. The model only ever sees the
// landmark schema and the exercise name, never any user data.
func BuildPrompt(name string) string {
	var b strings.Builder

	b.WriteString(`You are an exercise motion analyst for a repetition counting application.

The application tracks one body joint angle per exercise using MediaPipe pose
landmarks (33 points, indices 0-32). Relevant indices:
- 11/12: left/right shoulder
- 13/14: left/right elbow
- 15/16: left/right wrist
- 23/24: left/right hip
- 25/26: left/right knee
- 27/28: left/right ankle

A repetition is counted when the tracked angle drops below "down_threshold"
and then rises above "up_threshold".

`)

	b.WriteString(fmt.Sprintf("EXERCISE: %s\n\n", name))

	b.WriteString(`Respond with a single JSON object only, no markdown and no explanation:
{
  "name": "exercise name",
  "type": "template",
  "primary_angle": {"point1": 23, "vertex": 25, "point3": 27},
  "down_threshold": 90,
  "up_threshold": 160,
  "use_left_side": true
}

Rules:
- primary_angle indices must be integers in [0,32] and should use the LEFT
  side of the body; set use_left_side to false only if the right side is
  essential to the movement.
- down_threshold must be lower than up_threshold.
- Pick the joint whose angle changes most over one repetition.
`)

	return b.String()
}
