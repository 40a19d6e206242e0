// Package pose provides body pose detection interfaces and types for exercise analysis.
package pose

// Body landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/pose_landmarker
const (
	Nose          = 0
	LeftEyeInner  = 1
	LeftEye       = 2
	LeftEyeOuter  = 3
	RightEyeInner = 4
	RightEye      = 5
	RightEyeOuter = 6
	LeftEar       = 7
	RightEar      = 8
	MouthLeft     = 9
	MouthRight    = 10
	LeftShoulder  = 11
	RightShoulder = 12
	LeftElbow     = 13
	RightElbow    = 14
	LeftWrist     = 15
	RightWrist    = 16
	LeftPinky     = 17
	RightPinky    = 18
	LeftIndex     = 19
	RightIndex    = 20
	LeftThumb     = 21
	RightThumb    = 22
	LeftHip       = 23
	RightHip      = 24
	LeftKnee      = 25
	RightKnee     = 26
	LeftAnkle     = 27
	RightAnkle    = 28
	LeftHeel      = 29
	RightHeel     = 30
	LeftFootIndex = 31
	RightFootIndex = 32
	NumLandmarks  = 33
)

// Landmark represents a single body joint position in normalized image
// coordinates. Visibility is the model's detection confidence for the joint;
// it is nil when the producing model does not report one.
type Landmark struct {
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	Z          float64  `json:"z"`
	Visibility *float64 `json:"visibility,omitempty"`
}

// Frame represents the 33 body landmarks detected for a single video frame.
type Frame struct {
	Points [NumLandmarks]Landmark `json:"points"`
	Score  float64                `json:"score"`
}

// ValidIndex reports whether i addresses a slot in the landmark schema.
func ValidIndex(i int) bool {
	return i >= 0 && i < NumLandmarks
}

// MirrorIndex returns the opposite-side index for a body landmark.
// From the ears down, MediaPipe landmarks come in left/right pairs with the
// left side odd (7,9,11,...,31). The nose and eye landmarks do not follow
// the pairing and are returned unchanged.
func MirrorIndex(i int) int {
	if i < LeftEar || i >= NumLandmarks {
		return i
	}
	if i%2 == 1 {
		return i + 1
	}
	return i - 1
}
