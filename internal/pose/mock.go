package pose

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	frame *Frame
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetFrame sets the pose frame that will be returned by Detect.
// A nil frame simulates no person in view.
func (m *MockDetector) SetFrame(f *Frame) {
	m.frame = f
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured frame or error.
func (m *MockDetector) Detect(frame *gocv.Mat) (*Frame, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.frame, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// visiblePtr is a helper for fixture construction.
func visiblePtr(v float64) *float64 {
	return &v
}

// baseFrame returns a fully visible upright body used as the starting point
// for the preset fixtures. Y grows downward in image coordinates.
func baseFrame() *Frame {
	f := &Frame{Score: 0.95}
	for i := range f.Points {
		f.Points[i] = Landmark{X: 0.5, Y: 0.5, Visibility: visiblePtr(0.9)}
	}

	set := func(i int, x, y float64) {
		f.Points[i].X = x
		f.Points[i].Y = y
	}

	set(Nose, 0.50, 0.12)
	set(LeftShoulder, 0.56, 0.28)
	set(RightShoulder, 0.44, 0.28)
	set(LeftElbow, 0.58, 0.42)
	set(RightElbow, 0.42, 0.42)
	set(LeftWrist, 0.58, 0.55)
	set(RightWrist, 0.42, 0.55)
	set(LeftHip, 0.54, 0.50)
	set(RightHip, 0.46, 0.50)
	set(LeftKnee, 0.54, 0.70)
	set(RightKnee, 0.46, 0.70)
	set(LeftAnkle, 0.54, 0.90)
	set(RightAnkle, 0.46, 0.90)
	set(LeftHeel, 0.53, 0.92)
	set(RightHeel, 0.47, 0.92)
	set(LeftFootIndex, 0.56, 0.93)
	set(RightFootIndex, 0.44, 0.93)

	return f
}

// StandingFrame returns a preset frame of a person standing upright with
// straight legs and the wrists hanging below the hip line.
func StandingFrame() *Frame {
	return baseFrame()
}

// SquatBottomFrame returns a preset frame at the bottom of a squat: the hips
// sit level with the knees so the hip-knee-ankle angle is below 90 degrees.
func SquatBottomFrame() *Frame {
	f := baseFrame()
	f.Points[LeftHip] = Landmark{X: 0.66, Y: 0.72, Visibility: visiblePtr(0.9)}
	f.Points[RightHip] = Landmark{X: 0.34, Y: 0.72, Visibility: visiblePtr(0.9)}
	return f
}

// OverheadFrame returns a preset frame with both wrists raised above the
// shoulder line, as at the top of an overhead press.
func OverheadFrame() *Frame {
	f := baseFrame()
	f.Points[LeftElbow] = Landmark{X: 0.58, Y: 0.20, Visibility: visiblePtr(0.9)}
	f.Points[RightElbow] = Landmark{X: 0.42, Y: 0.20, Visibility: visiblePtr(0.9)}
	f.Points[LeftWrist] = Landmark{X: 0.58, Y: 0.10, Visibility: visiblePtr(0.9)}
	f.Points[RightWrist] = Landmark{X: 0.42, Y: 0.10, Visibility: visiblePtr(0.9)}
	return f
}
