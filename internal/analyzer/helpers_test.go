package analyzer

import (
	"math"

	"github.com/sidmahajan/repcoach/internal/pose"
)

func vis(v float64) *float64 {
	return &v
}

// fullyVisibleFrame returns a frame with every landmark visible at a neutral
// position.
func fullyVisibleFrame() *pose.Frame {
	f := &pose.Frame{Score: 0.9}
	for i := range f.Points {
		f.Points[i] = pose.Landmark{X: 0.5, Y: 0.5, Visibility: vis(0.9)}
	}
	return f
}

// frameWithKneeAngle builds a frame whose left hip-knee-ankle angle is the
// given number of degrees. The ankle hangs straight below the knee and the
// hip is rotated around the knee to produce the target angle. The right leg
// mirrors the left so mirrored template configs see the same angle.
func frameWithKneeAngle(deg float64) *pose.Frame {
	f := fullyVisibleFrame()

	setLeg := func(hip, knee, ankle int, dir float64) {
		f.Points[knee] = pose.Landmark{X: 0.5 + dir*0.04, Y: 0.5, Visibility: vis(0.9)}
		f.Points[ankle] = pose.Landmark{
			X:          f.Points[knee].X,
			Y:          0.7,
			Visibility: vis(0.9),
		}
		// Ankle sits at bearing 90 degrees from the knee; rotating the hip
		// to bearing 90-deg yields the requested included angle.
		rad := (90 - deg) * math.Pi / 180
		f.Points[hip] = pose.Landmark{
			X:          f.Points[knee].X + dir*0.2*math.Cos(rad),
			Y:          f.Points[knee].Y + 0.2*math.Sin(rad),
			Visibility: vis(0.9),
		}
	}

	setLeg(pose.LeftHip, pose.LeftKnee, pose.LeftAnkle, 1)
	setLeg(pose.RightHip, pose.RightKnee, pose.RightAnkle, -1)
	return f
}

// armFrame builds a frame with the wrists at the given heights. Shoulders
// sit at y=0.3 and hips at y=0.5; image Y grows downward.
func armFrame(leftWristY, rightWristY float64) *pose.Frame {
	f := fullyVisibleFrame()
	f.Points[pose.LeftShoulder] = pose.Landmark{X: 0.56, Y: 0.3, Visibility: vis(0.9)}
	f.Points[pose.RightShoulder] = pose.Landmark{X: 0.44, Y: 0.3, Visibility: vis(0.9)}
	f.Points[pose.LeftHip] = pose.Landmark{X: 0.54, Y: 0.5, Visibility: vis(0.9)}
	f.Points[pose.RightHip] = pose.Landmark{X: 0.46, Y: 0.5, Visibility: vis(0.9)}
	f.Points[pose.LeftWrist] = pose.Landmark{X: 0.58, Y: leftWristY, Visibility: vis(0.9)}
	f.Points[pose.RightWrist] = pose.Landmark{X: 0.42, Y: rightWristY, Visibility: vis(0.9)}
	return f
}

// Wrist heights relative to the armFrame shoulder/hip lines.
const (
	wristOverhead  = 0.1 // above the shoulder line
	wristAtChest   = 0.4 // between shoulders and hips
	wristBelowHips = 0.6 // below the hip line
)
