package capture

import (
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// ActivityMonitor detects whether anything is moving in front of the camera
// using frame differencing. The pipeline uses it to drop to a low frame rate
// and pause analysis while the user is away from the workout area.
type ActivityMonitor struct {
	threshold   float64
	prevGray    gocv.Mat
	initialized bool
	mu          sync.Mutex
}

const (
	// blurKernel is the Gaussian kernel size used to suppress sensor noise
	// before differencing.
	blurKernel = 21
	// diffCutoff is the per-pixel binary threshold applied to the frame
	// difference.
	diffCutoff = 25
)

// NewActivityMonitor creates an ActivityMonitor. The threshold is the
// percentage of pixels that must change between consecutive frames to count
// as activity (e.g. 1.0 means 1%).
func NewActivityMonitor(threshold float64) *ActivityMonitor {
	return &ActivityMonitor{
		threshold: threshold,
		prevGray:  gocv.NewMat(),
	}
}

// Sample compares a frame against the previous one and reports whether
// activity was detected plus the percentage of pixels that changed. The
// first frame establishes the baseline and always reports no activity.
func (m *ActivityMonitor) Sample(frame *gocv.Mat) (bool, float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if frame == nil || frame.Empty() {
		return false, 0
	}

	gray := gocv.NewMat()
	defer gray.Close()

	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: blurKernel, Y: blurKernel}, 0, 0, gocv.BorderDefault)

	if !m.initialized {
		blurred.CopyTo(&m.prevGray)
		m.initialized = true
		return false, 0
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(blurred, m.prevGray, &diff)

	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(diff, &thresh, diffCutoff, 255, gocv.ThresholdBinary)

	nonZero := gocv.CountNonZero(thresh)
	totalPixels := thresh.Rows() * thresh.Cols()
	changePercent := float64(nonZero) / float64(totalPixels) * 100.0

	blurred.CopyTo(&m.prevGray)

	return changePercent > m.threshold, changePercent
}

// Reset clears the baseline so the next frame starts a fresh comparison.
func (m *ActivityMonitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.prevGray.Empty() {
		m.prevGray.Close()
		m.prevGray = gocv.NewMat()
	}
	m.initialized = false
}

// Close releases resources held by the monitor.
func (m *ActivityMonitor) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.prevGray.Empty() {
		m.prevGray.Close()
		m.prevGray = gocv.NewMat()
	}
	m.initialized = false
}

// SetThreshold updates the activity threshold. Values <= 0 are ignored.
func (m *ActivityMonitor) SetThreshold(threshold float64) {
	if threshold <= 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.threshold = threshold
}
