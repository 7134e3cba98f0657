package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	detections []Detection
	err        error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetDetections sets the detections that will be returned by Detect.
func (m *MockDetector) SetDetections(detections []Detection) {
	m.detections = detections
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured detections or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]Detection, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.detections, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// AcceleratingPose returns a preset Detection of a driver holding the wheel
// level and high, well above two thirds of the nose-to-hip range.
func AcceleratingPose() Detection {
	return Detection{
		Nose:       {X: 0.50, Y: 0.20},
		LeftHip:    {X: 0.55, Y: 0.80},
		RightHip:   {X: 0.45, Y: 0.80},
		LeftWrist:  {X: 0.65, Y: 0.35},
		RightWrist: {X: 0.35, Y: 0.35},
	}
}

// BrakingPose returns a preset Detection of a driver holding the wheel
// level and low, below one third of the nose-to-hip range.
func BrakingPose() Detection {
	return Detection{
		Nose:       {X: 0.50, Y: 0.20},
		LeftHip:    {X: 0.55, Y: 0.80},
		RightHip:   {X: 0.45, Y: 0.80},
		LeftWrist:  {X: 0.65, Y: 0.70},
		RightWrist: {X: 0.35, Y: 0.70},
	}
}

// TurningLeftPose returns a preset Detection of a driver at mid height
// with the wheel tilted 45 degrees counterclockwise on screen.
func TurningLeftPose() Detection {
	return Detection{
		Nose:       {X: 0.50, Y: 0.20},
		LeftHip:    {X: 0.55, Y: 0.80},
		RightHip:   {X: 0.45, Y: 0.80},
		LeftWrist:  {X: 0.62, Y: 0.38},
		RightWrist: {X: 0.38, Y: 0.62},
	}
}

// TurningRightPose returns a preset Detection of a driver at mid height
// with the wheel tilted 45 degrees clockwise on screen.
func TurningRightPose() Detection {
	return Detection{
		Nose:       {X: 0.50, Y: 0.20},
		LeftHip:    {X: 0.55, Y: 0.80},
		RightHip:   {X: 0.45, Y: 0.80},
		LeftWrist:  {X: 0.62, Y: 0.62},
		RightWrist: {X: 0.38, Y: 0.38},
	}
}
