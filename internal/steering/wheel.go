package steering

import (
	"math"

	"github.com/ayusman/volante/internal/detector"
)

// Wheel represents the direction the driver tilts the imaginary steering
// wheel formed by both hands.
type Wheel string

const (
	WheelLeft        Wheel = "left"
	WheelNeutral     Wheel = "neutral"
	WheelRight       Wheel = "right"
	WheelNotDetected Wheel = "not_detected"
)

// neutralToleranceDegrees is how far the wheel may tilt to either side
// and still count as going straight.
const neutralToleranceDegrees = 22.0

// WheelAngle returns the tilt of the wheel in degrees, measured
// counterclockwise from the positive x axis to the vector from the wrist
// midpoint to the LEFT_WRIST keypoint. The input frame is mirrored before
// detection, so the LEFT_WRIST keypoint tracks the driver's physical
// right hand. Returns false if either wrist is missing.
//
// Full turns of the wheel are not tracked: once the hands cross the
// horizontal the angle wraps and the reading mirrors.
func WheelAngle(det detector.Detection) (float64, bool) {
	leftWrist, ok := det[detector.LeftWrist]
	if !ok {
		return 0, false
	}

	center, ok := WristCenter(det)
	if !ok {
		return 0, false
	}

	vx := leftWrist.X - center.X
	vy := leftWrist.Y - center.Y

	// The y component is negated since the coordinates originate in the
	// top-left corner of the frame.
	angleInRadians := math.Atan2(-vy, vx)

	return angleInRadians * 180.0 / math.Pi, true
}

// ClassifyWheel determines the wheel direction from the wheel angle. Both
// wrists are required; if either is missing, WheelNotDetected is
// returned.
func ClassifyWheel(det detector.Detection) Wheel {
	angle, ok := WheelAngle(det)
	if !ok {
		return WheelNotDetected
	}

	switch {
	case math.Abs(angle) <= neutralToleranceDegrees:
		return WheelNeutral
	case angle < 0.0:
		return WheelRight
	default:
		return WheelLeft
	}
}
