// Package steering classifies body pose detections into virtual steering
// wheel positions for the driving controller.
package steering

import "github.com/ayusman/volante/internal/detector"

// WristCenter returns the midpoint between the two wrist keypoints of a
// detection. The midpoint lives in the same coordinates as the keypoints:
// origin in the top-left corner, values usually in [0, 1]. Returns false
// if either wrist is missing.
func WristCenter(det detector.Detection) (detector.Point, bool) {
	leftWrist, okLeft := det[detector.LeftWrist]
	rightWrist, okRight := det[detector.RightWrist]
	if !okLeft || !okRight {
		return detector.Point{}, false
	}

	return detector.Point{
		X: (leftWrist.X + rightWrist.X) / 2.0,
		Y: (leftWrist.Y + rightWrist.Y) / 2.0,
	}, true
}

// HipLevel returns the average hip y level. A single hip keypoint is
// enough; returns false when both are missing.
func HipLevel(det detector.Detection) (float64, bool) {
	leftHip, okLeft := det[detector.LeftHip]
	rightHip, okRight := det[detector.RightHip]

	switch {
	case okLeft && okRight:
		return (leftHip.Y + rightHip.Y) / 2.0, true
	case okLeft:
		return leftHip.Y, true
	case okRight:
		return rightHip.Y, true
	default:
		return 0, false
	}
}
