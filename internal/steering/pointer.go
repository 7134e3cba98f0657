package steering

import "github.com/ayusman/volante/internal/detector"

// Pointer represents how high the driver holds the wheel. High maps to
// accelerating, low to slowing down.
type Pointer string

const (
	PointerHigh        Pointer = "high"
	PointerMid         Pointer = "mid"
	PointerLow         Pointer = "low"
	PointerNotDetected Pointer = "not_detected"
)

// ClassifyPointer determines the pointer level from where the wrist
// midpoint sits in the range between the hips and the nose. The nose, at
// least one hip and both wrists are required; if any of them is missing,
// PointerNotDetected is returned.
func ClassifyPointer(det detector.Detection) Pointer {
	nose, ok := det[detector.Nose]
	if !ok {
		return PointerNotDetected
	}

	bottom, ok := HipLevel(det)
	if !ok {
		return PointerNotDetected
	}

	center, ok := WristCenter(det)
	if !ok {
		return PointerNotDetected
	}

	// The keypoint coordinates originate in the top-left corner of the
	// frame, so hands held high in physical space have a *small* y.
	relative := (bottom - center.Y) / (bottom - nose.Y)

	// The relative pointer is deliberately not clamped: hands above the
	// nose or below the hips still land in the outermost bands.
	switch {
	case relative > 0.66:
		return PointerHigh
	case relative > 0.33:
		return PointerMid
	default:
		return PointerLow
	}
}
