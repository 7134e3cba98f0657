package detector

import "gocv.io/x/gocv"

// Detector defines the interface for body pose detection implementations.
type Detector interface {
	// Detect analyzes a video frame and returns one Detection per person.
	// Returns an empty slice if nobody is detected.
	Detect(frame *gocv.Mat) ([]Detection, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for pose detection.
type Config struct {
	// MaxPoses is the maximum number of people to detect (default: 2).
	MaxPoses int

	// MinScore is the minimum per-keypoint confidence threshold (0.0-1.0).
	// Keypoints scoring below it are omitted from the Detection.
	MinScore float64
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MaxPoses: 2,
		MinScore: 0.3,
	}
}
