// Package capture provides the video frame sources and the recorder for
// the controller, built on GoCV (OpenCV).
package capture

import (
	"errors"
	"sync"

	"gocv.io/x/gocv"
)

// Default capture resolution requested from camera devices.
const (
	DefaultWidth  = 640
	DefaultHeight = 480
)

// ErrSourceNotOpen is returned when reading from a source that is not open.
var ErrSourceNotOpen = errors.New("video source is not open")

// ErrNoMoreFrames is returned when a finite source has been exhausted.
var ErrNoMoreFrames = errors.New("no more frames")

// Source defines the interface for video frame sources.
type Source interface {
	Open() error
	Close() error
	ReadFrame() (*gocv.Mat, error)
	IsOpen() bool
}

// cameraSource captures frames from a camera device using GoCV.
type cameraSource struct {
	deviceID int
	capture  *gocv.VideoCapture
	mu       sync.Mutex
	running  bool
}

// NewCamera creates a Source reading from the camera at the given device
// index. Usually 0 is the web cam, but there are systems where it sits at
// index -1 or 2; see https://github.com/opencv/opencv/issues/4269.
func NewCamera(deviceID int) Source {
	return &cameraSource{
		deviceID: deviceID,
		running:  false,
		capture:  nil,
	}
}

// Open opens the camera device. It requests a 640x480 resolution to keep
// the detector fast enough for per-frame control.
func (c *cameraSource) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return nil
	}

	capture, err := gocv.OpenVideoCapture(c.deviceID)
	if err != nil {
		return err
	}

	capture.Set(gocv.VideoCaptureFrameWidth, DefaultWidth)
	capture.Set(gocv.VideoCaptureFrameHeight, DefaultHeight)

	c.capture = capture
	c.running = true

	return nil
}

// Close closes the camera and releases resources.
func (c *cameraSource) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running || c.capture == nil {
		c.running = false
		return nil
	}

	err := c.capture.Close()
	c.capture = nil
	c.running = false

	return err
}

// ReadFrame reads a single frame from the camera.
// The caller is responsible for closing the returned Mat.
func (c *cameraSource) ReadFrame() (*gocv.Mat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running || c.capture == nil {
		return nil, ErrSourceNotOpen
	}

	mat := gocv.NewMat()
	if ok := c.capture.Read(&mat); !ok {
		mat.Close()
		return nil, errors.New("failed to read frame from camera")
	}

	if mat.Empty() {
		mat.Close()
		return nil, errors.New("captured frame is empty")
	}

	return &mat, nil
}

// IsOpen returns true if the camera is currently open.
func (c *cameraSource) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.running
}
