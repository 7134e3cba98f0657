package capture

import (
	"fmt"
	"os"
	"sync"

	"gocv.io/x/gocv"
)

// videoFileSource plays back a pre-recorded video file.
type videoFileSource struct {
	path    string
	capture *gocv.VideoCapture
	mu      sync.Mutex
	running bool
}

// NewVideoFile creates a Source reading the video file at the given path.
// The source ends with ErrNoMoreFrames once the file is exhausted.
func NewVideoFile(path string) Source {
	return &videoFileSource{path: path}
}

// Open opens the video file. It fails if the path does not point to a
// readable video file.
func (v *videoFileSource) Open() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.running {
		return nil
	}

	info, err := os.Stat(v.path)
	if err != nil {
		return fmt.Errorf("source does not exist: %s", v.path)
	}
	if info.IsDir() {
		return fmt.Errorf("source is not a file: %s", v.path)
	}

	capture, err := gocv.VideoCaptureFile(v.path)
	if err != nil {
		return fmt.Errorf("opening source %s: %w", v.path, err)
	}

	v.capture = capture
	v.running = true

	return nil
}

// Close closes the video file and releases resources.
func (v *videoFileSource) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.running || v.capture == nil {
		v.running = false
		return nil
	}

	err := v.capture.Close()
	v.capture = nil
	v.running = false

	return err
}

// ReadFrame reads the next frame from the video file. OpenCV does not
// distinguish the end of the file from a read failure, so both surface as
// ErrNoMoreFrames. The caller is responsible for closing the returned Mat.
func (v *videoFileSource) ReadFrame() (*gocv.Mat, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.running || v.capture == nil {
		return nil, ErrSourceNotOpen
	}

	mat := gocv.NewMat()
	if ok := v.capture.Read(&mat); !ok {
		mat.Close()
		return nil, ErrNoMoreFrames
	}

	if mat.Empty() {
		mat.Close()
		return nil, ErrNoMoreFrames
	}

	return &mat, nil
}

// IsOpen returns true if the video file is currently open.
func (v *videoFileSource) IsOpen() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.running
}
