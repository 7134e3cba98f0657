package capture

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gocv.io/x/gocv"
)

// RecordFPS is the frame rate stamped onto recorded videos.
const RecordFPS = 25.0

// Recorder writes frames to an .mp4 video file. The underlying writer is
// created lazily from the dimensions of the first frame.
type Recorder struct {
	path   string
	writer *gocv.VideoWriter
	mu     sync.Mutex
}

// NewRecorder creates a Recorder for the given target path. Only the .mp4
// extension is handled. Missing parent directories are created.
func NewRecorder(path string) (*Recorder, error) {
	if strings.ToLower(filepath.Ext(path)) != ".mp4" {
		return nil, fmt.Errorf("unhandled extension of target: %s", path)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating target directory: %w", err)
		}
	}

	return &Recorder{path: path}, nil
}

// Write appends a frame to the video. The first frame determines the
// video dimensions; later frames must match them.
func (r *Recorder) Write(frame *gocv.Mat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.writer == nil {
		writer, err := gocv.VideoWriterFile(
			r.path, "mp4v", RecordFPS, frame.Cols(), frame.Rows(), true)
		if err != nil {
			return fmt.Errorf("opening video writer for %s: %w", r.path, err)
		}
		r.writer = writer
	}

	return r.writer.Write(*frame)
}

// Close finishes the video and releases the writer. A Recorder that never
// received a frame closes without creating a file.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.writer == nil {
		return nil
	}

	err := r.writer.Close()
	r.writer = nil

	return err
}
