package capture

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockSource plays back a fixed sequence of frames for testing.
type MockSource struct {
	frames  []*gocv.Mat
	index   int
	loop    bool
	mu      sync.Mutex
	running bool
}

func NewMockSource(frames []*gocv.Mat, loop bool) *MockSource {
	return &MockSource{
		frames: frames,
		loop:   loop,
	}
}

func (m *MockSource) Open() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.running = true
	m.index = 0
	return nil
}

func (m *MockSource) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.running = false
	return nil
}

func (m *MockSource) ReadFrame() (*gocv.Mat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return nil, ErrSourceNotOpen
	}

	if len(m.frames) == 0 {
		return nil, ErrNoMoreFrames
	}

	if m.index >= len(m.frames) {
		if m.loop {
			m.index = 0
		} else {
			return nil, ErrNoMoreFrames
		}
	}

	// Clone the frame so the original isn't modified downstream.
	frame := m.frames[m.index].Clone()
	m.index++

	return &frame, nil
}

func (m *MockSource) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// SetFrames replaces the frame sequence and rewinds playback.
func (m *MockSource) SetFrames(frames []*gocv.Mat) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frames = frames
	m.index = 0
}

// Reset restarts playback from the beginning.
func (m *MockSource) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.index = 0
}
