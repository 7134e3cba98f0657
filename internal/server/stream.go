// Package server provides the HTTP server for the volante controller.
package server

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// StreamHandler serves the annotated frames the game loop publishes as
// an MJPEG stream. Frames are encoded only while at least one client is
// watching, so an idle stream costs the loop nothing.
type StreamHandler struct {
	mu      sync.RWMutex
	jpeg    []byte
	seq     uint64
	viewers int
}

// NewStreamHandler creates a new StreamHandler.
func NewStreamHandler() *StreamHandler {
	return &StreamHandler{}
}

// Publish encodes the frame as JPEG and makes it the current stream
// image. The frame is copied, so the caller keeps ownership of the Mat.
func (h *StreamHandler) Publish(frame *gocv.Mat) {
	h.mu.RLock()
	idle := h.viewers == 0
	h.mu.RUnlock()
	if idle {
		return
	}

	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		return
	}
	data := make([]byte, buf.Len())
	copy(data, buf.GetBytes())
	buf.Close()

	h.mu.Lock()
	h.jpeg = data
	h.seq++
	h.mu.Unlock()
}

// ServeHTTP streams MJPEG frames to connected clients.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	h.addViewer()
	defer h.removeViewer()

	ticker := time.NewTicker(66 * time.Millisecond) // ~15 FPS
	defer ticker.Stop()

	var lastSeq uint64
	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}

		jpeg, seq := h.snapshot()
		if jpeg == nil || seq == lastSeq {
			continue
		}
		lastSeq = seq

		// Write MJPEG frame
		fmt.Fprintf(w, "--frame\r\n")
		fmt.Fprintf(w, "Content-Type: image/jpeg\r\n")
		fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", len(jpeg))
		if _, err := w.Write(jpeg); err != nil {
			return
		}
		fmt.Fprintf(w, "\r\n")

		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
	}
}

func (h *StreamHandler) snapshot() ([]byte, uint64) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.jpeg, h.seq
}

func (h *StreamHandler) addViewer() {
	h.mu.Lock()
	h.viewers++
	h.mu.Unlock()
}

func (h *StreamHandler) removeViewer() {
	h.mu.Lock()
	h.viewers--
	h.mu.Unlock()
}
