// Package server provides the HTTP server for the volante controller.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/volante/internal/engine"
	"github.com/ayusman/volante/internal/server/api"
	"github.com/ayusman/volante/internal/store"
)

// Config holds the server configuration.
type Config struct {
	Store *store.Store
}

// Server represents the HTTP server for the volante application. It
// never touches the camera itself: the game loop pushes each processed
// frame in via Publish, and the handlers fan it out to their clients.
type Server struct {
	config Config
	mux    *http.ServeMux
	state  *StateHandler
	stream *StreamHandler
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		state:  NewStateHandler(),
		stream: NewStreamHandler(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	// Register preset API handler if Store is configured
	if s.config.Store != nil {
		presetHandler := api.NewPresetHandler(s.config.Store)
		s.mux.Handle("/api/presets", presetHandler)
		s.mux.Handle("/api/presets/", presetHandler)
	}

	s.mux.Handle("/api/state", s.state)
	s.mux.Handle("/api/stream", s.stream)
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Publish fans one processed frame out to the connected clients: the
// controller state to the WebSocket listeners and the annotated frame
// to the MJPEG stream. The caller keeps ownership of the Mat.
func (s *Server) Publish(state engine.FrameState, frame *gocv.Mat) {
	s.state.Publish(state)
	s.stream.Publish(frame)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
