package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"gocv.io/x/gocv"

	"github.com/ayusman/volante/internal/engine"
	"github.com/ayusman/volante/internal/store"
)

func TestServer_Health(t *testing.T) {
	s := New(Config{})

	t.Run("returns 200 with JSON response", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		rec := httptest.NewRecorder()

		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
		}

		contentType := rec.Header().Get("Content-Type")
		if contentType != "application/json" {
			t.Errorf("expected Content-Type application/json, got %s", contentType)
		}

		var response map[string]interface{}
		if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}

		if response["status"] != "ok" {
			t.Errorf("expected status 'ok', got %v", response["status"])
		}

		if _, exists := response["uptime"]; !exists {
			t.Error("expected 'uptime' field in response")
		}
	})

	t.Run("only allows GET method", func(t *testing.T) {
		methods := []string{http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch}

		for _, method := range methods {
			req := httptest.NewRequest(method, "/api/health", nil)
			rec := httptest.NewRecorder()

			s.ServeHTTP(rec, req)

			if rec.Code != http.StatusMethodNotAllowed {
				t.Errorf("method %s: expected status %d, got %d", method, http.StatusMethodNotAllowed, rec.Code)
			}
		}
	})
}

func TestServer_NotFound(t *testing.T) {
	s := New(Config{})

	req := httptest.NewRequest(http.MethodGet, "/api/nonexistent", nil)
	rec := httptest.NewRecorder()

	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestServer_PresetRoutes(t *testing.T) {
	t.Run("registered when store is configured", func(t *testing.T) {
		tmpDir := t.TempDir()
		st, err := store.New(filepath.Join(tmpDir, "test.db"))
		if err != nil {
			t.Fatalf("failed to create store: %v", err)
		}
		defer st.Close()

		s := New(Config{Store: st})

		req := httptest.NewRequest(http.MethodGet, "/api/presets", nil)
		rec := httptest.NewRecorder()

		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
		}

		var response struct {
			Presets []struct {
				Name string `json:"name"`
			} `json:"presets"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}

		// The seeded preset is visible through the API
		if len(response.Presets) != 1 {
			t.Fatalf("expected 1 preset, got %d", len(response.Presets))
		}

		if response.Presets[0].Name != store.MicroMachinesPresetName {
			t.Errorf("expected preset %q, got %q", store.MicroMachinesPresetName, response.Presets[0].Name)
		}
	})

	t.Run("not registered without a store", func(t *testing.T) {
		s := New(Config{})

		req := httptest.NewRequest(http.MethodGet, "/api/presets", nil)
		rec := httptest.NewRecorder()

		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
		}
	})
}

func TestServer_State_RejectsPlainHTTP(t *testing.T) {
	s := New(Config{})

	// A request without the WebSocket upgrade headers is refused
	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	rec := httptest.NewRecorder()

	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestServer_Stream_MethodNotAllowed(t *testing.T) {
	s := New(Config{})

	req := httptest.NewRequest(http.MethodPost, "/api/stream", nil)
	rec := httptest.NewRecorder()

	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
	}
}

func TestStateHandler_PublishWithoutClients(t *testing.T) {
	h := NewStateHandler()

	// Publishing into an empty handler must be a no-op
	h.Publish(engine.FrameState{ActiveKeys: []string{"up"}})

	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.clients) != 0 {
		t.Errorf("expected no clients, got %d", len(h.clients))
	}
}

func TestStreamHandler_PublishWithoutViewers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	h := NewStreamHandler()

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	// With no viewers the frame is not encoded at all
	h.Publish(&frame)

	jpeg, seq := h.snapshot()
	if jpeg != nil {
		t.Errorf("expected no encoded frame without viewers, got %d bytes", len(jpeg))
	}
	if seq != 0 {
		t.Errorf("expected sequence 0, got %d", seq)
	}
}

func TestStreamHandler_PublishWithViewer(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	h := NewStreamHandler()
	h.addViewer()
	defer h.removeViewer()

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	h.Publish(&frame)

	jpeg, seq := h.snapshot()
	if len(jpeg) == 0 {
		t.Error("expected an encoded frame with a viewer connected")
	}
	if seq != 1 {
		t.Errorf("expected sequence 1, got %d", seq)
	}
}

func TestNew(t *testing.T) {
	t.Run("creates server with config", func(t *testing.T) {
		s := New(Config{})

		if s == nil {
			t.Fatal("expected non-nil server")
		}

		if s.state == nil || s.stream == nil {
			t.Error("expected state and stream handlers to be initialized")
		}
	})

	t.Run("server implements http.Handler", func(t *testing.T) {
		s := New(Config{})
		var _ http.Handler = s
	})
}
