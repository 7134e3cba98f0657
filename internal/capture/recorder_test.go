package capture

import (
	"os"
	"path/filepath"
	"testing"

	"gocv.io/x/gocv"
)

func TestNewRecorder(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		wantErr bool
	}{
		{
			name:   "mp4 target",
			target: "out.mp4",
		},
		{
			name:   "uppercase extension",
			target: "OUT.MP4",
		},
		{
			name:    "avi target",
			target:  "out.avi",
			wantErr: true,
		},
		{
			name:    "no extension",
			target:  "out",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := NewRecorder(filepath.Join(t.TempDir(), tt.target))

			if tt.wantErr {
				if err == nil {
					t.Errorf("NewRecorder(%q) expected error, got nil", tt.target)
				}
				return
			}

			if err != nil {
				t.Fatalf("NewRecorder(%q) error = %v", tt.target, err)
			}

			if err := rec.Close(); err != nil {
				t.Errorf("Close() = %v", err)
			}
		})
	}
}

func TestNewRecorder_CreatesParentDirectories(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "videos", "session")

	rec, err := NewRecorder(filepath.Join(dir, "out.mp4"))
	if err != nil {
		t.Fatalf("NewRecorder() error = %v", err)
	}
	defer rec.Close()

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("parent directory was not created: %v", err)
	}
	if !info.IsDir() {
		t.Errorf("%s is not a directory", dir)
	}
}

func TestRecorder_CloseWithoutFrames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.mp4")

	rec, err := NewRecorder(path)
	if err != nil {
		t.Fatalf("NewRecorder() error = %v", err)
	}

	if err := rec.Close(); err != nil {
		t.Errorf("Close() without frames = %v", err)
	}

	// No frame was written, so no file should exist.
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("os.Stat(%s) = %v, want not-exist", path, err)
	}
}

func TestRecorder_Write_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	path := filepath.Join(t.TempDir(), "out.mp4")

	rec, err := NewRecorder(path)
	if err != nil {
		t.Fatalf("NewRecorder() error = %v", err)
	}

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	if err := rec.Write(&frame); err != nil {
		t.Skipf("skipping test - video writer not available: %v", err)
	}

	if err := rec.Write(&frame); err != nil {
		t.Errorf("second Write() = %v", err)
	}

	if err := rec.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("recorded file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("recorded file is empty")
	}
}
