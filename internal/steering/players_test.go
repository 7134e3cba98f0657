package steering

import (
	"reflect"
	"testing"

	"github.com/ayusman/volante/internal/detector"
)

// poseAt builds a detection whose wrist midpoint sits at the given
// position.
func poseAt(x, y float64) detector.Detection {
	return detector.Detection{
		detector.LeftWrist:  {X: x + 0.1, Y: y},
		detector.RightWrist: {X: x - 0.1, Y: y},
	}
}

func TestPlayerID(t *testing.T) {
	tests := []struct {
		name   string
		det    detector.Detection
		want   int
		wantOK bool
	}{
		{
			name:   "left half is player 0",
			det:    poseAt(0.2, 0.5),
			want:   0,
			wantOK: true,
		},
		{
			name:   "right half is player 1",
			det:    poseAt(0.8, 0.5),
			want:   1,
			wantOK: true,
		},
		{
			name:   "exact middle is player 1",
			det:    poseAt(0.5, 0.5),
			want:   1,
			wantOK: true,
		},
		{
			name: "no wrist midpoint",
			det: detector.Detection{
				detector.Nose: {X: 0.2, Y: 0.2},
			},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PlayerID(tt.det)

			if ok != tt.wantOK {
				t.Fatalf("expected ok %v, got %v", tt.wantOK, ok)
			}
			if ok && got != tt.want {
				t.Errorf("PlayerID() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSplitDetections(t *testing.T) {
	t.Run("assigns halves independent of input order", func(t *testing.T) {
		left := poseAt(0.2, 0.5)
		right := poseAt(0.8, 0.5)

		forward := SplitDetections([]detector.Detection{left, right})
		reversed := SplitDetections([]detector.Detection{right, left})

		for name, split := range map[string][MaxPlayers]detector.Detection{
			"forward":  forward,
			"reversed": reversed,
		} {
			if !reflect.DeepEqual(split[0], left) {
				t.Errorf("%s: expected player 0 to get the left detection", name)
			}
			if !reflect.DeepEqual(split[1], right) {
				t.Errorf("%s: expected player 1 to get the right detection", name)
			}
		}
	})

	t.Run("first detection wins a contested half", func(t *testing.T) {
		first := poseAt(0.3, 0.4)
		second := poseAt(0.3, 0.6)

		split := SplitDetections([]detector.Detection{first, second})

		if !reflect.DeepEqual(split[0], first) {
			t.Error("expected player 0 to keep the first detection")
		}
		if split[1] != nil {
			t.Error("expected player 1 to stay empty")
		}
	})

	t.Run("drops detections without wrists", func(t *testing.T) {
		noWrists := detector.Detection{
			detector.Nose: {X: 0.2, Y: 0.2},
		}

		split := SplitDetections([]detector.Detection{noWrists})

		if split[0] != nil || split[1] != nil {
			t.Error("expected both slots to stay empty")
		}
	})

	t.Run("empty input leaves both slots empty", func(t *testing.T) {
		split := SplitDetections(nil)

		if split[0] != nil || split[1] != nil {
			t.Error("expected both slots to stay empty")
		}
	})
}
