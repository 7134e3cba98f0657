// Package testdata provides synthetic camera frames for tests that need
// Mat input without shipping binary fixtures.
package testdata

import (
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/volante/internal/capture"
)

// NewFrame returns a camera-sized BGR frame filled with the given color.
func NewFrame(c color.RGBA) *gocv.Mat {
	mat := gocv.NewMatWithSizeFromScalar(
		gocv.NewScalar(float64(c.B), float64(c.G), float64(c.R), 0),
		capture.DefaultHeight, capture.DefaultWidth, gocv.MatTypeCV8UC3)
	return &mat
}

// NewSequence returns n camera-sized frames of increasing brightness, so
// that consecutive frames differ the way real footage does.
func NewSequence(n int) []*gocv.Mat {
	frames := make([]*gocv.Mat, 0, n)
	for i := 0; i < n; i++ {
		v := uint8(40 + (i*20)%200)
		frames = append(frames, NewFrame(color.RGBA{R: v, G: v, B: v}))
	}
	return frames
}

// CloseAll closes every frame in the sequence.
func CloseAll(frames []*gocv.Mat) {
	for _, f := range frames {
		f.Close()
	}
}
