package engine

import (
	"image"
	"image/color"
	"math"
	"strings"

	"gocv.io/x/gocv"

	"github.com/ayusman/volante/internal/detector"
	"github.com/ayusman/volante/internal/steering"
)

// Feedback colors for the pointer positions. The wheel circle is painted
// with the same color so the player reads the speed off the wheel itself.
var colorByPointer = map[steering.Pointer]color.RGBA{
	steering.PointerHigh:        {R: 45, G: 201, B: 55},
	steering.PointerMid:         {R: 231, G: 180, B: 22},
	steering.PointerLow:         {R: 204, G: 50, B: 50},
	steering.PointerNotDetected: {},
}

var (
	colorWhite = color.RGBA{R: 255, G: 255, B: 255}
	colorBlack = color.RGBA{}
	colorRed   = color.RGBA{R: 255}
)

// Draw renders the steering feedback for every occupied player slot and
// the shared overlay onto the frame. The frame is expected to be the one
// the state was computed from, already mirrored by ProcessFrame.
func (e *Engine) Draw(frame *gocv.Mat, state FrameState) {
	for _, player := range state.Players {
		if player.Detection == nil {
			continue
		}
		drawPointerState(frame, player.Detection)
		drawWheelState(frame, player.Detection, player.Pointer)
	}

	if !e.SinglePlayer() {
		halfWidth := px(float64(frame.Cols()) / 2.0)
		gocv.Line(frame, image.Pt(halfWidth, 0), image.Pt(halfWidth, frame.Rows()), colorWhite, 2)
	}

	drawActiveKeys(frame, state.ActiveKeys)
	drawQuitInstructions(frame)
}

// drawPointerState draws the vertical bar between the player's nose and
// hip level with a marker at the wrist midpoint, so the player sees where
// their hands sit within the range of movement.
func drawPointerState(frame *gocv.Mat, det detector.Detection) {
	width := float64(frame.Cols())
	height := float64(frame.Rows())

	nose, ok := det[detector.Nose]
	if !ok {
		return
	}
	center, ok := steering.WristCenter(det)
	if !ok {
		return
	}
	hipLevel, ok := steering.HipLevel(det)
	if !ok {
		return
	}

	// Anchor the bar at the left hip if visible, otherwise the right.
	var barX float64
	if leftHip, ok := det[detector.LeftHip]; ok {
		barX = leftHip.X
	} else if rightHip, ok := det[detector.RightHip]; ok {
		barX = rightHip.X
	}

	// The coordinate origin sits in the top-left corner, so points which
	// are physically high have small y values.
	rangeOfMovement := hipLevel - nose.Y
	firstThird := nose.Y + rangeOfMovement*0.33333
	secondThird := nose.Y + rangeOfMovement*0.66666

	const barWidth = 30

	left := px(barX * width)
	right := left + barWidth
	top := px(nose.Y * height)
	firstY := px(firstThird * height)
	secondY := px(secondThird * height)
	bottom := px(hipLevel * height)

	// Accelerate
	gocv.Rectangle(frame, image.Rect(left, top, right, firstY), colorByPointer[steering.PointerHigh], -1)
	// Neutral
	gocv.Rectangle(frame, image.Rect(left, firstY, right, secondY), colorByPointer[steering.PointerMid], -1)
	// Slow down
	gocv.Rectangle(frame, image.Rect(left, secondY, right, bottom), colorByPointer[steering.PointerLow], -1)
	// Outline
	gocv.Rectangle(frame, image.Rect(left, top, right, bottom), colorWhite, 1)

	// Marker at the wrist midpoint
	markerY := px(center.Y * height)
	gocv.Line(frame, image.Pt(left, markerY), image.Pt(right, markerY), colorWhite, 5)
}

// drawWheelState draws the virtual steering wheel as a circle through both
// wrists, colored by the pointer position.
func drawWheelState(frame *gocv.Mat, det detector.Detection, pointer steering.Pointer) {
	width := float64(frame.Cols())
	height := float64(frame.Rows())

	leftWrist, hasLeft := det[detector.LeftWrist]
	rightWrist, hasRight := det[detector.RightWrist]

	if !hasLeft || !hasRight {
		// Mark whichever wrist is visible so the player can see which
		// keypoint is missing.
		if hasLeft {
			gocv.Circle(frame, image.Pt(px(leftWrist.X*width), px(leftWrist.Y*height)), 5, colorRed, -1)
		}
		if hasRight {
			gocv.Circle(frame, image.Pt(px(rightWrist.X*width), px(rightWrist.Y*height)), 5, colorRed, -1)
		}
		return
	}

	// Keypoints come in relative coordinates, usually within [0, 1] but
	// occasionally outside when the model assumes a keypoint that is not
	// visible in the image.
	xmin := math.Min(leftWrist.X, rightWrist.X) * width
	xmax := math.Max(leftWrist.X, rightWrist.X) * width
	ymin := math.Min(leftWrist.Y, rightWrist.Y) * height
	ymax := math.Max(leftWrist.Y, rightWrist.Y) * height

	halfWidth := (xmax - xmin) / 2.0
	halfHeight := (ymax - ymin) / 2.0

	centerX := xmin + halfWidth
	centerY := ymin + halfHeight

	radius := math.Sqrt(halfWidth*halfWidth + halfHeight*halfHeight)

	gocv.CircleWithParams(frame, image.Pt(px(centerX), px(centerY)), px(radius), colorByPointer[pointer], 10, gocv.LineAA, 0)

	// The frame is mirrored, so the detector's left wrist is the player's
	// right hand and vice versa. Label the wrists the way the player sees
	// them.
	gocv.CircleWithParams(frame, image.Pt(px(leftWrist.X*width), px(leftWrist.Y*height)), 15, colorWhite, -1, gocv.LineAA, 0)
	putTextCenter(frame, "R", image.Pt(px(leftWrist.X*width), px(leftWrist.Y*height)), gocv.FontHersheyComplex, 0.5, colorBlack, 1)

	gocv.CircleWithParams(frame, image.Pt(px(rightWrist.X*width), px(rightWrist.Y*height)), 15, colorWhite, -1, gocv.LineAA, 0)
	putTextCenter(frame, "L", image.Pt(px(rightWrist.X*width), px(rightWrist.Y*height)), gocv.FontHersheyComplex, 0.5, colorBlack, 1)
}

// drawActiveKeys writes the held keys in the top-left corner.
func drawActiveKeys(frame *gocv.Mat, activeKeys []string) {
	text := strings.Join(activeKeys, ", ")

	fontFace := gocv.FontHersheyComplex
	fontScale := 0.5
	thickness := 1

	size, _ := gocv.GetTextSizeWithBaseline(text, fontFace, fontScale, thickness)

	// Back the text with black, assuming the keys fit on a single line.
	gocv.Rectangle(frame, image.Rect(0, 0, size.X, size.Y), colorBlack, -1)

	gocv.PutTextWithParams(frame, text, image.Pt(0, size.Y), fontFace, fontScale, colorWhite, thickness, gocv.LineAA, false)
}

// drawQuitInstructions writes how to quit in the bottom-left corner.
func drawQuitInstructions(frame *gocv.Mat) {
	height := frame.Rows()

	text := "Press 'q' to quit"

	fontFace := gocv.FontHersheyComplex
	fontScale := 0.5
	thickness := 1

	size, baseline := gocv.GetTextSizeWithBaseline(text, fontFace, fontScale, thickness)

	gocv.Rectangle(frame, image.Rect(0, height-size.Y-baseline, size.X, height), colorBlack, -1)

	gocv.PutTextWithParams(frame, text, image.Pt(0, height-baseline), fontFace, fontScale, colorWhite, thickness, gocv.LineAA, false)
}

// putTextCenter draws the text centered on the given point instead of
// anchored at the bottom-left corner of the text box.
func putTextCenter(frame *gocv.Mat, text string, center image.Point, fontFace gocv.HersheyFont, fontScale float64, c color.RGBA, thickness int) {
	size, baseline := gocv.GetTextSizeWithBaseline(text, fontFace, fontScale, thickness)

	org := image.Pt(
		px(float64(center.X)-float64(size.X)/2.0),
		px(float64(center.Y)-float64(size.Y)/2.0+float64(baseline)),
	)

	gocv.PutTextWithParams(frame, text, org, fontFace, fontScale, c, thickness, gocv.LineAA, false)
}

// px rounds a relative coordinate scaled to pixels to the nearest whole
// pixel.
func px(v float64) int {
	return int(math.Round(v))
}
