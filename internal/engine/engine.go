// Package engine provides the controller logic that turns body pose
// detections into virtual key presses. It is kept separate from video
// capture and rendering so that it can run against pre-recorded footage
// or synthetic detections in tests.
package engine

import (
	"fmt"
	"sync"

	"gocv.io/x/gocv"

	"github.com/ayusman/volante/internal/detector"
	"github.com/ayusman/volante/internal/keybind"
	"github.com/ayusman/volante/internal/keyboard"
	"github.com/ayusman/volante/internal/steering"
)

// Config holds the engine dependencies and mode flags.
type Config struct {
	Bindings     keybind.Table
	Detector     detector.Detector
	Keyboard     keyboard.Keyboard
	SinglePlayer bool
}

// PlayerState is everything the engine derived for one player slot on one
// frame. Detection is nil when the slot is unoccupied.
type PlayerState struct {
	Detection detector.Detection `json:"detection,omitempty"`
	Pointer   steering.Pointer   `json:"pointer"`
	Wheel     steering.Wheel     `json:"wheel"`
}

// FrameState is the outcome of processing one frame.
type FrameState struct {
	Players    [steering.MaxPlayers]PlayerState `json:"players"`
	ActiveKeys []string                         `json:"active_keys"`
	Pressed    []string                         `json:"pressed"`
	Released   []string                         `json:"released"`
}

// Engine drives the per-frame control flow: it assigns detections to
// player slots, classifies each player's steering pose, maps the
// classifications to bound keys and forwards the press and release edges
// to the keyboard.
type Engine struct {
	config    Config
	activator *Activator
	enabled   bool
	mu        sync.RWMutex
}

// New creates an Engine with no keys held. Key injection starts enabled.
func New(config Config) *Engine {
	return &Engine{
		config:    config,
		activator: NewActivator(),
		enabled:   true,
	}
}

// SetEnabled enables or disables key injection. Disabling does not stop
// frame processing; keys held at that moment are released on the next
// frame.
func (e *Engine) SetEnabled(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.enabled = enabled
}

// IsEnabled returns whether key injection is currently enabled.
func (e *Engine) IsEnabled() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.enabled
}

// SinglePlayer returns whether the engine runs in single-player mode.
func (e *Engine) SinglePlayer() bool {
	return e.config.SinglePlayer
}

// ProcessFrame executes the engine on one raw camera frame. The frame is
// mirrored in place so that the players see themselves as in a mirror,
// then handed to the detector. Rendering is left to the caller, see Draw.
func (e *Engine) ProcessFrame(frame *gocv.Mat) (FrameState, error) {
	gocv.Flip(*frame, frame, 1)

	detections, err := e.config.Detector.Detect(frame)
	if err != nil {
		return FrameState{}, fmt.Errorf("detecting poses: %w", err)
	}

	return e.Step(detections), nil
}

// Step advances the engine by one frame of detections. It classifies the
// players' poses, advances the key activations and sends the press and
// release commands to the keyboard, presses first.
func (e *Engine) Step(detections []detector.Detection) FrameState {
	var state FrameState

	// Step 1: Assign detections to the player slots. In single-player
	// mode the first detection takes the only slot, regardless of where
	// in the frame the player stands.
	var players [steering.MaxPlayers]detector.Detection
	if e.config.SinglePlayer {
		if len(detections) > 0 {
			players[0] = detections[0]
		}
	} else {
		players = steering.SplitDetections(detections)
	}

	// Step 2: Classify each slot and collect the keys it demands. An
	// unoccupied slot classifies as not detected and demands nothing,
	// releasing whatever the player held before leaving the frame.
	desired := make([]string, 0, 2*steering.MaxPlayers)
	for playerID, det := range players {
		pointer := steering.PointerNotDetected
		wheel := steering.WheelNotDetected
		if det != nil {
			pointer = steering.ClassifyPointer(det)
			wheel = steering.ClassifyWheel(det)
		}

		state.Players[playerID] = PlayerState{
			Detection: det,
			Pointer:   pointer,
			Wheel:     wheel,
		}

		bindings := e.config.Bindings[playerID]
		if key := bindings.PointerKey(pointer); key != "" {
			desired = append(desired, key)
		}
		if key := bindings.WheelKey(wheel); key != "" {
			desired = append(desired, key)
		}
	}

	// Step 3: Advance the activations and drive the keyboard. With
	// injection disabled nothing is demanded, so held keys drain out.
	if !e.IsEnabled() {
		desired = desired[:0]
	}

	pressed, released := e.activator.Advance(desired)
	for _, key := range pressed {
		e.config.Keyboard.Press(key)
	}
	for _, key := range released {
		e.config.Keyboard.Release(key)
	}

	state.Pressed = pressed
	state.Released = released
	state.ActiveKeys = e.activator.ActiveKeys()

	return state
}
