package keyboard

import (
	"log"

	"github.com/go-vgo/robotgo"
)

// OSKeyboard injects key events into the operating system via robotgo.
type OSKeyboard struct{}

// NewOSKeyboard creates a keyboard that controls the real OS keyboard.
func NewOSKeyboard() *OSKeyboard {
	return &OSKeyboard{}
}

// Press holds the key down until Release is called for it. Backend
// failures are logged and swallowed; the game simply misses the input.
func (k *OSKeyboard) Press(key string) {
	if err := robotgo.KeyDown(robotgoKey(key)); err != nil {
		log.Printf("Failed to press key %q: %v", key, err)
	}
}

// Release lets the key go.
func (k *OSKeyboard) Release(key string) {
	if err := robotgo.KeyUp(robotgoKey(key)); err != nil {
		log.Printf("Failed to release key %q: %v", key, err)
	}
}
