package keyboard

import "log"

// LogKeyboard is a Keyboard that records and logs the commands it
// receives instead of touching the OS. It backs the simulation mode and
// the controller tests.
type LogKeyboard struct {
	pressed  []string
	released []string
}

// NewLogKeyboard creates a new LogKeyboard instance.
func NewLogKeyboard() *LogKeyboard {
	return &LogKeyboard{}
}

// Press records and logs the press command.
func (k *LogKeyboard) Press(key string) {
	log.Printf("Press: %s", key)
	k.pressed = append(k.pressed, key)
}

// Release records and logs the release command.
func (k *LogKeyboard) Release(key string) {
	log.Printf("Release: %s", key)
	k.released = append(k.released, key)
}

// Pressed returns every press received so far, in order.
func (k *LogKeyboard) Pressed() []string {
	return k.pressed
}

// Released returns every release received so far, in order.
func (k *LogKeyboard) Released() []string {
	return k.released
}

// Reset forgets all recorded commands.
func (k *LogKeyboard) Reset() {
	k.pressed = nil
	k.released = nil
}
