// Package keyboard presses and releases keys on behalf of the players.
package keyboard

// Keyboard is the capability the controller needs from the operating
// system: holding keys down and letting them go. A key is either a
// single printable character or a symbolic name such as "up" or "left".
type Keyboard interface {
	// Press sends the command to press and hold the key.
	Press(key string)

	// Release sends the command to release the key.
	Release(key string)
}
