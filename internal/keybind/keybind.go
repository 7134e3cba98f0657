// Package keybind maps steering classifications to the keys they hold
// down.
package keybind

import (
	"fmt"
	"strings"

	"github.com/ayusman/volante/internal/keyboard"
	"github.com/ayusman/volante/internal/steering"
)

// Bindings holds the keys of one player, one per classification. The
// empty string means no action. The not-detected classifications are
// never bound: a player who is not seen must not press anything.
type Bindings struct {
	High    string `json:"high"`
	Mid     string `json:"mid"`
	Low     string `json:"low"`
	Left    string `json:"left"`
	Neutral string `json:"neutral"`
	Right   string `json:"right"`
}

// PointerKey returns the key bound to the pointer level.
func (b Bindings) PointerKey(p steering.Pointer) string {
	switch p {
	case steering.PointerHigh:
		return b.High
	case steering.PointerMid:
		return b.Mid
	case steering.PointerLow:
		return b.Low
	default:
		return ""
	}
}

// WheelKey returns the key bound to the wheel direction.
func (b Bindings) WheelKey(w steering.Wheel) string {
	switch w {
	case steering.WheelLeft:
		return b.Left
	case steering.WheelNeutral:
		return b.Neutral
	case steering.WheelRight:
		return b.Right
	default:
		return ""
	}
}

// Table holds the bindings of every player slot.
type Table [steering.MaxPlayers]Bindings

// DefaultTable returns the stock bindings: arrow keys for player 1 and
// WASD for player 2.
func DefaultTable() Table {
	return Table{
		{High: "up", Low: "down", Left: "left", Right: "right"},
		{High: "w", Low: "s", Left: "a", Right: "d"},
	}
}

// MicroMachinesTable returns letter-only bindings for emulators such as
// the Micro Machines dosbox, which does not accept arrow keys.
func MicroMachinesTable() Table {
	return Table{
		{High: "w", Low: "s", Left: "a", Right: "d"},
		{High: "u", Low: "j", Left: "h", Right: "k"},
	}
}

// Validate checks every bound key against the names the keyboard sink
// recognizes and reports all offending entries at once, so they can be
// fixed in a single pass.
func (t Table) Validate() error {
	var invalid []string

	for playerID, b := range t {
		entries := []struct {
			channel string
			key     string
		}{
			{"high", b.High},
			{"mid", b.Mid},
			{"low", b.Low},
			{"left", b.Left},
			{"neutral", b.Neutral},
			{"right", b.Right},
		}

		for _, e := range entries {
			if !keyboard.Recognized(e.key) {
				invalid = append(invalid,
					fmt.Sprintf("player %d %s == %q", playerID+1, e.channel, e.key))
			}
		}
	}

	if len(invalid) > 0 {
		return fmt.Errorf("invalid key names: %s", strings.Join(invalid, ", "))
	}
	return nil
}
