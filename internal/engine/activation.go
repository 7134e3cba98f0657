package engine

import (
	"fmt"
	"sort"
)

// Activator tracks which keys the players want held from frame to frame
// and decides when a key must be pressed or released. A key goes down on
// the first frame somebody demands it and comes up on the first frame
// nobody does. Bindings may alias the same key across players and
// channels; the key stays held while any of them still wants it.
//
// An Activator is owned by a single Engine and is not safe for concurrent
// use.
type Activator struct {
	// countByKey maps key name to its activation count. Zero means the
	// key must be released.
	countByKey map[string]int
	active     map[string]bool
}

// NewActivator returns an Activator with no tracked keys.
func NewActivator() *Activator {
	return &Activator{
		countByKey: make(map[string]int),
		active:     make(map[string]bool),
	}
}

// Advance moves the key activations one frame forward. The desired keys
// are everything any player channel wants held this frame; empty names
// and duplicates are ignored. It returns the keys newly pressed and newly
// released on this frame, each sorted by name so the resulting keyboard
// commands are deterministic.
func (a *Activator) Advance(desired []string) (pressed, released []string) {
	// Step 1: Decay. Every tracked key loses one count; keys that are
	// re-demanded below gain it right back.
	for key := range a.countByKey {
		a.countByKey[key]--
	}

	// Step 2: Demand. Every desired key gains one count.
	seen := make(map[string]bool, len(desired))
	for _, key := range desired {
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		a.countByKey[key]++
	}

	// Step 3: Resolve. Keys drained to zero are released and forgotten,
	// tracked keys that are not down yet are pressed.
	for key, count := range a.countByKey {
		if count < 0 {
			panic(fmt.Sprintf("negative activation count %d for key %q", count, key))
		}

		if count == 0 {
			if !a.active[key] {
				panic(fmt.Sprintf("key %q to be released, but it was never pressed", key))
			}
			delete(a.countByKey, key)
			delete(a.active, key)
			released = append(released, key)
			continue
		}

		if !a.active[key] {
			a.active[key] = true
			pressed = append(pressed, key)
		}
	}

	sort.Strings(pressed)
	sort.Strings(released)

	return pressed, released
}

// ActiveKeys returns the keys currently held down, sorted by name.
func (a *Activator) ActiveKeys() []string {
	keys := make([]string, 0, len(a.active))
	for key := range a.active {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
