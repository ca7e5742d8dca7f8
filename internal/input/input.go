// Package input turns raw key edges into the held-key snapshots the
// simulations read on every tick.
package input

import (
	"sync/atomic"
)

// Key is a directional or modifier input understood by the simulations.
type Key uint8

const (
	KeyLeft Key = iota
	KeyRight
	KeyUp
	KeyDown
	KeyAccelerate // soft drop in the puzzle genre

	numKeys
)

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyAccelerate:
		return "Accelerate"
	default:
		return "Unknown"
	}
}

// opposite returns the key on the other side of the same axis.
func (k Key) opposite() (Key, bool) {
	switch k {
	case KeyLeft:
		return KeyRight, true
	case KeyRight:
		return KeyLeft, true
	case KeyUp:
		return KeyDown, true
	case KeyDown:
		return KeyUp, true
	}
	return 0, false
}

// Held is a snapshot of the keys currently held down.
type Held uint8

// HeldOf builds a snapshot from a list of keys.
func HeldOf(keys ...Key) Held {
	var h Held
	for _, k := range keys {
		h = h.With(k)
	}
	return h
}

// Has reports whether k is held.
func (h Held) Has(k Key) bool {
	return h&(1<<k) != 0
}

// With returns the snapshot with k held.
func (h Held) With(k Key) Held {
	return h | 1<<k
}

// Without returns the snapshot with k released.
func (h Held) Without(k Key) Held {
	return h &^ (1 << k)
}

// Any reports whether any key is held.
func (h Held) Any() bool {
	return h != 0
}

// State is the held-key set shared between the edge layer (sole writer) and the
// tick handlers (readers). Readers may observe a value one tick stale.
type State struct {
	bits atomic.Uint32
}

// Load returns the current snapshot.
func (s *State) Load() Held {
	return Held(s.bits.Load())
}

// Store publishes a new snapshot.
func (s *State) Store(h Held) {
	s.bits.Store(uint32(h))
}
