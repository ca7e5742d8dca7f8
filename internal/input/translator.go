package input

import (
	"sync"
	"time"
)

// DefaultHoldWindow keeps a key held after its last press. Terminals send
// auto-repeat presses but no releases, so the window must exceed the repeat gap.
const DefaultHoldWindow = 180 * time.Millisecond

// Translator converts press/release edges into held state.
type Translator struct {
	mu        sync.Mutex
	hold      time.Duration
	pressedAt [numKeys]time.Time
	held      Held
	state     *State
}

// NewTranslator creates a translator publishing to a fresh State.
func NewTranslator(hold time.Duration) *Translator {
	if hold <= 0 {
		hold = DefaultHoldWindow
	}
	return &Translator{hold: hold, state: &State{}}
}

// State returns the published held-key set.
func (t *Translator) State() *State {
	return t.state
}

// Press marks k as held from now. A press on one side of an axis releases the
// other side, since the latest edge is the player's intent.
func (t *Translator) Press(k Key, now time.Time) {
	if k >= numKeys {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.pressedAt[k] = now
	t.held = t.held.With(k)
	if opp, ok := k.opposite(); ok {
		t.held = t.held.Without(opp)
	}
	t.state.Store(t.held)
}

// Release clears k immediately.
func (t *Translator) Release(k Key) {
	if k >= numKeys {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.held = t.held.Without(k)
	t.state.Store(t.held)
}

// ReleaseAll clears every key, e.g. when focus is lost.
func (t *Translator) ReleaseAll() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.held = 0
	t.state.Store(0)
}

// Sweep releases keys whose last press is older than the hold window.
func (t *Translator) Sweep(now time.Time) Held {
	t.mu.Lock()
	defer t.mu.Unlock()

	for k := Key(0); k < numKeys; k++ {
		if t.held.Has(k) && now.Sub(t.pressedAt[k]) > t.hold {
			t.held = t.held.Without(k)
		}
	}
	t.state.Store(t.held)
	return t.held
}

// Cooldown rate-limits a repeated intent such as a horizontal move.
type Cooldown struct {
	remaining time.Duration
}

// Ready reports whether the intent may fire.
func (c *Cooldown) Ready() bool {
	return c.remaining <= 0
}

// Set starts a new cooldown period.
func (c *Cooldown) Set(d time.Duration) {
	c.remaining = d
}

// Decay counts the cooldown down by elapsed, flooring at zero.
func (c *Cooldown) Decay(elapsed time.Duration) {
	c.remaining = max(0, c.remaining-elapsed)
}

// Remaining returns the time left before the intent is ready.
func (c *Cooldown) Remaining() time.Duration {
	return c.remaining
}
