package pursuit

import "github.com/vovakirdan/gridpreview/internal/core"

// Frame is the state published after a tick.
type Frame struct {
	Tick    uint64
	Head    core.Point
	Body    []core.Point
	Food    core.Point
	HasFood bool
	Axis    core.Vec
	Grew    bool // food eaten this tick
	Reset   bool // collision reset this tick
}

// Length returns the head plus body length.
func (f Frame) Length() int {
	return 1 + len(f.Body)
}

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Tick     uint64
	Score    int
	Resets   int
	BodyLen  int
	HeadX    int
	HeadY    int
	Axis     core.Vec
	LastAxis core.Vec
	FoodX    int
	FoodY    int
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:     g.tick,
		Score:    g.score,
		Resets:   g.resets,
		BodyLen:  len(g.body),
		HeadX:    g.head.X,
		HeadY:    g.head.Y,
		Axis:     g.axis,
		LastAxis: g.lastAxis,
		FoodX:    g.food.X,
		FoodY:    g.food.Y,
	}
}
