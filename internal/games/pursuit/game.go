// Package pursuit implements the snake-like preview simulation: a head moving
// one cell per tick, a trailing body and a single food cell.
package pursuit

import (
	"math/rand"

	"github.com/vovakirdan/gridpreview/internal/core"
	"github.com/vovakirdan/gridpreview/internal/input"
)

// DefaultFoodAttempts bounds the random probes made before falling back to a
// scan of free cells.
const DefaultFoodAttempts = 50

// Options configures a new game.
type Options struct {
	Width, Height int
	WrapEdges     bool
	Start         core.Point
	Length        int // head included
	Seed          int64
	FoodAttempts  int
	Palette       Palette
}

// Palette holds the colours a renderer uses for the game.
type Palette struct {
	Head core.RGB
	Tail core.RGB
	Food core.RGB
}

// DefaultPalette returns the stock colours.
func DefaultPalette() Palette {
	return Palette{
		Head: core.ColorSnakeHead,
		Tail: core.ColorSnakeTail,
		Food: core.ColorFood,
	}
}

// Game is the pursuit simulation. It is not safe for concurrent use; callers
// serialise Step with every other access.
type Game struct {
	bounds       core.Rect
	wrap         bool
	rng          *rand.Rand
	foodAttempts int
	palette      Palette

	tick   uint64
	score  int
	resets int

	head     core.Point
	body     []core.Point // nearest segment first
	axis     core.Vec
	lastAxis core.Vec

	food    core.Point
	hasFood bool
}

// New creates a game in its initial state: body laid out to the left of the
// start cell, moving right, with food placed.
func New(opts Options) *Game {
	w, h := max(1, opts.Width), max(1, opts.Height)
	g := &Game{
		bounds:       core.NewRect(0, 0, w, h),
		wrap:         opts.WrapEdges,
		rng:          rand.New(rand.NewSource(opts.Seed)),
		foodAttempts: opts.FoodAttempts,
		palette:      opts.Palette,
		axis:         core.VecRight,
		lastAxis:     core.VecRight,
	}
	if g.foodAttempts <= 0 {
		g.foodAttempts = DefaultFoodAttempts
	}
	g.head = g.bounds.ClampPoint(opts.Start)
	g.body = g.initialBody(min(max(1, opts.Length), w*h))
	g.spawnFood()
	return g
}

// initialBody lays out length-1 segments leftwards from the head. Segments past
// the left edge wrap when the world wraps and are dropped otherwise. The layout
// never leaves the head's row.
func (g *Game) initialBody(length int) []core.Point {
	var body []core.Point
	for i := 1; i < min(length, g.bounds.W); i++ {
		p := g.head.Add(core.Vec{X: -i})
		if !g.bounds.Contains(p) {
			if !g.wrap {
				break
			}
			p = p.Wrap(g.bounds.W, g.bounds.H)
		}
		if p == g.head {
			// wrapped all the way round the row
			break
		}
		body = append(body, p)
	}
	return body
}

// Step advances the game by one tick using the held-key snapshot.
func (g *Game) Step(held input.Held) Frame {
	g.tick++
	g.resolveAxis(held)

	next := g.head.Add(g.axis)
	if !g.bounds.Contains(next) {
		if !g.wrap {
			g.reset()
			return g.frame(false, true)
		}
		next = next.Wrap(g.bounds.W, g.bounds.H)
	}
	if g.onBody(next) {
		g.reset()
		return g.frame(false, true)
	}

	ate := g.hasFood && next == g.food
	if len(g.body) > 0 || ate {
		keep := len(g.body)
		if !ate {
			keep--
		}
		body := make([]core.Point, 0, keep+1)
		body = append(body, g.head)
		body = append(body, g.body[:keep]...)
		g.body = body
	}
	g.head = next
	g.lastAxis = g.axis

	if ate {
		g.score++
	}
	if ate || !g.hasFood {
		g.spawnFood()
	}
	return g.frame(ate, false)
}

// resolveAxis picks the new axis from held keys. Left beats right beats up
// beats down; an axis that reverses the last committed one is ignored.
func (g *Game) resolveAxis(held input.Held) {
	for _, c := range []struct {
		key input.Key
		vec core.Vec
	}{
		{input.KeyLeft, core.VecLeft},
		{input.KeyRight, core.VecRight},
		{input.KeyUp, core.VecUp},
		{input.KeyDown, core.VecDown},
	} {
		if !held.Has(c.key) {
			continue
		}
		if !g.lastAxis.IsZero() && c.vec == g.lastAxis.Reverse() {
			continue
		}
		g.axis = c.vec
		return
	}
}

// reset is the soft restart after a collision: the body is cleared and the
// head parked at the centre, stationary until the next key.
func (g *Game) reset() {
	g.resets++
	g.body = nil
	g.head = g.bounds.Center()
	g.axis = core.VecNone
	g.lastAxis = core.VecNone
	if !g.hasFood || g.food == g.head {
		g.spawnFood()
	}
}

func (g *Game) onBody(p core.Point) bool {
	for _, seg := range g.body {
		if seg == p {
			return true
		}
	}
	return false
}

func (g *Game) occupied(p core.Point) bool {
	return p == g.head || g.onBody(p)
}

// spawnFood relocates the food onto a free cell. Random probes come first; if
// they all land on the snake the free cells are scanned. On a full board the
// food is withdrawn until a cell frees up.
func (g *Game) spawnFood() {
	for range g.foodAttempts {
		p := core.Pt(g.rng.Intn(g.bounds.W), g.rng.Intn(g.bounds.H))
		if !g.occupied(p) {
			g.food, g.hasFood = p, true
			return
		}
	}

	var free []core.Point
	for y := 0; y < g.bounds.H; y++ {
		for x := 0; x < g.bounds.W; x++ {
			if p := core.Pt(x, y); !g.occupied(p) {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		g.hasFood = false
		return
	}
	g.food, g.hasFood = free[g.rng.Intn(len(free))], true
}

// PlaceFood moves the food to p for scripted scenarios. It refuses cells
// outside the grid or under the snake.
func (g *Game) PlaceFood(p core.Point) bool {
	if !g.bounds.Contains(p) || g.occupied(p) {
		return false
	}
	g.food, g.hasFood = p, true
	return true
}

// Frame returns the current state without advancing.
func (g *Game) Frame() Frame {
	return g.frame(false, false)
}

func (g *Game) frame(grew, reset bool) Frame {
	return Frame{
		Tick:    g.tick,
		Head:    g.head,
		Body:    append([]core.Point(nil), g.body...),
		Food:    g.food,
		HasFood: g.hasFood,
		Axis:    g.axis,
		Grew:    grew,
		Reset:   reset,
	}
}

// Palette returns the game's colours.
func (g *Game) Palette() Palette {
	return g.palette
}

// Bounds returns the playfield rectangle.
func (g *Game) Bounds() core.Rect {
	return g.bounds
}

// Score returns the number of food cells eaten.
func (g *Game) Score() int {
	return g.score
}

// Resets returns how many collisions reset the game.
func (g *Game) Resets() int {
	return g.resets
}
