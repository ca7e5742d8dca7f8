// Package puzzle implements the falling-block preview simulation. The game is
// driven by three periodic handlers (cooldown decay, lateral move and
// gravity); each runs to completion against the shared state.
package puzzle

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/gridpreview/internal/core"
	"github.com/vovakirdan/gridpreview/internal/input"
)

// Timing holds the handler intervals and cooldowns.
type Timing struct {
	MoveCooldown   time.Duration
	RotateCooldown time.Duration
	Drop           time.Duration
	SoftDrop       time.Duration
}

// DefaultTiming matches gravityTicks=48 at 60 ticks per second.
func DefaultTiming() Timing {
	return Timing{
		MoveCooldown:   120 * time.Millisecond,
		RotateCooldown: 150 * time.Millisecond,
		Drop:           800 * time.Millisecond,
		SoftDrop:       100 * time.Millisecond,
	}
}

// Options configures a new game.
type Options struct {
	Cols, Rows int
	Seed       int64
	Timing     Timing
}

// Piece is the active falling piece.
type Piece struct {
	Shape int // index into Shapes
	Rot   int
	X, Y  int // anchor cell
}

// Cells returns the grid cells the piece covers.
func (p Piece) Cells() [4]core.Point {
	var out [4]core.Point
	for i, off := range Shapes[p.Shape].Rots[p.Rot%4] {
		out[i] = core.Pt(p.X+off.X, p.Y+off.Y)
	}
	return out
}

// Color returns the piece colour.
func (p Piece) Color() core.RGB {
	return Shapes[p.Shape].Color
}

// Event reports what a handler changed.
type Event struct {
	Moved      bool
	Rotated    bool
	Locked     bool
	Cleared    int  // rows removed by the lock
	BoardReset bool // spawn was blocked and the grid was emptied
}

// Game is the puzzle simulation. It is not safe for concurrent use; callers
// serialise the handlers.
type Game struct {
	cols, rows int
	rng        *rand.Rand
	timing     Timing

	grid    [][]core.RGB // zero means empty
	active  Piece
	dropAcc time.Duration
	move    input.Cooldown

	lines  int
	locked int
	resets int
}

// New creates a game with an empty grid and a freshly spawned piece.
func New(opts Options) *Game {
	g := &Game{
		cols:   max(1, opts.Cols),
		rows:   max(1, opts.Rows),
		rng:    rand.New(rand.NewSource(opts.Seed)),
		timing: opts.Timing,
	}
	if g.timing == (Timing{}) {
		g.timing = DefaultTiming()
	}
	g.grid = make([][]core.RGB, g.rows)
	for y := range g.grid {
		g.grid[y] = make([]core.RGB, g.cols)
	}
	g.spawn()
	return g
}

// DecayCooldown counts the move cooldown down by elapsed.
func (g *Game) DecayCooldown(elapsed time.Duration) {
	g.move.Decay(elapsed)
}

// HandleMove applies one lateral move or rotation when the cooldown allows.
// Left beats right beats rotate; a blocked intent changes nothing.
func (g *Game) HandleMove(held input.Held) Event {
	if !g.move.Ready() {
		return Event{}
	}

	next := g.active
	cooldown := g.timing.MoveCooldown
	switch {
	case held.Has(input.KeyLeft):
		next.X--
	case held.Has(input.KeyRight):
		next.X++
	case held.Has(input.KeyUp):
		next.Rot = (next.Rot + 1) % 4
		cooldown = g.timing.RotateCooldown
	default:
		return Event{}
	}

	if !g.valid(next) {
		return Event{}
	}
	rotated := next.Rot != g.active.Rot
	g.active = next
	g.move.Set(cooldown)
	return Event{Moved: !rotated, Rotated: rotated}
}

// Gravity accumulates elapsed time and, once the drop interval is reached,
// moves the piece down or locks it. Holding accelerate (or down) switches to
// the soft-drop interval.
func (g *Game) Gravity(elapsed time.Duration, held input.Held) Event {
	interval := g.timing.Drop
	if held.Has(input.KeyAccelerate) || held.Has(input.KeyDown) {
		interval = g.timing.SoftDrop
	}

	g.dropAcc += elapsed
	if g.dropAcc < interval {
		return Event{}
	}
	g.dropAcc = 0

	next := g.active
	next.Y++
	if g.valid(next) {
		g.active = next
		return Event{Moved: true}
	}
	return g.lock()
}

// lock writes the active piece into the grid, clears full rows and spawns the
// next piece.
func (g *Game) lock() Event {
	for _, c := range g.active.Cells() {
		if g.inside(c) {
			g.grid[c.Y][c.X] = g.active.Color()
		}
	}
	g.locked++

	ev := Event{Locked: true, Cleared: g.clearLines()}
	g.lines += ev.Cleared
	ev.BoardReset = !g.spawn()
	return ev
}

// clearLines removes every full row, bottom-up. After a removal the same
// index is examined again because the rows above have shifted into it.
func (g *Game) clearLines() int {
	cleared := 0
	for y := g.rows - 1; y >= 0; y-- {
		if !g.rowFull(y) {
			continue
		}
		for yy := y; yy > 0; yy-- {
			copy(g.grid[yy], g.grid[yy-1])
		}
		clear(g.grid[0])
		cleared++
		y++
	}
	return cleared
}

func (g *Game) rowFull(y int) bool {
	for _, c := range g.grid[y] {
		if c == 0 {
			return false
		}
	}
	return true
}

// spawn places a random piece at the top centre. When it does not fit the
// grid is emptied and false is returned.
func (g *Game) spawn() bool {
	g.active = Piece{
		Shape: g.rng.Intn(len(Shapes)),
		X:     g.cols / 2,
	}
	g.dropAcc = 0
	if g.valid(g.active) {
		return true
	}
	for y := range g.grid {
		clear(g.grid[y])
	}
	g.resets++
	return false
}

func (g *Game) inside(p core.Point) bool {
	return p.X >= 0 && p.X < g.cols && p.Y >= 0 && p.Y < g.rows
}

// valid reports whether p lies inside the grid on empty cells.
func (g *Game) valid(p Piece) bool {
	for _, c := range p.Cells() {
		if !g.inside(c) || g.grid[c.Y][c.X] != 0 {
			return false
		}
	}
	return true
}

// Active returns the falling piece.
func (g *Game) Active() Piece {
	return g.active
}

// Lines returns the total number of rows cleared.
func (g *Game) Lines() int {
	return g.lines
}

// Locked returns how many pieces have been locked.
func (g *Game) Locked() int {
	return g.locked
}

// Resets returns how many times a blocked spawn emptied the grid.
func (g *Game) Resets() int {
	return g.resets
}

// Size returns the grid dimensions.
func (g *Game) Size() (cols, rows int) {
	return g.cols, g.rows
}
