package puzzle

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/gridpreview/internal/genre"
	"github.com/vovakirdan/gridpreview/internal/input"
	"github.com/vovakirdan/gridpreview/internal/registry"
	"github.com/vovakirdan/gridpreview/internal/runtimeops"
	"github.com/vovakirdan/gridpreview/internal/schedule"
)

func init() {
	registry.Register(genre.Puzzle, NewSimulation)
}

// Simulation adapts Game to the preview's task model: cooldown decay, lateral
// move and gravity, each on its own period.
type Simulation struct {
	game    *Game
	env     registry.Env
	input   *input.State
	last    Event
	gravity uint64
}

// GravityTicks reads tetrisCore.params.gravityTicks. Anything other than a
// positive number yields def.
func GravityTicks(ops runtimeops.Ops, def int) int {
	params, ok := ops.SystemParams(runtimeops.TetrisCore)
	if !ok {
		return def
	}
	switch v := params["gravityTicks"].(type) {
	case int:
		if v > 0 {
			return v
		}
	case int64:
		if v > 0 {
			return int(v)
		}
	case uint64:
		if v > 0 {
			return int(v)
		}
	case float64:
		if v >= 1 && !math.IsInf(v, 0) {
			return int(v)
		}
	}
	return def
}

// NewSimulation sizes the grid from the world and derives the drop timing
// from the tetrisCore parameters.
func NewSimulation(env registry.Env) registry.Simulation {
	cfg := env.Config
	drop := cfg.DropInterval(GravityTicks(env.Plan.Ops, cfg.Puzzle.DefaultGravityTicks))
	g := New(Options{
		Cols: env.Plan.World.Width,
		Rows: env.Plan.World.Height,
		Seed: env.Seed,
		Timing: Timing{
			MoveCooldown:   time.Duration(cfg.Puzzle.MoveCooldownMS) * time.Millisecond,
			RotateCooldown: time.Duration(cfg.Puzzle.RotateCooldownMS) * time.Millisecond,
			Drop:           drop,
			SoftDrop:       cfg.SoftDropInterval(drop),
		},
	})
	return &Simulation{game: g, env: env, input: env.Input}
}

// Genre returns genre.Puzzle.
func (s *Simulation) Genre() genre.Genre {
	return genre.Puzzle
}

// Tasks returns the three handlers in registration order: cooldown, move,
// gravity.
func (s *Simulation) Tasks() []schedule.Task {
	p := s.env.Config.Puzzle
	ms := func(v int) time.Duration { return time.Duration(v) * time.Millisecond }
	return []schedule.Task{
		{
			Name:   "cooldown",
			Period: ms(p.CooldownTickMS),
			Run:    s.game.DecayCooldown,
		},
		{
			Name:   "move",
			Period: ms(p.MoveTickMS),
			Run: func(time.Duration) {
				if ev := s.game.HandleMove(s.input.Load()); ev != (Event{}) {
					s.last = ev
				}
			},
		},
		{
			Name:   "gravity",
			Period: ms(p.GravityTickMS),
			Run: func(elapsed time.Duration) {
				s.gravity++
				if ev := s.game.Gravity(elapsed, s.input.Load()); ev != (Event{}) {
					s.last = ev
				}
			},
		},
	}
}

// Frame draws the locked grid and the active piece into a registry frame.
func (s *Simulation) Frame() registry.Frame {
	cols, rows := s.game.Size()
	f := registry.NewFrame(genre.Puzzle, cols, rows)
	for y := range rows {
		copy(f.Cells[y], s.game.grid[y])
	}
	for _, c := range s.game.Active().Cells() {
		f.Set(c, s.game.Active().Color())
	}
	f.Stats = s.Stats()
	f.Event = describe(s.last)
	return f
}

func describe(ev Event) string {
	switch {
	case ev.BoardReset:
		return "board reset"
	case ev.Cleared == 1:
		return "cleared 1 row"
	case ev.Cleared > 1:
		return fmt.Sprintf("cleared %d rows", ev.Cleared)
	case ev.Locked:
		return "locked"
	}
	return ""
}

// Stats returns gravity ticks, rows cleared and board resets.
func (s *Simulation) Stats() registry.Stats {
	return registry.Stats{
		Ticks:  s.gravity,
		Score:  s.game.Lines(),
		Resets: s.game.Resets(),
	}
}

// Game exposes the underlying game for inspection.
func (s *Simulation) Game() *Game {
	return s.game
}
