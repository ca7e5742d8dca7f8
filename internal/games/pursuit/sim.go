package pursuit

import (
	"time"

	"github.com/vovakirdan/gridpreview/internal/core"
	"github.com/vovakirdan/gridpreview/internal/genre"
	"github.com/vovakirdan/gridpreview/internal/input"
	"github.com/vovakirdan/gridpreview/internal/registry"
	"github.com/vovakirdan/gridpreview/internal/schedule"
)

// DefaultStep is the tick period used when the configuration gives none.
const DefaultStep = 150 * time.Millisecond

func init() {
	registry.Register(genre.Pursuit, NewSimulation)
}

// Simulation adapts Game to the preview's task model: one step task reading
// the shared held-key state.
type Simulation struct {
	game  *Game
	env   registry.Env
	input *input.State
	last  Frame
}

// NewSimulation builds the game from the plan's extracted seed.
func NewSimulation(env registry.Env) registry.Simulation {
	w, h := env.Plan.World.Width, env.Plan.World.Height
	seed := genre.PursuitSeed{Start: core.Pt(w/2, h/2), Length: genre.DefaultLength, Color: core.ColorSnakeHead}
	if env.Plan.Pursuit != nil {
		seed = *env.Plan.Pursuit
	}

	palette := DefaultPalette()
	palette.Head = seed.Color
	if c, err := core.ParseHex(env.Config.Pursuit.TailColor); err == nil {
		palette.Tail = c
	}
	if c, err := core.ParseHex(env.Config.Pursuit.FoodColor); err == nil {
		palette.Food = c
	}

	g := New(Options{
		Width:        w,
		Height:       h,
		WrapEdges:    env.Plan.World.WrapEdges,
		Start:        seed.Start,
		Length:       seed.Length,
		Seed:         env.Seed,
		FoodAttempts: env.Config.Pursuit.FoodAttempts,
		Palette:      palette,
	})
	return &Simulation{game: g, env: env, input: env.Input, last: g.Frame()}
}

// Genre returns genre.Pursuit.
func (s *Simulation) Genre() genre.Genre {
	return genre.Pursuit
}

// Tasks returns the single step task.
func (s *Simulation) Tasks() []schedule.Task {
	period := s.env.Config.Step()
	if period <= 0 {
		period = DefaultStep
	}
	return []schedule.Task{{
		Name:   "step",
		Period: period,
		Run: func(time.Duration) {
			s.last = s.game.Step(s.input.Load())
		},
	}}
}

// Frame draws food, body and head into a registry frame.
func (s *Simulation) Frame() registry.Frame {
	b := s.game.Bounds()
	pal := s.game.Palette()
	cur := s.game.Frame()
	f := registry.NewFrame(genre.Pursuit, b.W, b.H)
	if cur.HasFood {
		f.Set(cur.Food, pal.Food)
	}
	for _, seg := range cur.Body {
		f.Set(seg, pal.Tail)
	}
	f.Set(cur.Head, pal.Head)

	f.Stats = s.Stats()
	switch {
	case s.last.Reset:
		f.Event = "reset"
	case s.last.Grew:
		f.Event = "ate"
	}
	return f
}

// Stats returns step count, food eaten and resets.
func (s *Simulation) Stats() registry.Stats {
	return registry.Stats{
		Ticks:  s.game.Snapshot().Tick,
		Score:  s.game.Score(),
		Resets: s.game.Resets(),
	}
}

// Game exposes the underlying game for inspection.
func (s *Simulation) Game() *Game {
	return s.game
}
