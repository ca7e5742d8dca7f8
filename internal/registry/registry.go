// Package registry provides a global registry of simulation factories keyed
// by genre. Simulations register themselves in init() functions, allowing the
// preview to start a run without hardcoded dependencies on game packages.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/gridpreview/internal/config"
	"github.com/vovakirdan/gridpreview/internal/core"
	"github.com/vovakirdan/gridpreview/internal/genre"
	"github.com/vovakirdan/gridpreview/internal/input"
	"github.com/vovakirdan/gridpreview/internal/schedule"
)

// Simulation is one running genre. Simulations contain pure logic: the
// preview owns timing and serialises every handler returned by Tasks, so
// implementations need no locking of their own.
type Simulation interface {
	// Genre returns the genre this simulation plays.
	Genre() genre.Genre

	// Tasks returns the periodic handlers that drive the simulation.
	// An idle simulation returns none.
	Tasks() []schedule.Task

	// Frame returns the renderable state after the last handler.
	Frame() Frame

	// Stats returns counters recorded into run history.
	Stats() Stats
}

// Frame is a renderer-neutral picture of a simulation: one colour per grid
// cell, zero meaning empty.
type Frame struct {
	Genre  genre.Genre
	Width  int
	Height int
	Cells  [][]core.RGB // [y][x]
	Stats  Stats
	Event  string // short description of the last transition, if any
}

// NewFrame allocates an empty frame.
func NewFrame(g genre.Genre, w, h int) Frame {
	cells := make([][]core.RGB, h)
	for y := range cells {
		cells[y] = make([]core.RGB, w)
	}
	return Frame{Genre: g, Width: w, Height: h, Cells: cells}
}

// Set colours a cell, ignoring coordinates outside the frame.
func (f Frame) Set(p core.Point, c core.RGB) {
	if p.X < 0 || p.X >= f.Width || p.Y < 0 || p.Y >= f.Height {
		return
	}
	f.Cells[p.Y][p.X] = c
}

// At returns the colour of a cell.
func (f Frame) At(p core.Point) core.RGB {
	if p.X < 0 || p.X >= f.Width || p.Y < 0 || p.Y >= f.Height {
		return 0
	}
	return f.Cells[p.Y][p.X]
}

// Stats are per-run counters.
type Stats struct {
	Ticks  uint64 // main handler invocations
	Score  int    // food eaten or rows cleared
	Resets int    // in-place restarts
}

// Env is everything a factory needs to build a simulation.
type Env struct {
	Plan   genre.Plan
	Config config.PreviewConfig
	Input  *input.State
	Seed   int64
}

// Factory creates a simulation for a detected plan.
type Factory func(env Env) Simulation

var (
	factories = make(map[genre.Genre]Factory)
	mu        sync.RWMutex
)

// Register adds a simulation factory for a genre.
// Typically called from a game package's init() function.
// Panics if the genre is already registered.
func Register(g genre.Genre, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[g]; exists {
		panic(fmt.Sprintf("registry: genre %q already registered", g))
	}
	factories[g] = f
}

// List returns every registered genre in enum order.
func List() []genre.Genre {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]genre.Genre, 0, len(factories))
	for g := range factories {
		result = append(result, g)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i] < result[j]
	})
	return result
}

// Create builds the simulation for env.Plan.Genre.
// Returns an error if no factory is registered for it.
func Create(env Env) (Simulation, error) {
	mu.RLock()
	f, ok := factories[env.Plan.Genre]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: no simulation for genre %q", env.Plan.Genre)
	}
	if env.Input == nil {
		env.Input = &input.State{}
	}
	if env.Config == (config.PreviewConfig{}) {
		env.Config = config.DefaultPreviewConfig()
	}
	return f(env), nil
}

// Exists checks if a simulation is registered for the genre.
func Exists(g genre.Genre) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[g]
	return ok
}
