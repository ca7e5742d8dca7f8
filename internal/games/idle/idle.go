// Package idle provides the simulation shown for specifications that match no
// genre: an empty grid with no periodic tasks.
package idle

import (
	"github.com/vovakirdan/gridpreview/internal/genre"
	"github.com/vovakirdan/gridpreview/internal/registry"
	"github.com/vovakirdan/gridpreview/internal/schedule"
)

func init() {
	registry.Register(genre.None, New)
}

// Simulation is the static preview.
type Simulation struct {
	width, height int
}

// New creates an idle simulation sized to the world.
func New(env registry.Env) registry.Simulation {
	return &Simulation{width: env.Plan.World.Width, height: env.Plan.World.Height}
}

func (s *Simulation) Genre() genre.Genre     { return genre.None }
func (s *Simulation) Tasks() []schedule.Task { return nil }
func (s *Simulation) Stats() registry.Stats  { return registry.Stats{} }

// Frame returns an empty grid.
func (s *Simulation) Frame() registry.Frame {
	return registry.NewFrame(genre.None, s.width, s.height)
}
