package puzzle

import "github.com/vovakirdan/gridpreview/internal/core"

// Frame is the state published after a handler.
type Frame struct {
	Grid        [][]core.RGB // occupancy, zero means empty; the active piece is not included
	Active      []core.Point
	ActiveColor core.RGB
	Event       Event
}

// Filled counts occupied grid cells.
func (f Frame) Filled() int {
	n := 0
	for _, row := range f.Grid {
		for _, c := range row {
			if c != 0 {
				n++
			}
		}
	}
	return n
}

// Frame returns a copy of the current state.
func (g *Game) Frame(ev Event) Frame {
	grid := make([][]core.RGB, g.rows)
	for y := range grid {
		grid[y] = append([]core.RGB(nil), g.grid[y]...)
	}
	cells := g.active.Cells()
	return Frame{
		Grid:        grid,
		Active:      cells[:],
		ActiveColor: g.active.Color(),
		Event:       ev,
	}
}

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Piece  Piece
	Filled int
	Lines  int
	Locked int
	Resets int
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Piece:  g.active,
		Filled: g.Frame(Event{}).Filled(),
		Lines:  g.lines,
		Locked: g.locked,
		Resets: g.resets,
	}
}
