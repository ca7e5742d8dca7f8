package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gridpreview/internal/core"
	"github.com/vovakirdan/gridpreview/internal/registry"
)

// Glyphs used for grid cells. Every cell is two columns wide so that tiles
// look square in a terminal.
const (
	filledGlyph = '█'
	emptyGlyph  = '·'
)

// styleCache holds one lipgloss style per colour. Shared by SSH sessions.
var styleCache sync.Map // core.RGB -> lipgloss.Style

var plainStyle = lipgloss.NewStyle()

func styleFor(c core.RGB) lipgloss.Style {
	if s, ok := styleCache.Load(c); ok {
		return s.(lipgloss.Style)
	}
	s := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex()))
	styleCache.Store(c, s)
	return s
}

// FrameSize returns the screen cells a frame needs, border included.
func FrameSize(f registry.Frame) (w, h int) {
	return f.Width*2 + 2, f.Height + 2
}

// DrawFrame paints f into s with its top-left border corner at origin.
func DrawFrame(s *core.Screen, f registry.Frame, origin core.Point) {
	w, h := FrameSize(f)
	s.DrawBox(core.NewRect(origin.X, origin.Y, w, h))

	for y, row := range f.Cells {
		sy := origin.Y + 1 + y
		for x, c := range row {
			sx := origin.X + 1 + 2*x
			if c == 0 {
				s.SetColored(sx, sy, emptyGlyph, core.ColorGridLine)
				s.Set(sx+1, sy, ' ')
				continue
			}
			s.SetColored(sx, sy, filledGlyph, c)
			s.SetColored(sx+1, sy, filledGlyph, c)
		}
	}
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			first := s.GetCell(x, y)

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.HasColor != first.HasColor || cell.Color != first.Color {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style := plainStyle
			if first.HasColor {
				style = styleFor(first.Color)
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
