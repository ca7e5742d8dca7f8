// Package tui provides the Bubble Tea integration for the preview: the
// terminal renderer, key-edge capture and the SSH front-end.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to advance the simulation clock.
type TickMsg time.Time

// FrameInterval is the renderer's refresh period.
const FrameInterval = 16 * time.Millisecond

// maxCatchUp bounds how much virtual time one frame may advance, so a stalled
// terminal does not replay seconds of simulation at once.
const maxCatchUp = 250 * time.Millisecond

// tickCmd returns a Bubble Tea command that sends a tick after interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
