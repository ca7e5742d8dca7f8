package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/gridpreview/internal/core"
	"github.com/vovakirdan/gridpreview/internal/genre"
	"github.com/vovakirdan/gridpreview/internal/registry"
)

func TestDrawFrame(t *testing.T) {
	f := registry.NewFrame(genre.Puzzle, 3, 2)
	f.Set(core.Pt(1, 0), 0x3b82f6)

	w, h := FrameSize(f)
	if w != 8 || h != 4 {
		t.Fatalf("FrameSize = %dx%d, want 8x4", w, h)
	}

	s := core.NewScreen(w, h)
	DrawFrame(s, f, core.Pt(0, 0))

	want := []string{
		"┌──────┐",
		"│· ██· │",
		"│· · · │",
		"└──────┘",
	}
	for y, row := range want {
		if got := s.Row(y); got != row {
			t.Errorf("row %d = %q, want %q", y, got, row)
		}
	}

	cell := s.GetCell(3, 1)
	if !cell.HasColor || cell.Color != 0x3b82f6 {
		t.Errorf("filled cell colour = %+v", cell)
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.DrawText(0, 0, "ab")
	s.SetColored(2, 0, '█', core.ColorFood)
	s.SetColored(3, 0, '█', core.ColorFood)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "ab") || !strings.Contains(lines[0], "██") {
		t.Errorf("first line lost content: %q", lines[0])
	}
}
