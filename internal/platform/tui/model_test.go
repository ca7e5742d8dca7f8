package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	_ "github.com/vovakirdan/gridpreview/internal/games/puzzle"
	"github.com/vovakirdan/gridpreview/internal/preview"
	"github.com/vovakirdan/gridpreview/internal/runtimeops"
)

func startModel(t *testing.T) (Model, *preview.Preview) {
	t.Helper()
	ops := runtimeops.Ops{
		World:   &runtimeops.World{TileSize: 16, Width: 6, Height: 8},
		Systems: []runtimeops.System{{Type: "tetrisCore"}},
	}
	p := preview.New(preview.Options{Seed: 5, Manual: true})
	t.Cleanup(func() { p.Close() })

	info, err := p.Start(context.Background(), ops)
	if err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	return NewModel(p, ops, info), p
}

func TestModelViewShowsSummaryAndGrid(t *testing.T) {
	m, _ := startModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(Model)

	view := m.View()
	if !strings.Contains(view, "World 6x8 t=16") {
		t.Errorf("summary missing from view:\n%s", view)
	}
	if !strings.Contains(view, "┌") || !strings.Contains(view, "█") {
		t.Errorf("grid missing from view:\n%s", view)
	}
	if !strings.Contains(view, "puzzle") {
		t.Errorf("status line missing from view:\n%s", view)
	}
}

func TestModelTooSmall(t *testing.T) {
	m, _ := startModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 10, Height: 5})

	if view := next.(Model).View(); !strings.Contains(view, "too small") {
		t.Errorf("expected size warning, got:\n%s", view)
	}
}

func TestModelTickAdvancesPreview(t *testing.T) {
	m, p := startModel(t)
	before, _ := p.Frame()

	start := time.Now()
	next, cmd := m.Update(TickMsg(start))
	if cmd == nil {
		t.Fatal("tick did not schedule the next frame")
	}
	m = next.(Model)
	next, _ = m.Update(TickMsg(start.Add(200 * time.Millisecond)))
	m = next.(Model)

	after, _ := p.Frame()
	if after.Stats.Ticks <= before.Stats.Ticks {
		t.Errorf("ticks %d -> %d, want progress", before.Stats.Ticks, after.Stats.Ticks)
	}
}

func TestModelRestartStartsNewRun(t *testing.T) {
	m, _ := startModel(t)
	first := m.Info().ID

	next, _ := m.Update(runes("r"))
	if next.(Model).Info().ID == first {
		t.Error("restart kept the old run ID")
	}
}

func TestModelQuitClosesPreview(t *testing.T) {
	m, p := startModel(t)

	next, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("quit returned no command")
	}
	if next.(Model).View() != "" {
		t.Error("view not empty after quit")
	}
	if _, ok := p.Current(); ok {
		t.Error("preview still running after quit")
	}
}
