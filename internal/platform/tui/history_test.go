package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gridpreview/internal/storage"
)

func TestHistoryRows(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	runs := []storage.Run{{
		ID:        "a",
		Genre:     "pursuit",
		Width:     20,
		Height:    10,
		Ticks:     12345,
		Score:     1500,
		Resets:    2,
		StartedAt: now.Add(-5*time.Minute - 30*time.Second),
		EndedAt:   now.Add(-3 * time.Minute),
	}}

	rows := HistoryRows(runs, now)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	want := []string{"3 minutes ago", "pursuit", "20x10", "1,500", "2", "12,345", "2m30s"}
	for i, cell := range want {
		if rows[0][i] != cell {
			t.Errorf("column %d = %q, want %q", i, rows[0][i], cell)
		}
	}
}

func TestHistoryModelTabs(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	start := time.Now().Add(-time.Minute)
	for i, g := range []string{"pursuit", "puzzle", "pursuit"} {
		err := store.SaveRun(storage.Run{
			ID:        string(rune('a' + i)),
			Genre:     g,
			Width:     10,
			Height:    10,
			StartedAt: start,
			EndedAt:   start.Add(time.Duration(i+1) * time.Second),
		})
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	m := NewHistoryModel(store, 100, 30)
	if len(m.runs) != 3 {
		t.Fatalf("all tab shows %d runs, want 3", len(m.runs))
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(HistoryModel)
	if len(m.runs) != 2 {
		t.Errorf("pursuit tab shows %d runs, want 2", len(m.runs))
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(HistoryModel)
	if len(m.runs) != 1 {
		t.Errorf("puzzle tab shows %d runs, want 1", len(m.runs))
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(HistoryModel)
	if view := m.View(); !strings.Contains(view, "No runs recorded yet") {
		t.Errorf("none tab should be empty:\n%s", view)
	}
}
