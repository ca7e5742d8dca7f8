package preview

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vovakirdan/gridpreview/internal/config"
	"github.com/vovakirdan/gridpreview/internal/core"
	_ "github.com/vovakirdan/gridpreview/internal/games/idle"
	"github.com/vovakirdan/gridpreview/internal/games/pursuit"
	_ "github.com/vovakirdan/gridpreview/internal/games/puzzle"
	"github.com/vovakirdan/gridpreview/internal/genre"
	"github.com/vovakirdan/gridpreview/internal/input"
	"github.com/vovakirdan/gridpreview/internal/registry"
	"github.com/vovakirdan/gridpreview/internal/runtimeops"
	"github.com/vovakirdan/gridpreview/internal/storage"
)

type fakeRecorder struct {
	mu   sync.Mutex
	runs []storage.Run
}

func (f *fakeRecorder) SaveRun(r storage.Run) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs = append(f.runs, r)
	return nil
}

func (f *fakeRecorder) Runs() []storage.Run {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]storage.Run(nil), f.runs...)
}

var fixedNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func newManual(rec Recorder) *Preview {
	return New(Options{
		Seed:     7,
		Manual:   true,
		Recorder: rec,
		Now:      func() time.Time { return fixedNow },
	})
}

func world(w, h int, wrap bool) *runtimeops.World {
	return &runtimeops.World{TileSize: 16, Width: w, Height: h, WrapEdges: wrap}
}

func pursuitOps(entities ...runtimeops.Entity) runtimeops.Ops {
	return runtimeops.Ops{
		World:    world(10, 10, false),
		Systems:  []runtimeops.System{{Type: "snakeMovement"}, {Type: "controls.inputAxis"}},
		Entities: entities,
	}
}

func puzzleOps() runtimeops.Ops {
	return runtimeops.Ops{
		World:   world(10, 20, false),
		Systems: []runtimeops.System{{Type: "tetrominoes"}},
	}
}

func game(t *testing.T, p *Preview) *pursuit.Game {
	t.Helper()
	sim, ok := p.cur.sim.(*pursuit.Simulation)
	if !ok {
		t.Fatalf("active simulation is %T, want pursuit", p.cur.sim)
	}
	return sim.Game()
}

func count(f registry.Frame, c core.RGB) int {
	n := 0
	for _, row := range f.Cells {
		for _, v := range row {
			if v == c {
				n++
			}
		}
	}
	return n
}

func TestStartRejectsInvalidWorld(t *testing.T) {
	rec := &fakeRecorder{}
	p := newManual(rec)
	defer p.Close()

	_, err := p.Start(context.Background(), runtimeops.Ops{Systems: []runtimeops.System{{Type: "tetrisCore"}}})
	if !errors.Is(err, runtimeops.ErrInvalidSpec) {
		t.Fatalf("err = %v, want ErrInvalidSpec", err)
	}
	if _, ok := p.Current(); ok {
		t.Error("a run was started for an invalid specification")
	}
}

func TestInvalidSwitchKeepsCurrentRun(t *testing.T) {
	p := newManual(nil)
	defer p.Close()

	info, err := p.Start(context.Background(), puzzleOps())
	if err != nil {
		t.Fatal(err)
	}
	bad := puzzleOps()
	bad.World.Height = 0
	if _, err := p.Switch(context.Background(), bad); err == nil {
		t.Fatal("expected error for zero height")
	}
	cur, ok := p.Current()
	if !ok || cur.ID != info.ID {
		t.Error("invalid switch replaced the running simulation")
	}
}

func TestPursuitAdvancesRight(t *testing.T) {
	p := newManual(nil)
	defer p.Close()

	info, err := p.Start(context.Background(), pursuitOps())
	if err != nil {
		t.Fatal(err)
	}
	if info.Plan.Genre != genre.Pursuit {
		t.Fatalf("genre = %v, want pursuit", info.Plan.Genre)
	}
	if !game(t, p).PlaceFood(core.Pt(0, 0)) {
		t.Fatal("cannot place food")
	}

	p.Advance(4 * 150 * time.Millisecond)

	f, _ := p.Frame()
	if f.At(core.Pt(9, 5)) != core.ColorSnakeHead {
		t.Errorf("head not at (9,5)")
	}
	for x := 6; x <= 8; x++ {
		if f.At(core.Pt(x, 5)) != core.ColorSnakeTail {
			t.Errorf("no body segment at (%d,5)", x)
		}
	}
	if f.At(core.Pt(5, 5)) != 0 {
		t.Errorf("(5,5) should be empty after the body passed")
	}
	if f.Stats.Ticks != 4 {
		t.Errorf("ticks = %d, want 4", f.Stats.Ticks)
	}
}

func TestOversizedBodyLengthStartsWithDefault(t *testing.T) {
	p := newManual(nil)
	defer p.Close()

	snake := runtimeops.Entity{ID: "snake", Components: []runtimeops.Component{
		{"snakeBody": map[string]any{"length": 1099511627776}},
	}}
	info, err := p.Start(context.Background(), pursuitOps(snake))
	if err != nil {
		t.Fatal(err)
	}
	if info.Plan.Pursuit.Length != genre.DefaultLength {
		t.Errorf("length = %d, want default %d", info.Plan.Pursuit.Length, genre.DefaultLength)
	}
	if got := game(t, p).Frame().Length(); got != genre.DefaultLength {
		t.Errorf("body length = %d, want %d", got, genre.DefaultLength)
	}
}

func TestPursuitEatsFood(t *testing.T) {
	p := newManual(nil)
	defer p.Close()

	snake := runtimeops.Entity{
		ID: "snake",
		Components: []runtimeops.Component{
			{"type": "GridPosition", "x": 4, "y": 5},
		},
	}
	if _, err := p.Start(context.Background(), pursuitOps(snake)); err != nil {
		t.Fatal(err)
	}
	if !game(t, p).PlaceFood(core.Pt(5, 5)) {
		t.Fatal("cannot place food")
	}

	p.Advance(150 * time.Millisecond)

	f, _ := p.Frame()
	if f.At(core.Pt(5, 5)) != core.ColorSnakeHead {
		t.Fatal("head did not move onto the food cell")
	}
	if got := count(f, core.ColorSnakeTail); got != 4 {
		t.Errorf("body segments = %d, want 4", got)
	}
	if got := count(f, core.ColorFood); got != 1 {
		t.Errorf("food cells = %d, want 1", got)
	}
	if f.Stats.Score != 1 || f.Event != "ate" {
		t.Errorf("stats=%+v event=%q", f.Stats, f.Event)
	}
}

func TestPressSteersPursuit(t *testing.T) {
	p := newManual(nil)
	defer p.Close()

	if _, err := p.Start(context.Background(), pursuitOps()); err != nil {
		t.Fatal(err)
	}
	game(t, p).PlaceFood(core.Pt(0, 0))

	p.Press(input.KeyDown)
	p.Advance(150 * time.Millisecond)

	f, _ := p.Frame()
	if f.At(core.Pt(5, 6)) != core.ColorSnakeHead {
		t.Error("head did not turn down")
	}
}

func TestPuzzleSpawnsAtTop(t *testing.T) {
	p := newManual(nil)
	defer p.Close()

	info, err := p.Start(context.Background(), puzzleOps())
	if err != nil {
		t.Fatal(err)
	}
	if info.Plan.Genre != genre.Puzzle {
		t.Fatalf("genre = %v, want puzzle", info.Plan.Genre)
	}

	p.Advance(16 * time.Millisecond)

	f, _ := p.Frame()
	filled := 0
	for _, row := range f.Cells {
		for _, c := range row {
			if c != 0 {
				filled++
			}
		}
	}
	if filled != 4 {
		t.Errorf("filled = %d, want 4", filled)
	}
	if f.At(core.Pt(5, 0)) == 0 {
		t.Error("spawn anchor (5,0) empty")
	}
}

func TestNoneGenreIsIdle(t *testing.T) {
	p := newManual(nil)
	defer p.Close()

	ops := runtimeops.Ops{World: world(8, 8, false), Systems: []runtimeops.System{{Type: "physics"}}}
	info, err := p.Start(context.Background(), ops)
	if err != nil {
		t.Fatal(err)
	}
	if info.Plan.Genre != genre.None {
		t.Fatalf("genre = %v, want none", info.Plan.Genre)
	}
	p.Advance(time.Second)
	f, _ := p.Frame()
	if count(f, 0) != 64 {
		t.Error("idle frame is not empty")
	}
}

func TestSwitchRecordsPreviousRun(t *testing.T) {
	rec := &fakeRecorder{}
	p := newManual(rec)
	defer p.Close()

	first, err := p.Start(context.Background(), pursuitOps())
	if err != nil {
		t.Fatal(err)
	}
	p.Advance(300 * time.Millisecond)

	second, err := p.Switch(context.Background(), puzzleOps())
	if err != nil {
		t.Fatal(err)
	}
	if first.ID == second.ID {
		t.Error("runs share an ID")
	}

	runs := rec.Runs()
	if len(runs) != 1 {
		t.Fatalf("recorded %d runs, want 1", len(runs))
	}
	r := runs[0]
	if r.ID != first.ID.String() || r.Genre != "pursuit" || r.Ticks != 2 {
		t.Errorf("recorded run = %+v", r)
	}
	if r.Width != 10 || r.Height != 10 {
		t.Errorf("size = %dx%d", r.Width, r.Height)
	}
}

func TestCloseHaltsAndReleases(t *testing.T) {
	rec := &fakeRecorder{}
	p := newManual(rec)

	if _, err := p.Start(context.Background(), puzzleOps()); err != nil {
		t.Fatal(err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("second Close() = %v", err)
	}

	if n := p.Advance(time.Second); n != 0 {
		t.Errorf("%d handlers fired after Close", n)
	}
	p.Press(input.KeyLeft) // must not panic
	if _, err := p.Start(context.Background(), puzzleOps()); !errors.Is(err, ErrClosed) {
		t.Errorf("Start after Close = %v, want ErrClosed", err)
	}
	if len(rec.Runs()) != 1 {
		t.Errorf("recorded %d runs, want 1", len(rec.Runs()))
	}
}

func TestRealtimeStopsOnClose(t *testing.T) {
	var frames atomic.Int64
	got := make(chan struct{}, 1)
	cfg := config.DefaultPreviewConfig()
	cfg.Pursuit.StepMS = 20

	p := New(Options{
		Config: cfg,
		Seed:   3,
		Sink: FrameSinkFunc(func(registry.Frame) {
			if frames.Add(1) >= 3 {
				select {
				case got <- struct{}{}:
				default:
				}
			}
		}),
	})

	if _, err := p.Start(context.Background(), pursuitOps()); err != nil {
		t.Fatal(err)
	}
	select {
	case <-got:
	case <-time.After(5 * time.Second):
		t.Fatal("no frames delivered")
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}

	after := frames.Load()
	time.Sleep(100 * time.Millisecond)
	if frames.Load() != after {
		t.Error("frames delivered after Close")
	}
}
