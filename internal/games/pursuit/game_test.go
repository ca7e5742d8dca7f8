package pursuit

import (
	"testing"

	"github.com/vovakirdan/gridpreview/internal/core"
	"github.com/vovakirdan/gridpreview/internal/input"
)

func newTestGame(w, h int, wrap bool) *Game {
	return New(Options{
		Width:     w,
		Height:    h,
		WrapEdges: wrap,
		Start:     core.Pt(w/2, h/2),
		Length:    4,
		Seed:      42,
		Palette:   DefaultPalette(),
	})
}

func TestInitialLayout(t *testing.T) {
	g := newTestGame(10, 10, false)

	f := g.Frame()
	if f.Head != core.Pt(5, 5) {
		t.Fatalf("head = %v, want (5,5)", f.Head)
	}
	want := []core.Point{core.Pt(4, 5), core.Pt(3, 5), core.Pt(2, 5)}
	if len(f.Body) != len(want) {
		t.Fatalf("body len = %d, want %d", len(f.Body), len(want))
	}
	for i, p := range want {
		if f.Body[i] != p {
			t.Errorf("body[%d] = %v, want %v", i, f.Body[i], p)
		}
	}
	if f.Axis != core.VecRight {
		t.Errorf("initial axis = %v, want right", f.Axis)
	}
	if !f.HasFood || g.occupied(f.Food) {
		t.Errorf("food %v must be placed on a free cell", f.Food)
	}
}

func TestInitialBodyNearEdge(t *testing.T) {
	tests := []struct {
		name    string
		wrap    bool
		wantLen int
	}{
		{"dropped without wrap", false, 1},
		{"wrapped", true, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(Options{Width: 8, Height: 4, WrapEdges: tt.wrap, Start: core.Pt(1, 0), Length: 4})
			if got := len(g.Frame().Body); got != tt.wantLen {
				t.Errorf("body len = %d, want %d", got, tt.wantLen)
			}
		})
	}

	g := New(Options{Width: 8, Height: 4, WrapEdges: true, Start: core.Pt(1, 0), Length: 4})
	if got := g.Frame().Body[1]; got != core.Pt(7, 0) {
		t.Errorf("wrapped segment = %v, want (7,0)", got)
	}
}

func TestOversizedLengthStaysInRow(t *testing.T) {
	for _, wrap := range []bool{false, true} {
		g := New(Options{Width: 10, Height: 10, WrapEdges: wrap, Start: core.Pt(5, 5), Length: 1 << 40})

		body := g.Frame().Body
		if len(body) > 9 {
			t.Errorf("wrap=%v: body len = %d, want at most 9", wrap, len(body))
		}
		for _, p := range body {
			if p.Y != 5 || p == core.Pt(5, 5) {
				t.Errorf("wrap=%v: segment %v outside the head's row or on the head", wrap, p)
			}
		}
	}
}

func TestAdvanceRight(t *testing.T) {
	g := newTestGame(10, 10, false)
	g.food = core.Pt(0, 0)

	var f Frame
	for range 4 {
		f = g.Step(0)
	}

	if f.Head != core.Pt(9, 5) {
		t.Fatalf("head = %v, want (9,5)", f.Head)
	}
	want := []core.Point{core.Pt(8, 5), core.Pt(7, 5), core.Pt(6, 5)}
	for i, p := range want {
		if f.Body[i] != p {
			t.Errorf("body[%d] = %v, want %v", i, f.Body[i], p)
		}
	}
	if f.Reset || f.Grew {
		t.Errorf("unexpected transition: %+v", f)
	}
}

func TestWrapEdges(t *testing.T) {
	g := newTestGame(10, 10, true)
	g.food = core.Pt(0, 0)

	for range 5 {
		g.Step(0)
	}
	f := g.Frame()
	if f.Head != core.Pt(0, 5) {
		t.Errorf("head = %v, want (0,5) after wrapping", f.Head)
	}
	if g.Resets() != 0 {
		t.Errorf("resets = %d, want 0", g.Resets())
	}
}

func TestWallCollisionResets(t *testing.T) {
	g := newTestGame(10, 10, false)
	g.food = core.Pt(0, 0)

	for range 4 {
		g.Step(0)
	}
	f := g.Step(0)

	if !f.Reset {
		t.Fatal("expected reset on leaving the grid")
	}
	if f.Head != core.Pt(5, 5) {
		t.Errorf("head = %v, want centre (5,5)", f.Head)
	}
	if len(f.Body) != 0 {
		t.Errorf("body len = %d, want 0", len(f.Body))
	}
	if !f.Axis.IsZero() {
		t.Errorf("axis = %v, want none", f.Axis)
	}

	// Stationary until a key is held.
	if f = g.Step(0); f.Head != core.Pt(5, 5) {
		t.Errorf("stationary head moved to %v", f.Head)
	}
	if f = g.Step(input.HeldOf(input.KeyUp)); f.Head != core.Pt(5, 4) {
		t.Errorf("head = %v, want (5,4)", f.Head)
	}
}

func TestSelfCollisionResets(t *testing.T) {
	g := newTestGame(10, 10, false)
	g.food = core.Pt(0, 0)
	// A loop: head at (5,5) with body curling round so that moving up hits it.
	g.head = core.Pt(5, 5)
	g.body = []core.Point{core.Pt(4, 5), core.Pt(4, 4), core.Pt(5, 4), core.Pt(6, 4)}
	g.axis, g.lastAxis = core.VecRight, core.VecRight

	f := g.Step(input.HeldOf(input.KeyUp))
	if !f.Reset {
		t.Fatal("expected reset on self collision")
	}
	if f.Head != core.Pt(5, 5) || len(f.Body) != 0 {
		t.Errorf("after reset head=%v body=%v", f.Head, f.Body)
	}
	if g.Resets() != 1 {
		t.Errorf("resets = %d, want 1", g.Resets())
	}
}

func TestReverseRejected(t *testing.T) {
	g := newTestGame(10, 10, false)
	g.food = core.Pt(0, 0)

	f := g.Step(input.HeldOf(input.KeyLeft))
	if f.Axis != core.VecRight {
		t.Errorf("axis = %v, want right", f.Axis)
	}
	if f.Head != core.Pt(6, 5) {
		t.Errorf("head = %v, want (6,5)", f.Head)
	}
}

func TestDirectionPriority(t *testing.T) {
	tests := []struct {
		name string
		held input.Held
		last core.Vec
		want core.Vec
	}{
		{"left beats up", input.HeldOf(input.KeyLeft, input.KeyUp), core.VecUp, core.VecLeft},
		{"right beats down", input.HeldOf(input.KeyRight, input.KeyDown), core.VecDown, core.VecRight},
		{"up beats down", input.HeldOf(input.KeyUp, input.KeyDown), core.VecRight, core.VecUp},
		{"reversed left falls through to up", input.HeldOf(input.KeyLeft, input.KeyUp), core.VecRight, core.VecUp},
		{"nothing held keeps axis", 0, core.VecDown, core.VecDown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(10, 10, true)
			g.axis, g.lastAxis = tt.last, tt.last
			g.resolveAxis(tt.held)
			if g.axis != tt.want {
				t.Errorf("axis = %v, want %v", g.axis, tt.want)
			}
		})
	}
}

func TestEatGrowsAndRelocatesFood(t *testing.T) {
	g := newTestGame(10, 10, false)
	g.food = core.Pt(6, 5)
	before := g.Frame().Length()

	f := g.Step(0)
	if !f.Grew {
		t.Fatal("expected growth")
	}
	if f.Length() != before+1 {
		t.Errorf("length = %d, want %d", f.Length(), before+1)
	}
	if f.Body[len(f.Body)-1] != core.Pt(2, 5) {
		t.Errorf("tail = %v, want (2,5) kept", f.Body[len(f.Body)-1])
	}
	if g.Score() != 1 {
		t.Errorf("score = %d, want 1", g.Score())
	}
	if f.Food == f.Head || g.onBody(f.Food) {
		t.Errorf("food relocated onto the snake at %v", f.Food)
	}
}

func TestFoodNeverOnSnake(t *testing.T) {
	g := New(Options{Width: 4, Height: 3, Start: core.Pt(1, 1), Length: 2, Seed: 7, FoodAttempts: 1})
	for i := range 200 {
		// wander in a square so the snake eats repeatedly
		var held input.Held
		switch (i / 3) % 4 {
		case 0:
			held = input.HeldOf(input.KeyRight)
		case 1:
			held = input.HeldOf(input.KeyDown)
		case 2:
			held = input.HeldOf(input.KeyLeft)
		case 3:
			held = input.HeldOf(input.KeyUp)
		}
		f := g.Step(held)
		if f.HasFood && (f.Food == f.Head || g.onBody(f.Food)) {
			t.Fatalf("tick %d: food %v on snake", f.Tick, f.Food)
		}
	}
}

func TestFullBoardWithdrawsFood(t *testing.T) {
	g := New(Options{Width: 3, Height: 1, Start: core.Pt(1, 0), Length: 2})
	g.food = core.Pt(2, 0)
	g.hasFood = true

	f := g.Step(0)
	if !f.Grew {
		t.Fatal("expected growth")
	}
	if f.HasFood {
		t.Errorf("food %v placed on a full board", f.Food)
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		g := newTestGame(16, 12, true)
		for i := range 300 {
			var held input.Held
			switch {
			case i%17 == 0:
				held = input.HeldOf(input.KeyDown)
			case i%11 == 0:
				held = input.HeldOf(input.KeyLeft)
			case i%7 == 0:
				held = input.HeldOf(input.KeyUp)
			}
			g.Step(held)
		}
		return g.Snapshot()
	}

	s1, s2 := run(), run()
	if s1 != s2 {
		t.Errorf("snapshots differ:\n%+v\n%+v", s1, s2)
	}
}

func TestPlaceFood(t *testing.T) {
	g := newTestGame(10, 10, false)

	if g.PlaceFood(core.Pt(5, 5)) {
		t.Error("placed food on the head")
	}
	if g.PlaceFood(core.Pt(10, 0)) {
		t.Error("placed food outside the grid")
	}
	if !g.PlaceFood(core.Pt(0, 9)) || g.Frame().Food != core.Pt(0, 9) {
		t.Error("food not placed on a free cell")
	}
}
