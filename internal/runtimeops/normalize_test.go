package runtimeops

import "testing"

func TestNormalizeSynonyms(t *testing.T) {
	for raw, want := range Synonyms() {
		if got := Normalize(raw); got != want {
			t.Errorf("Normalize(%q) = %q, expected %q", raw, got, want)
		}
	}
}

func TestNormalizeUnknownPassesThrough(t *testing.T) {
	tests := []string{"actor.snake", "foodUniform", "", "Tetrominoes", "tetrisCore", "gridStep"}

	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			once := Normalize(raw)
			if once != raw {
				t.Errorf("Normalize(%q) = %q, expected unchanged", raw, once)
			}
			if twice := Normalize(once); twice != once {
				t.Errorf("Normalize is not idempotent: %q -> %q", once, twice)
			}
		})
	}
}

func TestNormalizeIdempotentOnTable(t *testing.T) {
	for raw := range Synonyms() {
		once := Normalize(raw)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize(Normalize(%q)) = %q, expected %q", raw, twice, once)
		}
	}
}

func TestNormalizeOpsDoesNotMutateInput(t *testing.T) {
	in := Ops{
		World: &World{TileSize: 16, Width: 10, Height: 20},
		Systems: []System{
			{Type: "tetrominoes", Params: map[string]any{"gravityTicks": 30}},
			{Type: "hud.basic"},
			{Type: "custom.rule"},
		},
	}

	out := NormalizeOps(in)

	if in.Systems[0].Type != "tetrominoes" || in.Systems[1].Type != "hud.basic" {
		t.Errorf("input systems were mutated: %v", in.SystemTypes())
	}
	want := []string{TetrisCore, HUDBasic, "custom.rule"}
	for i, got := range out.SystemTypes() {
		if got != want[i] {
			t.Errorf("system %d type = %q, expected %q", i, got, want[i])
		}
	}
	if out.Systems[0].Params["gravityTicks"] != 30 {
		t.Error("params should be carried over")
	}

	out.World.Width = 99
	if in.World.Width != 10 {
		t.Error("output world should not alias the input world")
	}
}

func TestCanonical(t *testing.T) {
	tests := []struct {
		in   string
		want CanonicalType
	}{
		{TetrisCore, TypeTetrisCore},
		{LineClear, TypeLineClear},
		{GridStep, TypeGridStep},
		{InputAxis, TypeInputAxis},
		{HUDBasic, TypeHUDBasic},
		{"actor.snake", TypeOther},
		{"tetrominoes", TypeOther}, // raw, not normalised
	}

	for _, tc := range tests {
		if got := Canonical(tc.in); got != tc.want {
			t.Errorf("Canonical(%q) = %v, expected %v", tc.in, got, tc.want)
		}
	}
}

func TestSystemParamsFirstMatchWins(t *testing.T) {
	ops := Ops{Systems: []System{
		{Type: TetrisCore, Params: map[string]any{"gravityTicks": 10}},
		{Type: TetrisCore, Params: map[string]any{"gravityTicks": 99}},
	}}

	params, ok := ops.SystemParams(TetrisCore)
	if !ok {
		t.Fatal("expected tetrisCore params")
	}
	if params["gravityTicks"] != 10 {
		t.Errorf("gravityTicks = %v, expected first system's value 10", params["gravityTicks"])
	}
	if _, ok := ops.SystemParams(GridStep); ok {
		t.Error("gridStep should not be found")
	}
}
