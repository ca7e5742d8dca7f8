package runtimeops

// CanonicalType is the closed vocabulary produced by normalisation.
type CanonicalType int

const (
	TypeOther CanonicalType = iota
	TypeTetrisCore
	TypeLineClear
	TypeGridStep
	TypeInputAxis
	TypeHUDBasic
)

// Canonical type names as they appear after Normalize.
const (
	TetrisCore = "tetrisCore"
	LineClear  = "lineClear"
	GridStep   = "gridStep"
	InputAxis  = "inputAxis"
	HUDBasic   = "hudBasic"
)

// synonyms maps raw system labels emitted by different builders onto canonical names.
var synonyms = map[string]string{
	"tetrominoes":               TetrisCore,
	"rules.lineClear":           LineClear,
	"controls.orthogonalStep":   GridStep,
	"controls.inputAxis":        InputAxis,
	"controller.orthogonalStep": GridStep,
	"controller.inputAxis":      InputAxis,
	"controller.rotate":         TetrisCore,
	"spawn.tetromino":           TetrisCore,
	"hud.basic":                 HUDBasic,
	"ui.hudBasic":               HUDBasic,
	"tick":                      GridStep,
	"stepper":                   GridStep,
}

// Synonyms returns a copy of the synonym table.
func Synonyms() map[string]string {
	out := make(map[string]string, len(synonyms))
	for k, v := range synonyms {
		out[k] = v
	}
	return out
}

// Normalize maps a raw system type to its canonical name. Unknown strings are
// returned unchanged.
func Normalize(raw string) string {
	if mapped, ok := synonyms[raw]; ok {
		return mapped
	}
	return raw
}

// NormalizeOps returns a copy of ops with every system type normalised.
// The input is not modified.
func NormalizeOps(ops Ops) Ops {
	out := Ops{
		Systems:  make([]System, len(ops.Systems)),
		Entities: ops.Entities,
	}
	if ops.World != nil {
		w := *ops.World
		out.World = &w
	}
	for i, s := range ops.Systems {
		out.Systems[i] = System{Type: Normalize(s.Type), Params: s.Params}
	}
	return out
}

// Canonical classifies a normalised type string.
func Canonical(t string) CanonicalType {
	switch t {
	case TetrisCore:
		return TypeTetrisCore
	case LineClear:
		return TypeLineClear
	case GridStep:
		return TypeGridStep
	case InputAxis:
		return TypeInputAxis
	case HUDBasic:
		return TypeHUDBasic
	default:
		return TypeOther
	}
}

// String returns the canonical name, or "other".
func (c CanonicalType) String() string {
	switch c {
	case TypeTetrisCore:
		return TetrisCore
	case TypeLineClear:
		return LineClear
	case TypeGridStep:
		return GridStep
	case TypeInputAxis:
		return InputAxis
	case TypeHUDBasic:
		return HUDBasic
	default:
		return "other"
	}
}
