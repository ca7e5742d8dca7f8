package genre

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/gridpreview/internal/diag"
	"github.com/vovakirdan/gridpreview/internal/runtimeops"
)

// Plan is the strict form of a specification: validated, normalised and
// classified once, before any simulation starts.
type Plan struct {
	World     runtimeops.World
	Genre     Genre
	Ops       runtimeops.Ops // normalised copy
	Canonical []runtimeops.CanonicalType
	Pursuit   *PursuitSeed // set for Pursuit only
}

// Detect validates, normalises and classifies ops. The only error is an
// invalid world; everything else degrades to defaults reported to sink.
func Detect(ops runtimeops.Ops, sink diag.Sink) (Plan, error) {
	if err := runtimeops.Validate(ops); err != nil {
		return Plan{}, err
	}

	norm := runtimeops.NormalizeOps(ops)
	types := append(ops.SystemTypes(), norm.SystemTypes()...)

	plan := Plan{
		World:     *norm.World,
		Genre:     Classify(types, ops.Entities),
		Ops:       norm,
		Canonical: make([]runtimeops.CanonicalType, len(norm.Systems)),
	}
	for i, s := range norm.Systems {
		plan.Canonical[i] = runtimeops.Canonical(s.Type)
	}

	if plan.Genre == Pursuit {
		seed := ExtractPursuit(plan.World, ops.Entities, sink)
		plan.Pursuit = &seed
	}
	return plan, nil
}

// Has reports whether the plan contains a system of the canonical type.
func (p Plan) Has(t runtimeops.CanonicalType) bool {
	for _, c := range p.Canonical {
		if c == t {
			return true
		}
	}
	return false
}

// ControlHint returns the control help text for the plan's genre.
func (p Plan) ControlHint() string {
	switch p.Genre {
	case Puzzle:
		return "Controls: ← → move, ↑ rotate, ↓ soft drop"
	case Pursuit:
		return "Controls: ← → ↑ ↓ change direction"
	default:
		return "Controls: Arrow keys"
	}
}

// Summary is the static description shown once at run start.
func (p Plan) Summary() string {
	return strings.Join(p.SummaryLines(), " | ")
}

// SummaryLines returns the summary split into its three parts.
func (p Plan) SummaryLines() []string {
	return []string{
		fmt.Sprintf("World %dx%d t=%d", p.World.Width, p.World.Height, p.World.TileSize),
		"Systems: " + strings.Join(p.Ops.SystemTypes(), ", "),
		p.ControlHint(),
	}
}
