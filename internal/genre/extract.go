package genre

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/gridpreview/internal/core"
	"github.com/vovakirdan/gridpreview/internal/diag"
	"github.com/vovakirdan/gridpreview/internal/runtimeops"
)

// DefaultLength is the starting body length (head included) when the
// specification does not give one.
const DefaultLength = 4

// PursuitSeed is the initial state extracted for the snake-like genre.
type PursuitSeed struct {
	Start    core.Point
	Length   int // head included
	Color    core.RGB
	EntityID string
	Found    bool // false when defaults were used for a missing entity
}

// attrParser reads one attribute shape from a component. present is false when
// the component does not have the shape at all; err is set when it has the shape
// but the value is unusable.
type attrParser[T any] func(c runtimeops.Component) (value T, present bool, err error)

// firstPresent tries parsers in order, each over every component, and returns
// the first shape found.
func firstPresent[T any](comps []runtimeops.Component, parsers []attrParser[T]) (T, bool, error) {
	for _, parse := range parsers {
		for _, c := range comps {
			if v, ok, err := parse(c); ok {
				return v, true, err
			}
		}
	}
	var zero T
	return zero, false, nil
}

// FindSnakeEntity returns the first entity describing the controllable body.
func FindSnakeEntity(entities []runtimeops.Entity) (runtimeops.Entity, bool) {
	for _, e := range entities {
		if e.ID == "e.snake" || IsSnakeEntity(e) {
			return e, true
		}
	}
	return runtimeops.Entity{}, false
}

// ExtractPursuit builds the initial snake state. It never fails: every missing
// or malformed attribute degrades to a default and is reported to sink.
func ExtractPursuit(world runtimeops.World, entities []runtimeops.Entity, sink diag.Sink) PursuitSeed {
	if sink == nil {
		sink = diag.Discard
	}
	bounds := core.NewRect(0, 0, world.Width, world.Height)
	center := bounds.Center()

	seed := PursuitSeed{
		Start:  center,
		Length: DefaultLength,
		Color:  core.ColorSnakeHead,
	}

	entity, ok := FindSnakeEntity(entities)
	if !ok {
		sink.Note(diag.MissingEntity, "no snake entity, using defaults",
			"start", fmt.Sprintf("%d,%d", center.X, center.Y), "length", DefaultLength)
		return seed
	}
	seed.Found = true
	seed.EntityID = entity.ID

	if pos, ok, err := firstPresent(entity.Components, positionParsers(center)); ok {
		if err != nil {
			sink.Note(diag.MalformedAttribute, "position field unusable, using grid centre",
				"entity", entity.ID, "error", err)
		}
		if !bounds.Contains(pos) {
			sink.Note(diag.MalformedAttribute, "start position outside grid, clamped",
				"entity", entity.ID, "x", pos.X, "y", pos.Y)
			pos = bounds.ClampPoint(pos)
		}
		seed.Start = pos
	}

	if n, ok, err := firstPresent(entity.Components, lengthParsers(bounds.W*bounds.H)); ok {
		if err != nil {
			sink.Note(diag.MalformedAttribute, "body length unusable, using default",
				"entity", entity.ID, "error", err, "default", DefaultLength)
		} else {
			seed.Length = n
		}
	}

	if c, ok, err := firstPresent(entity.Components, colorParsers); ok {
		if err != nil {
			sink.Note(diag.MalformedAttribute, "failed to parse snake color",
				"entity", entity.ID, "error", err, "default", core.ColorSnakeHead.Hex())
		} else {
			seed.Color = c
		}
	}

	return seed
}

// positionParsers lists the accepted position shapes in priority order.
func positionParsers(fallback core.Point) []attrParser[core.Point] {
	return []attrParser[core.Point]{
		func(c runtimeops.Component) (core.Point, bool, error) {
			if c.Type() != "GridPosition" {
				return core.Point{}, false, nil
			}
			p, err := pointFrom(c, fallback)
			return p, true, err
		},
		nestedPoint("gridPosition", fallback),
		nestedPoint("position", fallback),
		func(c runtimeops.Component) (core.Point, bool, error) {
			if !c.Has("x") || !c.Has("y") {
				return core.Point{}, false, nil
			}
			p, err := pointFrom(c, fallback)
			return p, true, err
		},
	}
}

func nestedPoint(field string, fallback core.Point) attrParser[core.Point] {
	return func(c runtimeops.Component) (core.Point, bool, error) {
		raw, ok := c[field]
		if !ok {
			return core.Point{}, false, nil
		}
		m, ok := asMap(raw)
		if !ok {
			return fallback, true, fmt.Errorf("%s: not a record", field)
		}
		p, err := pointFrom(m, fallback)
		return p, true, err
	}
}

// pointFrom reads x and y independently; a bad axis keeps the fallback value.
func pointFrom(m map[string]any, fallback core.Point) (core.Point, error) {
	p := fallback
	var errs []error
	if v, ok := m["x"]; ok {
		if x, ok := toInt(v); ok {
			p.X = x
		} else {
			errs = append(errs, fmt.Errorf("x: non-numeric %v", v))
		}
	}
	if v, ok := m["y"]; ok {
		if y, ok := toInt(v); ok {
			p.Y = y
		} else {
			errs = append(errs, fmt.Errorf("y: non-numeric %v", v))
		}
	}
	return p, errors.Join(errs...)
}

// lengthParsers lists the accepted body-length shapes in priority order. A body
// never holds more than limit cells.
func lengthParsers(limit int) []attrParser[int] {
	return []attrParser[int]{
		func(c runtimeops.Component) (int, bool, error) {
			if c.Type() != "Snake" {
				return 0, false, nil
			}
			segs, ok := c["segments"].([]any)
			if !ok {
				return 0, false, nil
			}
			return validLength(len(segs), limit)
		},
		legacyBody("snakeBody", limit),
		legacyBody("SnakeBody", limit),
	}
}

func legacyBody(field string, limit int) attrParser[int] {
	return func(c runtimeops.Component) (int, bool, error) {
		raw, ok := c[field]
		if !ok {
			return 0, false, nil
		}
		m, ok := asMap(raw)
		if !ok {
			return 0, true, fmt.Errorf("%s: not a record", field)
		}
		if v, ok := m["length"]; ok {
			n, ok := toInt(v)
			if !ok {
				return 0, true, fmt.Errorf("%s.length: not a usable number %v", field, v)
			}
			return validLength(n, limit)
		}
		if segs, ok := m["segments"].([]any); ok {
			return validLength(len(segs), limit)
		}
		return 0, true, fmt.Errorf("%s: no length or segments", field)
	}
}

func validLength(n, limit int) (int, bool, error) {
	if n < 1 {
		return 0, true, fmt.Errorf("length %d: must be at least 1", n)
	}
	if n > limit {
		return 0, true, fmt.Errorf("length %d: grid holds only %d cells", n, limit)
	}
	return n, true, nil
}

// colorParsers prefer the head colour over the generic one.
var colorParsers = []attrParser[core.RGB]{
	hexField("colorHead"),
	hexField("color"),
}

func hexField(field string) attrParser[core.RGB] {
	return func(c runtimeops.Component) (core.RGB, bool, error) {
		raw, ok := c[field]
		if !ok {
			return 0, false, nil
		}
		s, ok := raw.(string)
		if !ok {
			return 0, true, fmt.Errorf("%s: not a string: %v", field, raw)
		}
		rgb, err := core.ParseHex(s)
		if err != nil {
			return 0, true, fmt.Errorf("%s: %w", field, err)
		}
		return rgb, true, nil
	}
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case runtimeops.Component:
		return m, true
	}
	return nil, false
}

// toInt accepts the numeric types produced by YAML and JSON decoders. Values
// outside the int32 range are rejected.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		if n < math.MinInt32 || n > math.MaxInt32 {
			return 0, false
		}
		return n, true
	case int64:
		if n < math.MinInt32 || n > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case uint64:
		if n > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case float64:
		if math.IsNaN(n) || n < math.MinInt32 || n > math.MaxInt32 {
			return 0, false
		}
		return int(math.Floor(n)), true
	}
	return 0, false
}
