package puzzle

import "github.com/vovakirdan/gridpreview/internal/core"

// Shape is one falling piece: four cell offsets from the anchor for each of
// four rotations.
type Shape struct {
	Name  string
	Color core.RGB
	Rots  [4][4]core.Point
}

func pts(xy ...int) [4]core.Point {
	var out [4]core.Point
	for i := range out {
		out[i] = core.Pt(xy[2*i], xy[2*i+1])
	}
	return out
}

// Shapes is the piece table, indexed by Piece.Shape.
var Shapes = [...]Shape{
	{Name: "I", Color: 0x3b82f6, Rots: [4][4]core.Point{
		pts(-1, 0, 0, 0, 1, 0, 2, 0),
		pts(0, -1, 0, 0, 0, 1, 0, 2),
		pts(-1, 1, 0, 1, 1, 1, 2, 1),
		pts(1, -1, 1, 0, 1, 1, 1, 2),
	}},
	{Name: "O", Color: 0xf59e0b, Rots: [4][4]core.Point{
		pts(0, 0, 1, 0, 0, 1, 1, 1),
		pts(0, 0, 1, 0, 0, 1, 1, 1),
		pts(0, 0, 1, 0, 0, 1, 1, 1),
		pts(0, 0, 1, 0, 0, 1, 1, 1),
	}},
	{Name: "T", Color: 0x8b5cf6, Rots: [4][4]core.Point{
		pts(-1, 0, 0, 0, 1, 0, 0, 1),
		pts(0, -1, 0, 0, 0, 1, 1, 0),
		pts(-1, 0, 0, 0, 1, 0, 0, -1),
		pts(0, -1, 0, 0, 0, 1, -1, 0),
	}},
	{Name: "S", Color: 0x10b981, Rots: [4][4]core.Point{
		pts(0, 0, 1, 0, -1, 1, 0, 1),
		pts(0, -1, 0, 0, 1, 0, 1, 1),
		pts(0, 0, 1, 0, -1, 1, 0, 1),
		pts(0, -1, 0, 0, 1, 0, 1, 1),
	}},
	{Name: "Z", Color: 0xef4444, Rots: [4][4]core.Point{
		pts(-1, 0, 0, 0, 0, 1, 1, 1),
		pts(1, -1, 0, 0, 1, 0, 0, 1),
		pts(-1, 0, 0, 0, 0, -1, 1, -1),
		pts(0, -1, -1, 0, 0, 0, -1, 1),
	}},
	{Name: "J", Color: 0x2563eb, Rots: [4][4]core.Point{
		pts(-1, 0, 0, 0, 1, 0, -1, 1),
		pts(0, -1, 0, 0, 0, 1, 1, -1),
		pts(-1, 0, 0, 0, 1, 0, 1, -1),
		pts(0, -1, 0, 0, 0, 1, -1, 1),
	}},
	{Name: "L", Color: 0xf97316, Rots: [4][4]core.Point{
		pts(-1, 0, 0, 0, 1, 0, 1, 1),
		pts(0, -1, 0, 0, 0, 1, -1, -1),
		pts(-1, 0, 0, 0, 1, 0, -1, -1),
		pts(0, -1, 0, 0, 0, 1, 1, 1),
	}},
}

// Shape indices.
const (
	ShapeI = iota
	ShapeO
	ShapeT
	ShapeS
	ShapeZ
	ShapeJ
	ShapeL
)
