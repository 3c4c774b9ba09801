package effect

import (
	"math"

	"github.com/versepaper/versepaper/internal/paint"
)

// bubbleOutline computes a bubble outline: a gently stretched circle.
// Stretch and rotation are applied in the shape's local frame.
func bubbleOutline(s *ShapeState) *paint.Path {
	// Cubic approximation of a quarter circle.
	const k = 0.5523

	rx := s.Radius * s.StretchX
	ry := s.Radius * s.StretchY

	local := func(x, y float64) paint.Point {
		return paint.Pt(x, y).Rotate(s.Rotation).Add(s.Center)
	}

	p0 := local(rx, 0)
	path := paint.NewPath()
	path.MoveTo(p0.X, p0.Y)

	arcs := [4][3][2]float64{
		{{rx, k * ry}, {k * rx, ry}, {0, ry}},
		{{-k * rx, ry}, {-rx, k * ry}, {-rx, 0}},
		{{-rx, -k * ry}, {-k * rx, -ry}, {0, -ry}},
		{{k * rx, -ry}, {rx, -k * ry}, {rx, 0}},
	}
	for _, arc := range arcs {
		c1 := local(arc[0][0], arc[0][1])
		c2 := local(arc[1][0], arc[1][1])
		end := local(arc[2][0], arc[2][1])
		path.CubicTo(c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
	}
	path.Close()
	return path
}

// BubbleHighlight returns the center and radius of the specular highlight
// drawn over a bubble, offset toward its upper left.
func BubbleHighlight(s *ShapeState) (paint.Point, float64) {
	center := s.Center.Add(paint.Pt(-s.Radius*0.35, -s.Radius*0.35).Rotate(s.Rotation * 0.2))
	return center, math.Max(1, s.Radius*0.18)
}
