package effect

import (
	"math"

	"github.com/versepaper/versepaper/internal/paint"
)

// blobOutline computes a blob's closed outline at time t.
//
// The radial profile is r(θ) = R * clamp(1 + Σ aᵢ·sin(iθ + φᵢ + drift(t)),
// lo, hi) over harmonics i ∈ {2, 3, 5}. The sampled polygon gets one
// Chaikin corner-cutting pass, then a closed cubic curve is interpolated
// through the smoothed points.
func blobOutline(s *ShapeState, t float64, tun Tuning) *paint.Path {
	n := s.Segments
	if n < 8 {
		n = 8
	}

	pts := make([]paint.Point, n)
	for i := 0; i < n; i++ {
		theta := twoPi * float64(i) / float64(n)

		f := 1.0
		for k := range s.Harmonics {
			drift := s.Phase + t*0.25*(1+0.4*float64(k))
			f += s.Harmonics[k].Amp * math.Sin(harmonicOrders[k]*theta+s.Harmonics[k].Phase+drift)
		}
		f = math.Max(tun.RadialClampLo, math.Min(tun.RadialClampHi, f))

		r := s.Radius * f
		local := paint.Pt(math.Cos(theta)*r*s.StretchX, math.Sin(theta)*r*s.StretchY)
		pts[i] = local.Rotate(s.Rotation).Add(s.Center)
	}

	pts = chaikinClosed(pts)
	return closedCurveThrough(pts)
}

// chaikinClosed applies one Chaikin corner-cutting pass to a closed
// polygon, replacing each vertex with the 1/4 and 3/4 points of its
// adjacent edges.
func chaikinClosed(pts []paint.Point) []paint.Point {
	n := len(pts)
	if n < 3 {
		return pts
	}

	out := make([]paint.Point, 0, 2*n)
	for i := 0; i < n; i++ {
		p := pts[i]
		q := pts[(i+1)%n]
		out = append(out, p.Lerp(q, 0.25), p.Lerp(q, 0.75))
	}
	return out
}

// closedCurveThrough builds a closed path of cubic segments interpolating
// the given points, with Catmull-Rom-derived control points.
func closedCurveThrough(pts []paint.Point) *paint.Path {
	n := len(pts)
	path := paint.NewPath()
	if n < 3 {
		return path
	}

	path.MoveTo(pts[0].X, pts[0].Y)
	for i := 0; i < n; i++ {
		p0 := pts[(i-1+n)%n]
		p1 := pts[i]
		p2 := pts[(i+1)%n]
		p3 := pts[(i+2)%n]

		c1 := p1.Add(p2.Sub(p0).Mul(1.0 / 6.0))
		c2 := p2.Sub(p3.Sub(p1).Mul(1.0 / 6.0))
		path.CubicTo(c1.X, c1.Y, c2.X, c2.Y, p2.X, p2.Y)
	}
	path.Close()
	return path
}
