package paint

import (
	"math"
	"sort"
)

// FillRule specifies how to determine which areas are inside a path.
type FillRule int

const (
	// FillRuleNonZero uses the non-zero winding rule.
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd uses the even-odd rule.
	FillRuleEvenOdd
)

// supersample is the number of vertical subsamples per pixel row.
// Combined with fractional horizontal span coverage this gives smooth
// anti-aliased edges while staying fully deterministic.
const supersample = 4

// edge is a non-horizontal polygon edge normalized so y0 < y1.
// dir records the original winding direction for the non-zero rule.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64
	dir    int
}

func newEdge(p0, p1 Point) edge {
	dir := 1
	if p0.Y > p1.Y {
		p0, p1 = p1, p0
		dir = -1
	}
	return edge{
		x0: p0.X, y0: p0.Y,
		x1: p1.X, y1: p1.Y,
		dxdy: (p1.X - p0.X) / (p1.Y - p0.Y),
		dir:  dir,
	}
}

// xAt returns the edge's x coordinate at scanline y.
func (e edge) xAt(y float64) float64 {
	return e.x0 + (y-e.y0)*e.dxdy
}

// crossing is one edge intersection on a scanline.
type crossing struct {
	x   float64
	dir int
}

// Rasterizer fills flattened polygons into a pixmap.
// It is sized once and reused across fills; a Rasterizer is not safe for
// concurrent use.
type Rasterizer struct {
	width    int
	height   int
	row      []float64 // per-pixel coverage accumulator for one row
	crossbuf []crossing
}

// NewRasterizer creates a rasterizer for the given dimensions.
func NewRasterizer(width, height int) *Rasterizer {
	return &Rasterizer{
		width:  width,
		height: height,
		row:    make([]float64, width),
	}
}

// FillPolygons rasterizes the given subpaths with anti-aliasing,
// compositing color c over the pixmap.
func (r *Rasterizer) FillPolygons(pm *Pixmap, subpaths [][]Point, rule FillRule, c RGBA) {
	edges := buildEdges(subpaths)
	if len(edges) == 0 {
		return
	}

	yMin := math.MaxFloat64
	yMax := -math.MaxFloat64
	for _, e := range edges {
		yMin = math.Min(yMin, e.y0)
		yMax = math.Max(yMax, e.y1)
	}

	y0 := int(math.Floor(yMin))
	y1 := int(math.Ceil(yMax))
	if y0 < 0 {
		y0 = 0
	}
	if y1 > pm.Height() {
		y1 = pm.Height()
	}

	for y := y0; y < y1; y++ {
		for i := range r.row {
			r.row[i] = 0
		}

		for s := 0; s < supersample; s++ {
			scanY := float64(y) + (float64(s)+0.5)/supersample
			r.scanline(edges, scanY, rule)
		}

		for x, cov := range r.row {
			if cov > 0 {
				pm.BlendPixel(x, y, c, math.Min(cov, 1))
			}
		}
	}
}

// scanline accumulates one subsampled scanline into the coverage row.
func (r *Rasterizer) scanline(edges []edge, y float64, rule FillRule) {
	cross := r.crossbuf[:0]
	for _, e := range edges {
		if e.y0 <= y && y < e.y1 {
			cross = append(cross, crossing{x: e.xAt(y), dir: e.dir})
		}
	}
	r.crossbuf = cross
	if len(cross) < 2 {
		return
	}

	sort.Slice(cross, func(i, j int) bool {
		if cross[i].x != cross[j].x {
			return cross[i].x < cross[j].x
		}
		return cross[i].dir < cross[j].dir
	})

	if rule == FillRuleNonZero {
		winding := 0
		var spanStart float64
		for _, cr := range cross {
			if winding == 0 {
				spanStart = cr.x
			}
			winding += cr.dir
			if winding == 0 {
				r.addSpan(spanStart, cr.x)
			}
		}
	} else {
		for i := 0; i+1 < len(cross); i += 2 {
			r.addSpan(cross[i].x, cross[i+1].x)
		}
	}
}

// addSpan accumulates fractional coverage for the horizontal span [x1, x2)
// at the current subsample weight.
func (r *Rasterizer) addSpan(x1, x2 float64) {
	const weight = 1.0 / supersample

	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if x1 < 0 {
		x1 = 0
	}
	if x2 > float64(r.width) {
		x2 = float64(r.width)
	}
	if x1 >= x2 {
		return
	}

	i0 := int(x1)
	i1 := int(x2)
	if i1 >= r.width {
		i1 = r.width - 1
	}

	if i0 == i1 {
		r.row[i0] += (x2 - x1) * weight
		return
	}

	r.row[i0] += (float64(i0+1) - x1) * weight
	for i := i0 + 1; i < i1; i++ {
		r.row[i] += weight
	}
	r.row[i1] += (x2 - float64(i1)) * weight
}

// buildEdges converts closed polygons into an edge list, skipping
// near-horizontal edges which contribute no scanline crossings.
func buildEdges(subpaths [][]Point) []edge {
	var edges []edge
	for _, points := range subpaths {
		if len(points) < 3 {
			continue
		}
		// Ensure the polygon is closed.
		if points[0] != points[len(points)-1] {
			points = append(points, points[0])
		}
		for i := 0; i+1 < len(points); i++ {
			if math.Abs(points[i+1].Y-points[i].Y) < 1e-4 {
				continue
			}
			edges = append(edges, newEdge(points[i], points[i+1]))
		}
	}
	return edges
}
