package paint

import (
	"math"
	"testing"
)

func TestFlattenClosedTriangle(t *testing.T) {
	p := &Path{}
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	p.LineTo(5, 8)
	p.Close()

	polys := Flatten(p)
	if len(polys) != 1 {
		t.Fatalf("got %d polygons, want 1", len(polys))
	}
	if len(polys[0]) < 3 {
		t.Fatalf("triangle flattened to %d points", len(polys[0]))
	}
}

func TestFlattenCubicStaysNearCurve(t *testing.T) {
	// A quarter-circle approximation from (r,0) to (0,r).
	const r = 50.0
	k := 0.5523 * r
	p := &Path{}
	p.MoveTo(r, 0)
	p.CubicTo(r, k, k, r, 0, r)

	polys := Flatten(p)
	if len(polys) != 1 {
		t.Fatalf("got %d polygons, want 1", len(polys))
	}
	for _, pt := range polys[0] {
		d := math.Hypot(pt.X, pt.Y)
		if math.Abs(d-r) > 1.0 {
			t.Fatalf("flattened point (%v,%v) is %.2f from origin, want ~%v", pt.X, pt.Y, d, r)
		}
	}
}

func TestFlattenSkipsDegenerateSubpaths(t *testing.T) {
	p := &Path{}
	p.MoveTo(1, 1)
	p.LineTo(2, 2)
	p.Close() // two points, no area

	if polys := Flatten(p); len(polys) != 0 {
		t.Errorf("degenerate subpath produced %d polygons", len(polys))
	}
}
