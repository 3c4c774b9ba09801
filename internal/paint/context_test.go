package paint

import (
	"bytes"
	"testing"
)

func TestContextFillRectangleCoverage(t *testing.T) {
	dc := NewContext(40, 40)
	dc.ClearWithColor(White)
	dc.SetColor(Black)
	dc.DrawRectangle(10, 10, 20, 20)
	dc.Fill()

	tests := []struct {
		name     string
		x, y     int
		wantDark bool
	}{
		{"center inside", 20, 20, true},
		{"just inside left edge", 11, 20, true},
		{"outside left", 5, 20, false},
		{"outside top", 20, 5, false},
		{"corner outside", 38, 38, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := dc.Pixmap().GetPixel(tt.x, tt.y)
			dark := c.Luminance() < 128
			if dark != tt.wantDark {
				t.Errorf("pixel (%d,%d) = %+v, wantDark=%v", tt.x, tt.y, c, tt.wantDark)
			}
		})
	}
}

func TestContextCircleAntialiased(t *testing.T) {
	dc := NewContext(64, 64)
	dc.ClearWithColor(White)
	dc.SetColor(Black)
	dc.DrawCircle(32, 32, 20)
	dc.Fill()

	pm := dc.Pixmap()
	if c := pm.GetPixel(32, 32); c.Luminance() > 10 {
		t.Fatalf("circle center not filled: %+v", c)
	}
	if c := pm.GetPixel(2, 2); c.Luminance() < 245 {
		t.Fatalf("far corner painted: %+v", c)
	}

	// The rim should contain at least one partially covered pixel.
	partial := false
	for x := 0; x < 64; x++ {
		l := pm.GetPixel(x, 32).Luminance()
		if l > 20 && l < 235 {
			partial = true
			break
		}
	}
	if !partial {
		t.Error("no antialiased pixels found on the horizontal midline")
	}
}

func TestContextScaleMatchesLargerDraw(t *testing.T) {
	scaled := NewContext(80, 80)
	scaled.ClearWithColor(White)
	scaled.Scale(2, 2)
	scaled.SetColor(Black)
	scaled.DrawRectangle(5, 5, 25, 25)
	scaled.Fill()

	direct := NewContext(80, 80)
	direct.ClearWithColor(White)
	direct.SetColor(Black)
	direct.DrawRectangle(10, 10, 50, 50)
	direct.Fill()

	if !bytes.Equal(scaled.Pixmap().Data(), direct.Pixmap().Data()) {
		t.Error("scaled draw differs from equivalent unscaled draw")
	}
}

func TestContextPushPopRestoresMatrix(t *testing.T) {
	dc := NewContext(10, 10)
	before := dc.Matrix()
	dc.Push()
	dc.Translate(3, 7)
	dc.Rotate(0.5)
	dc.Pop()
	after := dc.Matrix()
	if before != after {
		t.Errorf("matrix not restored: before %+v, after %+v", before, after)
	}
}

func TestContextDeterministic(t *testing.T) {
	draw := func() []uint8 {
		dc := NewContext(50, 50)
		dc.ClearWithColor(Hex("#425066"))
		dc.SetColor(White.WithAlpha(0.4))
		dc.DrawEllipse(25, 20, 18, 12)
		dc.Fill()
		dc.SetColor(Hex("#AA3E30"))
		dc.DrawRoundedRectangle(30, 30, 14, 14, 3)
		dc.Fill()
		out := make([]uint8, len(dc.Pixmap().Data()))
		copy(out, dc.Pixmap().Data())
		return out
	}

	a, b := draw(), draw()
	if !bytes.Equal(a, b) {
		t.Error("identical draw sequences produced different pixels")
	}
}

func TestFillRuleEvenOdd(t *testing.T) {
	dc := NewContext(60, 60)
	dc.ClearWithColor(White)
	dc.SetColor(Black)
	dc.SetFillRule(FillRuleEvenOdd)
	// Two nested same-direction rectangles: even-odd leaves a hole.
	dc.DrawRectangle(5, 5, 50, 50)
	dc.DrawRectangle(20, 20, 20, 20)
	dc.Fill()

	pm := dc.Pixmap()
	if c := pm.GetPixel(10, 10); c.Luminance() > 128 {
		t.Error("outer ring not filled under even-odd")
	}
	if c := pm.GetPixel(30, 30); c.Luminance() < 128 {
		t.Error("inner hole filled under even-odd")
	}
}
