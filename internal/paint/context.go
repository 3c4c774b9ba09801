package paint

import (
	"math"

	"github.com/versepaper/versepaper/internal/text"
)

// Context is the main drawing context.
// It maintains a pixmap, current path, fill color, and a transformation
// stack. A Context is not safe for concurrent use.
type Context struct {
	width  int
	height int
	pixmap *Pixmap
	raster *Rasterizer

	path      *Path
	color     RGBA
	fillRule  FillRule
	lineWidth float64
	face      text.Face

	matrix Matrix
	stack  []Matrix
}

// NewContext creates a new drawing context with the given dimensions.
func NewContext(width, height int) *Context {
	return &Context{
		width:     width,
		height:    height,
		pixmap:    NewPixmap(width, height),
		raster:    NewRasterizer(width, height),
		path:      NewPath(),
		color:     Black,
		fillRule:  FillRuleNonZero,
		lineWidth: 1,
		matrix:    Identity(),
		stack:     make([]Matrix, 0, 8),
	}
}

// Width returns the width of the context.
func (c *Context) Width() int {
	return c.width
}

// Height returns the height of the context.
func (c *Context) Height() int {
	return c.height
}

// Pixmap returns the context's pixel buffer.
func (c *Context) Pixmap() *Pixmap {
	return c.pixmap
}

// ClearWithColor fills the entire context with a specific color.
func (c *Context) ClearWithColor(col RGBA) {
	c.pixmap.Clear(col)
}

// SetColor sets the current drawing color.
func (c *Context) SetColor(col RGBA) {
	c.color = col
}

// SetRGB sets the current color using RGB values (0-1).
func (c *Context) SetRGB(r, g, b float64) {
	c.color = RGB(r, g, b)
}

// SetRGBA sets the current color using RGBA values (0-1).
func (c *Context) SetRGBA(r, g, b, a float64) {
	c.color = RGBA{R: r, G: g, B: b, A: a}
}

// SetFillRule sets the fill rule.
func (c *Context) SetFillRule(rule FillRule) {
	c.fillRule = rule
}

// SetLineWidth sets the line width for stroking.
func (c *Context) SetLineWidth(width float64) {
	c.lineWidth = width
}

// Push saves the current transformation matrix.
func (c *Context) Push() {
	c.stack = append(c.stack, c.matrix)
}

// Pop restores the most recently pushed transformation matrix.
func (c *Context) Pop() {
	if len(c.stack) == 0 {
		return
	}
	c.matrix = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

// Translate prepends a translation to the current matrix.
func (c *Context) Translate(x, y float64) {
	c.matrix = c.matrix.Multiply(Translate(x, y))
}

// Scale prepends a scale to the current matrix.
func (c *Context) Scale(x, y float64) {
	c.matrix = c.matrix.Multiply(Scale(x, y))
}

// Rotate prepends a rotation to the current matrix.
func (c *Context) Rotate(angle float64) {
	c.matrix = c.matrix.Multiply(Rotate(angle))
}

// Matrix returns the current transformation matrix.
func (c *Context) Matrix() Matrix {
	return c.matrix
}

// MoveTo starts a new subpath at the given point.
func (c *Context) MoveTo(x, y float64) {
	p := c.matrix.TransformPoint(Pt(x, y))
	c.path.MoveTo(p.X, p.Y)
}

// LineTo adds a line to the current path.
func (c *Context) LineTo(x, y float64) {
	p := c.matrix.TransformPoint(Pt(x, y))
	c.path.LineTo(p.X, p.Y)
}

// QuadraticTo adds a quadratic Bezier curve to the current path.
func (c *Context) QuadraticTo(cx, cy, x, y float64) {
	cp := c.matrix.TransformPoint(Pt(cx, cy))
	p := c.matrix.TransformPoint(Pt(x, y))
	c.path.QuadraticTo(cp.X, cp.Y, p.X, p.Y)
}

// CubicTo adds a cubic Bezier curve to the current path.
func (c *Context) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	cp1 := c.matrix.TransformPoint(Pt(c1x, c1y))
	cp2 := c.matrix.TransformPoint(Pt(c2x, c2y))
	p := c.matrix.TransformPoint(Pt(x, y))
	c.path.CubicTo(cp1.X, cp1.Y, cp2.X, cp2.Y, p.X, p.Y)
}

// ClosePath closes the current subpath.
func (c *Context) ClosePath() {
	c.path.Close()
}

// ClearPath clears the current path.
func (c *Context) ClearPath() {
	c.path.Clear()
}

// DrawRectangle adds a rectangle to the current path.
func (c *Context) DrawRectangle(x, y, w, h float64) {
	c.MoveTo(x, y)
	c.LineTo(x+w, y)
	c.LineTo(x+w, y+h)
	c.LineTo(x, y+h)
	c.ClosePath()
}

// DrawRoundedRectangle adds a rectangle with rounded corners to the
// current path.
func (c *Context) DrawRoundedRectangle(x, y, w, h, r float64) {
	r = math.Min(r, math.Min(w, h)/2)
	// Cubic approximation of a quarter circle.
	const k = 0.5523
	c.MoveTo(x+r, y)
	c.LineTo(x+w-r, y)
	c.CubicTo(x+w-r+k*r, y, x+w, y+r-k*r, x+w, y+r)
	c.LineTo(x+w, y+h-r)
	c.CubicTo(x+w, y+h-r+k*r, x+w-r+k*r, y+h, x+w-r, y+h)
	c.LineTo(x+r, y+h)
	c.CubicTo(x+r-k*r, y+h, x, y+h-r+k*r, x, y+h-r)
	c.LineTo(x, y+r)
	c.CubicTo(x, y+r-k*r, x+r-k*r, y, x+r, y)
	c.ClosePath()
}

// DrawEllipse adds an ellipse centered at (x, y) to the current path.
func (c *Context) DrawEllipse(x, y, rx, ry float64) {
	const k = 0.5523
	c.MoveTo(x+rx, y)
	c.CubicTo(x+rx, y+k*ry, x+k*rx, y+ry, x, y+ry)
	c.CubicTo(x-k*rx, y+ry, x-rx, y+k*ry, x-rx, y)
	c.CubicTo(x-rx, y-k*ry, x-k*rx, y-ry, x, y-ry)
	c.CubicTo(x+k*rx, y-ry, x+rx, y-k*ry, x+rx, y)
	c.ClosePath()
}

// DrawCircle adds a circle to the current path.
func (c *Context) DrawCircle(x, y, r float64) {
	c.DrawEllipse(x, y, r, r)
}

// Fill fills the current path with the current color and clears the path.
func (c *Context) Fill() {
	c.FillPreserve()
	c.ClearPath()
}

// FillPreserve fills the current path without clearing it.
func (c *Context) FillPreserve() {
	subpaths := Flatten(c.path)
	c.raster.FillPolygons(c.pixmap, subpaths, c.fillRule, c.color)
}

// FillPath fills an already-built path, applying the current matrix.
// The context's own path is left untouched.
func (c *Context) FillPath(p *Path, rule FillRule, col RGBA) {
	transformed := p.Transform(c.matrix)
	subpaths := Flatten(transformed)
	c.raster.FillPolygons(c.pixmap, subpaths, rule, col)
}

// Stroke strokes the current path with the current color and line width,
// then clears the path. Each segment is expanded to a filled quad; joins
// are butt joins, which is sufficient for the seal borders and rules the
// composition draws.
func (c *Context) Stroke() {
	subpaths := Flatten(c.path)
	half := c.lineWidth / 2
	for _, points := range subpaths {
		for i := 0; i+1 < len(points); i++ {
			c.strokeSegment(points[i], points[i+1], half)
		}
	}
	c.ClearPath()
}

func (c *Context) strokeSegment(p0, p1 Point, half float64) {
	d := p1.Sub(p0)
	length := d.Length()
	if length < 1e-6 {
		return
	}
	// Perpendicular unit vector.
	n := Pt(-d.Y/length, d.X/length).Mul(half)

	quad := [][]Point{{
		p0.Add(n),
		p1.Add(n),
		p1.Sub(n),
		p0.Sub(n),
	}}
	c.raster.FillPolygons(c.pixmap, quad, FillRuleNonZero, c.color)
}

// SetFont sets the current font face for text drawing.
func (c *Context) SetFont(face text.Face) {
	c.face = face
}

// Font returns the current font face, or nil if none is set.
func (c *Context) Font() text.Face {
	return c.face
}

// DrawString draws text at position (x, y) where y is the baseline.
// The position is transformed by the current matrix; glyph metrics are
// taken from the face as-is, so callers wanting DPI-correct text must set
// a face sized for the output pixels. If no font has been set, DrawString
// does nothing.
func (c *Context) DrawString(s string, x, y float64) {
	if c.face == nil {
		return
	}
	p := c.matrix.TransformPoint(Pt(x, y))
	text.Draw(c.pixmap, s, c.face, p.X, p.Y, c.color)
}

// MeasureString returns the advance width and line height of s in the
// current font. Returns zeros if no font has been set.
func (c *Context) MeasureString(s string) (w, h float64) {
	if c.face == nil {
		return 0, 0
	}
	return text.Measure(s, c.face)
}

// SavePNG saves the context to a PNG file.
func (c *Context) SavePNG(path string) error {
	return c.pixmap.SavePNG(path)
}
