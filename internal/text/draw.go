package text

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Draw renders text to a destination image.
// Position (x, y) is the baseline origin. Faces not created by this
// package are ignored.
func Draw(dst draw.Image, text string, face Face, x, y float64, col color.Color) {
	if text == "" || face == nil {
		return
	}

	sf, ok := face.(*sourceFace)
	if !ok {
		return
	}

	otFace, err := opentype.NewFace(sf.source.font, &opentype.FaceOptions{
		Size:    sf.size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return
	}
	defer func() {
		_ = otFace.Close()
	}()

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: otFace,
	}

	// Pen positions come from the configured shaper; glyph selection
	// itself goes through the font's cmap.
	runes := []rune(text)
	glyphs := Shape(text, face)
	if len(glyphs) == 0 {
		d.Dot = fixed.Point26_6{X: floatToFixed(x), Y: floatToFixed(y)}
		d.DrawString(text)
		return
	}
	for _, g := range glyphs {
		if g.Cluster < 0 || g.Cluster >= len(runes) {
			continue
		}
		d.Dot = fixed.Point26_6{
			X: floatToFixed(x + g.X),
			Y: floatToFixed(y + g.Y),
		}
		d.DrawString(string(runes[g.Cluster]))
	}
}

// Measure returns the dimensions of text.
// Width is the horizontal advance, height is the font's line height.
func Measure(text string, face Face) (width, height float64) {
	if text == "" || face == nil {
		return 0, 0
	}
	return face.Advance(text), face.Metrics().LineHeight()
}
