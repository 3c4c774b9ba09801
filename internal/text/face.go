package text

import (
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Metrics holds font metrics at a face's size, in pixels.
type Metrics struct {
	// Ascent is the distance from the baseline to the top of the font.
	Ascent float64
	// Descent is the absolute distance from the baseline to the bottom.
	Descent float64
	// LineGap is the recommended gap between lines.
	LineGap float64
}

// LineHeight returns the total height of one line.
func (m Metrics) LineHeight() float64 {
	return m.Ascent + m.Descent + m.LineGap
}

// Face represents a font face at a specific size.
// Face values are lightweight and safe for concurrent use.
type Face interface {
	// Metrics returns the font metrics at this face's size.
	Metrics() Metrics

	// Advance returns the total advance width of the text in pixels.
	Advance(text string) float64

	// HasGlyph reports whether the font has a glyph for the given rune.
	HasGlyph(r rune) bool

	// Size returns the size of this face in pixels per em.
	Size() float64

	// Source returns the FontSource this face was created from.
	Source() *FontSource
}

// sourceFace is the FontSource-backed implementation of Face.
type sourceFace struct {
	source *FontSource
	size   float64
}

func (f *sourceFace) Metrics() Metrics {
	s := f.source
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.font.Metrics(&s.buf, fixed.Int26_6(f.size*64), font.HintingFull)
	if err != nil {
		return Metrics{}
	}

	descent := fixedToFloat(m.Descent)
	if descent < 0 {
		descent = -descent
	}
	return Metrics{
		Ascent:  fixedToFloat(m.Ascent),
		Descent: descent,
		LineGap: fixedToFloat(m.Height) - fixedToFloat(m.Ascent) - descent,
	}
}

func (f *sourceFace) Advance(text string) float64 {
	s := f.source
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0.0
	for _, r := range text {
		gid, err := s.font.GlyphIndex(&s.buf, r)
		if err != nil {
			continue
		}
		adv, err := s.font.GlyphAdvance(&s.buf, gid, fixed.Int26_6(f.size*64), font.HintingFull)
		if err != nil {
			continue
		}
		total += fixedToFloat(adv)
	}
	return total
}

func (f *sourceFace) HasGlyph(r rune) bool {
	s := f.source
	s.mu.Lock()
	defer s.mu.Unlock()

	gid, err := s.font.GlyphIndex(&s.buf, r)
	return err == nil && gid != 0
}

func (f *sourceFace) Size() float64 {
	return f.size
}

func (f *sourceFace) Source() *FontSource {
	return f.source
}

// fixedToFloat converts a fixed.Int26_6 value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}

// floatToFixed converts a float64 to fixed.Int26_6.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}
