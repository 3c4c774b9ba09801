package text

import "sync"

// GlyphID identifies a glyph within a font.
type GlyphID uint16

// ShapedGlyph is one positioned glyph produced by a Shaper.
// X and Y are pen-relative offsets; XAdvance/YAdvance move the pen.
type ShapedGlyph struct {
	GID      GlyphID
	Cluster  int
	X        float64
	Y        float64
	XAdvance float64
	YAdvance float64
}

// Shaper converts text into positioned glyphs.
type Shaper interface {
	Shape(text string, face Face) []ShapedGlyph
}

var (
	shaperMu sync.RWMutex
	shaper   Shaper = &BuiltinShaper{}
)

// SetShaper sets the global shaper used by Shape.
// Pass nil to restore the default BuiltinShaper.
func SetShaper(s Shaper) {
	shaperMu.Lock()
	defer shaperMu.Unlock()
	if s == nil {
		s = &BuiltinShaper{}
	}
	shaper = s
}

// Shape converts text into positioned glyphs using the global shaper.
func Shape(text string, face Face) []ShapedGlyph {
	shaperMu.RLock()
	s := shaper
	shaperMu.RUnlock()
	return s.Shape(text, face)
}

// BuiltinShaper positions one glyph per rune using the font's advance
// metrics. It supports Latin, Cyrillic, Greek and CJK text; scripts that
// require ligatures or contextual forms need the HarfBuzz shaper.
//
// BuiltinShaper is stateless and safe for concurrent use.
type BuiltinShaper struct{}

// Shape implements the Shaper interface.
func (s *BuiltinShaper) Shape(text string, face Face) []ShapedGlyph {
	if text == "" || face == nil {
		return nil
	}

	runes := []rune(text)
	result := make([]ShapedGlyph, 0, len(runes))

	var x float64
	for cluster, r := range runes {
		advance := face.Advance(string(r))
		result = append(result, ShapedGlyph{
			Cluster:  cluster,
			X:        x,
			XAdvance: advance,
		})
		x += advance
	}
	return result
}
