// Package text provides font loading, measurement, shaping and glyph
// rendering for the composition layer.
//
// A FontSource is the heavyweight, parsed representation of one font file
// and is safe for concurrent use; it hands out lightweight Face values at
// specific sizes. Glyph positioning goes through a pluggable Shaper: the
// builtin shaper positions one glyph per rune, which is correct for the
// upright CJK and Latin runs the composition draws, and a HarfBuzz-backed
// shaper built on go-text/typesetting is available for scripts that need
// real shaping.
package text

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// ErrEmptyFontData is returned when a FontSource is created with no data.
var ErrEmptyFontData = errors.New("text: empty font data")

// FontSource represents a loaded font file.
// One FontSource can create multiple Face instances at different sizes.
// FontSource is heavyweight and should be shared across the application.
//
// FontSource is safe for concurrent use and must not be copied after
// creation.
type FontSource struct {
	// addr points to the FontSource itself for copy protection.
	addr *FontSource

	data []byte
	font *opentype.Font
	name string

	mu  sync.Mutex
	buf sfnt.Buffer
}

// NewFontSource creates a FontSource from font data (TTF or OTF).
// The data slice is copied internally and can be reused after this call.
func NewFontSource(data []byte) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	f, err := opentype.Parse(dataCopy)
	if err != nil {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}

	s := &FontSource{
		data: dataCopy,
		font: f,
	}
	s.addr = s

	if name, err := f.Name(nil, sfnt.NameIDFamily); err == nil {
		s.name = name
	}

	return s, nil
}

// NewFontSourceFromFile loads a FontSource from a font file path.
func NewFontSourceFromFile(path string) (*FontSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: read font file: %w", err)
	}
	return NewFontSource(data)
}

// Name returns the font family name, or an empty string if unavailable.
func (s *FontSource) Name() string {
	s.copyCheck()
	return s.name
}

// Face creates a Face at the given size in pixels per em.
func (s *FontSource) Face(size float64) Face {
	s.copyCheck()
	return &sourceFace{source: s, size: size}
}

// copyCheck panics if the FontSource was copied by value, which would
// silently break the shared sfnt buffer.
func (s *FontSource) copyCheck() {
	if s.addr != s {
		panic("text: FontSource must not be copied by value")
	}
}
