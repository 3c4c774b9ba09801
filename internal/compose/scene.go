// Package compose lays poem text, the title and author seal, and an
// optional watermark into one positioned scene over a canvas.
//
// Layout is a pure function of its inputs: the same poem, options,
// background and canvas size always produce the same positioned scene.
// Glyph boxes use em-square metrics (a fullwidth character occupies one
// em, a halfwidth character half an em), so layout needs no font file
// and stays deterministic; the render pipeline draws the glyphs with a
// real face afterwards.
package compose

import (
	"github.com/versepaper/versepaper/internal/paint"
	"github.com/versepaper/versepaper/internal/poem"
)

// TextRole identifies what a placed run of text is.
type TextRole int

const (
	RoleMain TextRole = iota
	RoleTitle
	RoleAuthor
	RoleWatermark
)

// Text is one positioned run. X is the left edge of the run's box and
// Y is the baseline. Vertical runs are placed one rune at a time, so a
// vertical column is a sequence of single-rune Texts.
type Text struct {
	Value string
	X     float64
	Y     float64
	Size  float64
	Color paint.RGBA
	Role  TextRole
}

// Badge is a filled rounded box drawn behind text, used for the author
// seal.
type Badge struct {
	X, Y, W, H float64
	Corner     float64
	Color      paint.RGBA
}

// Scene is the positioned text layer of one wallpaper.
type Scene struct {
	Width      float64
	Height     float64
	Background paint.RGBA
	Badges     []Badge
	Texts      []Text
}

// Orientation selects the text layout direction.
type Orientation int

const (
	// Vertical lays the poem as top-to-bottom columns ordered
	// right-to-left.
	Vertical Orientation = iota
	// Horizontal lays the poem as left-to-right lines.
	Horizontal
)

// Options are the layout settings of the composition.
type Options struct {
	Orientation Orientation
	FontSize    float64
	// CharSpacing and LineSpacing are em fractions added between
	// characters and between columns/lines.
	CharSpacing float64
	LineSpacing float64
	// TitleOffset and AuthorOffset nudge the title column and author
	// seal, in pixels.
	TitleOffset  float64
	AuthorOffset float64
	// Watermark enables the vertical color-name label; WatermarkText is
	// its content.
	Watermark     bool
	WatermarkText string
}

// DefaultOptions returns the standard layout settings for a canvas of
// the given height.
func DefaultOptions(canvasHeight float64) Options {
	return Options{
		Orientation: Vertical,
		FontSize:    canvasHeight / 18,
		CharSpacing: 0.25,
		LineSpacing: 0.75,
	}
}

// TextColorFor selects a legible text color for a background using its
// luminance: dark backgrounds get near-white text, light backgrounds a
// dark neutral.
func TextColorFor(background paint.RGBA) paint.RGBA {
	if background.Luminance() < 128 {
		return paint.RGB(0.96, 0.95, 0.92)
	}
	return paint.RGB(0.18, 0.17, 0.20)
}

// Build lays out one scene. It is a pure function of its inputs.
func Build(p poem.Poem, opts Options, background paint.RGBA, width, height float64) Scene {
	scene := Scene{
		Width:      width,
		Height:     height,
		Background: background,
	}
	if p.IsZero() {
		return scene
	}

	if opts.FontSize <= 0 {
		opts.FontSize = DefaultOptions(height).FontSize
	}

	textColor := TextColorFor(background)

	if opts.Orientation == Vertical {
		layoutVertical(&scene, p, opts, textColor)
	} else {
		layoutHorizontal(&scene, p, opts, textColor)
	}

	if opts.Watermark && opts.WatermarkText != "" {
		layoutWatermark(&scene, opts.WatermarkText, textColor)
	}

	return scene
}
