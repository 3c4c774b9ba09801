package render

import (
	"fmt"

	"github.com/versepaper/versepaper/internal/compose"
	"github.com/versepaper/versepaper/internal/effect"
	"github.com/versepaper/versepaper/internal/paint"
	"github.com/versepaper/versepaper/internal/poem"
	"github.com/versepaper/versepaper/internal/text"
)

// Inputs is everything one render needs. The variation Offset is already
// perturbed per monitor by the caller; the pipeline itself adds no
// nondeterminism, so identical Inputs against identical targets produce
// byte-identical pixels.
type Inputs struct {
	Poem       poem.Poem
	Options    compose.Options
	Background paint.RGBA
	DarkTheme  bool

	Kind   effect.Kind
	Tuning effect.Tuning
	Seed   int64
	Offset float64

	// TimePos is the shape-state time to advance to before rasterizing
	// the snapshot.
	TimePos float64
}

// Pipeline rasterizes scenes for monitor targets.
// The font source may be nil, in which case text runs are skipped and
// the omission is logged.
type Pipeline struct {
	font *text.FontSource
}

// NewPipeline creates a pipeline drawing text with the given font
// source. A nil source renders backgrounds and shapes only.
func NewPipeline(font *text.FontSource) *Pipeline {
	return &Pipeline{font: font}
}

// Render produces the pixel image for one target.
//
// Layout runs at the target's logical size first; rasterization then
// happens at the physical pixel size through the DPI scale matrix, so
// glyph and shape metrics match what the monitor displays. Any fault is
// returned to the caller, which isolates it to this target.
func (p *Pipeline) Render(in Inputs, target MonitorTarget) (pm *paint.Pixmap, err error) {
	defer func() {
		if r := recover(); r != nil {
			pm = nil
			err = fmt.Errorf("render: panic rendering %s: %v", target.ID, r)
		}
	}()

	if target.PixelWidth <= 0 || target.PixelHeight <= 0 {
		return nil, fmt.Errorf("render: target %s has empty pixel size", target.ID)
	}

	logicalW, logicalH := target.LogicalSize()
	sx := float64(target.PixelWidth) / logicalW
	sy := float64(target.PixelHeight) / logicalH

	// Shape layer, reproducible from (seed, offset, canvas size).
	gen := effect.New(in.Kind, in.Tuning)
	gen.SetVariationOffset(in.Offset)
	gen.Initialize(logicalW, logicalH, in.Seed)
	gen.UpdateColor(in.Background, in.DarkTheme)
	gen.Advance(in.TimePos)

	// Full layout pass at the logical size.
	scene := compose.Build(in.Poem, in.Options, in.Background, logicalW, logicalH)

	ctx := paint.NewContext(target.PixelWidth, target.PixelHeight)
	ctx.ClearWithColor(in.Background)
	ctx.Scale(sx, sy)

	for _, s := range gen.Shapes() {
		if s.Outline == nil {
			continue
		}
		ctx.FillPath(s.Outline, paint.FillRuleNonZero, s.Color)
		if in.Kind == effect.Bubbles {
			center, radius := effect.BubbleHighlight(s)
			ctx.SetColor(paint.White.WithAlpha(0.22))
			ctx.DrawCircle(center.X, center.Y, radius)
			ctx.Fill()
		}
	}

	for _, b := range scene.Badges {
		ctx.SetColor(b.Color)
		ctx.DrawRoundedRectangle(b.X, b.Y, b.W, b.H, b.Corner)
		ctx.Fill()
	}

	p.drawTexts(ctx, scene, sx, sy)

	return ctx.Pixmap(), nil
}

// drawTexts rasterizes the scene's text runs. The font drawer is not
// matrix-aware, so faces are sized for output pixels explicitly.
func (p *Pipeline) drawTexts(ctx *paint.Context, scene compose.Scene, sx, sy float64) {
	if len(scene.Texts) == 0 {
		return
	}
	if p.font == nil {
		paint.Logger().Warn("no font configured, skipping text layer",
			"runs", len(scene.Texts))
		return
	}

	var lastSize float64 = -1
	for _, t := range scene.Texts {
		size := t.Size * sy
		if size != lastSize {
			ctx.SetFont(p.font.Face(size))
			lastSize = size
		}
		ctx.SetColor(t.Color)
		text.Draw(ctx.Pixmap(), t.Value, ctx.Font(), t.X*sx, t.Y*sy, t.Color)
	}
}
