package effect

import (
	"math"
	"math/rand"

	"github.com/versepaper/versepaper/internal/paint"
)

// canvasEpsilon is the size change below which SetCanvasSize is a no-op.
const canvasEpsilon = 0.5

// Generator produces and advances one seeded set of decorative shapes
// sized to a canvas. It is not safe for concurrent use; the apply
// coordinator serializes access.
type Generator struct {
	tuning Tuning
	kind   Kind

	seed   int64
	offset float64

	width  float64
	height float64

	shapes  []*ShapeState
	elapsed float64
}

// New creates a generator for the given shape kind.
func New(kind Kind, tuning Tuning) *Generator {
	return &Generator{
		kind:   kind,
		tuning: tuning,
	}
}

// Kind returns the generator's shape kind.
func (g *Generator) Kind() Kind {
	return g.kind
}

// Shapes returns the active shapes in depth order (rearmost first).
func (g *Generator) Shapes() []*ShapeState {
	return g.shapes
}

// SetVariationOffset sets the variation angle folded into the RNG stream
// on the next Initialize. It does not reinitialize by itself.
func (g *Generator) SetVariationOffset(offset float64) {
	g.offset = math.Mod(offset, twoPi)
}

// Initialize recomputes the whole shape layer from the seed.
// Identical (seed, variation offset, canvas size) inputs produce
// identical shape state.
func (g *Generator) Initialize(width, height float64, seed int64) {
	g.width = width
	g.height = height
	g.seed = seed
	g.elapsed = 0

	rng := rand.New(rand.NewSource(streamSeed(seed, g.offset, width, height)))
	tun := g.tuning

	count := tun.MinShapes
	if tun.MaxShapes > tun.MinShapes {
		count += rng.Intn(tun.MaxShapes - tun.MinShapes + 1)
	}

	minDim := math.Min(width, height)
	padding := tun.PaddingFrac * minDim

	g.shapes = g.shapes[:0]
	for i := 0; i < count; i++ {
		s := &ShapeState{Depth: i, Segments: tun.Segments}

		g.place(rng, s, i < tun.EdgeShapes, padding)

		s.Phase = rng.Float64() * twoPi
		s.Drift = (tun.DriftMin + rng.Float64()*(tun.DriftMax-tun.DriftMin)) * s.Radius
		s.Rotation = rng.Float64() * twoPi
		s.StretchX = 0.9 + rng.Float64()*0.3
		s.StretchY = 0.9 + rng.Float64()*0.3
		for k := range s.Harmonics {
			s.Harmonics[k] = Harmonic{
				Amp:   rng.Float64() * tun.HarmonicAmpMax[k],
				Phase: rng.Float64() * twoPi,
			}
		}

		g.shapes = append(g.shapes, s)
	}
}

// place sizes and positions a shape by rejection sampling against the
// minimum-distance invariant. Every attempt draws a fresh radius and
// position, so a crowded canvas can still admit a smaller shape. After
// the attempt budget is exhausted the best candidate seen is accepted
// and the degradation is logged.
func (g *Generator) place(rng *rand.Rand, s *ShapeState, straddleEdge bool, padding float64) {
	var best paint.Point
	var bestRadius float64
	bestClearance := math.Inf(-1)

	for attempt := 0; attempt < g.tuning.PlacementAttempts; attempt++ {
		radius := g.sampleRadius(rng)

		var candidate paint.Point
		if straddleEdge {
			candidate = g.edgeCandidate(rng, radius)
		} else {
			candidate = paint.Pt(rng.Float64()*g.width, rng.Float64()*g.height)
		}

		clearance := math.Inf(1)
		for _, other := range g.shapes {
			d := candidate.Distance(other.Home) - (radius + other.Radius + padding)
			clearance = math.Min(clearance, d)
		}

		if clearance >= 0 {
			s.Radius = radius
			s.Home = candidate
			s.Center = candidate
			return
		}
		if clearance > bestClearance {
			bestClearance = clearance
			best = candidate
			bestRadius = radius
		}
	}

	s.Radius = bestRadius
	s.Home = best
	s.Center = best
	paint.Logger().Warn("shape placement degraded",
		"depth", s.Depth,
		"radius", s.Radius,
		"shortfall", -bestClearance,
		"attempts", g.tuning.PlacementAttempts)
}

// sampleRadius draws one radius: biased small, with an occasional large
// anchor, as a fraction of the smaller canvas dimension.
func (g *Generator) sampleRadius(rng *rand.Rand) float64 {
	tun := g.tuning
	minDim := math.Min(g.width, g.height)
	if rng.Float64() < tun.AnchorChance {
		return (tun.AnchorMinFrac + rng.Float64()*(tun.AnchorMaxFrac-tun.AnchorMinFrac)) * minDim
	}
	return (tun.SmallMinFrac + rng.Float64()*(tun.SmallMaxFrac-tun.SmallMinFrac)) * minDim
}

// edgeCandidate samples a position straddling one canvas edge, off-canvas
// by a fraction of the radius, for a cropped composition.
func (g *Generator) edgeCandidate(rng *rand.Rand, radius float64) paint.Point {
	overhang := (g.tuning.EdgeOverhangMin +
		rng.Float64()*(g.tuning.EdgeOverhangMax-g.tuning.EdgeOverhangMin)) * radius

	switch rng.Intn(4) {
	case 0: // left
		return paint.Pt(-overhang, rng.Float64()*g.height)
	case 1: // right
		return paint.Pt(g.width+overhang, rng.Float64()*g.height)
	case 2: // top
		return paint.Pt(rng.Float64()*g.width, -overhang)
	default: // bottom
		return paint.Pt(rng.Float64()*g.width, g.height+overhang)
	}
}

// Advance moves the layer forward by dt seconds and rebuilds outlines.
func (g *Generator) Advance(dt float64) {
	g.elapsed += dt
	t := g.elapsed

	for _, s := range g.shapes {
		// Smooth positional drift from out-of-phase sine/cosine terms.
		s.Center = paint.Pt(
			s.Home.X+s.Drift*math.Sin(0.70*t+s.Phase),
			s.Home.Y+s.Drift*math.Cos(0.53*t+1.7*s.Phase),
		)

		if g.escaped(s) {
			// Self-healing: reinitialize the whole layer rather than
			// clamping individual shapes.
			paint.Logger().Info("shape escaped bounds, reinitializing layer", "depth", s.Depth)
			g.Initialize(g.width, g.height, g.seed)
			g.rebuildOutlines(0)
			return
		}
	}

	g.rebuildOutlines(t)
}

func (g *Generator) rebuildOutlines(t float64) {
	for i, s := range g.shapes {
		switch g.kind {
		case Blobs:
			s.Outline = blobOutline(s, t, g.tuning)
		case Wave:
			s.Outline = waveOutline(s, i, len(g.shapes), g.width, g.height, t)
		default:
			s.Outline = bubbleOutline(s)
		}
	}
}

// escaped reports whether a shape center left the self-healing bounds
// [-fx*w, (1+fx)*w] x [-fy*h, (1+fy)*h].
func (g *Generator) escaped(s *ShapeState) bool {
	fx := g.tuning.BoundsXFactor
	fy := g.tuning.BoundsYFactor
	return s.Center.X < -fx*g.width || s.Center.X > (1+fx)*g.width ||
		s.Center.Y < -fy*g.height || s.Center.Y > (1+fy)*g.height
}

// SetCanvasSize resizes the canvas. A change below an epsilon is a no-op;
// otherwise the layer reinitializes with a fresh random layout and
// immediately advances by zero to rebuild outlines.
func (g *Generator) SetCanvasSize(width, height float64) {
	if math.Abs(width-g.width) < canvasEpsilon && math.Abs(height-g.height) < canvasEpsilon {
		return
	}
	g.Initialize(width, height, g.seed)
	g.Advance(0)
}

// UpdateColor assigns each shape a color from a linear depth gradient:
// rear shapes blend toward white (light theme) or a darkened base (dark
// theme) and are more transparent; front shapes approach the base color
// and full configured opacity.
func (g *Generator) UpdateColor(base paint.RGBA, darkTheme bool) {
	n := len(g.shapes)
	for _, s := range g.shapes {
		t := 1.0
		if n > 1 {
			t = float64(s.Depth) / float64(n-1)
		}

		var c paint.RGBA
		if darkTheme {
			c = base.Darken(0.5 * (1 - t))
		} else {
			c = base.Lerp(paint.White, 0.7*(1-t))
		}
		s.Color = c.WithAlpha(0.35 + 0.5*t)
	}
}
