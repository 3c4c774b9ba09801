package effect

import (
	"math"

	"github.com/versepaper/versepaper/internal/paint"
)

// waveSteps is the fixed horizontal sample count per band.
const waveSteps = 64

// waveOutline computes one wave band: a closed region whose upper
// boundary is the sum of two sine terms with layer-dependent frequency,
// phase and amplitude, sampled at fixed horizontal steps, smoothed with
// a cubic curve, and closed down to the canvas bottom.
func waveOutline(s *ShapeState, layer, layers int, width, height, t float64) *paint.Path {
	// Layers stack from the lower third of the canvas downward; deeper
	// layers (painted later) sit lower.
	frac := 0.0
	if layers > 1 {
		frac = float64(layer) / float64(layers-1)
	}
	baseY := height * (0.40 + 0.5*frac)

	// Two sine terms of different frequency, counter-drifting in time.
	amp1 := s.Radius * 0.30
	amp2 := s.Radius * 0.16
	freq1 := 1.0 + 0.5*float64(layer)
	freq2 := 2.3 + 0.7*float64(layer)

	samples := make([]paint.Point, waveSteps+1)
	for i := 0; i <= waveSteps; i++ {
		x := width * float64(i) / waveSteps
		u := x / width * twoPi
		y := baseY +
			amp1*math.Sin(freq1*u+s.Phase+0.35*t) +
			amp2*math.Sin(freq2*u+2.1*s.Phase-0.22*t)
		samples[i] = paint.Pt(x, y)
	}

	path := paint.NewPath()
	path.MoveTo(samples[0].X, samples[0].Y)
	for i := 0; i < waveSteps; i++ {
		p1 := samples[i]
		p2 := samples[i+1]
		p0 := p1
		if i > 0 {
			p0 = samples[i-1]
		}
		p3 := p2
		if i+2 <= waveSteps {
			p3 = samples[i+2]
		}

		c1 := p1.Add(p2.Sub(p0).Mul(1.0 / 6.0))
		c2 := p2.Sub(p3.Sub(p1).Mul(1.0 / 6.0))
		path.CubicTo(c1.X, c1.Y, c2.X, c2.Y, p2.X, p2.Y)
	}

	// Close the band down to the canvas bottom.
	path.LineTo(width, height)
	path.LineTo(0, height)
	path.Close()
	return path
}
