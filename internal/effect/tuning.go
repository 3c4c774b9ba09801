// Package effect generates the seeded decorative shape layer rendered
// behind the poem: wave bands, bubbles, or deformed blobs. A Generator is
// initialized from a seed, advanced over time, and produces vector
// outlines for the paint package to fill. Identical (seed, variation
// offset, canvas size) inputs always produce identical shape state, on
// any machine.
package effect

// Tuning holds the magic numbers and thresholds of the shape generator.
// These are aesthetic defaults carried forward from the original design;
// they are centralized here rather than re-derived.
type Tuning struct {
	// Shape population.
	MinShapes int // Default: 4
	MaxShapes int // Default: 9

	// Placement. PaddingFrac scales the smaller canvas dimension into the
	// minimum-distance padding between shape edges.
	PaddingFrac       float64 // Default: 0.025
	PlacementAttempts int     // Default: 64

	// Radius sampling. Anchors are the occasional large shapes.
	AnchorChance  float64 // Default: 0.30
	AnchorMinFrac float64 // Default: 0.18
	AnchorMaxFrac float64 // Default: 0.40
	SmallMinFrac  float64 // Default: 0.05
	SmallMaxFrac  float64 // Default: 0.14

	// Edge composition: the first EdgeShapes shapes straddle a canvas
	// edge, off-canvas by a fraction of their radius.
	EdgeShapes      int     // Default: 2
	EdgeOverhangMin float64 // Default: 0.25
	EdgeOverhangMax float64 // Default: 0.55

	// Blob deformation: harmonic amplitude caps for orders 2, 3, 5 and
	// the radial profile clamp.
	HarmonicAmpMax [3]float64 // Default: 0.10, 0.06, 0.035
	RadialClampLo  float64    // Default: 0.84
	RadialClampHi  float64    // Default: 1.18

	// Drift, as a fraction of the shape radius.
	DriftMin float64 // Default: 0.015
	DriftMax float64 // Default: 0.06

	// Outline sampling.
	Segments int // Default: 96

	// Self-healing bounds, as multiples of the canvas dimensions.
	// A shape center leaving [-0.5w, 1.5w] x [-0.8h, 1.8h] reinitializes
	// the whole layer.
	BoundsXFactor float64 // Default: 0.5
	BoundsYFactor float64 // Default: 0.8
}

// DefaultTuning returns the standard values.
func DefaultTuning() Tuning {
	return Tuning{
		MinShapes:         4,
		MaxShapes:         9,
		PaddingFrac:       0.025,
		PlacementAttempts: 64,
		AnchorChance:      0.30,
		AnchorMinFrac:     0.18,
		AnchorMaxFrac:     0.40,
		SmallMinFrac:      0.05,
		SmallMaxFrac:      0.14,
		EdgeShapes:        2,
		EdgeOverhangMin:   0.25,
		EdgeOverhangMax:   0.55,
		HarmonicAmpMax:    [3]float64{0.10, 0.06, 0.035},
		RadialClampLo:     0.84,
		RadialClampHi:     1.18,
		DriftMin:          0.015,
		DriftMax:          0.06,
		Segments:          96,
		BoundsXFactor:     0.5,
		BoundsYFactor:     0.8,
	}
}
