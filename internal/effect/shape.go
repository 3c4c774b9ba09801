package effect

import (
	"fmt"

	"github.com/versepaper/versepaper/internal/paint"
)

// Kind selects the decorative shape style.
type Kind int

const (
	// Wave renders layered sine bands rising from the canvas bottom.
	Wave Kind = iota
	// Bubbles renders gently stretched circles.
	Bubbles
	// Blobs renders harmonically deformed closed shapes.
	Blobs
)

// String returns the settings-file name of the kind.
func (k Kind) String() string {
	switch k {
	case Wave:
		return "wave"
	case Bubbles:
		return "bubbles"
	case Blobs:
		return "blobs"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind parses a settings-file effect name.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "wave":
		return Wave, nil
	case "bubbles":
		return Bubbles, nil
	case "blobs":
		return Blobs, nil
	default:
		return Wave, fmt.Errorf("effect: unknown kind %q", s)
	}
}

// harmonicOrders are the angular frequencies of the blob radial profile.
var harmonicOrders = [3]float64{2, 3, 5}

// Harmonic is one sine term of a blob's radial profile.
type Harmonic struct {
	Amp   float64
	Phase float64
}

// ShapeState is the full mutable state of one decorative shape.
// It is recomputed wholesale by Generator.Initialize and advanced
// incrementally by Generator.Advance.
type ShapeState struct {
	// Home is the placement center; Center is Home displaced by drift.
	Home   paint.Point
	Center paint.Point

	Radius   float64
	Phase    float64
	Drift    float64 // drift magnitude in pixels
	Rotation float64

	// Anisotropic stretch applied to the outline.
	StretchX float64
	StretchY float64

	// Harmonics for orders 2, 3, 5.
	Harmonics [3]Harmonic

	// Segments is the outline sample count.
	Segments int

	// Depth is the paint order index; 0 is the rearmost shape.
	Depth int

	Color paint.RGBA

	// Outline is the current closed outline, rebuilt by Advance.
	Outline *paint.Path
}
