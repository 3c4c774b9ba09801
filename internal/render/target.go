// Package render turns a composed scene into correctly scaled pixel
// images, one per monitor, and persists them atomically.
package render

// Rect is a device rectangle in virtual-desktop coordinates.
type Rect struct {
	Left, Top, Right, Bottom int
}

// Width returns the rectangle width in device units.
func (r Rect) Width() int { return r.Right - r.Left }

// Height returns the rectangle height in device units.
func (r Rect) Height() int { return r.Bottom - r.Top }

// Array returns the rectangle as a fixed array, the form the variation
// hash consumes.
func (r Rect) Array() [4]int {
	return [4]int{r.Left, r.Top, r.Right, r.Bottom}
}

// MonitorTarget describes one render target. Targets are queried fresh
// from the wallpaper port on every apply and never cached across applies.
type MonitorTarget struct {
	// ID is the opaque monitor identifier supplied by the platform.
	ID string

	DeviceRect Rect

	// PixelWidth and PixelHeight are the physical pixel dimensions.
	PixelWidth  int
	PixelHeight int

	// ScaleX and ScaleY are the DPI scale factors. A 200% display
	// reports 2.0.
	ScaleX float64
	ScaleY float64
}

// LogicalSize returns the monitor's logical dimensions: physical pixels
// divided by the DPI scale. Monitors can differ in logical density even
// at equal physical resolution, so layout always happens at this size.
func (t MonitorTarget) LogicalSize() (w, h float64) {
	sx := t.ScaleX
	if sx <= 0 {
		sx = 1
	}
	sy := t.ScaleY
	if sy <= 0 {
		sy = 1
	}
	return float64(t.PixelWidth) / sx, float64(t.PixelHeight) / sy
}
