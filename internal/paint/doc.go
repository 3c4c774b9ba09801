// Package paint provides the software 2D canvas versepaper renders with.
//
// It is an immediate-mode drawing surface in the fogleman/gg tradition:
// a Context holds a pixel buffer, a current path, a transformation stack
// and the current fill color. Paths are built from lines and Bezier
// curves, flattened to polygons and filled by a supersampled scanline
// rasterizer. Output is deterministic: the same draw calls against the
// same dimensions always produce the same bytes, which the wallpaper
// pipeline relies on for reproducible renders.
//
// Coordinates follow the usual raster convention: origin at the top-left,
// X right, Y down, angles in radians.
package paint
