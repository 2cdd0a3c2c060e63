// Package render lays a compiled barcode out into drawing primitives on
// an abstract surface. Coordinates are physical units (millimeters);
// rasterization happens behind the Surface.
package render

// Surface is the minimal drawing capability the layout engine needs.
// It never requires clipping, compositing or image blitting.
type Surface interface {
	// FillRect fills an axis-aligned rectangle.
	FillRect(x, y, w, h float64)
	// DrawText draws a string with its baseline at y.
	DrawText(text string, x, y float64)
	// SetFont selects the font by reference and size. An empty name
	// keeps the surface's current face and only changes the size.
	SetFont(name string, size float64) error
	// TextWidth measures the string in the current font.
	TextWidth(text string) float64
	// FontMetrics returns the current font's ascent and descent.
	FontMetrics() (ascent, descent float64)
}
