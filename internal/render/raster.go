package render

import (
	"image"
	"image/color"
	"os"

	"github.com/fogleman/gg"
)

// Raster is a gg-backed Surface. Layout coordinates are millimeters;
// the surface converts to pixels at the construction-time resolution.
type Raster struct {
	ctx    *gg.Context
	scaleX float64 // pixels per millimeter
	scaleY float64

	fontName string
	fontSize float64 // millimeters
}

const mmPerInch = 25.4

// NewRaster creates a white canvas of the given physical size at the
// given resolution. Colors are set by the caller afterwards via the gg
// context if the defaults don't fit.
func NewRaster(widthMM, heightMM, dpiX, dpiY float64) *Raster {
	sx := dpiX / mmPerInch
	sy := dpiY / mmPerInch
	w := int(widthMM*sx + 0.5)
	h := int(heightMM*sy + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	ctx := gg.NewContext(w, h)
	ctx.SetColor(color.White)
	ctx.Clear()
	ctx.SetColor(color.Black)
	r := &Raster{ctx: ctx, scaleX: sx, scaleY: sy}
	r.SetFont("", 3) // working default until the layout selects one
	return r
}

// Image returns the rendered canvas.
func (r *Raster) Image() image.Image { return r.ctx.Image() }

// Context exposes the underlying gg context for color setup.
func (r *Raster) Context() *gg.Context { return r.ctx }

func (r *Raster) FillRect(x, y, w, h float64) {
	r.ctx.DrawRectangle(x*r.scaleX, y*r.scaleY, w*r.scaleX, h*r.scaleY)
	r.ctx.Fill()
}

func (r *Raster) DrawText(text string, x, y float64) {
	r.ctx.DrawString(text, x*r.scaleX, y*r.scaleY)
}

// SetFont loads a font face at the given size in millimeters. An empty
// name falls back through the usual system font locations.
func (r *Raster) SetFont(name string, size float64) error {
	if size <= 0 {
		size = r.fontSize
	}
	px := size * r.scaleY
	path := name
	if path == "" {
		path = r.fontName
	}
	if path != "" {
		if err := r.ctx.LoadFontFace(path, px); err == nil {
			r.fontName, r.fontSize = path, size
			return nil
		}
	}
	for _, fallback := range systemFonts {
		if _, err := os.Stat(fallback); err != nil {
			continue
		}
		if err := r.ctx.LoadFontFace(fallback, px); err == nil {
			r.fontName, r.fontSize = fallback, size
			return nil
		}
	}
	// gg keeps its built-in face; record the size for metrics.
	r.fontSize = size
	return nil
}

var systemFonts = []string{
	"/System/Library/Fonts/Helvetica.ttc",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
	"C:\\Windows\\Fonts\\arial.ttf",
}

func (r *Raster) TextWidth(text string) float64 {
	w, _ := r.ctx.MeasureString(text)
	return w / r.scaleX
}

// FontMetrics approximates ascent and descent from the face height,
// which is all gg exposes.
func (r *Raster) FontMetrics() (float64, float64) {
	h := r.ctx.FontHeight() / r.scaleY
	return h * 0.8, h * 0.2
}
