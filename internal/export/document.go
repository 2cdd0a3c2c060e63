// Package export serializes an accumulated list of drawing primitives
// into print-oriented vector and raster formats. A Document is filled
// by one layout pass and then encoded; it is not meant to be reused
// across layout passes since primitives only accumulate.
package export

import (
	"math"

	"github.com/printforge/barcode-engine/internal/render"
)

// Transform is one of the eight page orientations: four rotations,
// each optionally mirrored. The mirror flips horizontally before the
// rotation is applied.
type Transform int

const (
	TransformNone Transform = iota
	Transform90
	Transform180
	Transform270
	TransformMirror
	TransformMirror90
	TransformMirror180
	TransformMirror270
)

// Rotated reports whether the transform swaps the page width and
// height.
func (t Transform) Rotated() bool {
	switch t {
	case Transform90, Transform270, TransformMirror90, TransformMirror270:
		return true
	}
	return false
}

func (t Transform) mirrored() bool { return t >= TransformMirror }

func (t Transform) quarterTurns() int { return int(t) % 4 }

// Color carries independent RGB and CMYK channel values. CMYK vector
// output emits whichever channel set the caller populated; when only
// RGB was supplied the complement-and-black-key fallback conversion
// applies.
type Color struct {
	R, G, B    uint8
	C, M, Y, K float64

	hasCMYK bool
}

// RGB creates a color from 8-bit RGB channels.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b} }

// CMYK creates a color from CMYK channels in [0,1]. The RGB projection
// for raster output is derived immediately.
func CMYK(c, m, y, k float64) Color {
	col := Color{C: c, M: m, Y: y, K: k, hasCMYK: true}
	col.R = uint8(255 * (1 - math.Min(1, c+k)))
	col.G = uint8(255 * (1 - math.Min(1, m+k)))
	col.B = uint8(255 * (1 - math.Min(1, y+k)))
	return col
}

// CMYKValues returns the CMYK channels, converting from RGB with the
// complement + black-key extraction when no CMYK was supplied.
func (c Color) CMYKValues() (float64, float64, float64, float64) {
	if c.hasCMYK {
		return c.C, c.M, c.Y, c.K
	}
	cc := 1 - float64(c.R)/255
	mm := 1 - float64(c.G)/255
	yy := 1 - float64(c.B)/255
	k := math.Min(cc, math.Min(mm, yy))
	if k >= 1 {
		return 0, 0, 0, 1
	}
	return (cc - k) / (1 - k), (mm - k) / (1 - k), (yy - k) / (1 - k), k
}

// Achromatic reports whether the color is a pure gray.
func (c Color) Achromatic() bool {
	if c.hasCMYK {
		return c.C == 0 && c.M == 0 && c.Y == 0
	}
	return c.R == c.G && c.G == c.B
}

// Rect is a filled rectangle in millimeters, origin top-left.
type Rect struct {
	X, Y, W, H float64
}

// Text is a string anchored at its baseline start.
type Text struct {
	S    string
	X, Y float64
	Font string
	Size float64
}

// Document is the accumulated drawing state for one export. It
// implements the layout engine's Surface so a barcode can be laid out
// straight onto it.
type Document struct {
	Width, Height float64 // millimeters, before any rotation
	Title         string
	Creator       string
	Opacity       float64 // 1 = opaque
	Foreground    Color
	Background    Color
	Transform     Transform

	rects []Rect
	texts []Text

	fontName string
	fontSize float64
}

// NewDocument creates a document of the given physical size with black
// on white defaults.
func NewDocument(widthMM, heightMM float64) *Document {
	return &Document{
		Width:      widthMM,
		Height:     heightMM,
		Opacity:    1,
		Foreground: RGB(0, 0, 0),
		Background: RGB(255, 255, 255),
		fontName:   "Helvetica",
		fontSize:   3,
	}
}

// PageSize returns the output page size after the transform.
func (d *Document) PageSize() (float64, float64) {
	if d.Transform.Rotated() {
		return d.Height, d.Width
	}
	return d.Width, d.Height
}

func (d *Document) FillRect(x, y, w, h float64) {
	d.rects = append(d.rects, Rect{X: x, Y: y, W: w, H: h})
}

func (d *Document) DrawText(text string, x, y float64) {
	d.texts = append(d.texts, Text{S: text, X: x, Y: y, Font: d.fontName, Size: d.fontSize})
}

// SetFont records the font reference for subsequent text. Vector
// formats resolve standard font names in the viewer, so no face is
// loaded here.
func (d *Document) SetFont(name string, size float64) error {
	if name != "" {
		d.fontName = name
	}
	if size > 0 {
		d.fontSize = size
	}
	return nil
}

// TextWidth measures the string against the Helvetica AFM advance
// widths, matching the face the vector serializers name. Characters
// outside the table fall back to an average advance.
func (d *Document) TextWidth(text string) float64 {
	units := 0.0
	for _, r := range text {
		if r >= ' ' && r <= '~' {
			units += helveticaWidths[r-' ']
		} else {
			units += 600
		}
	}
	return units / 1000 * d.fontSize
}

// helveticaWidths holds the Helvetica advance widths for the printable
// ASCII range, in 1/1000 em units per the Adobe font metrics.
var helveticaWidths = [95]float64{
	278, 278, 355, 556, 556, 889, 667, 191, 333, 333, // space ! " # $ % & ' ( )
	389, 584, 278, 333, 278, 278, 556, 556, 556, 556, // * + , - . / 0 1 2 3
	556, 556, 556, 556, 556, 556, 278, 278, 584, 584, // 4 5 6 7 8 9 : ; < =
	584, 556, 1015, 667, 667, 722, 722, 667, 611, 778, // > ? @ A B C D E F G
	722, 278, 500, 667, 556, 833, 722, 778, 667, 778, // H I J K L M N O P Q
	722, 667, 611, 722, 667, 944, 667, 667, 611, 278, // R S T U V W X Y Z [
	278, 278, 469, 556, 333, 556, 556, 500, 556, 556, // \ ] ^ _ ` a b c d e
	278, 556, 556, 222, 222, 500, 222, 833, 556, 556, // f g h i j k l m n o
	556, 556, 333, 500, 278, 556, 500, 722, 500, 500, // p q r s t u v w x y
	500, 334, 260, 334, 584, // z { | } ~
}

// FontMetrics returns nominal Helvetica-like metrics.
func (d *Document) FontMetrics() (float64, float64) {
	return d.fontSize * 0.72, d.fontSize * 0.21
}

// Replay re-issues the accumulated primitives onto another surface,
// used by the raster encoders.
func (d *Document) Replay(s render.Surface) error {
	for _, r := range d.rects {
		s.FillRect(r.X, r.Y, r.W, r.H)
	}
	for _, t := range d.texts {
		if err := s.SetFont("", t.Size); err != nil {
			return err
		}
		s.DrawText(t.S, t.X, t.Y)
	}
	return nil
}

// transformRect maps a rectangle into the transformed page, still in a
// top-left, y-down coordinate system. Quarter-turn rotations keep
// rectangles axis-aligned.
func (d *Document) transformRect(r Rect) Rect {
	w, h := d.Width, d.Height
	if d.Transform.mirrored() {
		r.X = w - r.X - r.W
	}
	switch d.Transform.quarterTurns() {
	case 1: // 90 clockwise
		return Rect{X: h - r.Y - r.H, Y: r.X, W: r.H, H: r.W}
	case 2:
		return Rect{X: w - r.X - r.W, Y: h - r.Y - r.H, W: r.W, H: r.H}
	case 3:
		return Rect{X: r.Y, Y: w - r.X - r.W, W: r.H, H: r.W}
	}
	return r
}

// transformPoint maps a text anchor the same way.
func (d *Document) transformPoint(x, y float64) (float64, float64) {
	w, h := d.Width, d.Height
	if d.Transform.mirrored() {
		x = w - x
	}
	switch d.Transform.quarterTurns() {
	case 1:
		return h - y, x
	case 2:
		return w - x, h - y
	case 3:
		return y, w - x
	}
	return x, y
}

// textAngle is the glyph rotation in degrees, counterclockwise, that
// the serializers apply around the transformed anchor.
func (d *Document) textAngle() float64 {
	switch d.Transform.quarterTurns() {
	case 1:
		return -90
	case 2:
		return 180
	case 3:
		return 90
	}
	return 0
}
