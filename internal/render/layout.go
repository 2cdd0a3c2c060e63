package render

import (
	"math"
	"strings"

	"github.com/printforge/barcode-engine/pkg/symbol"
)

// GuardExtension is how many modules taller UPC-family guard bars print
// than data bars while text is visible.
const GuardExtension = 5

// DefaultFontSizeStep is the auto-fit search increment.
const DefaultFontSizeStep = 0.1

// Options is the bounding box and device tuning for one layout pass.
// Width and Height must be positive; the engine assumes pre-validated
// geometry and raises no content errors of its own.
type Options struct {
	X, Y          float64
	Width, Height float64

	// DotSize is the device dot pitch; module widths snap down to a
	// multiple of it. 0 means unconstrained.
	DotSize float64

	// ModuleWidth overrides the derived module width. 0 means derive
	// from Width and the module-factor.
	ModuleWidth float64

	// BarWidthCorrection is applied symmetrically: each bar shifts
	// left by it and widens by twice it.
	BarWidthCorrection float64

	// FontSizeStep overrides the auto-fit increment; 0 means
	// DefaultFontSizeStep.
	FontSizeStep float64
}

// Draw lays the barcode out inside the options box and emits fill
// rectangles and text onto the surface.
func Draw(s Surface, b *symbol.Barcode, o Options) error {
	g, err := b.Geometry()
	if err != nil {
		return err
	}

	mw := resolveModuleWidth(o, g.Factor)
	symbolW := mw * float64(g.Modules)
	x0 := o.X + (o.Width-symbolW)/2

	barTop := o.Y
	barHeight := o.Height

	overhang := overhangModules(b)
	var topText, bottomText string
	if b.ShowText() && b.Text() != "" {
		switch {
		case overhang > 0:
			// The ISBN/ISMN prefix line prints above the symbol in
			// addition to the digit line under the bars.
			topText = b.Text()
			bottomText = strings.ReplaceAll(b.Content(), "-", "")
		case b.TextOnTop():
			topText = b.Text()
		default:
			bottomText = b.Text()
		}
	}
	showText := topText != "" || bottomText != ""

	var ascent, descent float64
	if showText {
		quietLeft, quietRight := b.QuietZones()
		inner := symbolW - mw*float64(quietLeft+quietRight)
		var lines []fitLine
		if bottomText != "" {
			lines = append(lines, fitLine{bottomText, inner})
		}
		if topText != "" {
			span := inner
			if overhang > 0 {
				span = symbolW + 2*float64(overhang)*mw
			}
			lines = append(lines, fitLine{topText, span})
		}
		if err := fitFont(s, b, lines, o.FontSizeStep); err != nil {
			return err
		}
		ascent, descent = s.FontMetrics()
		band := ascent + descent + b.TextOffset()
		if topText != "" {
			barTop += band
			barHeight -= band
		}
		if bottomText != "" {
			barHeight -= band
		}
	}

	addOnBand := 0.0
	if g.AddOnStart > 0 && b.AddOn() != "" {
		// The supplemental digits print above their bars.
		if ascent == 0 {
			ascent, descent = s.FontMetrics()
		}
		addOnBand = ascent + descent + b.TextOffset()
	}

	for _, bar := range g.Bars {
		x := x0 + float64(bar.Pos)*mw - o.BarWidthCorrection
		w := float64(bar.Width)*mw + 2*o.BarWidthCorrection
		top := barTop
		h := barHeight
		switch {
		case g.AddOnStart > 0 && bar.Pos >= g.AddOnStart:
			top += addOnBand
			h = barHeight - addOnBand
			if bottomText != "" {
				h += descent // add-on bars reach into the text band
			}
		case showText && isGuardBar(g, bar):
			// Guards grow into the text band: downward while the
			// digit line is below, upward when only a top line is
			// shown.
			ext := math.Min(float64(GuardExtension)*mw, ascent+descent)
			if bottomText == "" {
				top -= ext
			}
			h += ext
		}
		s.FillRect(x, top, w, h)
	}

	mainEnd := g.Modules
	if g.AddOnStart > 0 {
		mainEnd = g.AddOnStart
	}
	if topText != "" {
		spanX, spanW := x0, float64(mainEnd)*mw
		if overhang > 0 {
			// The ISBN/ISMN line reaches past the quiet zone on both
			// sides.
			spanX -= float64(overhang) * mw
			spanW += 2 * float64(overhang) * mw
		}
		tw := s.TextWidth(topText)
		s.DrawText(topText, spanX+(spanW-tw)/2, barTop-b.TextOffset()-descent)
	}
	if bottomText != "" {
		spanW := float64(mainEnd) * mw
		tw := s.TextWidth(bottomText)
		s.DrawText(bottomText, x0+(spanW-tw)/2, barTop+barHeight+b.TextOffset()+ascent)
	}
	if addOnBand > 0 {
		addOnX := x0 + float64(g.AddOnStart)*mw
		addOnW := symbolW - float64(g.AddOnStart)*mw
		tw := s.TextWidth(b.AddOn())
		s.DrawText(b.AddOn(), addOnX+(addOnW-tw)/2, barTop+ascent)
	}
	return nil
}

// resolveModuleWidth applies the explicit-override and dot-size snapping
// policy: an explicit module size snaps itself, a derived one snaps the
// quotient of box width and module-factor.
func resolveModuleWidth(o Options, factor float64) float64 {
	mw := o.ModuleWidth
	if mw <= 0 {
		mw = o.Width / factor
	}
	if o.DotSize > 0 && mw > o.DotSize {
		mw = math.Floor(mw/o.DotSize) * o.DotSize
	}
	return mw
}

// fitLine is one text line with the span it must fit into.
type fitLine struct {
	text string
	span float64
}

// fitFont selects the text font. Auto-fit grows the size in fixed
// increments until the measured width would exceed the available span,
// then backs off one step; with several lines the tightest one wins.
// The linear search keeps the stopping point reproducible.
func fitFont(s Surface, b *symbol.Barcode, lines []fitLine, step float64) error {
	name, size := b.Font()
	if step <= 0 {
		step = DefaultFontSizeStep
	}
	if !b.AutoFitFont() {
		if size > 0 {
			return s.SetFont(name, size)
		}
		if name != "" {
			return s.SetFont(name, 0)
		}
		return nil
	}
	best := 0.0
	for i, ln := range lines {
		sz, err := fitSize(s, name, ln.text, ln.span, step)
		if err != nil {
			return err
		}
		if i == 0 || sz < best {
			best = sz
		}
	}
	return s.SetFont(name, best)
}

func fitSize(s Surface, name, text string, avail, step float64) (float64, error) {
	size := step
	for {
		if err := s.SetFont(name, size+step); err != nil {
			return 0, err
		}
		if s.TextWidth(text) > avail {
			break
		}
		size += step
	}
	return size, nil
}

func overhangModules(b *symbol.Barcode) int {
	switch b.Type() {
	case symbol.TypeISBN13, symbol.TypeISMN:
		return symbol.OverhangModules
	}
	return 0
}

func isGuardBar(g *symbol.Geometry, bar symbol.Bar) bool {
	for _, r := range g.GuardRanges {
		if bar.Pos >= r[0] && bar.Pos+bar.Width <= r[1] {
			return true
		}
	}
	return false
}
