package symbol

// Bar is a single bar in module units. Position is measured from the left
// edge of the symbol including the leading quiet zone.
type Bar struct {
	Pos   int
	Width int
}

// Geometry is the compiled run-length form of an encoded symbol. Bars
// holds one entry per bar; spaces are the implicit gaps between entries.
// Modules is the total width of the bar/space string and Factor the
// module-factor used to map a physical target width to a module size.
// For plain symbologies Factor equals Modules.
type Geometry struct {
	Bars    []Bar
	Modules int
	Factor  float64

	// GuardRanges holds module intervals [start,end) whose bars are drawn
	// taller than data bars when text is shown (UPC/EAN guards).
	GuardRanges [][2]int

	// AddOnStart is the module index where a 2/5-digit add-on begins,
	// or 0 when no add-on is present.
	AddOnStart int
}

// compileBars collapses a '1'/'0' bar string into (position, width) pairs
// in a single left-to-right scan. A completed space run flushes the
// preceding bar run; a trailing bar run is flushed at the end.
func compileBars(code string) []Bar {
	bars := make([]Bar, 0, len(code)/4)
	runStart := -1
	for i := 0; i < len(code); i++ {
		if code[i] == '1' {
			if runStart < 0 {
				runStart = i
			}
		} else if runStart >= 0 {
			bars = append(bars, Bar{Pos: runStart, Width: i - runStart})
			runStart = -1
		}
	}
	if runStart >= 0 {
		bars = append(bars, Bar{Pos: runStart, Width: len(code) - runStart})
	}
	return bars
}

// IsGuard reports whether the bar lies inside a guard range.
func (g *Geometry) IsGuard(b Bar) bool {
	for _, r := range g.GuardRanges {
		if b.Pos >= r[0] && b.Pos+b.Width <= r[1] {
			return true
		}
	}
	return false
}
