package matrix

import "github.com/printforge/barcode-engine/pkg/symbol"

// Row is one scanline of run-length chunks, in the same (position,
// width) form the 1D geometry uses.
type Row struct {
	Index  int
	Chunks []symbol.Bar
}

// Chunks converts a bit matrix into horizontal and vertical run
// lists. Vertical runs of a single module are dropped: the horizontal
// pass already covers every set module, so a lone 1x1 fill would be
// drawn twice.
func Chunks(m BitMatrix) (horizontal, vertical []Row) {
	w, h := m.Size()

	for y := 0; y < h; y++ {
		row := Row{Index: y}
		for x := 0; x < w; {
			if !m.At(x, y) {
				x++
				continue
			}
			start := x
			for x < w && m.At(x, y) {
				x++
			}
			row.Chunks = append(row.Chunks, symbol.Bar{Pos: start, Width: x - start})
		}
		if len(row.Chunks) > 0 {
			horizontal = append(horizontal, row)
		}
	}

	for x := 0; x < w; x++ {
		col := Row{Index: x}
		for y := 0; y < h; {
			if !m.At(x, y) {
				y++
				continue
			}
			start := y
			for y < h && m.At(x, y) {
				y++
			}
			if y-start > 1 {
				col.Chunks = append(col.Chunks, symbol.Bar{Pos: start, Width: y - start})
			}
		}
		if len(col.Chunks) > 0 {
			vertical = append(vertical, col)
		}
	}
	return horizontal, vertical
}
