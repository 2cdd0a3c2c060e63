package symbol

import (
	"math"
	"strings"
)

// Ratio bounds for two-width symbologies. Values outside are clamped.
const (
	MinRatio = 2.0
	MaxRatio = 3.0
)

// Ratio is a wide:narrow module ratio reduced to an integer pair. The two
// values are used directly as repetition counts when emitting bar/space
// runs, which keeps floating point out of the encoding loop.
type Ratio struct {
	Wide   int
	Narrow int
}

// DefaultRatio is the 2.5:1 working ratio.
var DefaultRatio = Ratio{Wide: 5, Narrow: 2}

// NewRatio converts a floating wide:narrow ratio into a reduced integer
// pair. The ratio is clamped to [MinRatio, MaxRatio] first, so out-of-range
// requests never fail. E.g. 2.5 becomes 25:10, reduced to 5:2.
func NewRatio(r float64) Ratio {
	if r < MinRatio {
		r = MinRatio
	} else if r > MaxRatio {
		r = MaxRatio
	}
	narrow := 10
	wide := int(math.Round(r * 10))
	for d := 10; d >= 2; d-- {
		if wide%d == 0 && narrow%d == 0 {
			wide /= d
			narrow /= d
			break
		}
	}
	return Ratio{Wide: wide, Narrow: narrow}
}

// Value returns the ratio as a float.
func (r Ratio) Value() float64 { return float64(r.Wide) / float64(r.Narrow) }

// appendTwoWidth emits a two-width element pattern, where each element
// is 1 (narrow) or 2 (wide), expanding elements to the reduced ratio's
// repetition counts. Colors alternate per element; startBar selects the
// first.
func appendTwoWidth(sb *strings.Builder, elems []int, r Ratio, startBar bool) {
	bar := startBar
	for _, e := range elems {
		n := r.Narrow
		if e == 2 {
			n = r.Wide
		}
		c := byte('0')
		if bar {
			c = '1'
		}
		for i := 0; i < n; i++ {
			sb.WriteByte(c)
		}
		bar = !bar
	}
}
