package symbol

import "strings"

// Five elements per digit; 2 = wide. Bars take the widths of the first
// digit of a pair, spaces those of the second, interleaved.
var itfEncodings = [10][5]int{
	{1, 1, 2, 2, 1}, // 0
	{2, 1, 1, 1, 2}, // 1
	{1, 2, 1, 1, 2}, // 2
	{2, 2, 1, 1, 1}, // 3
	{1, 1, 2, 1, 2}, // 4
	{2, 1, 2, 1, 1}, // 5
	{1, 2, 2, 1, 1}, // 6
	{1, 1, 1, 2, 2}, // 7
	{2, 1, 1, 2, 1}, // 8
	{1, 2, 1, 2, 1}, // 9
}

func init() {
	register(TypeInterleaved25, &spec{
		name:       "Interleaved 2 of 5",
		caps:       CapRatio | CapOptionalChecksum | CapTextOnTop | CapCustomText,
		quietLeft:  10,
		quietRight: 10,
		validate:   validateInterleaved25,
		encode:     encodeITF,
		factor:     itfFactor,
	})
	register(TypeITF14, &spec{
		name:       "ITF-14",
		caps:       CapRatio | CapAutoComplete | CapTextOnTop | CapCustomText,
		quietLeft:  10,
		quietRight: 10,
		validate:   validateFixedNumeric(14),
		encode:     encodeITF,
		factor:     itfFactor,
	})
}

// validateInterleaved25 requires an even total digit count, counting
// the elective modulo-10 check digit when one is requested.
func validateInterleaved25(_ *Barcode, content string, _, withChecksum bool) (string, string, error) {
	if err := checkDigits(content); err != nil {
		return "", "", err
	}
	if withChecksum {
		content += string(byte('0' + mod10(content)))
	}
	if len(content)%2 != 0 {
		return "", "", errOddLength(len(content))
	}
	return content, content, nil
}

// encodeITF interleaves digit pairs: the first digit's widths become
// the bars, the second's the spaces.
func encodeITF(b *Barcode) (string, encodeInfo, error) {
	if len(b.content)%2 != 0 {
		return "", encodeInfo{}, errOddLength(len(b.content))
	}
	var sb strings.Builder
	appendTwoWidth(&sb, []int{1, 1, 1, 1}, b.ratio, true)
	for i := 0; i < len(b.content); i += 2 {
		d1 := int(b.content[i] - '0')
		d2 := int(b.content[i+1] - '0')
		var pair [10]int
		for j := 0; j < 5; j++ {
			pair[j*2] = itfEncodings[d1][j]
			pair[j*2+1] = itfEncodings[d2][j]
		}
		appendTwoWidth(&sb, pair[:], b.ratio, true)
	}
	appendTwoWidth(&sb, []int{2, 1, 1}, b.ratio, true)
	return sb.String(), encodeInfo{}, nil
}

// itfFactor is the closed-form module count: each digit pair is 6
// narrow and 4 wide elements between the 4-narrow start and the
// wide-narrow-narrow stop.
func itfFactor(b *Barcode, _ int) float64 {
	n, w := b.ratio.Narrow, b.ratio.Wide
	pairs := len(b.content) / 2
	width := 4*n + pairs*(6*n+4*w) + w + 2*n
	left, right := b.QuietZones()
	return float64(width + left + right)
}
