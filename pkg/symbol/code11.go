package symbol

import "strings"

const code11Alphabet = "0123456789-"

// Five elements per character (3 bars, 2 spaces); 2 = wide.
var code11Encodings = [11][5]int{
	{1, 1, 1, 1, 2}, // 0
	{2, 1, 1, 1, 2}, // 1
	{1, 2, 1, 1, 2}, // 2
	{2, 2, 1, 1, 1}, // 3
	{1, 1, 2, 1, 2}, // 4
	{2, 1, 2, 1, 1}, // 5
	{1, 2, 2, 1, 1}, // 6
	{1, 1, 1, 2, 2}, // 7
	{2, 1, 1, 2, 1}, // 8
	{2, 1, 1, 1, 1}, // 9
	{1, 1, 2, 1, 1}, // -
}

var code11StartStop = [5]int{1, 1, 2, 2, 1}

func init() {
	register(TypeCode11, &spec{
		name:       "Code 11",
		caps:       CapRatio | CapTextOnTop | CapCustomText,
		quietLeft:  10,
		quietRight: 10,
		validate:   validateCode11,
		encode:     encodeCode11,
	})
}

// validateCode11 appends the C check character, and the K check
// character as well once the data reaches ten characters. The check
// characters are encoded but never shown in the text line.
func validateCode11(_ *Barcode, content string, _, _ bool) (string, string, error) {
	if content == "" {
		return "", "", errEmpty()
	}
	values := make([]int, 0, len(content)+2)
	for i := 0; i < len(content); i++ {
		idx := strings.IndexByte(code11Alphabet, content[i])
		if idx < 0 {
			return "", "", errInvalidChar(i, content[i])
		}
		values = append(values, idx)
	}
	stored := content
	c := weightedMod(values, 10, 11)
	stored += string(code11Alphabet[c])
	if len(content) >= 10 {
		values = append(values, c)
		k := weightedMod(values, 9, 11)
		stored += string(code11Alphabet[k])
	}
	return stored, content, nil
}

func encodeCode11(b *Barcode) (string, encodeInfo, error) {
	var sb strings.Builder
	appendTwoWidth(&sb, code11StartStop[:], b.ratio, true)
	for i := 0; i < len(b.content); i++ {
		code11Gap(&sb, b.ratio)
		idx := strings.IndexByte(code11Alphabet, b.content[i])
		if idx < 0 {
			return "", encodeInfo{}, errInvalidChar(i, b.content[i])
		}
		appendTwoWidth(&sb, code11Encodings[idx][:], b.ratio, true)
	}
	code11Gap(&sb, b.ratio)
	appendTwoWidth(&sb, code11StartStop[:], b.ratio, true)
	return sb.String(), encodeInfo{}, nil
}

func code11Gap(sb *strings.Builder, r Ratio) {
	for i := 0; i < r.Narrow; i++ {
		sb.WriteByte('0')
	}
}
