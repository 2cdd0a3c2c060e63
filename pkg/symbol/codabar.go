package symbol

import "strings"

const codabarAlphabet = "0123456789-$:/.+ABCD"

// Seven elements per character (4 bars, 3 spaces); 2 = wide.
var codabarEncodings = [20][7]int{
	{1, 1, 1, 1, 1, 2, 2}, // 0
	{1, 1, 1, 1, 2, 2, 1}, // 1
	{1, 1, 1, 2, 1, 1, 2}, // 2
	{2, 2, 1, 1, 1, 1, 1}, // 3
	{1, 1, 2, 1, 1, 2, 1}, // 4
	{2, 1, 1, 1, 1, 2, 1}, // 5
	{1, 2, 1, 1, 1, 1, 2}, // 6
	{1, 2, 1, 1, 2, 1, 1}, // 7
	{1, 2, 2, 1, 1, 1, 1}, // 8
	{2, 1, 1, 2, 1, 1, 1}, // 9
	{1, 1, 1, 2, 2, 1, 1}, // -
	{1, 1, 2, 2, 1, 1, 1}, // $
	{2, 1, 1, 1, 2, 1, 2}, // :
	{2, 1, 2, 1, 1, 1, 2}, // /
	{2, 1, 2, 1, 2, 1, 1}, // .
	{1, 1, 2, 1, 2, 1, 2}, // +
	{1, 1, 2, 2, 1, 2, 1}, // A
	{1, 2, 1, 2, 1, 1, 2}, // B
	{1, 1, 1, 2, 1, 2, 2}, // C
	{1, 1, 1, 2, 2, 2, 1}, // D
}

func init() {
	register(TypeCodabar, &spec{
		name:       "Codabar",
		caps:       CapRatio | CapTextOnTop | CapCustomText,
		quietLeft:  10,
		quietRight: 10,
		validate:   validateCodabar,
		encode:     encodeCodabar,
	})
}

// validateCodabar accepts content with or without explicit A-D
// start/stop characters; when absent the A...B frame is synthesized.
// Lowercase start/stop letters are normalized to upper case.
func validateCodabar(_ *Barcode, content string, _, _ bool) (string, string, error) {
	if content == "" {
		return "", "", errEmpty()
	}
	content = strings.Map(func(c rune) rune {
		if c >= 'a' && c <= 'd' {
			return c - 32
		}
		return c
	}, content)

	hasStart := content[0] >= 'A' && content[0] <= 'D'
	hasStop := content[len(content)-1] >= 'A' && content[len(content)-1] <= 'D'
	if hasStart != hasStop {
		pos := 0
		if hasStart {
			pos = len(content) - 1
		}
		return "", "", errInvalidChar(pos, content[pos])
	}

	data := content
	if hasStart {
		if len(content) < 2 {
			return "", "", errLength(2, len(content))
		}
		data = content[1 : len(content)-1]
	}
	for i := 0; i < len(data); i++ {
		idx := strings.IndexByte(codabarAlphabet, data[i])
		if idx < 0 || idx > 15 {
			pos := i
			if hasStart {
				pos++
			}
			return "", "", errInvalidChar(pos, data[i])
		}
	}

	stored := content
	if !hasStart {
		stored = "A" + content + "B"
	}
	return stored, content, nil
}

func encodeCodabar(b *Barcode) (string, encodeInfo, error) {
	var sb strings.Builder
	for i := 0; i < len(b.content); i++ {
		if i > 0 {
			for j := 0; j < b.ratio.Narrow; j++ {
				sb.WriteByte('0')
			}
		}
		idx := strings.IndexByte(codabarAlphabet, b.content[i])
		if idx < 0 {
			return "", encodeInfo{}, errInvalidChar(i, b.content[i])
		}
		appendTwoWidth(&sb, codabarEncodings[idx][:], b.ratio, true)
	}
	return sb.String(), encodeInfo{}, nil
}
