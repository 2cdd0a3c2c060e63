package symbol

import "strings"

const code39Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ-. $/+%"

// Nine elements per character (5 bars, 4 spaces), encoded as a bitmask
// with bit 8 for the first element; a set bit means wide.
var code39Encodings = [43]int{
	0x034, 0x121, 0x061, 0x160, 0x031, 0x130, 0x070, 0x025, 0x124, 0x064, // 0-9
	0x109, 0x049, 0x148, 0x019, 0x118, 0x058, 0x00D, 0x10C, 0x04C, 0x01C, // A-J
	0x103, 0x043, 0x142, 0x013, 0x112, 0x052, 0x007, 0x106, 0x046, 0x016, // K-T
	0x181, 0x0C1, 0x1C0, 0x091, 0x190, 0x0D0, 0x085, 0x184, 0x0C4, 0x0A8, // U-Z - . space $
	0x0A2, 0x08A, 0x02A, // / + %
}

const code39Asterisk = 0x094

func init() {
	register(TypeCode39, &spec{
		name:       "Code 39",
		caps:       CapRatio | CapOptionalChecksum | CapTextOnTop | CapCustomText,
		quietLeft:  10,
		quietRight: 10,
		validate:   validateCode39,
		encode:     encodeCode39,
		factor:     code39Factor,
	})
	register(TypeCode39Ext, &spec{
		name:       "Code 39 Extended",
		caps:       CapRatio | CapOptionalChecksum | CapTextOnTop | CapCustomText,
		quietLeft:  10,
		quietRight: 10,
		validate:   validateCode39Ext,
		encode:     encodeCode39,
		factor:     code39Factor,
	})
	register(TypePZN, &spec{
		name:       "PZN",
		caps:       CapRatio | CapAutoComplete | CapTextOnTop,
		quietLeft:  10,
		quietRight: 10,
		validate:   validatePZN(7, 2),
		encode:     encodeCode39,
		factor:     code39Factor,
	})
	register(TypePZN8, &spec{
		name:       "PZN8",
		caps:       CapRatio | CapAutoComplete | CapTextOnTop,
		quietLeft:  10,
		quietRight: 10,
		validate:   validatePZN(8, 1),
		encode:     encodeCode39,
		factor:     code39Factor,
	})
}

func validateCode39(_ *Barcode, content string, _, withChecksum bool) (string, string, error) {
	if content == "" {
		return "", "", errEmpty()
	}
	indices := make([]int, len(content))
	for i := 0; i < len(content); i++ {
		idx := strings.IndexByte(code39Alphabet, content[i])
		if idx < 0 {
			return "", "", errInvalidChar(i, content[i])
		}
		indices[i] = idx
	}
	if withChecksum {
		content += string(code39Alphabet[mod43(indices)])
	}
	return content, content, nil
}

// validateCode39Ext accepts the full 7-bit range, converting each byte
// to its 1- or 2-character substitution before the base encoding. The
// human-readable text keeps the original characters.
func validateCode39Ext(_ *Barcode, content string, _, withChecksum bool) (string, string, error) {
	if err := checkASCII(content); err != nil {
		return "", "", err
	}
	stored := code39ToExtended(content)
	text := content
	if withChecksum {
		indices := make([]int, len(stored))
		for i := 0; i < len(stored); i++ {
			indices[i] = strings.IndexByte(code39Alphabet, stored[i])
		}
		check := code39Alphabet[mod43(indices)]
		stored += string(check)
		text += string(check)
	}
	return stored, text, nil
}

// code39ToExtended maps a full-ASCII byte onto the base alphabet using
// the $ % / + shift characters.
func code39ToExtended(content string) string {
	var ext strings.Builder
	ext.Grow(len(content) * 2)
	for i := 0; i < len(content); i++ {
		c := content[i]
		switch {
		case c == 0:
			ext.WriteString("%U")
		case c == ' ' || c == '-' || c == '.':
			ext.WriteByte(c)
		case c == '@':
			ext.WriteString("%V")
		case c == '`':
			ext.WriteString("%W")
		case c <= 26:
			ext.WriteByte('$')
			ext.WriteByte('A' + c - 1)
		case c < ' ':
			ext.WriteByte('%')
			ext.WriteByte('A' + c - 27)
		case c <= ',' || c == '/' || c == ':':
			ext.WriteByte('/')
			ext.WriteByte('A' + c - 33)
		case c <= '9':
			ext.WriteByte(c)
		case c <= '?':
			ext.WriteByte('%')
			ext.WriteByte('F' + c - 59)
		case c <= 'Z':
			ext.WriteByte(c)
		case c <= '_':
			ext.WriteByte('%')
			ext.WriteByte('K' + c - 91)
		case c <= 'z':
			ext.WriteByte('+')
			ext.WriteByte('A' + c - 97)
		default:
			ext.WriteByte('%')
			ext.WriteByte('P' + c - 123)
		}
	}
	return ext.String()
}

// validatePZN builds the validator for the pharmaceutical number
// symbologies: n digits total, the last a modulo-11 check digit with
// weights starting at startWeight. The stored content gets the
// synthesized leading hyphen of the Code 39 rendition.
func validatePZN(n, startWeight int) func(*Barcode, string, bool, bool) (string, string, error) {
	return func(_ *Barcode, content string, autoComplete, _ bool) (string, string, error) {
		if err := checkDigits(content); err != nil {
			return "", "", err
		}
		switch len(content) {
		case n - 1:
			if !autoComplete {
				return "", "", errLength(n, n-1)
			}
			check, err := mod11(content, startWeight)
			if err != nil {
				return "", "", err
			}
			content += string(byte('0' + check))
		case n:
			check, err := mod11(content[:n-1], startWeight)
			if err != nil {
				return "", "", err
			}
			if content[n-1] != byte('0'+check) {
				return "", "", errChecksum(byte('0'+check), content[n-1])
			}
		default:
			return "", "", errLength2(n-1, n, len(content))
		}
		stored := "-" + content
		return stored, "PZN " + stored, nil
	}
}

// encodeCode39 emits asterisk-delimited characters with a narrow
// inter-character gap.
func encodeCode39(b *Barcode) (string, encodeInfo, error) {
	var sb strings.Builder
	appendTwoWidth(&sb, code39Elements(code39Asterisk), b.ratio, true)
	for i := 0; i < len(b.content); i++ {
		code39Gap(&sb, b.ratio)
		idx := strings.IndexByte(code39Alphabet, b.content[i])
		if idx < 0 {
			return "", encodeInfo{}, errInvalidChar(i, b.content[i])
		}
		appendTwoWidth(&sb, code39Elements(code39Encodings[idx]), b.ratio, true)
	}
	code39Gap(&sb, b.ratio)
	appendTwoWidth(&sb, code39Elements(code39Asterisk), b.ratio, true)
	return sb.String(), encodeInfo{}, nil
}

func code39Elements(mask int) []int {
	elems := make([]int, 9)
	for i := 0; i < 9; i++ {
		if mask&(1<<uint(8-i)) != 0 {
			elems[i] = 2
		} else {
			elems[i] = 1
		}
	}
	return elems
}

func code39Gap(sb *strings.Builder, r Ratio) {
	for i := 0; i < r.Narrow; i++ {
		sb.WriteByte('0')
	}
}

// code39Factor is the closed-form module count: every character is 6
// narrow and 3 wide elements, separated by narrow gaps, between two
// asterisk delimiters.
func code39Factor(b *Barcode, _ int) float64 {
	n, w := b.ratio.Narrow, b.ratio.Wide
	chars := len(b.content) + 2
	width := chars*(6*n+3*w) + (chars-1)*n
	left, right := b.QuietZones()
	return float64(width + left + right)
}
