package symbol

import "strings"

// The Code 93 alphabet: the 43 data characters shared with Code 39,
// the four shift characters of the extended encoding, and the
// start/stop asterisk.
const code93Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ-. $/+%abcd*"

// Nine modules per character as a bitmask, bit 8 first; set = bar.
var code93Encodings = [48]int{
	0x114, 0x148, 0x144, 0x142, 0x128, 0x124, 0x122, 0x150, 0x112, 0x10A, // 0-9
	0x1A8, 0x1A4, 0x1A2, 0x194, 0x192, 0x18A, 0x168, 0x164, 0x162, 0x134, // A-J
	0x11A, 0x158, 0x14C, 0x146, 0x12C, 0x116, 0x1B4, 0x1B2, 0x1AC, 0x1A6, // K-T
	0x196, 0x19A, 0x16C, 0x166, 0x136, 0x13A, // U-Z
	0x12E, 0x1D4, 0x1D2, 0x1CA, 0x16E, 0x176, 0x1AE, // - . space $ / + %
	0x126, 0x1DA, 0x1D6, 0x132, 0x15E, // shift a-d, asterisk
}

var code93Asterisk = code93Encodings[47]

func init() {
	register(TypeCode93, &spec{
		name:       "Code 93",
		caps:       CapTextOnTop | CapCustomText,
		quietLeft:  10,
		quietRight: 10,
		validate:   validateCode93,
		encode:     encodeCode93,
	})
	register(TypeCode93Ext, &spec{
		name:       "Code 93 Extended",
		caps:       CapTextOnTop | CapCustomText,
		quietLeft:  10,
		quietRight: 10,
		validate:   validateCode93Ext,
		encode:     encodeCode93,
	})
}

func validateCode93(_ *Barcode, content string, _, _ bool) (string, string, error) {
	if content == "" {
		return "", "", errEmpty()
	}
	for i := 0; i < len(content); i++ {
		idx := strings.IndexByte(code93Alphabet, content[i])
		if idx < 0 || idx > 42 {
			return "", "", errInvalidChar(i, content[i])
		}
	}
	return content, content, nil
}

func validateCode93Ext(_ *Barcode, content string, _, _ bool) (string, string, error) {
	if err := checkASCII(content); err != nil {
		return "", "", err
	}
	return code93ToExtended(content), content, nil
}

// code93ToExtended maps a full-ASCII byte onto the base alphabet using
// the four dedicated shift characters.
func code93ToExtended(content string) string {
	var ext strings.Builder
	ext.Grow(len(content) * 2)
	for i := 0; i < len(content); i++ {
		c := content[i]
		switch {
		case c == 0:
			ext.WriteString("bU")
		case c <= 26:
			ext.WriteByte('a')
			ext.WriteByte('A' + c - 1)
		case c <= 31:
			ext.WriteByte('b')
			ext.WriteByte('A' + c - 27)
		case c == ' ' || c == '$' || c == '%' || c == '+':
			ext.WriteByte(c)
		case c <= ',':
			ext.WriteByte('c')
			ext.WriteByte('A' + c - '!')
		case c <= '9':
			ext.WriteByte(c)
		case c == ':':
			ext.WriteString("cZ")
		case c <= '?':
			ext.WriteByte('b')
			ext.WriteByte('F' + c - ';')
		case c == '@':
			ext.WriteString("bV")
		case c <= 'Z':
			ext.WriteByte(c)
		case c <= '_':
			ext.WriteByte('b')
			ext.WriteByte('K' + c - '[')
		case c == '`':
			ext.WriteString("bW")
		case c <= 'z':
			ext.WriteByte('d')
			ext.WriteByte('A' + c - 'a')
		default:
			ext.WriteByte('b')
			ext.WriteByte('P' + c - '{')
		}
	}
	return ext.String()
}

// encodeCode93 appends the two modulo-47 check characters (weights
// cycling 1..20 and 1..15 from the right, the second pass including
// the first check character), then the stop asterisk and the
// termination bar.
func encodeCode93(b *Barcode) (string, encodeInfo, error) {
	data := b.content
	check1 := code93ChecksumIndex(data, 20)
	data += string(code93Alphabet[check1])
	check2 := code93ChecksumIndex(data, 15)
	data += string(code93Alphabet[check2])

	var sb strings.Builder
	code93AppendBits(&sb, code93Asterisk)
	for i := 0; i < len(data); i++ {
		idx := strings.IndexByte(code93Alphabet, data[i])
		if idx < 0 {
			return "", encodeInfo{}, errInvalidChar(i, data[i])
		}
		code93AppendBits(&sb, code93Encodings[idx])
	}
	code93AppendBits(&sb, code93Asterisk)
	sb.WriteByte('1')
	return sb.String(), encodeInfo{}, nil
}

func code93AppendBits(sb *strings.Builder, mask int) {
	for i := 0; i < 9; i++ {
		if mask&(1<<uint(8-i)) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
}

func code93ChecksumIndex(data string, maxWeight int) int {
	values := make([]int, len(data))
	for i := 0; i < len(data); i++ {
		values[i] = strings.IndexByte(code93Alphabet, data[i])
	}
	return weightedMod(values, maxWeight, 47)
}
