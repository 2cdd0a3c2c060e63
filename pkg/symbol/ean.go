package symbol

import "strings"

// UPC/EAN digit patterns as bar/space run widths. lPatterns encodes the
// left half with odd parity starting on a space; the right half reuses the
// same widths starting on a bar; the even-parity "G" set is the reverse.
var lPatterns = [10][4]int{
	{3, 2, 1, 1}, // 0
	{2, 2, 2, 1}, // 1
	{2, 1, 2, 2}, // 2
	{1, 4, 1, 1}, // 3
	{1, 1, 3, 2}, // 4
	{1, 2, 3, 1}, // 5
	{1, 1, 1, 4}, // 6
	{1, 3, 1, 2}, // 7
	{1, 2, 1, 3}, // 8
	{3, 1, 1, 2}, // 9
}

var (
	upcEANStartEnd = []int{1, 1, 1}
	upcEANMiddle   = []int{1, 1, 1, 1, 1}
	upcEEnd        = []int{1, 1, 1, 1, 1, 1}
	addOnLead      = []int{1, 1, 2}
	addOnDelim     = []int{1, 1}
)

// Parity selection for the left half of EAN-13, keyed by the first digit.
// Bit set = even parity (G pattern).
var ean13Parities = [10]int{0x00, 0x0B, 0x0D, 0x0E, 0x13, 0x19, 0x1C, 0x15, 0x16, 0x1A}

// UPC-E parity patterns indexed by [number system][check digit].
var upceParities = [2][10]int{
	{0x38, 0x34, 0x32, 0x31, 0x2C, 0x26, 0x23, 0x2A, 0x29, 0x25},
	{0x07, 0x0B, 0x0D, 0x0E, 0x13, 0x19, 0x1C, 0x15, 0x16, 0x1A},
}

// Add-on parity patterns for the 5-digit supplement, keyed by its
// weighted checksum. Bit set = even parity.
var addOn5Parities = [10]int{0x18, 0x14, 0x12, 0x11, 0x0C, 0x06, 0x03, 0x0A, 0x09, 0x05}

const addOnGap = 9 // modules between main symbol and add-on

func init() {
	register(TypeEAN13, &spec{
		name:       "EAN-13",
		caps:       CapAddOn | CapAutoComplete,
		quietLeft:  11,
		quietRight: 7,
		validate:   validateFixedNumeric(13),
		encode: func(b *Barcode) (string, encodeInfo, error) {
			return encodeEAN13(b, b.content)
		},
	})
	register(TypeEAN8, &spec{
		name:       "EAN-8",
		caps:       CapAutoComplete,
		quietLeft:  7,
		quietRight: 7,
		validate:   validateFixedNumeric(8),
		encode:     encodeEAN8,
	})
	register(TypeUPCA, &spec{
		name:       "UPC-A",
		caps:       CapAddOn | CapAutoComplete,
		quietLeft:  9,
		quietRight: 9,
		validate:   validateFixedNumeric(12),
		encode:     encodeUPCA,
	})
	register(TypeUPCE, &spec{
		name:       "UPC-E",
		caps:       CapAddOn | CapAutoComplete,
		quietLeft:  9,
		quietRight: 7,
		validate:   validateUPCE,
		encode:     encodeUPCE,
	})
}

// appendRuns writes a run-width pattern into sb. startBar selects the
// color of the first run; colors alternate per run.
func appendRuns(sb *strings.Builder, widths []int, startBar bool) {
	bar := startBar
	for _, w := range widths {
		c := byte('0')
		if bar {
			c = '1'
		}
		for i := 0; i < w; i++ {
			sb.WriteByte(c)
		}
		bar = !bar
	}
}

// validateFixedNumeric builds a validator for an n-digit symbology whose
// last digit is a weighted modulo-10 check digit. With autoComplete an
// (n-1)-digit base is accepted and completed.
func validateFixedNumeric(n int) func(*Barcode, string, bool, bool) (string, string, error) {
	return func(_ *Barcode, content string, autoComplete, _ bool) (string, string, error) {
		if content == "" {
			return "", "", errEmpty()
		}
		if err := checkDigits(content); err != nil {
			return "", "", err
		}
		switch len(content) {
		case n - 1:
			if !autoComplete {
				return "", "", errLength(n, n-1)
			}
			content += string(byte('0' + mod10(content)))
		case n:
			want := byte('0' + mod10(content[:n-1]))
			if content[n-1] != want {
				return "", "", errChecksum(want, content[n-1])
			}
		default:
			return "", "", errLength2(n-1, n, len(content))
		}
		return content, content, nil
	}
}

func validateUPCE(_ *Barcode, content string, autoComplete, _ bool) (string, string, error) {
	if content == "" {
		return "", "", errEmpty()
	}
	if err := checkDigits(content); err != nil {
		return "", "", err
	}
	switch len(content) {
	case 7:
		if !autoComplete {
			return "", "", errLength(8, 7)
		}
		content += string(byte('0' + mod10(expandUPCE(content))))
	case 8:
		want := byte('0' + mod10(expandUPCE(content[:7])))
		if content[7] != want {
			return "", "", errChecksum(want, content[7])
		}
	default:
		return "", "", errLength2(7, 8, len(content))
	}
	if content[0] != '0' && content[0] != '1' {
		return "", "", errInvalidChar(0, content[0])
	}
	return content, content, nil
}

// expandUPCE reverses the UPC-E zero suppression, producing the 11-digit
// UPC-A base (without check digit) used for check-digit computation. The
// mapping is keyed on the last significant digit.
func expandUPCE(upce string) string {
	d := upce[1:7]
	var sb strings.Builder
	sb.WriteByte(upce[0])
	switch last := d[5]; last {
	case '0', '1', '2':
		sb.WriteString(d[0:2])
		sb.WriteByte(last)
		sb.WriteString("0000")
		sb.WriteString(d[2:5])
	case '3':
		sb.WriteString(d[0:3])
		sb.WriteString("00000")
		sb.WriteString(d[3:5])
	case '4':
		sb.WriteString(d[0:4])
		sb.WriteString("00000")
		sb.WriteByte(d[4])
	default:
		sb.WriteString(d[0:5])
		sb.WriteString("0000")
		sb.WriteByte(last)
	}
	return sb.String()
}

// encodeEAN13 emits the 95-module EAN-13 pattern for a 13-digit string,
// followed by the add-on when one is set. Shared by the ISBN/ISMN
// wrappers, which pass their stripped digit form.
func encodeEAN13(b *Barcode, digits string) (string, encodeInfo, error) {
	var sb strings.Builder
	parities := ean13Parities[digits[0]-'0']
	appendRuns(&sb, upcEANStartEnd, true)
	for i := 1; i <= 6; i++ {
		appendDigit(&sb, int(digits[i]-'0'), parities&(1<<(6-i)) != 0, false)
	}
	appendRuns(&sb, upcEANMiddle, false)
	for i := 7; i <= 12; i++ {
		appendDigit(&sb, int(digits[i]-'0'), false, true)
	}
	appendRuns(&sb, upcEANStartEnd, true)
	info := encodeInfo{guards: [][2]int{{0, 3}, {45, 50}, {92, 95}}}
	return withAddOn(b, sb.String(), info)
}

func encodeEAN8(b *Barcode) (string, encodeInfo, error) {
	digits := b.content
	var sb strings.Builder
	appendRuns(&sb, upcEANStartEnd, true)
	for i := 0; i <= 3; i++ {
		appendDigit(&sb, int(digits[i]-'0'), false, false)
	}
	appendRuns(&sb, upcEANMiddle, false)
	for i := 4; i <= 7; i++ {
		appendDigit(&sb, int(digits[i]-'0'), false, true)
	}
	appendRuns(&sb, upcEANStartEnd, true)
	return sb.String(), encodeInfo{guards: [][2]int{{0, 3}, {31, 36}, {64, 67}}}, nil
}

func encodeUPCA(b *Barcode) (string, encodeInfo, error) {
	// UPC-A is the EAN-13 pattern of "0" + content; the guard regions
	// additionally cover the outermost digit symbols, which print at
	// full height.
	code, info, err := encodeEAN13(b, "0"+b.content)
	if err != nil {
		return "", encodeInfo{}, err
	}
	info.guards = [][2]int{{0, 10}, {45, 50}, {85, 95}}
	return code, info, nil
}

func encodeUPCE(b *Barcode) (string, encodeInfo, error) {
	digits := b.content
	parities := upceParities[digits[0]-'0'][digits[7]-'0']
	var sb strings.Builder
	appendRuns(&sb, upcEANStartEnd, true)
	for i := 1; i <= 6; i++ {
		appendDigit(&sb, int(digits[i]-'0'), parities&(1<<(6-i)) != 0, false)
	}
	appendRuns(&sb, upcEEnd, false)
	info := encodeInfo{guards: [][2]int{{0, 3}, {45, 51}}}
	return withAddOn(b, sb.String(), info)
}

// appendDigit writes one 7-module digit. evenParity selects the reversed
// "G" widths; right selects the bar-first right-half rendition.
func appendDigit(sb *strings.Builder, digit int, evenParity, right bool) {
	w := lPatterns[digit]
	if evenParity {
		w = [4]int{w[3], w[2], w[1], w[0]}
	}
	appendRuns(sb, w[:], right)
}

// withAddOn appends the 2- or 5-digit supplemental symbol after a fixed
// gap and records where it starts.
func withAddOn(b *Barcode, code string, info encodeInfo) (string, encodeInfo, error) {
	if b.addOn == "" {
		return code, info, nil
	}
	var parities int
	switch len(b.addOn) {
	case 2:
		v := int(b.addOn[0]-'0')*10 + int(b.addOn[1]-'0')
		parities = v % 4 // bit layout: bit(1-i) set = even parity
	case 5:
		sum := 0
		for i, c := range []byte(b.addOn) {
			if i%2 == 0 {
				sum += 3 * int(c-'0')
			} else {
				sum += 9 * int(c-'0')
			}
		}
		parities = addOn5Parities[sum%10]
	}
	var sb strings.Builder
	sb.WriteString(code)
	sb.WriteString(zeros(addOnGap))
	start := len(code) + addOnGap
	appendRuns(&sb, addOnLead, true)
	n := len(b.addOn)
	for i := 0; i < n; i++ {
		if i > 0 {
			appendRuns(&sb, addOnDelim, false)
		}
		appendDigit(&sb, int(b.addOn[i]-'0'), parities&(1<<(n-1-i)) != 0, false)
	}
	info.addOnStart = start
	return sb.String(), info, nil
}
