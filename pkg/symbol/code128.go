package symbol

import (
	"fmt"
	"strings"

	"github.com/printforge/barcode-engine/pkg/gs1"
)

// Function characters are carried in content as private out-of-band
// markers, never as data bytes.
const (
	FNC1 rune = 'ñ'
	FNC2 rune = 'ò'
	FNC3 rune = 'ó'
	FNC4 rune = 'ô'
)

// Code set selector / control indices in the pattern table.
const (
	code128CodeC  = 99
	code128CodeB  = 100
	code128CodeA  = 101
	code128FNC1   = 102
	code128FNC2   = 97
	code128FNC3   = 96
	code128FNC4A  = 101
	code128FNC4B  = 100
	code128StartA = 103
	code128StartB = 104
	code128StartC = 105
	code128Stop   = 106
)

// code128Patterns holds the bar/space run widths for all 107 Code 128
// symbols; index 106 is the stop pattern including the termination bar.
var code128Patterns = [107][]int{
	{2, 1, 2, 2, 2, 2}, {2, 2, 2, 1, 2, 2}, {2, 2, 2, 2, 2, 1}, {1, 2, 1, 2, 2, 3},
	{1, 2, 1, 3, 2, 2}, {1, 3, 1, 2, 2, 2}, {1, 2, 2, 2, 1, 3}, {1, 2, 2, 3, 1, 2},
	{1, 3, 2, 2, 1, 2}, {2, 2, 1, 2, 1, 3}, {2, 2, 1, 3, 1, 2}, {2, 3, 1, 2, 1, 2},
	{1, 1, 2, 2, 3, 2}, {1, 2, 2, 1, 3, 2}, {1, 2, 2, 2, 3, 1}, {1, 1, 3, 2, 2, 2},
	{1, 2, 3, 1, 2, 2}, {1, 2, 3, 2, 2, 1}, {2, 2, 3, 2, 1, 1}, {2, 2, 1, 1, 3, 2},
	{2, 2, 1, 2, 3, 1}, {2, 1, 3, 2, 1, 2}, {2, 2, 3, 1, 1, 2}, {3, 1, 2, 1, 3, 1},
	{3, 1, 1, 2, 2, 2}, {3, 2, 1, 1, 2, 2}, {3, 2, 1, 2, 2, 1}, {3, 1, 2, 2, 1, 2},
	{3, 2, 2, 1, 1, 2}, {3, 2, 2, 2, 1, 1}, {2, 1, 2, 1, 2, 3}, {2, 1, 2, 3, 2, 1},
	{2, 3, 2, 1, 2, 1}, {1, 1, 1, 3, 2, 3}, {1, 3, 1, 1, 2, 3}, {1, 3, 1, 3, 2, 1},
	{1, 1, 2, 3, 1, 3}, {1, 3, 2, 1, 1, 3}, {1, 3, 2, 3, 1, 1}, {2, 1, 1, 3, 1, 3},
	{2, 3, 1, 1, 1, 3}, {2, 3, 1, 3, 1, 1}, {1, 1, 2, 1, 3, 3}, {1, 1, 2, 3, 3, 1},
	{1, 3, 2, 1, 3, 1}, {1, 1, 3, 1, 2, 3}, {1, 1, 3, 3, 2, 1}, {1, 3, 3, 1, 2, 1},
	{3, 1, 3, 1, 2, 1}, {2, 1, 1, 3, 3, 1}, {2, 3, 1, 1, 3, 1}, {2, 1, 3, 1, 1, 3},
	{2, 1, 3, 3, 1, 1}, {2, 1, 3, 1, 3, 1}, {3, 1, 1, 1, 2, 3}, {3, 1, 1, 3, 2, 1},
	{3, 3, 1, 1, 2, 1}, {3, 1, 2, 1, 1, 3}, {3, 1, 2, 3, 1, 1}, {3, 3, 2, 1, 1, 1},
	{3, 1, 4, 1, 1, 1}, {2, 2, 1, 4, 1, 1}, {4, 3, 1, 1, 1, 1}, {1, 1, 1, 2, 2, 4},
	{1, 1, 1, 4, 2, 2}, {1, 2, 1, 1, 2, 4}, {1, 2, 1, 4, 2, 1}, {1, 4, 1, 1, 2, 2},
	{1, 4, 1, 2, 2, 1}, {1, 1, 2, 2, 1, 4}, {1, 1, 2, 4, 1, 2}, {1, 2, 2, 1, 1, 4},
	{1, 2, 2, 4, 1, 1}, {1, 4, 2, 1, 1, 2}, {1, 4, 2, 2, 1, 1}, {2, 4, 1, 2, 1, 1},
	{2, 2, 1, 1, 1, 4}, {4, 1, 3, 1, 1, 1}, {2, 4, 1, 1, 1, 2}, {1, 3, 4, 1, 1, 1},
	{1, 1, 1, 2, 4, 2}, {1, 2, 1, 1, 4, 2}, {1, 2, 1, 2, 4, 1}, {1, 1, 4, 2, 1, 2},
	{1, 2, 4, 1, 1, 2}, {1, 2, 4, 2, 1, 1}, {4, 1, 1, 2, 1, 2}, {4, 2, 1, 1, 1, 2},
	{4, 2, 1, 2, 1, 1}, {2, 1, 2, 1, 4, 1}, {2, 1, 4, 1, 2, 1}, {4, 1, 2, 1, 2, 1},
	{1, 1, 1, 1, 4, 3}, {1, 1, 1, 3, 4, 1}, {1, 3, 1, 1, 4, 1}, {1, 1, 4, 1, 1, 3},
	{1, 1, 4, 3, 1, 1}, {4, 1, 1, 1, 1, 3}, {4, 1, 1, 3, 1, 1}, {1, 1, 3, 1, 4, 1},
	{1, 1, 4, 1, 3, 1}, {3, 1, 1, 1, 4, 1}, {4, 1, 1, 1, 3, 1}, {2, 1, 1, 4, 1, 2},
	{2, 1, 1, 2, 1, 4}, {2, 1, 1, 2, 3, 2}, {2, 3, 3, 1, 1, 1, 2},
}

func init() {
	register(TypeCode128, code128Spec("Code 128", 0))
	register(TypeCode128A, code128Spec("Code 128 A", code128CodeA))
	register(TypeCode128B, code128Spec("Code 128 B", code128CodeB))
	register(TypeCode128C, code128Spec("Code 128 C", code128CodeC))
	register(TypeGS1128, &spec{
		name:       "GS1-128",
		caps:       CapTextOnTop | CapCustomText,
		quietLeft:  10,
		quietRight: 10,
		validate:   validateGS1128,
		encode:     encodeCode128Content,
	})
	register(TypeEAN14, &spec{
		name:       "EAN-14",
		caps:       CapTextOnTop | CapAutoComplete,
		quietLeft:  10,
		quietRight: 10,
		validate:   validateAIWrapped("01", 14),
		encode:     encodeCode128Content,
	})
	register(TypeSSCC18, &spec{
		name:       "SSCC-18",
		caps:       CapTextOnTop | CapAutoComplete,
		quietLeft:  10,
		quietRight: 10,
		validate:   validateAIWrapped("00", 18),
		encode:     encodeCode128Content,
	})
}

func code128Spec(name string, forced int) *spec {
	return &spec{
		name:       name,
		caps:       CapTextOnTop | CapCustomText,
		quietLeft:  10,
		quietRight: 10,
		validate: func(_ *Barcode, content string, _, _ bool) (string, string, error) {
			if content == "" {
				return "", "", errEmpty()
			}
			if err := checkCode128Content(content, forced); err != nil {
				return "", "", err
			}
			return content, stripFunctionMarkers(content), nil
		},
		encode: encodeCode128Content,
	}
}

func encodeCode128Content(b *Barcode) (string, encodeInfo, error) {
	forced := 0
	switch b.typ {
	case TypeCode128A:
		forced = code128CodeA
	case TypeCode128B:
		forced = code128CodeB
	case TypeCode128C:
		forced = code128CodeC
	}
	code, err := encodeCode128([]rune(b.content), forced)
	if err != nil {
		return "", encodeInfo{}, err
	}
	return code, encodeInfo{}, nil
}

func checkCode128Content(content string, forced int) error {
	runes := []rune(content)
	for i, c := range runes {
		if c >= FNC1 && c <= FNC4 {
			continue
		}
		if c > 127 {
			return errNonASCII(i)
		}
		switch forced {
		case code128CodeA:
			if c > 95 {
				return errInvalidChar(i, byte(c))
			}
		case code128CodeB:
			if c < 32 {
				return errInvalidChar(i, byte(c))
			}
		case code128CodeC:
			if c < '0' || c > '9' {
				return &Error{Kind: KindNonDigit, Pos: i, Got: string(c)}
			}
		}
	}
	if forced == code128CodeC {
		n := 0
		for _, c := range runes {
			if c >= '0' && c <= '9' {
				n++
			}
		}
		if n%2 != 0 {
			return &Error{Kind: KindOddLength, Got: fmt.Sprintf("%d", n)}
		}
	}
	return nil
}

func stripFunctionMarkers(content string) string {
	return strings.Map(func(c rune) rune {
		if c >= FNC1 && c <= FNC4 {
			return -1
		}
		return c
	}, content)
}

// Lookahead classification for the code set chooser.
type cType int

const (
	cUncodable cType = iota
	cOneDigit
	cTwoDigits
	cFNC1
)

func code128CType(value []rune, start int) cType {
	if start >= len(value) {
		return cUncodable
	}
	c := value[start]
	if c == FNC1 {
		return cFNC1
	}
	if c < '0' || c > '9' {
		return cUncodable
	}
	if start+1 >= len(value) {
		return cOneDigit
	}
	c = value[start+1]
	if c < '0' || c > '9' {
		return cOneDigit
	}
	return cTwoDigits
}

// chooseCodeSet picks the code set for the symbol at start. The policy
// favors set C for runs of four or more digits (or a shorter qualifying
// run terminated by FNC1), otherwise B or A depending on character range
// and the current set.
func chooseCodeSet(value []rune, start, oldCode int) int {
	lookahead := code128CType(value, start)
	if lookahead == cOneDigit {
		if oldCode == code128CodeA {
			return code128CodeA
		}
		return code128CodeB
	}
	if lookahead == cUncodable {
		if start < len(value) {
			c := value[start]
			if c < ' ' || (oldCode == code128CodeA && (c < '`' || (c >= FNC1 && c <= FNC4))) {
				return code128CodeA
			}
		}
		return code128CodeB
	}
	if oldCode == code128CodeA && lookahead == cFNC1 {
		return code128CodeA
	}
	if oldCode == code128CodeC {
		return code128CodeC
	}
	if oldCode == code128CodeB {
		if lookahead == cFNC1 {
			return code128CodeB
		}
		lookahead = code128CType(value, start+2)
		if lookahead == cUncodable || lookahead == cOneDigit {
			return code128CodeB
		}
		if lookahead == cFNC1 {
			if code128CType(value, start+3) == cTwoDigits {
				return code128CodeC
			}
			return code128CodeB
		}
		index := start + 4
		for code128CType(value, index) == cTwoDigits {
			index += 2
		}
		if code128CType(value, index) == cOneDigit {
			return code128CodeB
		}
		return code128CodeC
	}
	// Choosing the initial code set.
	if lookahead == cFNC1 {
		lookahead = code128CType(value, start+1)
	}
	if lookahead == cTwoDigits {
		return code128CodeC
	}
	return code128CodeB
}

// encodeCode128 runs the stateful code-set-switching encoder and returns
// the bar string including the check symbol and stop pattern. The
// running checksum uses weight 1 for the start symbol, then weights
// incrementing by one per symbol, modulo 103.
func encodeCode128(content []rune, forced int) (string, error) {
	var indices []int
	checkSum := 0
	checkWeight := 1
	codeSet := 0
	position := 0

	for position < len(content) {
		var newCodeSet int
		if forced != 0 {
			newCodeSet = forced
		} else {
			newCodeSet = chooseCodeSet(content, position, codeSet)
		}

		var patternIndex int
		if newCodeSet == codeSet {
			c := content[position]
			switch c {
			case FNC1:
				patternIndex = code128FNC1
			case FNC2:
				patternIndex = code128FNC2
			case FNC3:
				patternIndex = code128FNC3
			case FNC4:
				if codeSet == code128CodeA {
					patternIndex = code128FNC4A
				} else {
					patternIndex = code128FNC4B
				}
			default:
				switch codeSet {
				case code128CodeA:
					patternIndex = int(c) - ' '
					if patternIndex < 0 {
						patternIndex += '`'
					}
				case code128CodeB:
					patternIndex = int(c) - ' '
				default: // code C encodes digit pairs
					if position+1 == len(content) || content[position+1] < '0' || content[position+1] > '9' {
						return "", &Error{Kind: KindOddLength, Got: "1"}
					}
					patternIndex = int(c-'0')*10 + int(content[position+1]-'0')
					position++
				}
			}
			position++
		} else {
			if codeSet == 0 {
				switch newCodeSet {
				case code128CodeA:
					patternIndex = code128StartA
				case code128CodeB:
					patternIndex = code128StartB
				default:
					patternIndex = code128StartC
				}
			} else {
				patternIndex = newCodeSet
			}
			codeSet = newCodeSet
		}

		indices = append(indices, patternIndex)
		checkSum += patternIndex * checkWeight
		if position != 0 {
			checkWeight++
		}
	}

	indices = append(indices, checkSum%103, code128Stop)
	var sb strings.Builder
	for _, idx := range indices {
		appendRuns(&sb, code128Patterns[idx], true)
	}
	return sb.String(), nil
}

func validateGS1128(_ *Barcode, content string, _, _ bool) (string, string, error) {
	parsed, err := gs1.Parse(content)
	if err != nil {
		return "", "", err
	}
	return string(FNC1) + parsed.Encodable(), parsed.HumanReadable(), nil
}

// validateAIWrapped builds the validator for the fixed-AI Code 128
// wrappers: EAN-14 (AI 01) and SSCC-18 (AI 00).
func validateAIWrapped(ai string, n int) func(*Barcode, string, bool, bool) (string, string, error) {
	inner := validateFixedNumeric(n)
	return func(b *Barcode, content string, autoComplete, _ bool) (string, string, error) {
		digits, _, err := inner(b, content, autoComplete, false)
		if err != nil {
			return "", "", err
		}
		stored := string(FNC1) + ai + digits
		return stored, "(" + ai + ")" + digits, nil
	}
}
