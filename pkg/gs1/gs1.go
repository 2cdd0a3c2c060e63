// Package gs1 parses and validates GS1 Application-Identifier structured
// content. Input may use literal brackets around each AI, separator
// markers between variable-length fields, or a mix of both. The parse
// result exposes a machine-encodable projection (separator-joined) and a
// bracketed human-readable projection.
package gs1

import "fmt"

// Separator is the non-printable FNC1 marker used between
// variable-length fields in unbracketed input and in the encodable
// projection.
const Separator rune = 'ñ'

// Placeholder at the check-digit position of SSCC/GTIN AIs forces
// check-digit computation.
const Placeholder byte = '#'

// Kind classifies a GS1 validation failure.
type Kind int

const (
	KindUnknownAI Kind = iota + 1
	KindBracket
	KindLength
	KindSchema
	KindDate
	KindNonDigit
	KindChecksum
)

// Error is a typed GS1 validation failure.
type Error struct {
	Kind Kind
	Pos  int    // rune position in the input
	AI   string // the AI being validated, when known
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindUnknownAI:
		return fmt.Sprintf("unknown application identifier at position %d", e.Pos)
	case KindBracket:
		return fmt.Sprintf("malformed bracket at position %d", e.Pos)
	case KindLength:
		return fmt.Sprintf("wrong data length for AI %s", e.AI)
	case KindSchema:
		return fmt.Sprintf("data for AI %s does not match its format", e.AI)
	case KindDate:
		return fmt.Sprintf("invalid date value for AI %s", e.AI)
	case KindNonDigit:
		return fmt.Sprintf("non-digit data for AI %s", e.AI)
	case KindChecksum:
		return fmt.Sprintf("invalid check digit for AI %s", e.AI)
	}
	return "invalid GS1 content"
}

// Element is a single (Application Identifier, data value) pair.
type Element struct {
	AI    string
	Value string
}

// Parsed is an ordered, validated AI sequence.
type Parsed struct {
	Elements []Element
}

// Encodable returns the machine-encodable concatenation: AI digits and
// values joined, with a separator marker after every variable-length
// field except the last.
func (p *Parsed) Encodable() string {
	var out []rune
	for i, el := range p.Elements {
		out = append(out, []rune(el.AI+el.Value)...)
		if i < len(p.Elements)-1 && needsSeparator(el.AI) {
			out = append(out, Separator)
		}
	}
	return string(out)
}

// HumanReadable returns the bracketed concatenation.
func (p *Parsed) HumanReadable() string {
	s := ""
	for _, el := range p.Elements {
		s += "(" + el.AI + ")" + el.Value
	}
	return s
}

func needsSeparator(ai string) bool {
	sch, _ := lookupAI(ai)
	return sch == nil || sch.fnc1
}

// lookupAI resolves an AI string (full digits) against the schema table.
func lookupAI(ai string) (*schema, bool) {
	if sch, ok := aiTable[ai]; ok {
		return sch, true
	}
	if len(ai) == 4 {
		if sch, ok := aiDecimal[ai[:3]]; ok && ai[3]-'0' <= sch.maxN {
			return sch, true
		}
	}
	return nil, false
}

// Parse validates AI-structured input and returns the ordered element
// sequence. Bracketed AIs, separator-delimited fields and fixed-length
// runs may be mixed freely.
func Parse(input string) (*Parsed, error) {
	runes := []rune(input)
	p := &Parsed{}
	pos := 0
	for pos < len(runes) {
		// Skip redundant separators between elements.
		for pos < len(runes) && runes[pos] == Separator {
			pos++
		}
		if pos >= len(runes) {
			break
		}

		bracketed := runes[pos] == '('
		if bracketed {
			pos++
		}

		ai, sch, err := matchAI(runes, pos)
		if err != nil {
			return nil, err
		}
		pos += len(ai)

		if bracketed {
			if pos >= len(runes) || runes[pos] != ')' {
				return nil, &Error{Kind: KindBracket, Pos: pos}
			}
			pos++
		}

		value, next := fieldEnd(runes, pos, sch)
		if err := validateValue(ai, sch, value); err != nil {
			return nil, err
		}
		if sch.check {
			var err error
			value, err = resolveCheckDigit(ai, value)
			if err != nil {
				return nil, err
			}
		}
		p.Elements = append(p.Elements, Element{AI: ai, Value: value})
		pos = next
	}
	if len(p.Elements) == 0 {
		return nil, &Error{Kind: KindSchema}
	}
	return p, nil
}

// matchAI matches the longest AI prefix at pos: explicit 4-, 3- and
// 2-digit codes, plus three-digit stems with a decimal-position digit.
func matchAI(runes []rune, pos int) (string, *schema, error) {
	for l := 4; l >= 2; l-- {
		if pos+l > len(runes) {
			continue
		}
		cand := string(runes[pos : pos+l])
		if !allDigits(cand) {
			continue
		}
		if sch, ok := lookupAI(cand); ok {
			return cand, sch, nil
		}
	}
	return "", nil, &Error{Kind: KindUnknownAI, Pos: pos}
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

// fieldEnd locates the end of the data field: the fixed schema length,
// or the next separator marker or opening bracket, whichever is nearer.
func fieldEnd(runes []rune, pos int, sch *schema) (string, int) {
	end := len(runes)
	if n := fixedLen(sch); n > 0 && pos+n < end {
		end = pos + n
	}
	for i := pos; i < end; i++ {
		if runes[i] == Separator || runes[i] == '(' {
			end = i
			break
		}
	}
	value := string(runes[pos:end])
	// A separator after the field is consumed with it.
	if end < len(runes) && runes[end] == Separator {
		end++
	}
	return value, end
}

func fixedLen(sch *schema) int {
	if sch.fnc1 {
		return 0
	}
	n := 0
	for _, pt := range sch.parts {
		if pt.min != pt.max {
			return 0
		}
		n += pt.min
	}
	return n
}

func validateValue(ai string, sch *schema, value string) error {
	rest := value
	for i, pt := range sch.parts {
		last := i == len(sch.parts)-1
		var field string
		if pt.min == pt.max && !last {
			if len(rest) < pt.min {
				return &Error{Kind: KindLength, AI: ai}
			}
			field, rest = rest[:pt.min], rest[pt.min:]
		} else {
			field, rest = rest, ""
		}
		if err := validatePart(ai, sch, pt, field); err != nil {
			return err
		}
	}
	if rest != "" {
		return &Error{Kind: KindLength, AI: ai}
	}
	return nil
}

func validatePart(ai string, sch *schema, pt part, field string) error {
	if len(field) < pt.min || len(field) > pt.max {
		return &Error{Kind: KindLength, AI: ai}
	}
	switch pt.kind {
	case kindNumeric:
		for i := 0; i < len(field); i++ {
			if field[i] == Placeholder && sch.check && i == len(field)-1 {
				continue
			}
			if field[i] < '0' || field[i] > '9' {
				return &Error{Kind: KindNonDigit, AI: ai}
			}
		}
	case kindCSET82:
		for i := 0; i < len(field); i++ {
			if !cset82(field[i]) {
				return &Error{Kind: KindSchema, AI: ai}
			}
		}
	case kindDate6:
		if len(field) != 6 && len(field) != 12 {
			return &Error{Kind: KindLength, AI: ai}
		}
		for i := 0; i < len(field); i += 6 {
			if !validDate6(field[i : i+6]) {
				return &Error{Kind: KindDate, AI: ai}
			}
		}
	case kindDate10:
		if len(field) != 10 {
			return &Error{Kind: KindLength, AI: ai}
		}
		if !validDate6(field[:6]) || !validClock(field[6:]) {
			return &Error{Kind: KindDate, AI: ai}
		}
	case kindDateHours:
		// YYMMDDHH with optional MM and SS.
		if len(field) != 8 && len(field) != 10 && len(field) != 12 {
			return &Error{Kind: KindLength, AI: ai}
		}
		if !validDate6(field[:6]) || !validClock(field[6:]) {
			return &Error{Kind: KindDate, AI: ai}
		}
	}
	return nil
}

var daysInMonth = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// validDate6 checks a YYMMDD value against the calendar. Day 00 is the
// GS1 convention for "end of month" and is accepted.
func validDate6(s string) bool {
	for i := 0; i < 6; i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	yy := int(s[0]-'0')*10 + int(s[1]-'0')
	mm := int(s[2]-'0')*10 + int(s[3]-'0')
	dd := int(s[4]-'0')*10 + int(s[5]-'0')
	if mm < 1 || mm > 12 {
		return false
	}
	max := daysInMonth[mm]
	if mm == 2 && leapYear(2000+yy) {
		max = 29
	}
	return dd <= max
}

func leapYear(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

// validClock checks HH[MM[SS]] pairs.
func validClock(s string) bool {
	if len(s)%2 != 0 || len(s) == 0 || len(s) > 6 {
		return false
	}
	limits := [3]int{23, 59, 59}
	for i := 0; i*2 < len(s); i++ {
		if s[i*2] < '0' || s[i*2] > '9' || s[i*2+1] < '0' || s[i*2+1] > '9' {
			return false
		}
		v := int(s[i*2]-'0')*10 + int(s[i*2+1]-'0')
		if v > limits[i] {
			return false
		}
	}
	return true
}

// resolveCheckDigit verifies the trailing modulo-10 check digit of an
// SSCC/GTIN value, or computes it when the placeholder is present.
func resolveCheckDigit(ai, value string) (string, error) {
	base := value[:len(value)-1]
	check := byte('0' + checkDigit(base))
	if value[len(value)-1] == Placeholder {
		return base + string(check), nil
	}
	if value[len(value)-1] != check {
		return "", &Error{Kind: KindChecksum, AI: ai}
	}
	return value, nil
}

// checkDigit is the GS1 weighted modulo-10 algorithm: weights alternate
// 3 and 1 starting with 3 at the rightmost digit.
func checkDigit(digits string) int {
	sum := 0
	weight := 3
	for i := len(digits) - 1; i >= 0; i-- {
		sum += int(digits[i]-'0') * weight
		weight = 4 - weight
	}
	return (10 - sum%10) % 10
}
