package symbol

import "fmt"

// Kind classifies a validation failure. Codes are grouped so callers can
// branch on the category without enumerating every kind: 1xx content,
// 2xx checksum, 3xx add-on.
type Kind int

const (
	KindEmptyContent  Kind = 101
	KindInvalidChar   Kind = 102
	KindNonDigit      Kind = 103
	KindNonASCII      Kind = 104
	KindInvalidLength Kind = 105
	KindOddLength     Kind = 106

	KindChecksumMismatch Kind = 201
	KindNoChecksum       Kind = 202

	KindAddOnEmpty    Kind = 301
	KindAddOnLength   Kind = 302
	KindAddOnNonDigit Kind = 303
)

// Category identifiers returned by Error.Category.
const (
	CategoryContent  = 1
	CategoryChecksum = 2
	CategoryAddOn    = 3
)

// Error is a typed validation failure. Pos, Want and Got carry the
// positional/numeric message inserts; they are only meaningful for the
// kinds that set them.
type Error struct {
	Kind Kind
	Pos  int    // 0-based position of the offending character
	Want string // expected value (length, check digit)
	Got  string // actual value
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindEmptyContent:
		return "content is empty"
	case KindInvalidChar:
		return fmt.Sprintf("invalid character %q at position %d", e.Got, e.Pos)
	case KindNonDigit:
		return fmt.Sprintf("non-digit character %q at position %d", e.Got, e.Pos)
	case KindNonASCII:
		return fmt.Sprintf("non-ASCII character at position %d", e.Pos)
	case KindInvalidLength:
		return fmt.Sprintf("invalid content length: expected %s, got %s", e.Want, e.Got)
	case KindOddLength:
		return fmt.Sprintf("content length must be even, got %s", e.Got)
	case KindChecksumMismatch:
		return fmt.Sprintf("invalid check digit: expected %s, got %s", e.Want, e.Got)
	case KindNoChecksum:
		return fmt.Sprintf("no valid check digit exists for %q", e.Got)
	case KindAddOnEmpty:
		return "add-on is empty"
	case KindAddOnLength:
		return fmt.Sprintf("add-on must be 2 or 5 digits, got %s", e.Got)
	case KindAddOnNonDigit:
		return fmt.Sprintf("non-digit character %q in add-on at position %d", e.Got, e.Pos)
	}
	return fmt.Sprintf("validation error (kind %d)", int(e.Kind))
}

// Category returns the error category (CategoryContent, CategoryChecksum
// or CategoryAddOn).
func (e *Error) Category() int { return int(e.Kind) / 100 }

func errEmpty() *Error { return &Error{Kind: KindEmptyContent} }

func errNonDigit(pos int, c byte) *Error {
	return &Error{Kind: KindNonDigit, Pos: pos, Got: string(c)}
}

func errInvalidChar(pos int, c byte) *Error {
	return &Error{Kind: KindInvalidChar, Pos: pos, Got: string(c)}
}

func errNonASCII(pos int) *Error { return &Error{Kind: KindNonASCII, Pos: pos} }

func errLength(want, got int) *Error {
	return &Error{Kind: KindInvalidLength, Want: fmt.Sprintf("%d", want), Got: fmt.Sprintf("%d", got)}
}

func errLength2(wantA, wantB, got int) *Error {
	return &Error{Kind: KindInvalidLength, Want: fmt.Sprintf("%d or %d", wantA, wantB), Got: fmt.Sprintf("%d", got)}
}

func errOddLength(got int) *Error {
	return &Error{Kind: KindOddLength, Got: fmt.Sprintf("%d", got)}
}

func errChecksum(want, got byte) *Error {
	return &Error{Kind: KindChecksumMismatch, Want: string(want), Got: string(got)}
}
