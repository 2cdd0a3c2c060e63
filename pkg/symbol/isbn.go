package symbol

import "strings"

// ISBN-13 and ISMN are hyphen-segmented EAN-13 wrappers. The stored
// content keeps the hyphenated form; encoding strips the hyphens and
// delegates to the EAN-13 pattern. The human-readable text carries the
// standard prefix and is drawn as an overhanging line above the symbol.

// OverhangModules is how far the ISBN/ISMN text line extends beyond the
// quiet zone on each side.
const OverhangModules = 5

func init() {
	register(TypeISBN13, &spec{
		name:       "ISBN-13",
		caps:       CapAddOn | CapAutoComplete,
		quietLeft:  11,
		quietRight: 7,
		validate:   validateISBN13,
		encode:     encodeStrippedEAN13,
	})
	register(TypeISMN, &spec{
		name:       "ISMN",
		caps:       CapAddOn | CapAutoComplete,
		quietLeft:  11,
		quietRight: 7,
		validate:   validateISMN,
		encode:     encodeStrippedEAN13,
	})
}

func encodeStrippedEAN13(b *Barcode) (string, encodeInfo, error) {
	return encodeEAN13(b, strings.ReplaceAll(b.content, "-", ""))
}

// segment length bounds for ISBN-13: prefix, registration group,
// registrant, publication, check digit.
var isbnSegmentMax = [5]int{3, 5, 7, 6, 1}

func validateISBN13(_ *Barcode, content string, autoComplete, _ bool) (string, string, error) {
	content, err := validateSegmented(content, autoComplete)
	if err != nil {
		return "", "", err
	}
	if !strings.HasPrefix(content, "978-") && !strings.HasPrefix(content, "979-") {
		return "", "", errInvalidChar(0, content[0])
	}
	return content, "ISBN " + content, nil
}

func validateISMN(_ *Barcode, content string, autoComplete, _ bool) (string, string, error) {
	content, err := validateSegmented(content, autoComplete)
	if err != nil {
		return "", "", err
	}
	if !strings.HasPrefix(content, "979-0-") {
		return "", "", errInvalidChar(0, content[0])
	}
	return content, "ISMN " + content, nil
}

// validateSegmented checks the hyphen structure (exact segment count,
// per-segment length bounds, 13 digits total) and verifies or completes
// the modulo-10 check digit.
func validateSegmented(content string, autoComplete bool) (string, error) {
	if content == "" {
		return "", errEmpty()
	}
	for i := 0; i < len(content); i++ {
		if content[i] != '-' && (content[i] < '0' || content[i] > '9') {
			return "", errInvalidChar(i, content[i])
		}
	}
	digits := strings.ReplaceAll(content, "-", "")
	segs := strings.Split(content, "-")

	switch len(digits) {
	case 12:
		if !autoComplete {
			return "", errLength(13, 12)
		}
		if len(segs) != 4 {
			return "", errLength(4, len(segs))
		}
		check := byte('0' + mod10(digits))
		content += "-" + string(check)
		segs = append(segs, string(check))
	case 13:
		if len(segs) != 5 {
			return "", errLength(5, len(segs))
		}
		want := byte('0' + mod10(digits[:12]))
		if digits[12] != want {
			return "", errChecksum(want, digits[12])
		}
	default:
		return "", errLength2(12, 13, len(digits))
	}
	for i, s := range segs {
		if s == "" || len(s) > isbnSegmentMax[i] {
			return "", errLength(isbnSegmentMax[i], len(s))
		}
	}
	return content, nil
}
