package symbol

// checkDigits validates that s contains only ASCII digits.
func checkDigits(s string) error {
	if s == "" {
		return errEmpty()
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return errNonDigit(i, s[i])
		}
	}
	return nil
}

// checkASCII validates that s contains only 7-bit characters.
func checkASCII(s string) error {
	if s == "" {
		return errEmpty()
	}
	for i := 0; i < len(s); i++ {
		if s[i] > 127 {
			return errNonASCII(i)
		}
	}
	return nil
}

// mod10 computes the weighted modulo-10 check digit over a digit string,
// alternating weights 3 and 1 starting with 3 at the rightmost digit.
func mod10(digits string) int {
	sum := 0
	weight := 3
	for i := len(digits) - 1; i >= 0; i-- {
		sum += int(digits[i]-'0') * weight
		weight = 4 - weight
	}
	return (10 - sum%10) % 10
}

// mod11 computes the modulo-11 check digit used by PZN symbologies.
// Weights run startWeight, startWeight+1, ... from the leftmost digit.
// A sum of 10 means no valid check digit exists for the base number.
func mod11(digits string, startWeight int) (int, error) {
	sum := 0
	for i := 0; i < len(digits); i++ {
		sum += int(digits[i]-'0') * (i + startWeight)
	}
	check := sum % 11
	if check == 10 {
		return 0, &Error{Kind: KindNoChecksum, Got: digits}
	}
	return check, nil
}

// mod43 computes the Code 39 check character index: the sum of alphabet
// indices modulo 43.
func mod43(indices []int) int {
	sum := 0
	for _, v := range indices {
		sum += v
	}
	return sum % 43
}

// weightedMod computes a weighted checksum index over character values,
// with weights cycling 1..maxWeight starting at the rightmost value.
// Code 93 uses mod=47 with maxWeight 20 (C) and 15 (K); Code 11 uses
// mod=11 with maxWeight 10 (C) and 9 (K). The second pass of a dual
// checksum includes the first check character in its input.
func weightedMod(values []int, maxWeight, mod int) int {
	sum := 0
	weight := 1
	for i := len(values) - 1; i >= 0; i-- {
		sum += values[i] * weight
		weight++
		if weight > maxWeight {
			weight = 1
		}
	}
	return sum % mod
}
