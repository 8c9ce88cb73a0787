package adif

import (
	"math"
	"strconv"
)

// ParseNumber parses a number the way ADIF writes it: an optional leading
// minus, digits and at most one decimal point. A plus sign, exponent or
// thousands separator is rejected. When integral is true any fractional
// digits must be zeros.
func ParseNumber(s string, integral bool) (float64, bool) {
	if s == "" {
		return 0, false
	}
	body := s
	if body[0] == '-' {
		body = body[1:]
	}

	var digits, dots int
	var fractionNonZero bool
	for i := 0; i < len(body); i++ {
		switch c := body[i]; {
		case c >= '0' && c <= '9':
			digits++
			if dots == 1 && c != '0' {
				fractionNonZero = true
			}
		case c == '.':
			dots++
		default:
			return 0, false
		}
	}
	if digits == 0 || dots > 1 || (integral && fractionNonZero) {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FormatNumber writes a number without exponent and without trailing
// zeros.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// RoundFreq rounds a frequency in MHz to 6 decimal places (1 Hz).
func RoundFreq(f float64) float64 {
	return math.Round(f*1e6) / 1e6
}

// FormatFreq writes a frequency in MHz with at most 6 decimal places.
func FormatFreq(f float64) string {
	return FormatNumber(RoundFreq(f))
}
