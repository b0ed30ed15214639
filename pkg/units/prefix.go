package units

import (
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sambeau/unitconv/pkg/errors"
)

// prefixes maps a metric prefix character to its multiplier. 'u' and 'µ'
// are both micro.
var prefixes = map[rune]float64{
	'k': 1e3,
	'M': 1e6,
	'G': 1e9,
	'T': 1e12,
	'm': 1e-3,
	'u': 1e-6,
	'µ': 1e-6,
	'n': 1e-9,
	'p': 1e-12,
	'c': 1e-2,
	'd': 1e-1,
	'h': 1e2,
}

// ParsePrefixed splits a combined token such as "10km" or "2.5 M W" into a
// value and a unit token. The leading float literal is parsed greedily,
// whitespace is skipped, and a metric prefix character, if present, scales
// the value and is consumed. The trimmed remainder is the unit token.
//
// Note that "10m" yields (0.01, ""): the prefix always wins here. Callers
// that know the unit table should use ParseQuantity.
func ParsePrefixed(input string) (float64, string, error) {
	value, rest, err := parseLiteral(input)
	if err != nil {
		return 0, "", err
	}
	rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
	if r, size := utf8.DecodeRuneInString(rest); size > 0 {
		if mult, ok := prefixes[r]; ok {
			scaled := value * mult
			if math.IsInf(scaled, 0) || (scaled == 0 && value != 0) {
				return 0, "", errors.InvalidValue(input)
			}
			value = scaled
			rest = rest[size:]
		}
	}
	return value, Trim(rest), nil
}

// ParseQuantity is the unit-aware variant of ParsePrefixed. When the text
// after the number is empty or already names a unit, no prefix is applied:
// "10 m" is ten metres and "10mm" ten millimetres, while "2kft" is 2000 ft.
func ParseQuantity(input string, known func(string) bool) (float64, string, error) {
	value, rest, err := parseLiteral(input)
	if err != nil {
		return 0, "", err
	}
	unit := Trim(rest)
	if unit == "" || (known != nil && known(unit)) {
		return value, unit, nil
	}
	return ParsePrefixed(input)
}

// ParseValue parses a whole string as a number, allowing surrounding spaces.
func ParseValue(s string) (float64, error) {
	t := Trim(s)
	value, rest, err := parseLiteral(t)
	if err != nil || rest != "" {
		return 0, errors.InvalidValue(s)
	}
	return value, nil
}

// parseLiteral consumes the longest leading decimal float literal
// (sign, digits, fraction, exponent) and returns the value and the rest of
// the input. Leading whitespace is skipped. Literals outside the float64
// range, in either direction, are invalid.
func parseLiteral(input string) (float64, string, error) {
	s := strings.TrimLeftFunc(input, unicode.IsSpace)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, input, errors.InvalidValue(input)
	}
	mantissa := s[:i]
	// An exponent only counts when at least one digit follows it, so "2e"
	// leaves "e" for the unit.
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}
	value, err := strconv.ParseFloat(s[:i], 64)
	if err != nil || math.IsInf(value, 0) {
		return 0, input, errors.InvalidValue(input)
	}
	// ParseFloat rounds tiny values such as 1e-400 to zero without an error.
	if value == 0 && strings.ContainsAny(mantissa, "123456789") {
		return 0, input, errors.InvalidValue(input)
	}
	return value, s[i:], nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
