// Package display renders numbers, conversion results and tables for the
// terminal.
package display

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sambeau/unitconv/pkg/units"
)

const (
	significantDigits = 6
	scientificBelow   = 1e-6
	scientificFrom    = 1e6
)

// FormatNumber renders x with up to six significant digits. Very small and
// very large magnitudes use scientific notation ("1.23457e+07", "1e-09");
// everything else is plain decimal ("745.7", "0.00001"). Zero is "0".
func FormatNumber(x float64) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Inf"
	case math.IsInf(x, -1):
		return "-Inf"
	case x == 0:
		return "0"
	}

	abs := math.Abs(x)
	if abs < scientificBelow || abs >= scientificFrom {
		return scientific(x)
	}

	rounded, err := strconv.ParseFloat(strconv.FormatFloat(x, 'g', significantDigits, 64), 64)
	if err != nil {
		return strconv.FormatFloat(x, 'g', significantDigits, 64)
	}
	// 999999.7 rounds up into scientific territory.
	if math.Abs(rounded) >= scientificFrom {
		return scientific(rounded)
	}
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

// scientific formats x as mantissa and exponent with trailing zeros of the
// mantissa removed.
func scientific(x float64) string {
	s := strconv.FormatFloat(x, 'e', significantDigits-1, 64)
	mantissa, exp, ok := strings.Cut(s, "e")
	if !ok {
		return s
	}
	if strings.Contains(mantissa, ".") {
		mantissa = strings.TrimRight(mantissa, "0")
		mantissa = strings.TrimSuffix(mantissa, ".")
	}
	return mantissa + "e" + exp
}

// Result renders a conversion as "<value> <from> = <result> <to>".
func Result(c units.Conversion) string {
	return fmt.Sprintf("%s %s = %s %s",
		FormatNumber(c.Value), c.From.Symbol,
		FormatNumber(c.Result), c.To.Symbol)
}
