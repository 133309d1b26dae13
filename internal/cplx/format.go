package cplx

import (
	"math"
	"strconv"
	"strings"
)

// DefaultPrecision is the number of decimals used by String.
const DefaultPrecision = 3

// Format renders z with the given number of decimals.
//
// A component whose magnitude is below Epsilon is suppressed: a value with a
// negligible imaginary part renders as its real part alone ("2.000"), and a
// value with a negligible real part renders as a pure imaginary ("1.500i",
// "-1.500i"). Otherwise the sign of the imaginary term is spelled out
// explicitly ("1.000 + 2.000i", "1.000 - 2.000i").
//
// A component that rounds to zero at the requested precision never carries
// a minus sign: New(-1e-5, 0).Format(3) is "0.000", not "-0.000", and
// New(1, -1e-5).Format(3) is "1.000 - 0.000i" only because the sign of the
// imaginary term is always spelled out.
//
// Parameters:
//   - precision: The number of digits after the decimal point (negative values
//     are treated as 0).
//
// Returns:
//   - string: The human-readable representation.
func (z Complex) Format(precision int) string {
	if precision < 0 {
		precision = 0
	}
	re := formatFixed(z.Re, precision)
	im := formatFixed(math.Abs(z.Im), precision)

	if math.Abs(z.Im) < Epsilon {
		return re
	}
	if math.Abs(z.Re) < Epsilon {
		if z.Im >= 0 {
			return im + "i"
		}
		return "-" + im + "i"
	}
	if z.Im >= 0 {
		return re + " + " + im + "i"
	}
	return re + " - " + im + "i"
}

// String implements fmt.Stringer using DefaultPrecision.
func (z Complex) String() string {
	return z.Format(DefaultPrecision)
}

// formatFixed is strconv's fixed-point formatting with "-0.000" folded to
// "0.000".
func formatFixed(x float64, precision int) string {
	s := strconv.FormatFloat(x, 'f', precision, 64)
	if strings.HasPrefix(s, "-") && strings.Trim(s[1:], "0.") == "" {
		return s[1:]
	}
	return s
}
