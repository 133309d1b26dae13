// Package solver computes the complex roots of real polynomials of degree 2,
// 3 and 4 in closed form, and provides the inverse direction (roots to
// coefficients) together with a conjugate-symmetric random root generator.
//
// The raw formula entry points (Quadratic, Cubic, Quartic) trust their
// inputs: a zero leading coefficient yields non-finite roots rather than an
// error. Solve and Registry.Solve validate an Equation first and report
// violated preconditions as apperrors.ValidationError.
package solver

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/agbru/galois/internal/cplx"
	apperrors "github.com/agbru/galois/internal/errors"
)

// Epsilon is the threshold substituted for exact zero comparisons in the
// degenerate-case checks (triple root and the biquadratic fast path).
const Epsilon = cplx.Epsilon

// Supported degrees.
const (
	MinDegree = 2
	MaxDegree = 4
)

// Equation is a polynomial equation P(x) = 0 with real coefficients ordered
// from the highest power to the constant term.
type Equation struct {
	// Degree is 2, 3 or 4.
	Degree int `json:"degree"`
	// Coefficients holds Degree+1 values, highest power first.
	Coefficients []float64 `json:"coefficients"`
}

// NewEquation builds an Equation whose degree is inferred from the number of
// coefficients.
func NewEquation(coefficients ...float64) Equation {
	c := make([]float64, len(coefficients))
	copy(c, coefficients)
	return Equation{Degree: len(c) - 1, Coefficients: c}
}

// Validate checks the preconditions of the closed-form solvers.
//
// Returns:
//   - error: An apperrors.ValidationError naming the first failed check, or nil.
func (e Equation) Validate() error {
	if e.Degree < MinDegree || e.Degree > MaxDegree {
		return apperrors.NewValidationError("degree",
			fmt.Sprintf("unsupported degree %d (must be between %d and %d)", e.Degree, MinDegree, MaxDegree), e.Degree)
	}
	if len(e.Coefficients) != e.Degree+1 {
		return apperrors.NewValidationError("coefficients",
			fmt.Sprintf("degree %d requires %d coefficients, got %d", e.Degree, e.Degree+1, len(e.Coefficients)), len(e.Coefficients))
	}
	for i, c := range e.Coefficients {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return apperrors.NewValidationError(fmt.Sprintf("coefficients[%d]", i), "coefficient must be finite", c)
		}
	}
	// Any non-zero leading coefficient is accepted: the equation may be
	// uniformly scaled, so an absolute threshold would reject valid input.
	if e.Coefficients[0] == 0 {
		return apperrors.NewValidationError("coefficients[0]", "leading coefficient must be non-zero", e.Coefficients[0])
	}
	return nil
}

// String renders the equation in conventional notation, e.g.
// "x^3 - 2x + 1 = 0". Zero terms are omitted.
func (e Equation) String() string {
	var b strings.Builder
	n := len(e.Coefficients) - 1
	for i, c := range e.Coefficients {
		if c == 0 {
			continue
		}
		power := n - i
		abs := math.Abs(c)
		switch {
		case b.Len() == 0 && c < 0:
			b.WriteString("-")
		case b.Len() > 0 && c < 0:
			b.WriteString(" - ")
		case b.Len() > 0:
			b.WriteString(" + ")
		}
		if abs != 1 || power == 0 {
			b.WriteString(strconv.FormatFloat(abs, 'g', -1, 64))
		}
		switch power {
		case 0:
		case 1:
			b.WriteString("x")
		default:
			b.WriteString("x^" + strconv.Itoa(power))
		}
	}
	if b.Len() == 0 {
		b.WriteString("0")
	}
	b.WriteString(" = 0")
	return b.String()
}

// ParseCoefficients parses a comma- or whitespace-separated list of real
// numbers, highest power first ("1,-5,6" or "1 -5 6").
//
// Returns:
//   - []float64: The parsed coefficients.
//   - error: An apperrors.ValidationError if the list is empty or a value is
//     not a number.
func ParseCoefficients(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return nil, apperrors.NewValidationError("coefficients", "no coefficients given", s)
	}
	coeffs := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, apperrors.NewValidationError(fmt.Sprintf("coefficients[%d]", i), "not a number", f)
		}
		coeffs[i] = v
	}
	return coeffs, nil
}

// Solve validates eq and dispatches by degree to Quadratic, Cubic or
// Quartic. The returned slice has exactly eq.Degree roots, counted with
// multiplicity.
func Solve(eq Equation) ([]cplx.Complex, error) {
	if err := eq.Validate(); err != nil {
		return nil, err
	}
	c := eq.Coefficients
	switch eq.Degree {
	case 2:
		return checkFinite(Quadratic(c[0], c[1], c[2]))
	case 3:
		return checkFinite(Cubic(c[0], c[1], c[2], c[3]))
	default:
		return checkFinite(Quartic(c[0], c[1], c[2], c[3], c[4]))
	}
}

// checkFinite rejects root sets that overflowed: finite coefficients can
// still be too far apart in magnitude for the closed forms in float64.
func checkFinite(roots []cplx.Complex) ([]cplx.Complex, error) {
	for _, r := range roots {
		if !r.IsFinite() {
			return nil, apperrors.NewValidationError("coefficients",
				"coefficients are out of range: the roots are not finite in double precision", r.String())
		}
	}
	return roots, nil
}
