package solver

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/agbru/galois/internal/cplx"
	apperrors "github.com/agbru/galois/internal/errors"
)

// UnitRoots returns the n solutions of zⁿ = 1 in order of increasing angle,
// starting at 1. It returns nil for n < 1.
func UnitRoots(n int) []cplx.Complex {
	if n < 1 {
		return nil
	}
	roots := make([]cplx.Complex, n)
	for k := range roots {
		roots[k] = cplx.One.NthRoot(n, k)
	}
	return roots
}

// NewRand returns a random source seeded with seed, or with the current time
// when seed is zero.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// GenerateRandomRoots produces degree roots whose expansion has real
// coefficients. At each step it emits, with equal probability, either one
// real root in [-2, 2) or a conjugate pair with real part in [-1.5, 1.5) and
// imaginary part of magnitude in [1, 2). A real root is forced when a
// single slot remains.
//
// A *rand.Rand is not safe for concurrent use; give each goroutine its own.
// A nil rng draws from a time-seeded source.
//
// Parameters:
//   - rng: The random source.
//   - degree: The number of roots to generate (2 to 4).
//
// Returns:
//   - []cplx.Complex: The generated roots.
//   - error: An apperrors.ValidationError for an unsupported degree.
func GenerateRandomRoots(rng *rand.Rand, degree int) ([]cplx.Complex, error) {
	if degree < MinDegree || degree > MaxDegree {
		return nil, apperrors.NewValidationError("degree",
			fmt.Sprintf("unsupported degree %d (must be between %d and %d)", degree, MinDegree, MaxDegree), degree)
	}
	if rng == nil {
		rng = NewRand(0)
	}

	roots := make([]cplx.Complex, 0, degree+1)
	for len(roots) < degree {
		remaining := degree - len(roots)
		if remaining == 1 || rng.Float64() < 0.5 {
			roots = append(roots, cplx.Real((rng.Float64()-0.5)*4))
			continue
		}
		re := (rng.Float64() - 0.5) * 3
		im := (rng.Float64()*0.5 + 0.5) * 2
		roots = append(roots, cplx.New(re, im), cplx.New(re, -im))
	}
	return roots[:degree], nil
}

// RootsToCoefficients expands ∏(x − rᵢ) and returns the real parts of the
// coefficients, highest power first. The leading coefficient is 1.
//
// Imaginary parts are discarded without inspection, so the result is only
// meaningful when the roots are closed under conjugation. Use
// RootsToCoefficientsChecked to reject inputs that are not.
func RootsToCoefficients(roots []cplx.Complex) []float64 {
	full := expand(roots)
	coeffs := make([]float64, len(full))
	for i, c := range full {
		coeffs[i] = c.Re
	}
	return coeffs
}

// RootsToCoefficientsChecked is RootsToCoefficients with validation of the
// discarded imaginary parts: each must be within tol·(1 + |cᵢ|) of zero.
//
// Returns:
//   - []float64: The real coefficients, highest power first.
//   - error: An apperrors.ValidationError on field "roots" if the roots are
//     not conjugate-symmetric within tol.
func RootsToCoefficientsChecked(roots []cplx.Complex, tol float64) ([]float64, error) {
	full := expand(roots)
	coeffs := make([]float64, len(full))
	for i, c := range full {
		if math.Abs(c.Im) > tol*(1+c.Abs()) {
			return nil, apperrors.NewValidationError("roots",
				fmt.Sprintf("roots are not conjugate-symmetric: coefficient %d has imaginary part %g", i, c.Im), c)
		}
		coeffs[i] = c.Re
	}
	return coeffs, nil
}

func expand(roots []cplx.Complex) []cplx.Complex {
	coeffs := []cplx.Complex{cplx.One}
	for _, r := range roots {
		next := make([]cplx.Complex, len(coeffs)+1)
		for i := range next {
			if i < len(coeffs) {
				next[i] = coeffs[i]
			}
			if i > 0 {
				next[i] = next[i].Sub(r.Mul(coeffs[i-1]))
			}
		}
		coeffs = next
	}
	return coeffs
}

// Evaluate computes P(z) by Horner's scheme for coefficients ordered highest
// power first.
func Evaluate(coeffs []float64, z cplx.Complex) cplx.Complex {
	acc := cplx.Zero
	for _, c := range coeffs {
		acc = acc.Mul(z).Add(cplx.Real(c))
	}
	return acc
}

// MaxResidual returns max |P(r)| over roots, the largest amount by which a
// computed root fails to satisfy the equation.
func MaxResidual(coeffs []float64, roots []cplx.Complex) float64 {
	var worst float64
	for _, r := range roots {
		if res := Evaluate(coeffs, r).Abs(); res > worst || math.IsNaN(res) {
			worst = res
		}
	}
	return worst
}
