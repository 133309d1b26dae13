package solver

import (
	"math"

	"github.com/agbru/galois/internal/cplx"
)

// Quadratic returns the two roots of ax² + bx + c = 0.
//
// For a non-negative discriminant D = b² − 4ac both roots are real and the
// "+√D" root comes first. For a negative discriminant the roots are the
// conjugate pair −b/2a ± i√(−D)/2a, positive imaginary part first.
//
// The caller must guarantee a ≠ 0; otherwise the roots are non-finite.
func Quadratic(a, b, c float64) []cplx.Complex {
	d := b*b - 4*a*c
	if d >= 0 {
		s := math.Sqrt(d)
		return []cplx.Complex{
			cplx.Real((-b + s) / (2 * a)),
			cplx.Real((-b - s) / (2 * a)),
		}
	}
	re := -b / (2 * a)
	im := math.Sqrt(-d) / (2 * a)
	return []cplx.Complex{
		cplx.New(re, im),
		cplx.New(re, -im),
	}
}

// QuadraticComplex returns the two roots of az² + bz + c = 0 for complex
// coefficients, (−b ± √(b² − 4ac))/2a with the principal square root.
// The "+" root comes first.
func QuadraticComplex(a, b, c cplx.Complex) []cplx.Complex {
	disc := b.Mul(b).Sub(a.Mul(c).Scale(4))
	s := disc.Sqrt()
	den := a.Scale(2)
	return []cplx.Complex{
		b.Neg().Add(s).Div(den),
		b.Neg().Sub(s).Div(den),
	}
}
