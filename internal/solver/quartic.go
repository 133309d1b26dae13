package solver

import (
	"math"

	"github.com/agbru/galois/internal/cplx"
)

// Quartic returns the four roots of ax⁴ + bx³ + cx² + dx + e = 0 by
// Ferrari's method.
//
// The equation is depressed with x = y − b/4a into y⁴ + py² + qy + r = 0.
// When |q| < Epsilon it is biquadratic and solved as a quadratic in y².
// Otherwise a root m of the resolvent cubic
// m³ + 2p·m² + (p² − 4r)·m − q² = 0 splits the quartic into
//
//	y² + √m·y + (p + m − q/√m)/2 = 0
//	y² − √m·y + (p + m + q/√m)/2 = 0
//
// The caller must guarantee a ≠ 0.
func Quartic(a, b, c, d, e float64) []cplx.Complex {
	a2 := a * a
	b2 := b * b
	p := (8*a*c - 3*b2) / (8 * a2)
	q := (b2*b - 4*a*b*c + 8*a2*d) / (8 * a2 * a)
	r := (-3*b2*b2 + 256*a2*a*e - 64*a2*b*d + 16*a*b2*c) / (256 * a2 * a2)
	shift := cplx.Real(b / (4 * a))

	var roots []cplx.Complex
	if math.Abs(q) < Epsilon {
		roots = biquadratic(p, r)
	} else {
		roots = ferrari(p, q, r)
	}
	for i := range roots {
		roots[i] = roots[i].Sub(shift)
	}
	return roots
}

// biquadratic solves y⁴ + py² + r = 0: both square roots of each root of
// z² + pz + r = 0.
func biquadratic(p, r float64) []cplx.Complex {
	roots := make([]cplx.Complex, 0, 4)
	for _, z := range Quadratic(1, p, r) {
		s := z.Sqrt()
		roots = append(roots, s, s.Neg())
	}
	return roots
}

func ferrari(p, q, r float64) []cplx.Complex {
	m := pickResolventRoot(Cubic(1, 2*p, p*p-4*r, -q*q))
	if m.Abs() < Epsilon {
		// The resolvent fell into the triple-zero case, which only happens
		// when p and r are negligible; it then reduces to m³ = q².
		m = cplx.Real(math.Cbrt(q * q))
	}
	s := m.Sqrt()
	base := cplx.Real(p).Add(m)
	qs := cplx.Real(q).Div(s)

	first := QuadraticComplex(cplx.One, s, base.Sub(qs).Scale(0.5))
	second := QuadraticComplex(cplx.One, s.Neg(), base.Add(qs).Scale(0.5))
	return append(first, second...)
}

// pickResolventRoot chooses m among the resolvent cubic's roots: the one of
// largest modulus. The split divides q by √m, so a small m loses precision
// long before it reaches zero; when two conjugate pairs share nearly the same
// real part, q is tiny and so is one resolvent root. The resolvent's roots
// multiply to q², so with |q| ≥ Epsilon the chosen root is non-zero. Ties
// keep the earlier root.
func pickResolventRoot(roots []cplx.Complex) cplx.Complex {
	best := roots[0]
	for _, m := range roots[1:] {
		if m.Abs() > best.Abs() {
			best = m
		}
	}
	return best
}
