package solver

import (
	"math"

	"github.com/agbru/galois/internal/cplx"
)

// Cubic returns the three roots of ax³ + bx² + cx + d = 0.
//
// The equation is depressed with x = t − b/3a into t³ + pt + q = 0, solved
// by DepressedCubic and shifted back. The caller must guarantee a ≠ 0.
func Cubic(a, b, c, d float64) []cplx.Complex {
	p := (3*a*c - b*b) / (3 * a * a)
	q := (2*b*b*b - 9*a*b*c + 27*a*a*d) / (27 * a * a * a)
	shift := cplx.Real(b / (3 * a))

	roots := DepressedCubic(p, q)
	for i := range roots {
		roots[i] = roots[i].Sub(shift)
	}
	return roots
}

// DepressedCubic returns the three roots of t³ + pt + q = 0 using Cardano's
// formula: u+v, ωu+ω²v and ω²u+ωv where u³ and v³ are −q/2 ± √Δ and
// Δ = q²/4 + p³/27. When |p| and |q| are both below Epsilon the result is a
// triple root at zero.
func DepressedCubic(p, q float64) []cplx.Complex {
	if math.Abs(p) < Epsilon && math.Abs(q) < Epsilon {
		return []cplx.Complex{cplx.Zero, cplx.Zero, cplx.Zero}
	}

	u, v := cardanoPair(p, q)
	w, w2 := cplx.Omega(), cplx.Omega2()
	return []cplx.Complex{
		u.Add(v),
		w.Mul(u).Add(w2.Mul(v)),
		w2.Mul(u).Add(w.Mul(v)),
	}
}

// cardanoPair computes the cube roots u and v of Cardano's formula such that
// u·v = −p/3.
func cardanoPair(p, q float64) (u, v cplx.Complex) {
	a, b := cardanoCubes(p, q)

	if a.Abs() < Epsilon {
		// u³ vanished: take u from the other cube and derive v from the
		// pairing constraint directly.
		u = b.Cbrt()
		if u.Abs() == 0 {
			return cplx.Zero, cplx.Zero
		}
		return u, cplx.Real(-p / 3).Div(u)
	}

	u = a.Cbrt()
	v = b.Cbrt()
	return u, pairCardano(u, v, p)
}

// cardanoCubes returns A = −q/2 + √Δ and B = −q/2 − √Δ. For Δ ≥ 0 the
// smaller of the two is recovered from A·B = −p³/27 to avoid cancellation.
func cardanoCubes(p, q float64) (a, b cplx.Complex) {
	half := -q / 2
	delta := q*q/4 + p*p*p/27
	if delta < 0 {
		s := math.Sqrt(-delta)
		return cplx.New(half, s), cplx.New(half, -s)
	}

	s := math.Sqrt(delta)
	prod := -p * p * p / 27
	if half >= 0 {
		big := half + s
		if big == 0 {
			return cplx.Zero, cplx.Zero
		}
		return cplx.Real(big), cplx.Real(prod / big)
	}
	big := half - s
	return cplx.Real(prod / big), cplx.Real(big)
}

// pairCardano enforces u·v = −p/3. The principal cube roots of A and B only
// satisfy it up to a cube root of unity, so v is kept when the residual is
// within tolerance and otherwise replaced by whichever of ωv, ω²v minimises
// |u·v + p/3|.
func pairCardano(u, v cplx.Complex, p float64) cplx.Complex {
	target := cplx.Real(-p / 3)
	scale := 1 + u.Abs()*v.Abs()
	residual := func(c cplx.Complex) float64 {
		return u.Mul(c).Sub(target).Abs()
	}

	if residual(v) <= pairingTolerance*scale {
		return v
	}
	best, bestRes := v, residual(v)
	for _, w := range []cplx.Complex{cplx.Omega(), cplx.Omega2()} {
		c := w.Mul(v)
		if r := residual(c); r < bestRes {
			best, bestRes = c, r
		}
	}
	return best
}

// pairingTolerance bounds |u·v + p/3| relative to 1 + |u||v|.
const pairingTolerance = 1e-9
